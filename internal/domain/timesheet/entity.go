package timesheet

import "sort"

type Status string

const (
	StatusNone     Status = ""
	StatusRestDay  Status = "restDay"
	StatusVacation Status = "vacation"
	StatusSick     Status = "sick"
)

func IsValidStatus(s string) bool {
	switch Status(s) {
	case StatusNone, StatusRestDay, StatusVacation, StatusSick:
		return true
	}
	return false
}

// Activity is one logged activity inside a daily entry.
type Activity struct {
	Type       string
	Name       string
	Minutes    float64
	People     int
	Multiplier float64
}

// EffectiveMinutes applies the multiplier and splits across headcount.
// People <= 0 clamps to 1 so the division can never blow up or go negative.
// The result is a float and accumulates as one.
func (a Activity) EffectiveMinutes() float64 {
	people := a.People
	if people < 1 {
		people = 1
	}
	multiplier := a.Multiplier
	if multiplier < 1 {
		multiplier = 1
	}
	return a.Minutes * multiplier / float64(people)
}

// MergeKey identifies an activity within a day for resubmission merging.
func (a Activity) MergeKey() string {
	return a.Name + "|" + a.Type
}

// DailyEntry is one (employee, date) document. Either a status flag or a
// list of activities; the two are not mutually enforced, matching the
// historical data.
type DailyEntry struct {
	Date       string
	Status     Status
	Activities []Activity
}

// MergeActivities folds incoming activities into the existing list, keyed
// by name|type: a resubmitted activity replaces its previous version,
// everything else is preserved. Order is stable by merge key.
func MergeActivities(existing, incoming []Activity) []Activity {
	byKey := make(map[string]Activity, len(existing)+len(incoming))
	for _, a := range existing {
		byKey[a.MergeKey()] = a
	}
	for _, a := range incoming {
		byKey[a.MergeKey()] = a
	}

	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	merged := make([]Activity, 0, len(keys))
	for _, k := range keys {
		merged = append(merged, byKey[k])
	}
	return merged
}
