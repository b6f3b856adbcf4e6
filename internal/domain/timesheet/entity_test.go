package timesheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffectiveMinutes(t *testing.T) {
	cases := []struct {
		name     string
		activity Activity
		want     float64
	}{
		{"plain", Activity{Minutes: 120, People: 1, Multiplier: 1}, 120},
		{"split across two", Activity{Minutes: 120, People: 2, Multiplier: 1}, 60},
		{"multiplier", Activity{Minutes: 60, People: 1, Multiplier: 2}, 120},
		{"zero people clamps to one", Activity{Minutes: 90, People: 0, Multiplier: 1}, 90},
		{"negative people clamps to one", Activity{Minutes: 90, People: -3, Multiplier: 1}, 90},
		{"zero multiplier clamps to one", Activity{Minutes: 90, People: 1, Multiplier: 0}, 90},
		{"fractional multiplier clamps to one", Activity{Minutes: 90, People: 1, Multiplier: 0.5}, 90},
		{"both defaults together", Activity{Minutes: 45}, 45},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, c.activity.EffectiveMinutes())
		})
	}
}

func TestEffectiveMinutesZeroAndOnePeopleAgree(t *testing.T) {
	zero := Activity{Type: "uffici", Name: "Centro", Minutes: 75, People: 0, Multiplier: 1.5}
	one := zero
	one.People = 1
	assert.Equal(t, one.EffectiveMinutes(), zero.EffectiveMinutes())
}

func TestMergeActivities(t *testing.T) {
	existing := []Activity{
		{Type: "uffici", Name: "Centro", Minutes: 60, People: 1, Multiplier: 1},
		{Type: "bnb", Name: "Duomo", Minutes: 30, People: 1, Multiplier: 1},
	}
	incoming := []Activity{
		{Type: "uffici", Name: "Centro", Minutes: 90, People: 2, Multiplier: 1},
		{Type: "pst", Name: "Stazione", Minutes: 15, People: 1, Multiplier: 1},
	}

	merged := MergeActivities(existing, incoming)
	assert.Len(t, merged, 3)

	byKey := make(map[string]Activity)
	for _, a := range merged {
		byKey[a.MergeKey()] = a
	}
	assert.Equal(t, 90.0, byKey["Centro|uffici"].Minutes, "resubmitted activity replaces the stored one")
	assert.Equal(t, 2, byKey["Centro|uffici"].People)
	assert.Equal(t, 30.0, byKey["Duomo|bnb"].Minutes, "untouched activity is preserved")
	assert.Equal(t, 15.0, byKey["Stazione|pst"].Minutes)
}

func TestMergeActivitiesStableOrder(t *testing.T) {
	in := []Activity{
		{Type: "uffici", Name: "Zeta"},
		{Type: "bnb", Name: "Alfa"},
	}
	a := MergeActivities(nil, in)
	b := MergeActivities(in, nil)
	assert.Equal(t, a, b, "merge order must not depend on which side entries arrive on")
}

func TestMergeActivitiesEmpty(t *testing.T) {
	assert.Empty(t, MergeActivities(nil, nil))

	only := []Activity{{Type: "uffici", Name: "Centro", Minutes: 10}}
	assert.Equal(t, only, MergeActivities(nil, only))
}

func TestIsValidStatus(t *testing.T) {
	for _, s := range []string{"", "restDay", "vacation", "sick"} {
		assert.True(t, IsValidStatus(s), s)
	}
	assert.False(t, IsValidStatus("holiday"))
}
