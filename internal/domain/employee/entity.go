package employee

import (
	"strings"

	"github.com/lumaclean/wfm-backend-go/internal/domain/worksite"
	"github.com/lumaclean/wfm-backend-go/internal/pkg/slug"
)

// Employee is one roster entry. The roster lives in a single document as an
// array of string-or-object records; both shapes normalize to this.
type Employee struct {
	ID         string
	Name       string
	Password   string // bcrypt hash, or legacy plaintext from old records
	HourlyCost float64
}

// IsFixture reports whether the entry is a test fixture. Fixture names start
// with "*" and never reach aggregation or cost reporting.
func (e Employee) IsFixture() bool {
	return strings.HasPrefix(e.Name, "*")
}

// ParseRosterEntry normalizes a raw roster record. Bare-string entries carry
// only a name; structured entries may add a password and an hourly cost.
// defaultHourlyCost fills the cost whenever the stored record has none, so
// every read path sees the same default.
func ParseRosterEntry(raw interface{}, defaultHourlyCost float64) (Employee, bool) {
	switch v := raw.(type) {
	case string:
		name := strings.TrimSpace(v)
		if name == "" {
			return Employee{}, false
		}
		return Employee{
			ID:         slug.EmployeeID(name),
			Name:       name,
			HourlyCost: defaultHourlyCost,
		}, true
	case map[string]interface{}:
		name, _ := v["name"].(string)
		name = strings.TrimSpace(name)
		if name == "" {
			return Employee{}, false
		}
		password, _ := v["password"].(string)
		cost := worksite.CoerceFloat(v["cost"])
		if cost <= 0 {
			cost = defaultHourlyCost
		}
		return Employee{
			ID:         slug.EmployeeID(name),
			Name:       name,
			Password:   password,
			HourlyCost: cost,
		}, true
	}
	return Employee{}, false
}
