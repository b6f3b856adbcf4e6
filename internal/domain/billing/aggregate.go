package billing

// SiteTotals accumulates one employee's work at one job-site for a month.
type SiteTotals struct {
	Type             string
	Name             string
	MinutesRaw       float64
	MinutesEffective float64
	ActivityCount    int
}

// EmployeeMonth is one employee's aggregated month, keyed by site key.
// Employees with no aggregated sites never appear in the aggregation map.
type EmployeeMonth struct {
	Name                  string
	TotalMinutesRaw       float64
	TotalMinutesEffective float64
	Sites                 map[string]SiteTotals
}
