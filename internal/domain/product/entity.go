package product

import "time"

// Product is one cleaning product from the shared Products document.
type Product struct {
	ID          string
	Name        string
	Description string
}

// Rating is one employee's rating of a product. One per (product, employee);
// resubmission overwrites.
type Rating struct {
	ID         string
	EmployeeID string
	Stars      int
	Comment    string
	CreatedAt  time.Time
}
