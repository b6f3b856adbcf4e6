package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/lumaclean/wfm-backend-go/internal/domain/employee"
	"github.com/lumaclean/wfm-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db                *database.DB
	defaultHourlyCost float64
}

// NewEmployeeRepository reads the roster document. defaultHourlyCost is
// applied to every record without a stored cost, so the aggregation and
// billing paths see one consistent default.
func NewEmployeeRepository(db *database.DB, defaultHourlyCost float64) employee.Repository {
	return &employeeRepository{db: db, defaultHourlyCost: defaultHourlyCost}
}

// Roster implements employee.Repository.
func (r *employeeRepository) Roster(ctx context.Context) ([]employee.Employee, error) {
	snap, err := r.db.Collection("Data").Doc("employees").Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read employee roster: %w", err)
	}

	raw, ok := snap.Data()["employees"].([]interface{})
	if !ok {
		return nil, nil
	}

	roster := make([]employee.Employee, 0, len(raw))
	for _, entry := range raw {
		emp, ok := employee.ParseRosterEntry(entry, r.defaultHourlyCost)
		if !ok {
			continue
		}
		roster = append(roster, emp)
	}
	return roster, nil
}

// SaveRoster implements employee.Repository. The whole array is rewritten;
// concurrent writers resolve last-write-wins at the field level.
func (r *employeeRepository) SaveRoster(ctx context.Context, roster []employee.Employee) error {
	entries := make([]interface{}, 0, len(roster))
	for _, e := range roster {
		entries = append(entries, map[string]interface{}{
			"name":     e.Name,
			"password": e.Password,
			"cost":     e.HourlyCost,
		})
	}

	_, err := r.db.Collection("Data").Doc("employees").Set(ctx, map[string]interface{}{
		"employees": entries,
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to save employee roster: %w", err)
	}
	return nil
}
