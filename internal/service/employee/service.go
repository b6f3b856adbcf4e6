package employee

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/lumaclean/wfm-backend-go/internal/domain/employee"
	"github.com/lumaclean/wfm-backend-go/internal/pkg/cache"
	"github.com/lumaclean/wfm-backend-go/internal/pkg/slug"
)

type EmployeeServiceImpl struct {
	repo              employee.Repository
	defaultHourlyCost float64
	companyName       string
	clock             cache.Clock
	rosterMemo        *cache.Memo[[]employee.Employee]
}

// NewEmployeeService serves the roster behind the same short memo the
// catalog reader uses, so aggregation runs do not re-read the roster
// document per month.
func NewEmployeeService(repo employee.Repository, defaultHourlyCost float64, companyName string, rosterTTL time.Duration, clock cache.Clock) employee.Service {
	if clock == nil {
		clock = time.Now
	}
	return &EmployeeServiceImpl{
		repo:              repo,
		defaultHourlyCost: defaultHourlyCost,
		companyName:       companyName,
		clock:             clock,
		rosterMemo:        cache.NewMemo[[]employee.Employee](rosterTTL, clock),
	}
}

// List implements employee.Service.
func (s *EmployeeServiceImpl) List(ctx context.Context) ([]employee.Employee, error) {
	if roster, ok := s.rosterMemo.Get(); ok {
		return roster, nil
	}

	roster, err := s.repo.Roster(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}
	s.rosterMemo.Set(roster)
	return roster, nil
}

// GetByID implements employee.Service.
func (s *EmployeeServiceImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	roster, err := s.List(ctx)
	if err != nil {
		return employee.Employee{}, err
	}
	for _, e := range roster {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

// Upsert implements employee.Service. The roster is a single array
// document, so updates rewrite the whole array.
func (s *EmployeeServiceImpl) Upsert(ctx context.Context, req employee.UpsertEmployeeRequest) (employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}

	roster, err := s.repo.Roster(ctx)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to load roster: %w", err)
	}

	updated := employee.Employee{
		ID:         slug.EmployeeID(req.Name),
		Name:       req.Name,
		HourlyCost: s.defaultHourlyCost,
	}
	if req.HourlyCost != nil {
		updated.HourlyCost = *req.HourlyCost
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return employee.Employee{}, fmt.Errorf("failed to hash password: %w", err)
		}
		updated.Password = string(hash)
	}

	replaced := false
	for i, e := range roster {
		if e.ID != updated.ID {
			continue
		}
		if updated.Password == "" {
			updated.Password = e.Password
		}
		roster[i] = updated
		replaced = true
		break
	}
	if !replaced {
		roster = append(roster, updated)
	}

	if err := s.repo.SaveRoster(ctx, roster); err != nil {
		return employee.Employee{}, fmt.Errorf("failed to save roster: %w", err)
	}
	s.rosterMemo.Invalidate()
	return updated, nil
}

// Remove implements employee.Service.
func (s *EmployeeServiceImpl) Remove(ctx context.Context, id string) error {
	roster, err := s.repo.Roster(ctx)
	if err != nil {
		return fmt.Errorf("failed to load roster: %w", err)
	}

	kept := make([]employee.Employee, 0, len(roster))
	for _, e := range roster {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(roster) {
		return employee.ErrEmployeeNotFound
	}

	if err := s.repo.SaveRoster(ctx, kept); err != nil {
		return fmt.Errorf("failed to save roster: %w", err)
	}
	s.rosterMemo.Invalidate()
	return nil
}

// HourlyCosts implements employee.Service. Test fixtures (names starting
// with "*") never reach cost reporting.
func (s *EmployeeServiceImpl) HourlyCosts(ctx context.Context) (map[string]float64, error) {
	roster, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	costs := make(map[string]float64, len(roster))
	for _, e := range roster {
		if e.IsFixture() {
			continue
		}
		costs[e.ID] = e.HourlyCost
	}
	return costs, nil
}

// Badge implements employee.Service.
func (s *EmployeeServiceImpl) Badge(ctx context.Context, id string) (employee.Badge, error) {
	e, err := s.GetByID(ctx, id)
	if err != nil {
		return employee.Badge{}, err
	}

	return employee.Badge{
		EmployeeID: e.ID,
		Name:       e.Name,
		Company:    s.companyName,
		IssuedAt:   s.clock().Format("2006-01-02"),
		QRContent:  fmt.Sprintf("%s:badge:%s", slug.Make(s.companyName), e.ID),
	}, nil
}
