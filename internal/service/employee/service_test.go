package employee

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/lumaclean/wfm-backend-go/internal/domain/employee"
)

type fakeRepo struct {
	roster []employee.Employee
	err    error
	reads  int
	saved  [][]employee.Employee
}

func (f *fakeRepo) Roster(ctx context.Context) ([]employee.Employee, error) {
	f.reads++
	if f.err != nil {
		return nil, f.err
	}
	cp := append([]employee.Employee(nil), f.roster...)
	return cp, nil
}

func (f *fakeRepo) SaveRoster(ctx context.Context, roster []employee.Employee) error {
	f.saved = append(f.saved, roster)
	f.roster = roster
	return nil
}

func newService(repo *fakeRepo) employee.Service {
	return NewEmployeeService(repo, 15, "LumaClean", 5*time.Minute, nil)
}

func TestListMemoized(t *testing.T) {
	repo := &fakeRepo{roster: []employee.Employee{{ID: "Maria_Rossi", Name: "Maria Rossi", HourlyCost: 15}}}
	svc := newService(repo)

	first, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)

	_, err = svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.reads, "second list inside the TTL served from memo")
}

func TestListPropagatesReadFailure(t *testing.T) {
	repo := &fakeRepo{err: errors.New("remote unavailable")}
	svc := newService(repo)

	_, err := svc.List(context.Background())
	assert.Error(t, err)
}

func TestGetByID(t *testing.T) {
	repo := &fakeRepo{roster: []employee.Employee{{ID: "Maria_Rossi", Name: "Maria Rossi"}}}
	svc := newService(repo)

	e, err := svc.GetByID(context.Background(), "Maria_Rossi")
	require.NoError(t, err)
	assert.Equal(t, "Maria Rossi", e.Name)

	_, err = svc.GetByID(context.Background(), "Sconosciuta")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestUpsertCreatesWithDefaults(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(repo)

	created, err := svc.Upsert(context.Background(), employee.UpsertEmployeeRequest{
		Name:     "Anna Bianchi",
		Password: "segreto123",
	})
	require.NoError(t, err)
	assert.Equal(t, "Anna_Bianchi", created.ID)
	assert.Equal(t, 15.0, created.HourlyCost, "missing cost falls back to the configured default")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("segreto123")))

	require.Len(t, repo.saved, 1)
	require.Len(t, repo.saved[0], 1)
}

func TestUpsertUpdatesKeepingOldPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("vecchia"), bcrypt.MinCost)
	require.NoError(t, err)
	repo := &fakeRepo{roster: []employee.Employee{
		{ID: "Maria_Rossi", Name: "Maria Rossi", Password: string(hash), HourlyCost: 15},
	}}
	svc := newService(repo)

	cost := 18.0
	updated, err := svc.Upsert(context.Background(), employee.UpsertEmployeeRequest{
		Name:       "Maria Rossi",
		HourlyCost: &cost,
	})
	require.NoError(t, err)
	assert.Equal(t, 18.0, updated.HourlyCost)
	assert.Equal(t, string(hash), updated.Password, "blank password keeps the stored one")

	require.Len(t, repo.roster, 1, "update rewrites in place, no duplicate entry")
}

func TestUpsertValidation(t *testing.T) {
	svc := newService(&fakeRepo{})

	_, err := svc.Upsert(context.Background(), employee.UpsertEmployeeRequest{Name: "  "})
	assert.Error(t, err)

	negative := -1.0
	_, err = svc.Upsert(context.Background(), employee.UpsertEmployeeRequest{Name: "Maria", HourlyCost: &negative})
	assert.Error(t, err)
}

func TestRemove(t *testing.T) {
	repo := &fakeRepo{roster: []employee.Employee{
		{ID: "Maria_Rossi", Name: "Maria Rossi"},
		{ID: "Anna_Bianchi", Name: "Anna Bianchi"},
	}}
	svc := newService(repo)

	require.NoError(t, svc.Remove(context.Background(), "Maria_Rossi"))
	require.Len(t, repo.roster, 1)
	assert.Equal(t, "Anna_Bianchi", repo.roster[0].ID)

	err := svc.Remove(context.Background(), "Sconosciuta")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestUpsertInvalidatesMemo(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(repo)

	_, err := svc.List(context.Background())
	require.NoError(t, err)

	_, err = svc.Upsert(context.Background(), employee.UpsertEmployeeRequest{Name: "Anna Bianchi"})
	require.NoError(t, err)

	roster, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, roster, 1, "list after upsert reflects the write")
}

func TestHourlyCostsSkipsFixtures(t *testing.T) {
	repo := &fakeRepo{roster: []employee.Employee{
		{ID: "Maria_Rossi", Name: "Maria Rossi", HourlyCost: 15},
		{ID: "*test", Name: "*test", HourlyCost: 99},
	}}
	svc := newService(repo)

	costs, err := svc.HourlyCosts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"Maria_Rossi": 15}, costs)
}

func TestBadge(t *testing.T) {
	repo := &fakeRepo{roster: []employee.Employee{{ID: "Maria_Rossi", Name: "Maria Rossi"}}}
	svc := newService(repo)

	badge, err := svc.Badge(context.Background(), "Maria_Rossi")
	require.NoError(t, err)
	assert.Equal(t, "Maria_Rossi", badge.EmployeeID)
	assert.Equal(t, "Maria Rossi", badge.Name)
	assert.Equal(t, "LumaClean", badge.Company)
	assert.Equal(t, "lumaclean:badge:Maria_Rossi", badge.QRContent)
	assert.NotEmpty(t, badge.IssuedAt)

	_, err = svc.Badge(context.Background(), "Sconosciuta")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
