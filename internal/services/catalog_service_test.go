package services

import (
	"context"
	"testing"

	"campbook/internal/cache"
	"campbook/internal/domain"
	"campbook/internal/domain/models"
	"campbook/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memPackages struct {
	PackageStore
	byID   map[int64]models.Package
	refs   map[int64]int
	nextID int64
}

func newMemPackages() *memPackages {
	return &memPackages{byID: map[int64]models.Package{}, refs: map[int64]int{}, nextID: 1}
}

func (m *memPackages) GetByID(_ context.Context, id int64) (models.Package, error) {
	p, ok := m.byID[id]
	if !ok {
		return p, repositories.ErrNotFound
	}
	return p, nil
}

func (m *memPackages) Create(_ context.Context, p *models.Package) (int64, error) {
	for _, cur := range m.byID {
		if cur.Name == p.Name {
			return 0, repositories.ErrDuplicate
		}
	}
	p.ID = m.nextID
	m.nextID++
	m.byID[p.ID] = *p
	return p.ID, nil
}

func (m *memPackages) Update(_ context.Context, p *models.Package) error {
	ids := m.byID[p.ID].ProjectIDs
	p.ProjectIDs = ids
	m.byID[p.ID] = *p
	return nil
}

func (m *memPackages) ReplaceProjects(_ context.Context, id int64, ids []int64) error {
	p := m.byID[id]
	p.ProjectIDs = ids
	m.byID[id] = p
	return nil
}

func (m *memPackages) CountOrderItems(_ context.Context, id int64) (int, error) {
	return m.refs[id], nil
}

func (m *memPackages) Delete(_ context.Context, id int64) error {
	delete(m.byID, id)
	return nil
}

func newCatalog(pk *memPackages) (CatalogService, *cache.MemoryStore, *fakeTx) {
	store := cache.NewMemoryStore()
	tx := &fakeTx{}
	return CatalogService{
		Projects: &fakeProjects{byID: map[int64]models.Project{
			1: {ID: 1, Name: "Archery"},
			2: {ID: 2, Name: "Rafting"},
		}},
		Packages: pk,
		Tx:       tx,
		Cache:    store,
	}, store, tx
}

func TestCatalogCreatePackage(t *testing.T) {
	svc, store, tx := newCatalog(newMemPackages())
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, cache.KeyPublicPackages, []byte("[]"), 0))

	p, err := svc.CreatePackage(ctx, PackageInput{Name: " Family   Day ", Price: 30000, ProjectIDs: []int64{2, 1, 2, 0}})
	require.NoError(t, err)
	assert.Equal(t, "Family Day", p.Name)
	assert.Equal(t, int64(30000), p.ChildPrice)
	assert.Equal(t, 1, p.Days)
	assert.True(t, p.IsActive)
	assert.Equal(t, []int64{1, 2}, p.ProjectIDs)
	require.Len(t, p.Projects, 2)
	assert.Equal(t, 1, tx.calls)

	cached, err := store.Exists(ctx, cache.KeyPublicPackages)
	require.NoError(t, err)
	assert.False(t, cached)

	_, err = svc.CreatePackage(ctx, PackageInput{Name: "Family Day"})
	var ce domain.ConflictError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, domain.CodeDuplicateName, ce.ErrorCode())
}

func TestCatalogPackageValidation(t *testing.T) {
	svc, _, _ := newCatalog(newMemPackages())
	ctx := context.Background()

	_, err := svc.CreatePackage(ctx, PackageInput{Price: 100})
	assert.True(t, domain.IsValidation(err))

	_, err = svc.CreatePackage(ctx, PackageInput{Name: "x", Price: -1})
	assert.True(t, domain.IsValidation(err))

	_, err = svc.CreatePackage(ctx, PackageInput{Name: "x", ProjectIDs: []int64{1, 99}})
	var ve domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "projectIds", ve.Field)
}

func TestCatalogUpdatePackageKeepsActiveFlag(t *testing.T) {
	pk := newMemPackages()
	pk.byID[5] = models.Package{ID: 5, Name: "Old", Price: 100, IsActive: false}
	svc, _, _ := newCatalog(pk)

	p, err := svc.UpdatePackage(context.Background(), 5, PackageInput{Name: "New", Price: 200, ChildPrice: 150})
	require.NoError(t, err)
	assert.False(t, p.IsActive)
	assert.Equal(t, int64(150), p.ChildPrice)

	_, err = svc.UpdatePackage(context.Background(), 6, PackageInput{Name: "x"})
	assert.True(t, domain.IsNotFound(err))
}

func TestCatalogDeletePackageInUse(t *testing.T) {
	pk := newMemPackages()
	pk.byID[5] = models.Package{ID: 5, Name: "Used"}
	pk.byID[6] = models.Package{ID: 6, Name: "Unused"}
	pk.refs[5] = 3
	svc, _, _ := newCatalog(pk)
	ctx := context.Background()

	err := svc.DeletePackage(ctx, 5)
	var ce domain.ConflictError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, domain.CodePackageInUse, ce.ErrorCode())
	assert.Contains(t, pk.byID, int64(5))

	require.NoError(t, svc.DeletePackage(ctx, 6))
	assert.NotContains(t, pk.byID, int64(6))
}

func TestProjectInputValidation(t *testing.T) {
	ok := ProjectInput{Name: "Kayak", DurationMinutes: 60, Capacity: 8, Price: 5000}
	p, err := ok.toModel(true)
	require.NoError(t, err)
	assert.True(t, p.IsActive)

	off := false
	ok.IsActive = &off
	p, err = ok.toModel(true)
	require.NoError(t, err)
	assert.False(t, p.IsActive)

	for field, in := range map[string]ProjectInput{
		"name":            {DurationMinutes: 60, Capacity: 8},
		"durationMinutes": {Name: "x", Capacity: 8},
		"capacity":        {Name: "x", DurationMinutes: 60},
		"price":           {Name: "x", DurationMinutes: 60, Capacity: 8, Price: -1},
	} {
		_, err := in.toModel(true)
		var ve domain.ValidationError
		require.ErrorAs(t, err, &ve, field)
		assert.Equal(t, field, ve.Field)
	}
}

func TestAccommodationInputDefaults(t *testing.T) {
	a, err := AccommodationInput{Name: "Lake Cabin", Capacity: 4}.toModel(true)
	require.NoError(t, err)
	assert.Equal(t, "room", a.Type)

	_, err = AccommodationInput{Name: "x", Type: "castle", Capacity: 4}.toModel(true)
	assert.True(t, domain.IsValidation(err))
}

func TestVehicleAndDriverInputs(t *testing.T) {
	v, err := VehicleInput{PlateNumber: " ab 123 c", Seats: 12}.toModel()
	require.NoError(t, err)
	assert.Equal(t, "AB123C", v.PlateNumber)
	assert.Equal(t, models.VehicleAvailable, v.Status)

	_, err = VehicleInput{PlateNumber: "AB1", Seats: 0}.toModel()
	assert.True(t, domain.IsValidation(err))

	_, err = VehicleInput{PlateNumber: "AB1", Seats: 4, Status: "flying"}.toModel()
	assert.True(t, domain.IsValidation(err))

	d, err := DriverInput{Name: "Li", Phone: "139-0000-1111"}.toModel()
	require.NoError(t, err)
	assert.Equal(t, "13900001111", d.Phone)
	assert.Equal(t, models.StaffActive, d.Status)

	_, err = DriverInput{Name: "Li", Phone: "12"}.toModel()
	assert.True(t, domain.IsValidation(err))
}

func TestUserServiceDeleteSelf(t *testing.T) {
	svc := UserService{Users: newFakeUsers(models.User{ID: 1})}
	err := svc.Delete(context.Background(), 1, 1)
	assert.True(t, domain.IsValidation(err))
}
