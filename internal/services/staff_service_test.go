package services

import (
	"context"
	"testing"
	"time"

	"campbook/internal/domain"
	"campbook/internal/domain/models"
	"campbook/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memCoaches struct {
	CoachStore
	byID     map[int64]models.Coach
	upcoming map[int64]int
	fromDate string
	nextID   int64
}

func newMemCoaches() *memCoaches {
	return &memCoaches{byID: map[int64]models.Coach{}, upcoming: map[int64]int{}}
}

func (m *memCoaches) GetByID(_ context.Context, id int64) (models.Coach, error) {
	c, ok := m.byID[id]
	if !ok {
		return c, repositories.ErrNotFound
	}
	return c, nil
}

func (m *memCoaches) phoneTaken(phone string, self int64) bool {
	for _, c := range m.byID {
		if phone != "" && c.Phone == phone && c.ID != self {
			return true
		}
	}
	return false
}

func (m *memCoaches) Create(_ context.Context, c *models.Coach) (int64, error) {
	if m.phoneTaken(c.Phone, 0) {
		return 0, repositories.ErrDuplicate
	}
	m.nextID++
	c.ID = m.nextID
	m.byID[c.ID] = *c
	return c.ID, nil
}

func (m *memCoaches) Update(_ context.Context, c *models.Coach) error {
	if m.phoneTaken(c.Phone, c.ID) {
		return repositories.ErrDuplicate
	}
	m.byID[c.ID] = *c
	return nil
}

func (m *memCoaches) CountUpcomingSchedules(_ context.Context, id int64, fromDate string) (int, error) {
	m.fromDate = fromDate
	return m.upcoming[id], nil
}

func (m *memCoaches) Delete(_ context.Context, id int64) error {
	delete(m.byID, id)
	return nil
}

type memVehicles struct {
	VehicleStore
	byID     map[int64]models.Vehicle
	shuttles map[int64]int
	nextID   int64
}

func (m *memVehicles) GetByID(_ context.Context, id int64) (models.Vehicle, error) {
	v, ok := m.byID[id]
	if !ok {
		return v, repositories.ErrNotFound
	}
	return v, nil
}

func (m *memVehicles) Create(_ context.Context, v *models.Vehicle) (int64, error) {
	for _, cur := range m.byID {
		if cur.PlateNumber == v.PlateNumber {
			return 0, repositories.ErrDuplicate
		}
	}
	m.nextID++
	v.ID = m.nextID
	m.byID[v.ID] = *v
	return v.ID, nil
}

func (m *memVehicles) CountShuttles(_ context.Context, id int64) (int, error) {
	return m.shuttles[id], nil
}

func (m *memVehicles) Delete(_ context.Context, id int64) error {
	delete(m.byID, id)
	return nil
}

type memDrivers struct {
	DriverStore
	byID     map[int64]models.Driver
	shuttles map[int64]int
}

func (m *memDrivers) GetByID(_ context.Context, id int64) (models.Driver, error) {
	d, ok := m.byID[id]
	if !ok {
		return d, repositories.ErrNotFound
	}
	return d, nil
}

func (m *memDrivers) CountShuttles(_ context.Context, id int64) (int, error) {
	return m.shuttles[id], nil
}

func (m *memDrivers) Delete(_ context.Context, id int64) error {
	delete(m.byID, id)
	return nil
}

func requireConflictCode(t *testing.T, err error, code string) {
	t.Helper()
	var ce domain.ConflictError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, code, ce.ErrorCode())
}

func TestCoachServiceCreateAndUpdate(t *testing.T) {
	store := newMemCoaches()
	svc := CoachService{Coaches: store}
	ctx := context.Background()

	c, err := svc.Create(ctx, CoachInput{Name: " Coach  Zhang ", Phone: "138 0000 1111", Specialties: "rafting; archery,rafting"})
	require.NoError(t, err)
	assert.Equal(t, "Coach Zhang", c.Name)
	assert.Equal(t, "13800001111", c.Phone)
	assert.Equal(t, "rafting,archery", c.Specialties)
	assert.Equal(t, models.StaffActive, c.Status)

	_, err = svc.Create(ctx, CoachInput{Name: "Coach Li", Phone: "13800001111"})
	requireConflictCode(t, err, domain.CodeDuplicatePhone)

	_, err = svc.Create(ctx, CoachInput{Name: "Coach Li", Status: "retired"})
	assert.True(t, domain.IsValidation(err))
	_, err = svc.Create(ctx, CoachInput{Name: "  "})
	assert.True(t, domain.IsValidation(err))

	c, err = svc.Update(ctx, c.ID, CoachInput{Name: "Coach Zhang", Status: "INACTIVE"})
	require.NoError(t, err)
	assert.Equal(t, models.StaffInactive, c.Status)

	_, err = svc.Update(ctx, 99, CoachInput{Name: "Nobody"})
	assert.True(t, domain.IsNotFound(err))
}

func TestCoachServiceDeleteGuardsUpcomingSchedules(t *testing.T) {
	freezeNow(t, time.Date(2025, 6, 18, 9, 0, 0, 0, time.Local))
	store := newMemCoaches()
	store.byID[1] = models.Coach{ID: 1, Name: "Busy"}
	store.byID[2] = models.Coach{ID: 2, Name: "Past only"}
	store.upcoming[1] = 3
	svc := CoachService{Coaches: store}
	ctx := context.Background()

	err := svc.Delete(ctx, 1)
	requireConflictCode(t, err, domain.CodeCoachInUse)
	assert.Equal(t, "2025-06-18", store.fromDate)
	assert.Contains(t, store.byID, int64(1))

	// past schedules keep their rows, the coach reference is cleared by the FK
	require.NoError(t, svc.Delete(ctx, 2))
	assert.NotContains(t, store.byID, int64(2))

	assert.True(t, domain.IsNotFound(svc.Delete(ctx, 2)))
}

func TestFleetServiceDuplicatePlate(t *testing.T) {
	svc := FleetService{Vehicles: &memVehicles{byID: map[int64]models.Vehicle{}}}
	ctx := context.Background()

	_, err := svc.CreateVehicle(ctx, VehicleInput{PlateNumber: "ab 123", Seats: 14})
	require.NoError(t, err)
	_, err = svc.CreateVehicle(ctx, VehicleInput{PlateNumber: "AB123", Seats: 7})
	requireConflictCode(t, err, domain.CodeDuplicatePlate)
}

func TestFleetServiceDeleteGuards(t *testing.T) {
	vehicles := &memVehicles{
		byID:     map[int64]models.Vehicle{1: {ID: 1}, 2: {ID: 2}},
		shuttles: map[int64]int{1: 2},
	}
	drivers := &memDrivers{
		byID:     map[int64]models.Driver{1: {ID: 1}, 2: {ID: 2}},
		shuttles: map[int64]int{1: 1},
	}
	svc := FleetService{Vehicles: vehicles, Drivers: drivers}
	ctx := context.Background()

	requireConflictCode(t, svc.DeleteVehicle(ctx, 1), domain.CodeVehicleInUse)
	require.NoError(t, svc.DeleteVehicle(ctx, 2))
	assert.True(t, domain.IsNotFound(svc.DeleteVehicle(ctx, 3)))

	requireConflictCode(t, svc.DeleteDriver(ctx, 1), domain.CodeDriverInUse)
	require.NoError(t, svc.DeleteDriver(ctx, 2))
	assert.Len(t, drivers.byID, 1)
}

func TestCatalogDeleteProjectAndAccommodationInUse(t *testing.T) {
	projects := &fakeProjects{
		byID: map[int64]models.Project{1: {ID: 1}, 2: {ID: 2}},
		refs: map[int64]int{1: 4},
	}
	places := &fakeAccommodations{
		byID: map[int64]models.AccommodationPlace{1: {ID: 1}, 2: {ID: 2}},
		refs: map[int64]int{1: 1},
	}
	svc := CatalogService{Projects: projects, Accommodations: places}
	ctx := context.Background()

	requireConflictCode(t, svc.DeleteProject(ctx, 1), domain.CodeProjectInUse)
	require.NoError(t, svc.DeleteProject(ctx, 2))
	assert.NotContains(t, projects.byID, int64(2))

	requireConflictCode(t, svc.DeleteAccommodation(ctx, 1), domain.CodeAccommodationInUse)
	require.NoError(t, svc.DeleteAccommodation(ctx, 2))
	assert.True(t, domain.IsNotFound(svc.DeleteAccommodation(ctx, 2)))
}
