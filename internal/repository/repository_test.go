package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/models"
	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/testutil"
)

func newOrder(serviceID uuid.UUID, created time.Time) *models.Order {
	return &models.Order{
		TelegramUserID: "42",
		CustomerName:   "Budi",
		ContactInfo:    "a@b.com",
		ServiceID:      serviceID,
		Deadline:       datatypes.Date(time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)),
		Status:         models.OrderStatusNew,
		CreatedAt:      created,
	}
}

func TestGormServiceRepository_ListActive(t *testing.T) {
	gdb := testutil.NewDB(t)
	repo := NewGormServiceRepository(gdb)
	ctx := context.Background()

	second := testutil.CreateService(t, gdb, "Website", 750000, true, 20)
	testutil.CreateService(t, gdb, "Arsip", 10000, false, 5)
	first := testutil.CreateService(t, gdb, "Logo Design", 150000, true, 10)

	services, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, services, 2)
	assert.Equal(t, first.ID, services[0].ID)
	assert.Equal(t, second.ID, services[1].ID)
	for _, s := range services {
		assert.True(t, s.IsActive)
	}
}

func TestGormServiceRepository_FindActiveByID(t *testing.T) {
	gdb := testutil.NewDB(t)
	repo := NewGormServiceRepository(gdb)
	ctx := context.Background()

	active := testutil.CreateService(t, gdb, "Logo Design", 150000, true, 0)
	inactive := testutil.CreateService(t, gdb, "Arsip", 10000, false, 1)

	got, err := repo.FindActiveByID(ctx, active.ID)
	require.NoError(t, err)
	assert.Equal(t, "Logo Design", got.Name)

	_, err = repo.FindActiveByID(ctx, inactive.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestGormServiceRepository_ActiveCategories(t *testing.T) {
	gdb := testutil.NewDB(t)
	repo := NewGormServiceRepository(gdb)

	testutil.CreateService(t, gdb, "Logo", 1, true, 0)
	testutil.CreateService(t, gdb, "Banner", 1, true, 1)

	cats, err := repo.ActiveCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Desain"}, cats)
}

func TestGormOrderRepository_CreateReturnsJoinedService(t *testing.T) {
	gdb := testutil.NewDB(t)
	repo := NewGormOrderRepository(gdb)
	svc := testutil.CreateService(t, gdb, "Logo Design", 150000, true, 0)

	o := newOrder(svc.ID, time.Time{})
	require.NoError(t, repo.Create(context.Background(), o))

	assert.NotEqual(t, uuid.Nil, o.ID)
	require.NotNil(t, o.Service)
	assert.Equal(t, "Logo Design", o.Service.Name)
	assert.Equal(t, models.OrderStatusNew, o.Status)
}

func TestGormOrderRepository_ListNewestFirst(t *testing.T) {
	gdb := testutil.NewDB(t)
	repo := NewGormOrderRepository(gdb)
	ctx := context.Background()
	svc := testutil.CreateService(t, gdb, "Logo Design", 150000, true, 0)

	older := newOrder(svc.ID, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC))
	newer := newOrder(svc.ID, time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))

	orders, err := repo.ListWithService(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, newer.ID, orders[0].ID)
	assert.Equal(t, older.ID, orders[1].ID)
	require.NotNil(t, orders[0].Service)
}

func TestGormOrderRepository_UpdateWork(t *testing.T) {
	gdb := testutil.NewDB(t)
	repo := NewGormOrderRepository(gdb)
	ctx := context.Background()
	svc := testutil.CreateService(t, gdb, "Logo Design", 150000, true, 0)

	o := newOrder(svc.ID, time.Time{})
	require.NoError(t, repo.Create(ctx, o))

	err := repo.UpdateWork(ctx, o.ID, WorkUpdate{
		Status:    models.OrderStatusCompleted,
		WorkNotes: "Final file terlampir",
		WorkLink:  "https://drive.example/logo",
	})
	require.NoError(t, err)

	got, err := repo.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCompleted, got.Status)
	require.NotNil(t, got.WorkNotes)
	assert.Equal(t, "Final file terlampir", *got.WorkNotes)
	require.NotNil(t, got.WorkLink)
	assert.Equal(t, "https://drive.example/logo", *got.WorkLink)

	// any status may move to any other
	require.NoError(t, repo.UpdateWork(ctx, o.ID, WorkUpdate{Status: models.OrderStatusNew}))
	got, err = repo.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusNew, got.Status)
}

func TestGormOrderRepository_UpdateWorkUnknownOrder(t *testing.T) {
	repo := NewGormOrderRepository(testutil.NewDB(t))

	err := repo.UpdateWork(context.Background(), uuid.New(), WorkUpdate{Status: models.OrderStatusCancelled})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestGormProfileRepository(t *testing.T) {
	repo := NewGormProfileRepository(testutil.NewDB(t))
	ctx := context.Background()

	_, err := repo.FindByTelegramUserID(ctx, "42")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	first, created, err := repo.FirstOrCreate(ctx, &models.Profile{TelegramUserID: "42", Name: "Admin User", Role: models.RoleFreelancer})
	require.NoError(t, err)
	assert.True(t, created)

	p, err := repo.FindByTelegramUserID(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, models.RoleFreelancer, p.Role)

	// a second insert for the same user keeps the stored row
	again, created, err := repo.FirstOrCreate(ctx, &models.Profile{TelegramUserID: "42", Name: "Other", Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, models.RoleFreelancer, again.Role)
}
