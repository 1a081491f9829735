package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Skotchmaster/food_order/internal/models"
	"github.com/Skotchmaster/food_order/internal/notify"
	"github.com/Skotchmaster/food_order/internal/repo"
	pkg_hash "github.com/Skotchmaster/food_order/pkg/hash"
)

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, repo.Migrate(db))
	t.Cleanup(func() { _ = sqlDB.Close() })
	return &repo.GormRepo{DB: db}
}

type fakeNotifier struct {
	mu   sync.Mutex
	msgs []notify.Message
}

func (f *fakeNotifier) Enqueue(msg notify.Message) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs = append(f.msgs, msg)
	return true
}

type emitted struct {
	event string
	order *models.Order
}

type fakeEmitter struct {
	got []emitted
}

func (f *fakeEmitter) Emit(_ context.Context, event string, order *models.Order) {
	f.got = append(f.got, emitted{event, order})
}

type fakeIndex struct {
	indexed map[uuid.UUID]string
	deleted []uuid.UUID
	ids     []uuid.UUID
	err     error
}

func (f *fakeIndex) IndexDish(_ context.Context, d *models.Dish) error {
	if f.indexed == nil {
		f.indexed = map[uuid.UUID]string{}
	}
	f.indexed[d.ID] = d.Name
	return nil
}

func (f *fakeIndex) DeleteDish(_ context.Context, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeIndex) Search(context.Context, string, bool, int, int) ([]uuid.UUID, int64, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	return f.ids, int64(len(f.ids)), nil
}

func seedUser(t *testing.T, r *repo.GormRepo, email string, blocked bool) *models.User {
	t.Helper()
	h, err := pkg_hash.HashPassword("secret")
	require.NoError(t, err)
	u := &models.User{Name: "Ana", Email: email, PasswordHash: h, Blocked: blocked}
	require.NoError(t, r.DB.Create(u).Error)
	return u
}

func seedModifier(t *testing.T, r *repo.GormRepo, name string, price int64, available bool) models.Modifier {
	t.Helper()
	m := models.Modifier{Name: name, Price: decimal.NewFromInt(price), Available: available}
	require.NoError(t, r.DB.Create(&m).Error)
	return m
}

func seedDish(t *testing.T, r *repo.GormRepo, name string, price int64, available bool, mods ...models.Modifier) models.Dish {
	t.Helper()
	d := models.Dish{Name: name, Category: "plato fuerte", Price: decimal.NewFromInt(price), Available: available, Modifiers: mods}
	require.NoError(t, r.DB.Omit("Modifiers.*").Create(&d).Error)
	return d
}

func fieldErrors(t *testing.T, err error) FieldErrors {
	t.Helper()
	require.ErrorIs(t, err, ErrValidation)
	var fe FieldErrors
	require.True(t, errors.As(err, &fe))
	return fe
}
