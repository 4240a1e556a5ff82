package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// DBTX is the subset of *sql.DB and *sql.Tx the repositories need, so the
// same repository code runs inside and outside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// CatalogStore reads room categories and meals and mutates category rates.
type CatalogStore interface {
	ListCategories(ctx context.Context) ([]model.RoomCategory, error)
	GetCategoryByType(ctx context.Context, roomType string) (model.RoomCategory, error)
	UpdateRate(ctx context.Context, roomType string, rate decimal.Decimal) error
	ListMeals(ctx context.Context) ([]model.MealItem, error)
	ListMealsForCategory(ctx context.Context, categoryID uint64) ([]model.MealItem, error)
}

// AccountStore persists accounts.
type AccountStore interface {
	Create(ctx context.Context, a *model.Account) error
	GetByUsername(ctx context.Context, username string) (model.Account, error)
	GetByID(ctx context.Context, id uint64) (model.Account, error)
	ListByRole(ctx context.Context, role model.Role) ([]model.Account, error)
	DeleteByRole(ctx context.Context, id uint64, role model.Role) error
}

// ReservationStore is the reservation ledger.
type ReservationStore interface {
	Create(ctx context.Context, r *model.Reservation) error
	GetByID(ctx context.Context, id uint64) (model.Reservation, error)
	SetPending(ctx context.Context, id uint64) error
	Confirm(ctx context.Context, id uint64) error
	List(ctx context.Context) ([]model.ReservationView, error)
	ListByAccount(ctx context.Context, accountID uint64) ([]model.ReservationView, error)
}

// PaymentStore is the payment ledger and its sales read models.  A nil
// period means all time.
type PaymentStore interface {
	Create(ctx context.Context, p *model.Payment) error
	List(ctx context.Context) ([]model.PaymentView, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]model.PaymentView, error)
	Summarize(ctx context.Context, period *model.Period) (model.SalesSummary, error)
}

// TokenStore persists hashed refresh tokens.
type TokenStore interface {
	StoreRefresh(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error
	ValidateRefresh(ctx context.Context, tokenHash string) (uint64, error)
	RevokeByHash(ctx context.Context, tokenHash string) error
	RevokeAllForUser(ctx context.Context, userID uint64) error
}

// Stores bundles every store bound to the same connection or transaction.
type Stores struct {
	Catalog      CatalogStore
	Accounts     AccountStore
	Reservations ReservationStore
	Payments     PaymentStore
	Tokens       TokenStore
}

// Transactor runs fn against stores bound to a single transaction.  The
// transaction commits when fn returns nil and rolls back otherwise.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(Stores) error) error
}

// SQLStore hands out MySQL backed stores and units of work.
type SQLStore struct {
	db *sql.DB
}

// NewSQLStore returns a SQLStore bound to db.
func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

// Stores returns stores that run each statement on its own.
func (s *SQLStore) Stores() Stores { return bind(s.db) }

// WithinTx implements Transactor.
func (s *SQLStore) WithinTx(ctx context.Context, fn func(Stores) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := fn(bind(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

func bind(db DBTX) Stores {
	return Stores{
		Catalog:      NewRoomRepo(db),
		Accounts:     NewUserRepo(db),
		Reservations: NewReservationRepo(db),
		Payments:     NewPaymentRepo(db),
		Tokens:       NewTokenRepo(db),
	}
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}
