package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

const userColumns = "user_id, username, password_hash, fullname, contact, role, created_at"

// UserRepo persists accounts in the users table.  Username uniqueness is
// enforced by a unique index; the repository maps the duplicate key error
// to ErrUsernameExists.
type UserRepo struct{ db DBTX }

func NewUserRepo(db DBTX) *UserRepo { return &UserRepo{db: db} }

// Create inserts the account and fills in its ID and CreatedAt.  The
// password must already be hashed.
func (r *UserRepo) Create(ctx context.Context, a *model.Account) error {
	a.Username = strings.TrimSpace(a.Username)
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO users (username, password_hash, fullname, contact, role) VALUES (?,?,?,?,?)",
		a.Username, a.PasswordHash, a.FullName, a.Contact, string(a.Role))
	if err != nil {
		if isDuplicateKey(err) {
			return ErrUsernameExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	return r.db.QueryRowContext(ctx, "SELECT created_at FROM users WHERE user_id=?", a.ID).Scan(&a.CreatedAt)
}

// GetByUsername fetches an account by its handle.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.Account, error) {
	return scanAccount(r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username=? LIMIT 1",
		strings.TrimSpace(username)))
}

// GetByID fetches an account by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.Account, error) {
	return scanAccount(r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE user_id=? LIMIT 1", id))
}

// ListByRole returns the accounts holding role, oldest first.
func (r *UserRepo) ListByRole(ctx context.Context, role model.Role) ([]model.Account, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE role=? ORDER BY user_id", string(role))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Account{}
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// DeleteByRole removes the account only if it currently holds role.
// Deleting an admin through the employee path therefore reports
// ErrAccountNotFound.
func (r *UserRepo) DeleteByRole(ctx context.Context, id uint64, role model.Role) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE user_id=? AND role=?", id, string(role))
	if err != nil {
		if isRowReferenced(err) {
			return ErrAccountInUse
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func scanAccount(s rowScanner) (model.Account, error) {
	var (
		a    model.Account
		role string
	)
	err := s.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.FullName, &a.Contact, &role, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return a, ErrAccountNotFound
	}
	a.Role = model.Role(role)
	return a, err
}
