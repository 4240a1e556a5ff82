package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// RoomRepo serves the catalogue: room categories from room_tbl and the
// meals linked to them through room_food.
type RoomRepo struct {
	db DBTX
}

// NewRoomRepo returns a RoomRepo bound to db.
func NewRoomRepo(db DBTX) *RoomRepo { return &RoomRepo{db: db} }

// ListCategories returns every room category ordered by id.
func (r *RoomRepo) ListCategories(ctx context.Context) ([]model.RoomCategory, error) {
	const q = `SELECT room_id, room_type, price, maximum_cap FROM room_tbl ORDER BY room_id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.RoomCategory{}
	for rows.Next() {
		var c model.RoomCategory
		if err := rows.Scan(&c.ID, &c.Type, &c.Rate, &c.Capacity); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetCategoryByType looks a category up by its unique type name.  It
// returns ErrCategoryNotFound when no row matches.
func (r *RoomRepo) GetCategoryByType(ctx context.Context, roomType string) (model.RoomCategory, error) {
	const q = `SELECT room_id, room_type, price, maximum_cap FROM room_tbl WHERE room_type = ? LIMIT 1`
	var c model.RoomCategory
	err := r.db.QueryRowContext(ctx, q, strings.TrimSpace(roomType)).Scan(&c.ID, &c.Type, &c.Rate, &c.Capacity)
	if errors.Is(err, sql.ErrNoRows) {
		return c, ErrCategoryNotFound
	}
	return c, err
}

// UpdateRate sets the nightly rate of a category.  The connection reports
// matched rather than changed rows, so writing the current rate again is
// still a success; zero rows means the type is unknown.
func (r *RoomRepo) UpdateRate(ctx context.Context, roomType string, rate decimal.Decimal) error {
	res, err := r.db.ExecContext(ctx, `UPDATE room_tbl SET price = ? WHERE room_type = ?`, rate, strings.TrimSpace(roomType))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// ListMeals returns every meal item.
func (r *RoomRepo) ListMeals(ctx context.Context) ([]model.MealItem, error) {
	return r.queryMeals(ctx, `SELECT food_id, name, meal_type FROM food ORDER BY food_id`)
}

// ListMealsForCategory returns the meals included with a category.  An
// unknown category simply yields an empty list.
func (r *RoomRepo) ListMealsForCategory(ctx context.Context, categoryID uint64) ([]model.MealItem, error) {
	const q = `SELECT f.food_id, f.name, f.meal_type
FROM food f
JOIN room_food rf ON rf.food_id = f.food_id
WHERE rf.room_id = ?
ORDER BY f.food_id`
	return r.queryMeals(ctx, q, categoryID)
}

func (r *RoomRepo) queryMeals(ctx context.Context, q string, args ...any) ([]model.MealItem, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.MealItem{}
	for rows.Next() {
		var m model.MealItem
		if err := rows.Scan(&m.ID, &m.Name, &m.MealType); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
