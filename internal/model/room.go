package model

import "github.com/shopspring/decimal"

// RoomCategory is a bookable kind of room.  The nightly Rate is the only
// field that changes after creation and only through the admin price
// update.  Capacity is the maximum number of occupants.
//
// Fields:
//  ID       – primary key identifier (room_tbl.room_id).
//  Type     – unique type name such as "Deluxe".
//  Rate     – nightly price.
//  Capacity – maximum occupant count.
type RoomCategory struct {
	ID       uint64          `json:"room_id"`     // room_tbl.room_id
	Type     string          `json:"room_type"`   // room_tbl.room_type
	Rate     decimal.Decimal `json:"price"`       // room_tbl.price
	Capacity int             `json:"maximum_cap"` // room_tbl.maximum_cap
}

// Fits reports whether the category can host the given number of guests.
func (c RoomCategory) Fits(guests int) bool { return c.Capacity >= guests }

// MealItem is a meal included with one or more room categories through
// the room_food association table.
type MealItem struct {
	ID       uint64 `json:"food_id"`   // food.food_id
	Name     string `json:"name"`      // food.name
	MealType string `json:"meal_type"` // food.meal_type (breakfast, lunch, dinner)
}
