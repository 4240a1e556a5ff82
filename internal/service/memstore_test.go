package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/repository"
)

// memDB is an in-memory UnitOfWork for service tests.  WithinTx snapshots
// the tables and restores them when the function fails.
type memDB struct {
	categories   map[uint64]model.RoomCategory
	meals        map[uint64]model.MealItem
	roomFood     map[uint64][]uint64
	accounts     map[uint64]model.Account
	reservations map[uint64]model.Reservation
	payments     map[uint64]model.Payment
	tokens       map[string]memToken
	nextID       uint64
	clock        time.Time

	failPayment    error
	failSetPending error
}

type memToken struct {
	userID  uint64
	exp     time.Time
	revoked bool
}

func newMemDB() *memDB {
	return &memDB{
		categories:   map[uint64]model.RoomCategory{},
		meals:        map[uint64]model.MealItem{},
		roomFood:     map[uint64][]uint64{},
		accounts:     map[uint64]model.Account{},
		reservations: map[uint64]model.Reservation{},
		payments:     map[uint64]model.Payment{},
		tokens:       map[string]memToken{},
		clock:        time.Date(2024, 2, 20, 9, 0, 0, 0, time.UTC),
	}
}

func (db *memDB) id() uint64 {
	db.nextID++
	return db.nextID
}

func (db *memDB) addCategory(roomType, rate string, capacity int) model.RoomCategory {
	c := model.RoomCategory{ID: db.id(), Type: roomType, Rate: decimal.RequireFromString(rate), Capacity: capacity}
	db.categories[c.ID] = c
	return c
}

func (db *memDB) addAccount(username string, role model.Role) model.Account {
	a := model.Account{ID: db.id(), Username: username, FullName: strings.ToUpper(username[:1]) + username[1:], Role: role}
	db.accounts[a.ID] = a
	return a
}

func (db *memDB) Stores() repository.Stores {
	return repository.Stores{
		Catalog:      memCatalog{db},
		Accounts:     memAccounts{db},
		Reservations: memReservations{db},
		Payments:     memPayments{db},
		Tokens:       memTokens{db},
	}
}

func (db *memDB) WithinTx(_ context.Context, fn func(repository.Stores) error) error {
	snap := db.snapshot()
	if err := fn(db.Stores()); err != nil {
		*db = snap
		return err
	}
	return nil
}

func (db *memDB) snapshot() memDB {
	cp := *db
	cp.categories = cloneMap(db.categories)
	cp.meals = cloneMap(db.meals)
	cp.roomFood = cloneMap(db.roomFood)
	cp.accounts = cloneMap(db.accounts)
	cp.reservations = cloneMap(db.reservations)
	cp.payments = cloneMap(db.payments)
	cp.tokens = cloneMap(db.tokens)
	return cp
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

type memCatalog struct{ db *memDB }

func (c memCatalog) ListCategories(context.Context) ([]model.RoomCategory, error) {
	out := []model.RoomCategory{}
	for _, v := range c.db.categories {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (c memCatalog) GetCategoryByType(_ context.Context, roomType string) (model.RoomCategory, error) {
	for _, v := range c.db.categories {
		if v.Type == roomType {
			return v, nil
		}
	}
	return model.RoomCategory{}, repository.ErrCategoryNotFound
}

func (c memCatalog) UpdateRate(_ context.Context, roomType string, rate decimal.Decimal) error {
	for id, v := range c.db.categories {
		if v.Type == roomType {
			v.Rate = rate
			c.db.categories[id] = v
			return nil
		}
	}
	return repository.ErrCategoryNotFound
}

func (c memCatalog) ListMeals(context.Context) ([]model.MealItem, error) {
	out := []model.MealItem{}
	for _, m := range c.db.meals {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (c memCatalog) ListMealsForCategory(_ context.Context, categoryID uint64) ([]model.MealItem, error) {
	out := []model.MealItem{}
	for _, id := range c.db.roomFood[categoryID] {
		out = append(out, c.db.meals[id])
	}
	return out, nil
}

type memAccounts struct{ db *memDB }

func (a memAccounts) Create(_ context.Context, acct *model.Account) error {
	for _, v := range a.db.accounts {
		if v.Username == acct.Username {
			return repository.ErrUsernameExists
		}
	}
	acct.ID = a.db.id()
	acct.CreatedAt = a.db.clock
	a.db.accounts[acct.ID] = *acct
	return nil
}

func (a memAccounts) GetByUsername(_ context.Context, username string) (model.Account, error) {
	for _, v := range a.db.accounts {
		if v.Username == username {
			return v, nil
		}
	}
	return model.Account{}, repository.ErrAccountNotFound
}

func (a memAccounts) GetByID(_ context.Context, id uint64) (model.Account, error) {
	v, ok := a.db.accounts[id]
	if !ok {
		return model.Account{}, repository.ErrAccountNotFound
	}
	return v, nil
}

func (a memAccounts) ListByRole(_ context.Context, role model.Role) ([]model.Account, error) {
	out := []model.Account{}
	for _, v := range a.db.accounts {
		if v.Role == role {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (a memAccounts) DeleteByRole(_ context.Context, id uint64, role model.Role) error {
	v, ok := a.db.accounts[id]
	if !ok || v.Role != role {
		return repository.ErrAccountNotFound
	}
	delete(a.db.accounts, id)
	return nil
}

type memReservations struct{ db *memDB }

func (r memReservations) Create(_ context.Context, res *model.Reservation) error {
	res.ID = r.db.id()
	res.Status = model.StatusNone
	res.CreatedAt = r.db.clock
	r.db.reservations[res.ID] = *res
	return nil
}

func (r memReservations) GetByID(_ context.Context, id uint64) (model.Reservation, error) {
	v, ok := r.db.reservations[id]
	if !ok {
		return model.Reservation{}, repository.ErrReservationNotFound
	}
	return v, nil
}

func (r memReservations) SetPending(_ context.Context, id uint64) error {
	if r.db.failSetPending != nil {
		return r.db.failSetPending
	}
	v, ok := r.db.reservations[id]
	if !ok {
		return repository.ErrReservationNotFound
	}
	if v.Status != model.StatusConfirmed {
		v.Status = model.StatusPending
	}
	r.db.reservations[id] = v
	return nil
}

func (r memReservations) Confirm(_ context.Context, id uint64) error {
	v, ok := r.db.reservations[id]
	if !ok {
		return repository.ErrReservationNotFound
	}
	v.Status = model.StatusConfirmed
	r.db.reservations[id] = v
	return nil
}

func (r memReservations) List(ctx context.Context) ([]model.ReservationView, error) {
	return r.views(func(model.Reservation) bool { return true }), nil
}

func (r memReservations) ListByAccount(_ context.Context, accountID uint64) ([]model.ReservationView, error) {
	return r.views(func(res model.Reservation) bool { return res.AccountID == accountID }), nil
}

func (r memReservations) views(keep func(model.Reservation) bool) []model.ReservationView {
	out := []model.ReservationView{}
	for _, res := range r.db.reservations {
		if keep(res) {
			out = append(out, model.ReservationView{
				Reservation: res,
				GuestName:   r.db.accounts[res.AccountID].FullName,
				RoomType:    r.db.categories[res.CategoryID].Type,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CheckIn.Equal(out[j].CheckIn) {
			return out[i].CheckIn.After(out[j].CheckIn)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

type memPayments struct{ db *memDB }

func (p memPayments) Create(_ context.Context, pay *model.Payment) error {
	if p.db.failPayment != nil {
		return p.db.failPayment
	}
	if _, ok := p.db.reservations[pay.ReservationID]; !ok {
		return repository.ErrReservationNotFound
	}
	pay.ID = p.db.id()
	pay.PaidAt = p.db.clock
	p.db.payments[pay.ID] = *pay
	return nil
}

func (p memPayments) List(context.Context) ([]model.PaymentView, error) {
	return p.views(func(model.Payment) bool { return true }), nil
}

func (p memPayments) ListBetween(_ context.Context, from, to time.Time) ([]model.PaymentView, error) {
	return p.views(func(pay model.Payment) bool {
		return !pay.PaidAt.Before(from) && pay.PaidAt.Before(to)
	}), nil
}

func (p memPayments) Summarize(_ context.Context, period *model.Period) (model.SalesSummary, error) {
	s := model.SalesSummary{TotalRevenue: decimal.Zero}
	in := func(t time.Time) bool {
		return period == nil || (!t.Before(period.Start()) && t.Before(period.End()))
	}
	for _, pay := range p.db.payments {
		if in(pay.PaidAt) {
			s.TotalPayments++
			s.TotalRevenue = s.TotalRevenue.Add(pay.Amount)
		}
	}
	for _, res := range p.db.reservations {
		if !in(res.CheckIn) {
			continue
		}
		s.TotalReservations++
		switch res.Status {
		case model.StatusConfirmed:
			s.ConfirmedReservations++
		case model.StatusPending:
			s.PendingReservations++
		}
	}
	return s, nil
}

func (p memPayments) views(keep func(model.Payment) bool) []model.PaymentView {
	out := []model.PaymentView{}
	for _, pay := range p.db.payments {
		if !keep(pay) {
			continue
		}
		res := p.db.reservations[pay.ReservationID]
		out = append(out, model.PaymentView{
			Payment:   pay,
			GuestName: p.db.accounts[res.AccountID].FullName,
			RoomType:  p.db.categories[res.CategoryID].Type,
			Status:    res.Status,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PaidAt.Equal(out[j].PaidAt) {
			return out[i].PaidAt.After(out[j].PaidAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

type memTokens struct{ db *memDB }

func (t memTokens) StoreRefresh(_ context.Context, userID uint64, hash string, exp time.Time) error {
	t.db.tokens[hash] = memToken{userID: userID, exp: exp}
	return nil
}

func (t memTokens) ValidateRefresh(_ context.Context, hash string) (uint64, error) {
	tok, ok := t.db.tokens[hash]
	if !ok || tok.revoked || time.Now().After(tok.exp) {
		return 0, repository.ErrTokenNotFound
	}
	return tok.userID, nil
}

func (t memTokens) RevokeByHash(_ context.Context, hash string) error {
	tok, ok := t.db.tokens[hash]
	if !ok || tok.revoked {
		return repository.ErrTokenNotFound
	}
	tok.revoked = true
	t.db.tokens[hash] = tok
	return nil
}

func (t memTokens) RevokeAllForUser(_ context.Context, userID uint64) error {
	for h, tok := range t.db.tokens {
		if tok.userID == userID {
			tok.revoked = true
			t.db.tokens[h] = tok
		}
	}
	return nil
}
