package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/iliyamo/hotel-reservation/internal/auth"
	"github.com/iliyamo/hotel-reservation/internal/metrics"
	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/repository"
)

// UnitOfWork hands out stores for single statements and runs groups of
// statements atomically.  *repository.SQLStore implements it.
type UnitOfWork interface {
	Stores() repository.Stores
	repository.Transactor
}

// CatalogService reads room categories and meals and applies admin rate
// changes.
type CatalogService struct {
	uow     UnitOfWork
	log     *zap.Logger
	metrics *metrics.Metrics
}

func NewCatalogService(uow UnitOfWork, log *zap.Logger, m *metrics.Metrics) *CatalogService {
	return &CatalogService{uow: uow, log: log, metrics: m}
}

// ListRoomCategories returns every category.
func (s *CatalogService) ListRoomCategories(ctx context.Context, sess auth.Session) ([]model.RoomCategory, error) {
	if err := sess.Authorize(auth.OpViewCatalog); err != nil {
		return nil, err
	}
	return s.uow.Stores().Catalog.ListCategories(ctx)
}

// GetRoomCategory looks a category up by type name.
func (s *CatalogService) GetRoomCategory(ctx context.Context, sess auth.Session, roomType string) (model.RoomCategory, error) {
	if err := sess.Authorize(auth.OpViewCatalog); err != nil {
		return model.RoomCategory{}, err
	}
	if strings.TrimSpace(roomType) == "" {
		return model.RoomCategory{}, fmt.Errorf("%w: roomType", ErrMissingField)
	}
	return s.uow.Stores().Catalog.GetCategoryByType(ctx, roomType)
}

// UpdateRate sets a new nightly rate from its textual form.  Existing
// reservations keep the rate they were booked at.
func (s *CatalogService) UpdateRate(ctx context.Context, sess auth.Session, roomType, rawRate string) (decimal.Decimal, error) {
	if err := sess.Authorize(auth.OpUpdateRate); err != nil {
		return decimal.Decimal{}, err
	}
	if strings.TrimSpace(roomType) == "" {
		return decimal.Decimal{}, fmt.Errorf("%w: room type", ErrMissingField)
	}
	rate, err := ParseRate(rawRate)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if err := s.uow.Stores().Catalog.UpdateRate(ctx, roomType, rate); err != nil {
		return decimal.Decimal{}, err
	}
	s.metrics.RateUpdated()
	s.log.Info("room rate updated",
		zap.String("room_type", roomType),
		zap.String("rate", rate.StringFixed(2)),
		zap.String("by", sess.Username))
	return rate, nil
}

// ListMeals returns every meal item.
func (s *CatalogService) ListMeals(ctx context.Context, sess auth.Session) ([]model.MealItem, error) {
	if err := sess.Authorize(auth.OpViewCatalog); err != nil {
		return nil, err
	}
	return s.uow.Stores().Catalog.ListMeals(ctx)
}

// ListMealsForCategory returns the meals included with a category.
func (s *CatalogService) ListMealsForCategory(ctx context.Context, sess auth.Session, categoryID uint64) ([]model.MealItem, error) {
	if err := sess.Authorize(auth.OpViewCatalog); err != nil {
		return nil, err
	}
	return s.uow.Stores().Catalog.ListMealsForCategory(ctx, categoryID)
}
