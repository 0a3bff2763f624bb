package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"grillhouse/internal/domain"
	"grillhouse/internal/dto"
	apperrors "grillhouse/internal/errors"
)

type MenuRepository interface {
	List(ctx context.Context, filter domain.MenuFilter) ([]domain.MenuItem, error)
	FindByID(ctx context.Context, id uint) (*domain.MenuItem, error)
	Create(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error)
	Update(ctx context.Context, id uint, patch domain.MenuPatch) (*domain.MenuItem, error)
	Delete(ctx context.Context, id uint) error
}

type Broadcaster interface {
	Broadcast(event any)
}

// MenuService manages the catalog and mirrors every mutation to live
// clients as a menu_updated event. Menu edits never touch existing orders:
// line items carry their own name/price snapshot.
type MenuService struct {
	items       MenuRepository
	broadcaster Broadcaster
	logger      *zap.Logger
}

func NewMenuService(items MenuRepository, broadcaster Broadcaster, logger *zap.Logger) *MenuService {
	return &MenuService{
		items:       items,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

func (s *MenuService) List(ctx context.Context, filter domain.MenuFilter) ([]domain.MenuItem, error) {
	return s.items.List(ctx, filter)
}

func (s *MenuService) Get(ctx context.Context, id uint) (*domain.MenuItem, error) {
	return s.items.FindByID(ctx, id)
}

func (s *MenuService) Create(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error) {
	if err := validateMenuItem(item); err != nil {
		return nil, err
	}

	created, err := s.items.Create(ctx, item)
	if err != nil {
		return nil, err
	}

	s.logger.Info("menu item created", zap.Uint("itemId", created.ID), zap.String("name", created.Name))
	s.broadcaster.Broadcast(dto.MenuItemCreatedEvent(created))
	return created, nil
}

func (s *MenuService) Update(ctx context.Context, id uint, patch domain.MenuPatch) (*domain.MenuItem, error) {
	updated, err := s.items.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.logger.Info("menu item updated", zap.Uint("itemId", id))
	s.broadcaster.Broadcast(dto.MenuItemUpdatedEvent(updated))
	return updated, nil
}

func (s *MenuService) Delete(ctx context.Context, id uint) error {
	if err := s.items.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("menu item deleted", zap.Uint("itemId", id))
	s.broadcaster.Broadcast(dto.MenuItemDeletedEvent(id))
	return nil
}

func validateMenuItem(item domain.MenuItem) error {
	var details []apperrors.ValidationDetail

	if strings.TrimSpace(item.Name) == "" {
		details = append(details, apperrors.ValidationDetail{Field: "name", Message: "name is required"})
	}
	if item.Price <= 0 {
		details = append(details, apperrors.ValidationDetail{Field: "price", Message: "price must be positive"})
	}
	if strings.TrimSpace(item.Category) == "" {
		details = append(details, apperrors.ValidationDetail{Field: "category", Message: "category is required"})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}

	return nil
}
