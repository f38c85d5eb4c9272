package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/oakpos/cashdesk/internal/core/domain"
	portsrepo "github.com/oakpos/cashdesk/internal/core/ports/repositories"
	portssvc "github.com/oakpos/cashdesk/internal/core/ports/services"
	"github.com/oakpos/cashdesk/internal/dto"
	"github.com/oakpos/cashdesk/internal/middleware"
)

type drawerService struct {
	drawerRepo portsrepo.DrawerRepositoryFacade
}

// NewDrawerService creates a new DrawerService.
func NewDrawerService(drawerRepo portsrepo.DrawerRepositoryFacade) portssvc.DrawerSvcFacade {
	return &drawerService{drawerRepo: drawerRepo}
}

var _ portssvc.DrawerSvcFacade = (*drawerService)(nil)

// CreateDrawer registers a new drawer.
func (s *drawerService) CreateDrawer(ctx context.Context, req dto.CreateDrawerRequest, creatorEmployeeID string) (*domain.Drawer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	drawer := domain.Drawer{
		DrawerID:                uuid.NewString(),
		StoreID:                 req.StoreID,
		Name:                    req.Name,
		Type:                    domain.DrawerType(req.Type),
		IsActive:                true,
		IsShared:                req.IsShared,
		MinClose:                req.MinClose,
		MaxClose:                req.MaxClose,
		BlindCount:              req.BlindCount,
		IndividualDenominations: req.IndividualDenominations,
		ElectronicBlindCount:    req.ElectronicBlindCount,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorEmployeeID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorEmployeeID,
		},
	}

	if err := s.drawerRepo.SaveDrawer(ctx, drawer); err != nil {
		return nil, fmt.Errorf("failed to save drawer: %w", err)
	}

	logger.Info("Drawer created",
		slog.String("drawer_id", drawer.DrawerID),
		slog.String("type", string(drawer.Type)))
	return &drawer, nil
}

// GetDrawer retrieves a drawer by ID.
func (s *drawerService) GetDrawer(ctx context.Context, drawerID string) (*domain.Drawer, error) {
	drawer, err := s.drawerRepo.FindDrawerByID(ctx, drawerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find drawer %s: %w", drawerID, err)
	}
	return drawer, nil
}

// ListDrawers retrieves the drawers configured for a store.
func (s *drawerService) ListDrawers(ctx context.Context, storeID string) ([]domain.Drawer, error) {
	drawers, err := s.drawerRepo.ListDrawersByStore(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list drawers for store %s: %w", storeID, err)
	}
	return drawers, nil
}

// UpdateDrawer applies a partial configuration update.
func (s *drawerService) UpdateDrawer(ctx context.Context, drawerID string, req dto.UpdateDrawerRequest, updaterEmployeeID string) (*domain.Drawer, error) {
	drawer, err := s.drawerRepo.FindDrawerByID(ctx, drawerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find drawer %s: %w", drawerID, err)
	}

	if req.Name != nil {
		drawer.Name = *req.Name
	}
	if req.IsActive != nil {
		drawer.IsActive = *req.IsActive
	}
	if req.IsShared != nil {
		drawer.IsShared = req.IsShared
	}
	if req.MinClose != nil {
		drawer.MinClose = *req.MinClose
	}
	if req.MaxClose != nil {
		drawer.MaxClose = *req.MaxClose
	}
	if req.BlindCount != nil {
		drawer.BlindCount = *req.BlindCount
	}
	if req.IndividualDenominations != nil {
		drawer.IndividualDenominations = *req.IndividualDenominations
	}
	if req.ElectronicBlindCount != nil {
		drawer.ElectronicBlindCount = *req.ElectronicBlindCount
	}
	drawer.LastUpdatedAt = time.Now().UTC()
	drawer.LastUpdatedBy = updaterEmployeeID

	if err := s.drawerRepo.UpdateDrawer(ctx, *drawer); err != nil {
		return nil, fmt.Errorf("failed to update drawer %s: %w", drawerID, err)
	}
	return drawer, nil
}
