package services

import (
	"context"

	"github.com/oakpos/cashdesk/internal/core/domain"
	"github.com/oakpos/cashdesk/internal/dto"
)

// DrawerSvcFacade manages drawer registry configuration.
type DrawerSvcFacade interface {
	CreateDrawer(ctx context.Context, req dto.CreateDrawerRequest, creatorEmployeeID string) (*domain.Drawer, error)
	GetDrawer(ctx context.Context, drawerID string) (*domain.Drawer, error)
	ListDrawers(ctx context.Context, storeID string) ([]domain.Drawer, error)
	UpdateDrawer(ctx context.Context, drawerID string, req dto.UpdateDrawerRequest, updaterEmployeeID string) (*domain.Drawer, error)
}
