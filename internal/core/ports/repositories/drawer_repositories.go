package repositories

import (
	"context"

	"github.com/oakpos/cashdesk/internal/core/domain"
)

// DrawerReader defines read operations for drawer configuration.
type DrawerReader interface {
	// FindDrawerByID retrieves a drawer by its unique identifier.
	FindDrawerByID(ctx context.Context, drawerID string) (*domain.Drawer, error)

	// ListDrawersByStore retrieves all drawers configured for a store.
	ListDrawersByStore(ctx context.Context, storeID string) ([]domain.Drawer, error)
}

// DrawerWriter defines write operations for drawer configuration.
type DrawerWriter interface {
	// SaveDrawer persists a new drawer.
	SaveDrawer(ctx context.Context, drawer domain.Drawer) error

	// UpdateDrawer updates an existing drawer's configuration.
	UpdateDrawer(ctx context.Context, drawer domain.Drawer) error
}

// DrawerRepositoryFacade combines all drawer repository interfaces.
type DrawerRepositoryFacade interface {
	DrawerReader
	DrawerWriter
}
