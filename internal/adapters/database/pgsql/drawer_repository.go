package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oakpos/cashdesk/internal/apperrors"
	"github.com/oakpos/cashdesk/internal/core/domain"
	portsrepo "github.com/oakpos/cashdesk/internal/core/ports/repositories"
)

type PgxDrawerRepository struct {
	pool *pgxpool.Pool
}

// NewPgxDrawerRepository creates a new repository for drawer configuration.
func NewPgxDrawerRepository(pool *pgxpool.Pool) portsrepo.DrawerRepositoryFacade {
	return &PgxDrawerRepository{pool: pool}
}

const drawerColumns = `drawer_id, store_id, name, type, is_active, is_shared, min_close, max_close, blind_count, individual_denominations, electronic_blind_count, created_at, created_by, last_updated_at, last_updated_by`

func scanDrawer(row pgx.Row) (*domain.Drawer, error) {
	var drawer domain.Drawer
	err := row.Scan(
		&drawer.DrawerID,
		&drawer.StoreID,
		&drawer.Name,
		&drawer.Type,
		&drawer.IsActive,
		&drawer.IsShared,
		&drawer.MinClose,
		&drawer.MaxClose,
		&drawer.BlindCount,
		&drawer.IndividualDenominations,
		&drawer.ElectronicBlindCount,
		&drawer.CreatedAt,
		&drawer.CreatedBy,
		&drawer.LastUpdatedAt,
		&drawer.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan drawer row: %w", err)
	}
	return &drawer, nil
}

// FindDrawerByID retrieves a drawer by its ID.
func (r *PgxDrawerRepository) FindDrawerByID(ctx context.Context, drawerID string) (*domain.Drawer, error) {
	query := `SELECT ` + drawerColumns + ` FROM drawers WHERE drawer_id = $1;`
	return scanDrawer(r.pool.QueryRow(ctx, query, drawerID))
}

// ListDrawersByStore retrieves all drawers configured for a store.
func (r *PgxDrawerRepository) ListDrawersByStore(ctx context.Context, storeID string) ([]domain.Drawer, error) {
	query := `SELECT ` + drawerColumns + ` FROM drawers WHERE store_id = $1 ORDER BY name;`
	rows, err := r.pool.Query(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query drawers for store %s: %w", storeID, err)
	}
	defer rows.Close()

	drawers := []domain.Drawer{}
	for rows.Next() {
		drawer, err := scanDrawer(rows)
		if err != nil {
			return nil, err
		}
		drawers = append(drawers, *drawer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating drawer rows for store %s: %w", storeID, err)
	}

	return drawers, nil
}

// SaveDrawer persists a new drawer.
func (r *PgxDrawerRepository) SaveDrawer(ctx context.Context, drawer domain.Drawer) error {
	query := `
		INSERT INTO drawers (` + drawerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.pool.Exec(ctx, query,
		drawer.DrawerID,
		drawer.StoreID,
		drawer.Name,
		drawer.Type,
		drawer.IsActive,
		drawer.IsShared,
		drawer.MinClose,
		drawer.MaxClose,
		drawer.BlindCount,
		drawer.IndividualDenominations,
		drawer.ElectronicBlindCount,
		drawer.CreatedAt,
		drawer.CreatedBy,
		drawer.LastUpdatedAt,
		drawer.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert drawer %s: %w", drawer.DrawerID, err)
	}
	return nil
}

// UpdateDrawer updates an existing drawer's configuration.
func (r *PgxDrawerRepository) UpdateDrawer(ctx context.Context, drawer domain.Drawer) error {
	query := `
		UPDATE drawers
		SET name = $2, is_active = $3, is_shared = $4, min_close = $5, max_close = $6, blind_count = $7, individual_denominations = $8, electronic_blind_count = $9, last_updated_at = $10, last_updated_by = $11
		WHERE drawer_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		drawer.DrawerID,
		drawer.Name,
		drawer.IsActive,
		drawer.IsShared,
		drawer.MinClose,
		drawer.MaxClose,
		drawer.BlindCount,
		drawer.IndividualDenominations,
		drawer.ElectronicBlindCount,
		drawer.LastUpdatedAt,
		drawer.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update drawer %s: %w", drawer.DrawerID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
