package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/slotfleet/maintenance-service/internal/domain"
)

// InventoryRepository encapsulates stock persistence.
type InventoryRepository interface {
	Create(ctx context.Context, item *domain.InventoryItem) error
	Update(ctx context.Context, item *domain.InventoryItem) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.InventoryItem, error)
	GetByPartAndLocation(ctx context.Context, partID, locationID int64) (*domain.InventoryItem, error)
	List(ctx context.Context) ([]domain.InventoryItem, error)
}

type inventoryRepository struct {
	pool *pgxpool.Pool
}

// NewInventoryRepository instantiates repository.
func NewInventoryRepository(pool *pgxpool.Pool) InventoryRepository {
	return &inventoryRepository{pool: pool}
}

const inventoryColumns = `id, repuesto_id, ubicacion_id, cantidad, cantidad_minima, created_at, updated_at`

func (r *inventoryRepository) Create(ctx context.Context, item *domain.InventoryItem) error {
	const query = `
        INSERT INTO inventario (repuesto_id, ubicacion_id, cantidad, cantidad_minima)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		item.PartID,
		item.LocationID,
		item.Quantity,
		item.MinQuantity,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
}

func (r *inventoryRepository) Update(ctx context.Context, item *domain.InventoryItem) error {
	const query = `
        UPDATE inventario SET repuesto_id=$1, ubicacion_id=$2, cantidad=$3, cantidad_minima=$4, updated_at=NOW()
        WHERE id=$5`

	cmd, err := r.pool.Exec(ctx, query,
		item.PartID,
		item.LocationID,
		item.Quantity,
		item.MinQuantity,
		item.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *inventoryRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM inventario WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *inventoryRepository) GetByID(ctx context.Context, id int64) (*domain.InventoryItem, error) {
	return r.fetchSingle(ctx, `SELECT `+inventoryColumns+` FROM inventario WHERE id=$1`, id)
}

func (r *inventoryRepository) GetByPartAndLocation(ctx context.Context, partID, locationID int64) (*domain.InventoryItem, error) {
	var item domain.InventoryItem
	if err := r.pool.QueryRow(ctx,
		`SELECT `+inventoryColumns+` FROM inventario WHERE repuesto_id=$1 AND ubicacion_id=$2`,
		partID, locationID,
	).Scan(
		&item.ID,
		&item.PartID,
		&item.LocationID,
		&item.Quantity,
		&item.MinQuantity,
		&item.CreatedAt,
		&item.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *inventoryRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.InventoryItem, error) {
	var item domain.InventoryItem
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&item.ID,
		&item.PartID,
		&item.LocationID,
		&item.Quantity,
		&item.MinQuantity,
		&item.CreatedAt,
		&item.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *inventoryRepository) List(ctx context.Context) ([]domain.InventoryItem, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+inventoryColumns+` FROM inventario ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.InventoryItem
	for rows.Next() {
		var item domain.InventoryItem
		if err := rows.Scan(
			&item.ID,
			&item.PartID,
			&item.LocationID,
			&item.Quantity,
			&item.MinQuantity,
			&item.CreatedAt,
			&item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}
