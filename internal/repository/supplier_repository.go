package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/slotfleet/maintenance-service/internal/domain"
)

// SupplierRepository encapsulates supplier persistence.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *domain.Supplier) error
	Update(ctx context.Context, supplier *domain.Supplier) error
	// DeleteWithReferences nulls out supplier references on machines and parts
	// before removing the supplier row, all inside one transaction. The schema
	// carries no cascade rule for this on purpose.
	DeleteWithReferences(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Supplier, error)
	List(ctx context.Context) ([]domain.Supplier, error)
}

type supplierRepository struct {
	pool *pgxpool.Pool
}

// NewSupplierRepository instantiates repository.
func NewSupplierRepository(pool *pgxpool.Pool) SupplierRepository {
	return &supplierRepository{pool: pool}
}

func (r *supplierRepository) Create(ctx context.Context, supplier *domain.Supplier) error {
	const query = `
        INSERT INTO proveedores (nombre, ruc, telefono, email, direccion)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		supplier.Name,
		supplier.TaxID,
		supplier.Phone,
		supplier.Email,
		supplier.Address,
	).Scan(&supplier.ID, &supplier.CreatedAt, &supplier.UpdatedAt)
}

func (r *supplierRepository) Update(ctx context.Context, supplier *domain.Supplier) error {
	const query = `
        UPDATE proveedores SET nombre=$1, ruc=$2, telefono=$3, email=$4, direccion=$5, updated_at=NOW()
        WHERE id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		supplier.Name,
		supplier.TaxID,
		supplier.Phone,
		supplier.Email,
		supplier.Address,
		supplier.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *supplierRepository) DeleteWithReferences(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `UPDATE maquinas SET proveedor_id=NULL, updated_at=NOW() WHERE proveedor_id=$1`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `UPDATE repuestos SET proveedor_id=NULL, updated_at=NOW() WHERE proveedor_id=$1`, id); err != nil {
		return err
	}

	cmd, err := tx.Exec(ctx, `DELETE FROM proveedores WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return tx.Commit(ctx)
}

func (r *supplierRepository) GetByID(ctx context.Context, id int64) (*domain.Supplier, error) {
	var supplier domain.Supplier
	if err := r.pool.QueryRow(ctx,
		`SELECT id, nombre, ruc, telefono, email, direccion, created_at, updated_at FROM proveedores WHERE id=$1`, id,
	).Scan(
		&supplier.ID,
		&supplier.Name,
		&supplier.TaxID,
		&supplier.Phone,
		&supplier.Email,
		&supplier.Address,
		&supplier.CreatedAt,
		&supplier.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (r *supplierRepository) List(ctx context.Context) ([]domain.Supplier, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, nombre, ruc, telefono, email, direccion, created_at, updated_at FROM proveedores ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Supplier
	for rows.Next() {
		var supplier domain.Supplier
		if err := rows.Scan(
			&supplier.ID,
			&supplier.Name,
			&supplier.TaxID,
			&supplier.Phone,
			&supplier.Email,
			&supplier.Address,
			&supplier.CreatedAt,
			&supplier.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, supplier)
	}
	return result, rows.Err()
}
