package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/slotfleet/maintenance-service/internal/domain"
)

// PartRepository encapsulates spare-part catalog persistence.
type PartRepository interface {
	Create(ctx context.Context, part *domain.Part) error
	Update(ctx context.Context, part *domain.Part) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Part, error)
	GetByCode(ctx context.Context, code string) (*domain.Part, error)
	List(ctx context.Context) ([]domain.Part, error)
}

type partRepository struct {
	pool *pgxpool.Pool
}

// NewPartRepository instantiates repository.
func NewPartRepository(pool *pgxpool.Pool) PartRepository {
	return &partRepository{pool: pool}
}

const partColumns = `id, codigo, nombre, descripcion, precio_unitario, proveedor_id, created_at, updated_at`

func (r *partRepository) Create(ctx context.Context, part *domain.Part) error {
	const query = `
        INSERT INTO repuestos (codigo, nombre, descripcion, precio_unitario, proveedor_id)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		part.Code,
		part.Name,
		part.Description,
		part.UnitPrice,
		part.SupplierID,
	).Scan(&part.ID, &part.CreatedAt, &part.UpdatedAt)
}

func (r *partRepository) Update(ctx context.Context, part *domain.Part) error {
	const query = `
        UPDATE repuestos SET codigo=$1, nombre=$2, descripcion=$3, precio_unitario=$4, proveedor_id=$5, updated_at=NOW()
        WHERE id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		part.Code,
		part.Name,
		part.Description,
		part.UnitPrice,
		part.SupplierID,
		part.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *partRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM repuestos WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *partRepository) GetByID(ctx context.Context, id int64) (*domain.Part, error) {
	return r.fetchSingle(ctx, `SELECT `+partColumns+` FROM repuestos WHERE id=$1`, id)
}

func (r *partRepository) GetByCode(ctx context.Context, code string) (*domain.Part, error) {
	return r.fetchSingle(ctx, `SELECT `+partColumns+` FROM repuestos WHERE codigo=$1`, code)
}

func (r *partRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Part, error) {
	var part domain.Part
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&part.ID,
		&part.Code,
		&part.Name,
		&part.Description,
		&part.UnitPrice,
		&part.SupplierID,
		&part.CreatedAt,
		&part.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &part, nil
}

func (r *partRepository) List(ctx context.Context) ([]domain.Part, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+partColumns+` FROM repuestos ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Part
	for rows.Next() {
		var part domain.Part
		if err := rows.Scan(
			&part.ID,
			&part.Code,
			&part.Name,
			&part.Description,
			&part.UnitPrice,
			&part.SupplierID,
			&part.CreatedAt,
			&part.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, part)
	}
	return result, rows.Err()
}
