package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/slotfleet/maintenance-service/internal/domain"
)

// MachineFilter captures machine listing parameters.
type MachineFilter struct {
	OwnerID    *int64
	LocationID *int64
	Status     *domain.MachineStatus
	Type       *domain.MachineType
}

// MachineRepository encapsulates machine persistence.
type MachineRepository interface {
	Create(ctx context.Context, machine *domain.Machine) error
	Update(ctx context.Context, machine *domain.Machine) error
	UpdateStatus(ctx context.Context, id int64, status domain.MachineStatus) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Machine, error)
	List(ctx context.Context, filter MachineFilter) ([]domain.Machine, error)
	CountBySupplier(ctx context.Context, supplierID int64) (int64, error)
}

type machineRepository struct {
	pool *pgxpool.Pool
}

// NewMachineRepository instantiates repository.
func NewMachineRepository(pool *pgxpool.Pool) MachineRepository {
	return &machineRepository{pool: pool}
}

const machineColumns = `id, numero_serie, marca, modelo, tipo, estado, ubicacion_id, proveedor_id, cliente_id, fecha_adquisicion, created_at, updated_at`

func (r *machineRepository) Create(ctx context.Context, machine *domain.Machine) error {
	const query = `
        INSERT INTO maquinas (numero_serie, marca, modelo, tipo, estado, ubicacion_id, proveedor_id, cliente_id, fecha_adquisicion)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		machine.SerialNumber,
		machine.Brand,
		machine.Model,
		machine.Type,
		machine.Status,
		machine.LocationID,
		machine.SupplierID,
		machine.OwnerID,
		machine.AcquiredAt,
	).Scan(&machine.ID, &machine.CreatedAt, &machine.UpdatedAt)
}

func (r *machineRepository) Update(ctx context.Context, machine *domain.Machine) error {
	const query = `
        UPDATE maquinas SET numero_serie=$1, marca=$2, modelo=$3, tipo=$4, estado=$5,
            ubicacion_id=$6, proveedor_id=$7, cliente_id=$8, fecha_adquisicion=$9, updated_at=NOW()
        WHERE id=$10`

	cmd, err := r.pool.Exec(ctx, query,
		machine.SerialNumber,
		machine.Brand,
		machine.Model,
		machine.Type,
		machine.Status,
		machine.LocationID,
		machine.SupplierID,
		machine.OwnerID,
		machine.AcquiredAt,
		machine.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *machineRepository) UpdateStatus(ctx context.Context, id int64, status domain.MachineStatus) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE maquinas SET estado=$1, updated_at=NOW() WHERE id=$2`, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *machineRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM maquinas WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *machineRepository) GetByID(ctx context.Context, id int64) (*domain.Machine, error) {
	var machine domain.Machine
	if err := r.pool.QueryRow(ctx, `SELECT `+machineColumns+` FROM maquinas WHERE id=$1`, id).Scan(
		&machine.ID,
		&machine.SerialNumber,
		&machine.Brand,
		&machine.Model,
		&machine.Type,
		&machine.Status,
		&machine.LocationID,
		&machine.SupplierID,
		&machine.OwnerID,
		&machine.AcquiredAt,
		&machine.CreatedAt,
		&machine.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &machine, nil
}

func (r *machineRepository) List(ctx context.Context, filter MachineFilter) ([]domain.Machine, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.OwnerID != nil {
		args = append(args, *filter.OwnerID)
		clauses = append(clauses, fmt.Sprintf("cliente_id=$%d", len(args)))
	}
	if filter.LocationID != nil {
		args = append(args, *filter.LocationID)
		clauses = append(clauses, fmt.Sprintf("ubicacion_id=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("estado=$%d", len(args)))
	}
	if filter.Type != nil {
		args = append(args, *filter.Type)
		clauses = append(clauses, fmt.Sprintf("tipo=$%d", len(args)))
	}

	query := fmt.Sprintf(`SELECT %s FROM maquinas WHERE %s ORDER BY id`,
		machineColumns, strings.Join(clauses, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Machine
	for rows.Next() {
		var machine domain.Machine
		if err := rows.Scan(
			&machine.ID,
			&machine.SerialNumber,
			&machine.Brand,
			&machine.Model,
			&machine.Type,
			&machine.Status,
			&machine.LocationID,
			&machine.SupplierID,
			&machine.OwnerID,
			&machine.AcquiredAt,
			&machine.CreatedAt,
			&machine.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, machine)
	}
	return result, rows.Err()
}

func (r *machineRepository) CountBySupplier(ctx context.Context, supplierID int64) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM maquinas WHERE proveedor_id=$1`, supplierID).Scan(&count)
	return count, err
}
