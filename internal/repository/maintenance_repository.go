package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/slotfleet/maintenance-service/internal/domain"
)

// MaintenanceFilter captures listing parameters for maintenance records.
type MaintenanceFilter struct {
	WorkOrderID  *int64
	TechnicianID *int64
	Type         *domain.MaintenanceType
}

// MaintenanceRepository encapsulates maintenance-record persistence.
type MaintenanceRepository interface {
	Create(ctx context.Context, record *domain.Maintenance) error
	Update(ctx context.Context, record *domain.Maintenance) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Maintenance, error)
	List(ctx context.Context, filter MaintenanceFilter) ([]domain.Maintenance, error)
}

type maintenanceRepository struct {
	pool *pgxpool.Pool
}

// NewMaintenanceRepository instantiates repository.
func NewMaintenanceRepository(pool *pgxpool.Pool) MaintenanceRepository {
	return &maintenanceRepository{pool: pool}
}

const maintenanceColumns = `id, orden_id, tecnico_id, tipo, descripcion, fecha_programada, fecha_realizacion, costo_estimado, costo_real, notas, created_at, updated_at`

func (r *maintenanceRepository) Create(ctx context.Context, record *domain.Maintenance) error {
	const query = `
        INSERT INTO mantenimientos (orden_id, tecnico_id, tipo, descripcion, fecha_programada, fecha_realizacion, costo_estimado, costo_real, notas)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		record.WorkOrderID,
		record.TechnicianID,
		record.Type,
		record.Description,
		record.ScheduledDate,
		record.PerformedDate,
		record.EstimatedCost,
		record.ActualCost,
		record.Notes,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)
}

func (r *maintenanceRepository) Update(ctx context.Context, record *domain.Maintenance) error {
	const query = `
        UPDATE mantenimientos SET tipo=$1, descripcion=$2, fecha_programada=$3, fecha_realizacion=$4,
            costo_estimado=$5, costo_real=$6, notas=$7, updated_at=NOW()
        WHERE id=$8`

	cmd, err := r.pool.Exec(ctx, query,
		record.Type,
		record.Description,
		record.ScheduledDate,
		record.PerformedDate,
		record.EstimatedCost,
		record.ActualCost,
		record.Notes,
		record.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *maintenanceRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM mantenimientos WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *maintenanceRepository) GetByID(ctx context.Context, id int64) (*domain.Maintenance, error) {
	var record domain.Maintenance
	if err := r.pool.QueryRow(ctx, `SELECT `+maintenanceColumns+` FROM mantenimientos WHERE id=$1`, id).Scan(
		&record.ID,
		&record.WorkOrderID,
		&record.TechnicianID,
		&record.Type,
		&record.Description,
		&record.ScheduledDate,
		&record.PerformedDate,
		&record.EstimatedCost,
		&record.ActualCost,
		&record.Notes,
		&record.CreatedAt,
		&record.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *maintenanceRepository) List(ctx context.Context, filter MaintenanceFilter) ([]domain.Maintenance, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.WorkOrderID != nil {
		args = append(args, *filter.WorkOrderID)
		clauses = append(clauses, fmt.Sprintf("orden_id=$%d", len(args)))
	}
	if filter.TechnicianID != nil {
		args = append(args, *filter.TechnicianID)
		clauses = append(clauses, fmt.Sprintf("tecnico_id=$%d", len(args)))
	}
	if filter.Type != nil {
		args = append(args, *filter.Type)
		clauses = append(clauses, fmt.Sprintf("tipo=$%d", len(args)))
	}

	query := fmt.Sprintf(`SELECT %s FROM mantenimientos WHERE %s ORDER BY fecha_programada DESC`,
		maintenanceColumns, strings.Join(clauses, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Maintenance
	for rows.Next() {
		var record domain.Maintenance
		if err := rows.Scan(
			&record.ID,
			&record.WorkOrderID,
			&record.TechnicianID,
			&record.Type,
			&record.Description,
			&record.ScheduledDate,
			&record.PerformedDate,
			&record.EstimatedCost,
			&record.ActualCost,
			&record.Notes,
			&record.CreatedAt,
			&record.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, record)
	}
	return result, rows.Err()
}
