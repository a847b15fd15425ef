package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/slotfleet/maintenance-service/internal/domain"
)

// WorkOrderFilter captures listing parameters for work orders.
type WorkOrderFilter struct {
	MachineID *int64
	Status    *domain.WorkOrderStatus
	Severity  *domain.Severity
}

// WorkOrderRepository encapsulates work-order persistence.
type WorkOrderRepository interface {
	Create(ctx context.Context, order *domain.WorkOrder) error
	Update(ctx context.Context, order *domain.WorkOrder) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.WorkOrder, error)
	List(ctx context.Context, filter WorkOrderFilter) ([]domain.WorkOrder, error)
	// CountCreatedOn returns how many orders were opened on the given day,
	// feeding the per-day sequence in the order code.
	CountCreatedOn(ctx context.Context, day time.Time) (int64, error)
}

type workOrderRepository struct {
	pool *pgxpool.Pool
}

// NewWorkOrderRepository instantiates repository.
func NewWorkOrderRepository(pool *pgxpool.Pool) WorkOrderRepository {
	return &workOrderRepository{pool: pool}
}

const workOrderColumns = `id, codigo, maquina_id, reporte_id, descripcion, severidad, estado, horas_estimadas, creado_por, created_at, updated_at`

func (r *workOrderRepository) Create(ctx context.Context, order *domain.WorkOrder) error {
	const query = `
        INSERT INTO ordenes_trabajo (codigo, maquina_id, reporte_id, descripcion, severidad, estado, horas_estimadas, creado_por)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		order.Code,
		order.MachineID,
		order.ReportID,
		order.Description,
		order.Severity,
		order.Status,
		order.EstimatedHours,
		order.CreatedBy,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
}

func (r *workOrderRepository) Update(ctx context.Context, order *domain.WorkOrder) error {
	const query = `
        UPDATE ordenes_trabajo SET descripcion=$1, severidad=$2, estado=$3, horas_estimadas=$4, updated_at=NOW()
        WHERE id=$5`

	cmd, err := r.pool.Exec(ctx, query,
		order.Description,
		order.Severity,
		order.Status,
		order.EstimatedHours,
		order.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *workOrderRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM ordenes_trabajo WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *workOrderRepository) GetByID(ctx context.Context, id int64) (*domain.WorkOrder, error) {
	var order domain.WorkOrder
	if err := r.pool.QueryRow(ctx, `SELECT `+workOrderColumns+` FROM ordenes_trabajo WHERE id=$1`, id).Scan(
		&order.ID,
		&order.Code,
		&order.MachineID,
		&order.ReportID,
		&order.Description,
		&order.Severity,
		&order.Status,
		&order.EstimatedHours,
		&order.CreatedBy,
		&order.CreatedAt,
		&order.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *workOrderRepository) List(ctx context.Context, filter WorkOrderFilter) ([]domain.WorkOrder, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.MachineID != nil {
		args = append(args, *filter.MachineID)
		clauses = append(clauses, fmt.Sprintf("maquina_id=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("estado=$%d", len(args)))
	}
	if filter.Severity != nil {
		args = append(args, *filter.Severity)
		clauses = append(clauses, fmt.Sprintf("severidad=$%d", len(args)))
	}

	query := fmt.Sprintf(`SELECT %s FROM ordenes_trabajo WHERE %s ORDER BY created_at DESC`,
		workOrderColumns, strings.Join(clauses, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.WorkOrder
	for rows.Next() {
		var order domain.WorkOrder
		if err := rows.Scan(
			&order.ID,
			&order.Code,
			&order.MachineID,
			&order.ReportID,
			&order.Description,
			&order.Severity,
			&order.Status,
			&order.EstimatedHours,
			&order.CreatedBy,
			&order.CreatedAt,
			&order.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, order)
	}
	return result, rows.Err()
}

func (r *workOrderRepository) CountCreatedOn(ctx context.Context, day time.Time) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM ordenes_trabajo WHERE created_at::date = $1::date`, day,
	).Scan(&count)
	return count, err
}
