package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/slotfleet/maintenance-service/internal/domain"
)

// ReportFilter captures listing parameters for client reports.
type ReportFilter struct {
	ClientID  *int64
	MachineID *int64
	Status    *domain.ReportStatus
}

// ClientReportRepository encapsulates fault-report persistence.
type ClientReportRepository interface {
	Create(ctx context.Context, report *domain.ClientReport) error
	Update(ctx context.Context, report *domain.ClientReport) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.ClientReport, error)
	List(ctx context.Context, filter ReportFilter) ([]domain.ClientReport, error)
	// Resolve marks the report resuelto and flips the linked machine back to
	// Operativo inside a single transaction; either both writes land or neither.
	Resolve(ctx context.Context, reportID int64, note string) error
}

type clientReportRepository struct {
	pool *pgxpool.Pool
}

// NewClientReportRepository instantiates repository.
func NewClientReportRepository(pool *pgxpool.Pool) ClientReportRepository {
	return &clientReportRepository{pool: pool}
}

const reportColumns = `id, maquina_id, cliente_id, titulo, descripcion, severidad, estado, nota_resolucion, created_at, updated_at`

func (r *clientReportRepository) Create(ctx context.Context, report *domain.ClientReport) error {
	const query = `
        INSERT INTO reportes_cliente (maquina_id, cliente_id, titulo, descripcion, severidad, estado)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		report.MachineID,
		report.ClientID,
		report.Title,
		report.Description,
		report.Severity,
		report.Status,
	).Scan(&report.ID, &report.CreatedAt, &report.UpdatedAt)
}

func (r *clientReportRepository) Update(ctx context.Context, report *domain.ClientReport) error {
	const query = `
        UPDATE reportes_cliente SET titulo=$1, descripcion=$2, severidad=$3, estado=$4, nota_resolucion=$5, updated_at=NOW()
        WHERE id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		report.Title,
		report.Description,
		report.Severity,
		report.Status,
		report.ResolutionNote,
		report.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *clientReportRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM reportes_cliente WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *clientReportRepository) GetByID(ctx context.Context, id int64) (*domain.ClientReport, error) {
	var report domain.ClientReport
	if err := r.pool.QueryRow(ctx, `SELECT `+reportColumns+` FROM reportes_cliente WHERE id=$1`, id).Scan(
		&report.ID,
		&report.MachineID,
		&report.ClientID,
		&report.Title,
		&report.Description,
		&report.Severity,
		&report.Status,
		&report.ResolutionNote,
		&report.CreatedAt,
		&report.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *clientReportRepository) List(ctx context.Context, filter ReportFilter) ([]domain.ClientReport, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.ClientID != nil {
		args = append(args, *filter.ClientID)
		clauses = append(clauses, fmt.Sprintf("cliente_id=$%d", len(args)))
	}
	if filter.MachineID != nil {
		args = append(args, *filter.MachineID)
		clauses = append(clauses, fmt.Sprintf("maquina_id=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("estado=$%d", len(args)))
	}

	query := fmt.Sprintf(`SELECT %s FROM reportes_cliente WHERE %s ORDER BY created_at DESC`,
		reportColumns, strings.Join(clauses, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ClientReport
	for rows.Next() {
		var report domain.ClientReport
		if err := rows.Scan(
			&report.ID,
			&report.MachineID,
			&report.ClientID,
			&report.Title,
			&report.Description,
			&report.Severity,
			&report.Status,
			&report.ResolutionNote,
			&report.CreatedAt,
			&report.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, report)
	}
	return result, rows.Err()
}

func (r *clientReportRepository) Resolve(ctx context.Context, reportID int64, note string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var machineID int64
	if err := tx.QueryRow(ctx, `
        UPDATE reportes_cliente SET estado=$1, nota_resolucion=$2, updated_at=NOW()
        WHERE id=$3
        RETURNING maquina_id`,
		domain.ReportStatusResolved, note, reportID,
	).Scan(&machineID); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE maquinas SET estado=$1, updated_at=NOW() WHERE id=$2`,
		domain.MachineStatusOperational, machineID,
	); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
