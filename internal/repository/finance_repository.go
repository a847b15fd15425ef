package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/slotfleet/maintenance-service/internal/domain"
)

// FinanceFilter captures listing parameters for ledger entries.
type FinanceFilter struct {
	ClientID *int64
	Type     *domain.FinanceEntryType
}

// FinanceRepository encapsulates ledger persistence.
type FinanceRepository interface {
	Create(ctx context.Context, entry *domain.FinanceEntry) error
	Update(ctx context.Context, entry *domain.FinanceEntry) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.FinanceEntry, error)
	List(ctx context.Context, filter FinanceFilter) ([]domain.FinanceEntry, error)
}

type financeRepository struct {
	pool *pgxpool.Pool
}

// NewFinanceRepository instantiates repository.
func NewFinanceRepository(pool *pgxpool.Pool) FinanceRepository {
	return &financeRepository{pool: pool}
}

const financeColumns = `id, tipo, concepto, monto, cliente_id, maquina_id, fecha, created_at, updated_at`

func (r *financeRepository) Create(ctx context.Context, entry *domain.FinanceEntry) error {
	const query = `
        INSERT INTO finanzas (tipo, concepto, monto, cliente_id, maquina_id, fecha)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		entry.Type,
		entry.Concept,
		entry.Amount,
		entry.ClientID,
		entry.MachineID,
		entry.EntryDate,
	).Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)
}

func (r *financeRepository) Update(ctx context.Context, entry *domain.FinanceEntry) error {
	const query = `
        UPDATE finanzas SET tipo=$1, concepto=$2, monto=$3, cliente_id=$4, maquina_id=$5, fecha=$6, updated_at=NOW()
        WHERE id=$7`

	cmd, err := r.pool.Exec(ctx, query,
		entry.Type,
		entry.Concept,
		entry.Amount,
		entry.ClientID,
		entry.MachineID,
		entry.EntryDate,
		entry.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *financeRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM finanzas WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *financeRepository) GetByID(ctx context.Context, id int64) (*domain.FinanceEntry, error) {
	var entry domain.FinanceEntry
	if err := r.pool.QueryRow(ctx, `SELECT `+financeColumns+` FROM finanzas WHERE id=$1`, id).Scan(
		&entry.ID,
		&entry.Type,
		&entry.Concept,
		&entry.Amount,
		&entry.ClientID,
		&entry.MachineID,
		&entry.EntryDate,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *financeRepository) List(ctx context.Context, filter FinanceFilter) ([]domain.FinanceEntry, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.ClientID != nil {
		args = append(args, *filter.ClientID)
		clauses = append(clauses, fmt.Sprintf("cliente_id=$%d", len(args)))
	}
	if filter.Type != nil {
		args = append(args, *filter.Type)
		clauses = append(clauses, fmt.Sprintf("tipo=$%d", len(args)))
	}

	query := fmt.Sprintf(`SELECT %s FROM finanzas WHERE %s ORDER BY fecha DESC, id DESC`,
		financeColumns, strings.Join(clauses, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.FinanceEntry
	for rows.Next() {
		var entry domain.FinanceEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.Type,
			&entry.Concept,
			&entry.Amount,
			&entry.ClientID,
			&entry.MachineID,
			&entry.EntryDate,
			&entry.CreatedAt,
			&entry.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
