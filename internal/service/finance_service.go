package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"

	"github.com/slotfleet/maintenance-service/internal/domain"
	"github.com/slotfleet/maintenance-service/internal/invoice"
	"github.com/slotfleet/maintenance-service/internal/repository"
	apperrors "github.com/slotfleet/maintenance-service/pkg/util"
)

const invoiceCacheTTL = 15 * time.Minute

// FinanceService coordinates the ledger and invoice rendering.
type FinanceService struct {
	entries  repository.FinanceRepository
	users    repository.UserRepository
	machines repository.MachineRepository
	cache    *redis.Client
	issuer   string
}

// NewFinanceService constructs the service. The cache client may be nil.
func NewFinanceService(
	entries repository.FinanceRepository,
	users repository.UserRepository,
	machines repository.MachineRepository,
	cache *redis.Client,
	issuer string,
) *FinanceService {
	return &FinanceService{entries: entries, users: users, machines: machines, cache: cache, issuer: issuer}
}

// FinanceCreateInput describes a ledger entry payload.
type FinanceCreateInput struct {
	Type      domain.FinanceEntryType
	Concept   string
	Amount    float64
	ClientID  *int64
	MachineID *int64
	EntryDate time.Time
}

// FinanceUpdateInput is a merge-patch; nil fields are left untouched.
type FinanceUpdateInput struct {
	Type      *domain.FinanceEntryType
	Concept   *string
	Amount    *float64
	ClientID  *int64
	MachineID *int64
	EntryDate *time.Time
}

// List returns ledger entries matching the filter.
func (s *FinanceService) List(ctx context.Context, filter repository.FinanceFilter) ([]domain.FinanceEntry, error) {
	entries, err := s.entries.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []domain.FinanceEntry{}
	}
	return entries, nil
}

// Get loads one ledger entry.
func (s *FinanceService) Get(ctx context.Context, id int64) (*domain.FinanceEntry, error) {
	entry, err := s.entries.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Registro financiero no encontrado")
		}
		return nil, err
	}
	return entry, nil
}

// Create validates the entry and its references before insert.
func (s *FinanceService) Create(ctx context.Context, input FinanceCreateInput) (*domain.FinanceEntry, error) {
	if strings.TrimSpace(input.Concept) == "" {
		return nil, apperrors.NewValidationError("Faltan campos obligatorios: concepto")
	}
	if input.Type != domain.FinanceEntryIncome && input.Type != domain.FinanceEntryExpense {
		return nil, apperrors.NewValidationError("Tipo inválido: debe ser ingreso o egreso")
	}
	if input.Amount < 0 {
		return nil, apperrors.NewValidationError("El monto no puede ser negativo")
	}
	if input.ClientID != nil {
		if _, err := s.users.GetByID(ctx, *input.ClientID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewValidationError("Cliente no encontrado")
			}
			return nil, err
		}
	}
	if input.MachineID != nil {
		if _, err := s.machines.GetByID(ctx, *input.MachineID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewValidationError("Máquina no encontrada")
			}
			return nil, err
		}
	}

	entryDate := input.EntryDate
	if entryDate.IsZero() {
		entryDate = time.Now()
	}

	entry := &domain.FinanceEntry{
		Type:      input.Type,
		Concept:   strings.TrimSpace(input.Concept),
		Amount:    input.Amount,
		ClientID:  input.ClientID,
		MachineID: input.MachineID,
		EntryDate: entryDate,
	}
	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Update applies the provided fields and invalidates the cached invoice.
func (s *FinanceService) Update(ctx context.Context, id int64, input FinanceUpdateInput) (*domain.FinanceEntry, error) {
	entry, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Type != nil {
		if *input.Type != domain.FinanceEntryIncome && *input.Type != domain.FinanceEntryExpense {
			return nil, apperrors.NewValidationError("Tipo inválido: debe ser ingreso o egreso")
		}
		entry.Type = *input.Type
	}
	if input.Concept != nil {
		entry.Concept = *input.Concept
	}
	if input.Amount != nil {
		if *input.Amount < 0 {
			return nil, apperrors.NewValidationError("El monto no puede ser negativo")
		}
		entry.Amount = *input.Amount
	}
	if input.ClientID != nil {
		entry.ClientID = input.ClientID
	}
	if input.MachineID != nil {
		entry.MachineID = input.MachineID
	}
	if input.EntryDate != nil {
		entry.EntryDate = *input.EntryDate
	}

	if err := s.entries.Update(ctx, entry); err != nil {
		return nil, err
	}
	s.invalidateInvoice(ctx, entry.ID)
	return entry, nil
}

// Delete removes a ledger entry, returning the removed row.
func (s *FinanceService) Delete(ctx context.Context, id int64) (*domain.FinanceEntry, error) {
	entry, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.entries.Delete(ctx, id); err != nil {
		return nil, err
	}
	s.invalidateInvoice(ctx, id)
	return entry, nil
}

// Invoice renders the PDF for a ledger entry, serving from cache when fresh.
// A cliente caller only reaches entries linked to their own account; the
// handler passes clientID for that scoping, nil for back-office roles.
func (s *FinanceService) Invoice(ctx context.Context, id int64, clientID *int64) ([]byte, error) {
	entry, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if clientID != nil && (entry.ClientID == nil || *entry.ClientID != *clientID) {
		return nil, apperrors.NewForbidden("No tiene permisos para acceder a este recurso")
	}

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, invoiceCacheKey(id)).Bytes(); err == nil {
			return cached, nil
		}
	}

	data := invoice.Data{Entry: entry, Issuer: s.issuer}
	if entry.ClientID != nil {
		if client, err := s.users.GetByID(ctx, *entry.ClientID); err == nil {
			data.Client = client
		}
	}
	if entry.MachineID != nil {
		if machine, err := s.machines.GetByID(ctx, *entry.MachineID); err == nil {
			data.Machine = machine
		}
	}

	pdf, err := invoice.Render(data)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, invoiceCacheKey(id), pdf, invoiceCacheTTL).Err()
	}
	return pdf, nil
}

func (s *FinanceService) invalidateInvoice(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Del(ctx, invoiceCacheKey(id)).Err()
}

func invoiceCacheKey(id int64) string {
	return fmt.Sprintf("factura:%d", id)
}
