package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/slotfleet/maintenance-service/internal/domain"
	"github.com/slotfleet/maintenance-service/internal/events"
	"github.com/slotfleet/maintenance-service/internal/repository"
	apperrors "github.com/slotfleet/maintenance-service/pkg/util"
)

// WorkOrderService coordinates repair task tracking.
type WorkOrderService struct {
	orders     repository.WorkOrderRepository
	machines   repository.MachineRepository
	reports    repository.ClientReportRepository
	dispatcher events.Dispatcher
	now        func() time.Time
}

// NewWorkOrderService constructs the service.
func NewWorkOrderService(
	orders repository.WorkOrderRepository,
	machines repository.MachineRepository,
	reports repository.ClientReportRepository,
	dispatcher events.Dispatcher,
) *WorkOrderService {
	return &WorkOrderService{
		orders:     orders,
		machines:   machines,
		reports:    reports,
		dispatcher: dispatcher,
		now:        time.Now,
	}
}

// WorkOrderCreateInput describes a work-order payload.
type WorkOrderCreateInput struct {
	MachineID   int64
	ReportID    *int64
	Description string
	Severity    domain.Severity
}

// WorkOrderUpdateInput is a merge-patch; nil fields are left untouched.
type WorkOrderUpdateInput struct {
	Description *string
	Severity    *domain.Severity
	Status      *domain.WorkOrderStatus
}

// List returns work orders matching the filter.
func (s *WorkOrderService) List(ctx context.Context, filter repository.WorkOrderFilter) ([]domain.WorkOrder, error) {
	orders, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []domain.WorkOrder{}
	}
	return orders, nil
}

// Get loads one work order.
func (s *WorkOrderService) Get(ctx context.Context, id int64) (*domain.WorkOrder, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Orden de trabajo no encontrada")
		}
		return nil, err
	}
	return order, nil
}

// Create opens a work order with a generated code and an estimated duration
// derived from severity.
func (s *WorkOrderService) Create(ctx context.Context, createdBy int64, input WorkOrderCreateInput) (*domain.WorkOrder, error) {
	if strings.TrimSpace(input.Description) == "" {
		return nil, apperrors.NewValidationError("Faltan campos obligatorios: descripcion")
	}
	if _, err := s.machines.GetByID(ctx, input.MachineID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewValidationError("Máquina no encontrada")
		}
		return nil, err
	}
	if input.ReportID != nil {
		if _, err := s.reports.GetByID(ctx, *input.ReportID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewValidationError("Reporte no encontrado")
			}
			return nil, err
		}
	}

	severity := input.Severity
	if severity == "" {
		severity = domain.SeverityMedium
	}

	// Concurrent creates can race to the same daily sequence number; the
	// unique index on codigo catches that, so recompute and retry.
	var order *domain.WorkOrder
	for attempt := 0; ; attempt++ {
		code, err := s.nextCode(ctx)
		if err != nil {
			return nil, err
		}

		order = &domain.WorkOrder{
			Code:           code,
			MachineID:      input.MachineID,
			ReportID:       input.ReportID,
			Description:    strings.TrimSpace(input.Description),
			Severity:       severity,
			Status:         domain.WorkOrderStatusOpen,
			EstimatedHours: EstimateHours(severity),
			CreatedBy:      &createdBy,
		}
		err = s.orders.Create(ctx, order)
		if err == nil {
			break
		}
		if attempt+1 < codeCollisionRetries && isUniqueViolation(err) {
			continue
		}
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventWorkOrderCreated,
		ActorID: createdBy,
		Payload: events.WorkOrderCreatedPayload{
			WorkOrderID: order.ID,
			Code:        order.Code,
			MachineID:   order.MachineID,
			Severity:    order.Severity,
		},
	})
	return order, nil
}

// Update applies the provided fields, validating status transitions.
func (s *WorkOrderService) Update(ctx context.Context, id int64, input WorkOrderUpdateInput) (*domain.WorkOrder, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Description != nil {
		order.Description = *input.Description
	}
	if input.Severity != nil {
		order.Severity = *input.Severity
		order.EstimatedHours = EstimateHours(order.Severity)
	}
	if input.Status != nil && *input.Status != order.Status {
		if !validOrderTransition(order.Status, *input.Status) {
			return nil, apperrors.NewValidationError(
				fmt.Sprintf("Transición de estado inválida: %s a %s", order.Status, *input.Status))
		}
		order.Status = *input.Status
	}

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// Delete removes a work order, returning the removed row.
func (s *WorkOrderService) Delete(ctx context.Context, id int64) (*domain.WorkOrder, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.orders.Delete(ctx, id); err != nil {
		return nil, err
	}
	return order, nil
}

const codeCollisionRetries = 3

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// nextCode builds codes of the form OT<yy><mm><dd>-<seq3>, sequencing per day.
func (s *WorkOrderService) nextCode(ctx context.Context) (string, error) {
	today := s.now()
	count, err := s.orders.CountCreatedOn(ctx, today)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("OT%s-%03d", today.Format("060102"), count+1), nil
}

// EstimateHours maps fault severity to an estimated repair duration.
func EstimateHours(severity domain.Severity) int {
	switch severity {
	case domain.SeverityLow:
		return 2
	case domain.SeverityMedium:
		return 4
	case domain.SeverityHigh:
		return 8
	case domain.SeverityCritical:
		return 24
	default:
		return 4
	}
}

var orderTransitions = map[domain.WorkOrderStatus][]domain.WorkOrderStatus{
	domain.WorkOrderStatusOpen:       {domain.WorkOrderStatusInProgress, domain.WorkOrderStatusCompleted, domain.WorkOrderStatusCancelled},
	domain.WorkOrderStatusInProgress: {domain.WorkOrderStatusCompleted, domain.WorkOrderStatusCancelled},
	domain.WorkOrderStatusCompleted:  {},
	domain.WorkOrderStatusCancelled:  {},
}

func validOrderTransition(current, next domain.WorkOrderStatus) bool {
	for _, candidate := range orderTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

func (s *WorkOrderService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
