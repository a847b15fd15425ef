package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/slotfleet/maintenance-service/internal/domain"
	"github.com/slotfleet/maintenance-service/internal/events"
	"github.com/slotfleet/maintenance-service/internal/repository"
	apperrors "github.com/slotfleet/maintenance-service/pkg/util"
)

// MaintenanceService coordinates maintenance records filed under work orders.
type MaintenanceService struct {
	records     repository.MaintenanceRepository
	orders      repository.WorkOrderRepository
	technicians repository.TechnicianRepository
	dispatcher  events.Dispatcher
}

// NewMaintenanceService constructs the service.
func NewMaintenanceService(
	records repository.MaintenanceRepository,
	orders repository.WorkOrderRepository,
	technicians repository.TechnicianRepository,
	dispatcher events.Dispatcher,
) *MaintenanceService {
	return &MaintenanceService{records: records, orders: orders, technicians: technicians, dispatcher: dispatcher}
}

// MaintenanceCreateInput describes a maintenance-record payload.
type MaintenanceCreateInput struct {
	WorkOrderID   int64
	TechnicianID  int64
	Type          domain.MaintenanceType
	Description   string
	ScheduledDate time.Time
	PerformedDate *time.Time
	EstimatedCost float64
	ActualCost    float64
	Notes         string
}

// MaintenanceUpdateInput is a merge-patch; nil fields are left untouched.
type MaintenanceUpdateInput struct {
	Type          *domain.MaintenanceType
	Description   *string
	ScheduledDate *time.Time
	PerformedDate *time.Time
	EstimatedCost *float64
	ActualCost    *float64
	Notes         *string
}

// List returns maintenance records matching the filter.
func (s *MaintenanceService) List(ctx context.Context, filter repository.MaintenanceFilter) ([]domain.Maintenance, error) {
	records, err := s.records.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []domain.Maintenance{}
	}
	return records, nil
}

// Get loads one record.
func (s *MaintenanceService) Get(ctx context.Context, id int64) (*domain.Maintenance, error) {
	record, err := s.records.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Mantenimiento no encontrado")
		}
		return nil, err
	}
	return record, nil
}

// Create checks every precondition before filing the record: the work order
// must exist and be open, the technician must exist, the performed date may
// not precede the scheduled date and costs may not be negative. Filing a
// performed maintenance completes the order.
func (s *MaintenanceService) Create(ctx context.Context, actorID int64, input MaintenanceCreateInput) (*domain.Maintenance, error) {
	order, err := s.orders.GetByID(ctx, input.WorkOrderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Orden de trabajo no encontrada")
		}
		return nil, err
	}
	if order.Status != domain.WorkOrderStatusOpen {
		return nil, apperrors.NewValidationError("La orden no está activa")
	}
	if _, err := s.technicians.GetByID(ctx, input.TechnicianID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Técnico no encontrado")
		}
		return nil, err
	}
	if input.PerformedDate != nil && input.PerformedDate.Before(input.ScheduledDate) {
		return nil, apperrors.NewValidationError("La fecha de realización no puede ser anterior a la fecha programada")
	}
	if input.EstimatedCost < 0 || input.ActualCost < 0 {
		return nil, apperrors.NewValidationError("Los costos no pueden ser negativos")
	}
	if input.ScheduledDate.IsZero() {
		return nil, apperrors.NewValidationError("Faltan campos obligatorios: fecha_programada")
	}

	recordType := input.Type
	if recordType == "" {
		recordType = domain.MaintenanceCorrective
	}

	record := &domain.Maintenance{
		WorkOrderID:   input.WorkOrderID,
		TechnicianID:  input.TechnicianID,
		Type:          recordType,
		Description:   strings.TrimSpace(input.Description),
		ScheduledDate: input.ScheduledDate,
		PerformedDate: input.PerformedDate,
		EstimatedCost: input.EstimatedCost,
		ActualCost:    input.ActualCost,
		Notes:         strings.TrimSpace(input.Notes),
	}
	if err := s.records.Create(ctx, record); err != nil {
		return nil, err
	}

	if record.PerformedDate != nil {
		order.Status = domain.WorkOrderStatusCompleted
		if err := s.orders.Update(ctx, order); err != nil {
			return nil, err
		}
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventMaintenanceRecorded,
		ActorID: actorID,
		Payload: events.MaintenanceRecordedPayload{
			MaintenanceID: record.ID,
			WorkOrderID:   record.WorkOrderID,
			TechnicianID:  record.TechnicianID,
			Type:          record.Type,
		},
	})
	return record, nil
}

// Update applies the provided fields, re-validating date order and costs.
func (s *MaintenanceService) Update(ctx context.Context, id int64, input MaintenanceUpdateInput) (*domain.Maintenance, error) {
	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Type != nil {
		record.Type = *input.Type
	}
	if input.Description != nil {
		record.Description = *input.Description
	}
	if input.ScheduledDate != nil {
		record.ScheduledDate = *input.ScheduledDate
	}
	if input.PerformedDate != nil {
		record.PerformedDate = input.PerformedDate
	}
	if input.EstimatedCost != nil {
		record.EstimatedCost = *input.EstimatedCost
	}
	if input.ActualCost != nil {
		record.ActualCost = *input.ActualCost
	}
	if input.Notes != nil {
		record.Notes = *input.Notes
	}

	if record.PerformedDate != nil && record.PerformedDate.Before(record.ScheduledDate) {
		return nil, apperrors.NewValidationError("La fecha de realización no puede ser anterior a la fecha programada")
	}
	if record.EstimatedCost < 0 || record.ActualCost < 0 {
		return nil, apperrors.NewValidationError("Los costos no pueden ser negativos")
	}

	if err := s.records.Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Delete removes a record, returning the removed row.
func (s *MaintenanceService) Delete(ctx context.Context, id int64) (*domain.Maintenance, error) {
	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.records.Delete(ctx, id); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *MaintenanceService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
