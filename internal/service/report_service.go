package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/slotfleet/maintenance-service/internal/domain"
	"github.com/slotfleet/maintenance-service/internal/events"
	"github.com/slotfleet/maintenance-service/internal/repository"
	apperrors "github.com/slotfleet/maintenance-service/pkg/util"
)

// ReportService coordinates client fault reports.
type ReportService struct {
	reports    repository.ClientReportRepository
	machines   repository.MachineRepository
	dispatcher events.Dispatcher
}

// NewReportService constructs the service.
func NewReportService(reports repository.ClientReportRepository, machines repository.MachineRepository, dispatcher events.Dispatcher) *ReportService {
	return &ReportService{reports: reports, machines: machines, dispatcher: dispatcher}
}

// ReportCreateInput describes a fault report payload.
type ReportCreateInput struct {
	MachineID   int64
	Title       string
	Description string
	Severity    domain.Severity
}

// ReportUpdateInput is a merge-patch; nil fields are left untouched.
type ReportUpdateInput struct {
	Title       *string
	Description *string
	Severity    *domain.Severity
	Status      *domain.ReportStatus
}

// List returns reports matching the filter.
func (s *ReportService) List(ctx context.Context, filter repository.ReportFilter) ([]domain.ClientReport, error) {
	reports, err := s.reports.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if reports == nil {
		reports = []domain.ClientReport{}
	}
	return reports, nil
}

// Get loads one report.
func (s *ReportService) Get(ctx context.Context, id int64) (*domain.ClientReport, error) {
	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Reporte no encontrado")
		}
		return nil, err
	}
	return report, nil
}

// Create files a new report for a machine the client owns. The machine is
// flipped to Fuera de servicio when the fault is critical.
func (s *ReportService) Create(ctx context.Context, clientID int64, input ReportCreateInput) (*domain.ClientReport, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Description) == "" {
		return nil, apperrors.NewValidationError("Faltan campos obligatorios: titulo, descripcion")
	}
	machine, err := s.machines.GetByID(ctx, input.MachineID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewValidationError("Máquina no encontrada")
		}
		return nil, err
	}
	if machine.OwnerID == nil || *machine.OwnerID != clientID {
		return nil, apperrors.NewForbidden("La máquina no pertenece al cliente")
	}

	severity := input.Severity
	if severity == "" {
		severity = domain.SeverityMedium
	}

	report := &domain.ClientReport{
		MachineID:   input.MachineID,
		ClientID:    clientID,
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Severity:    severity,
		Status:      domain.ReportStatusPending,
	}
	if err := s.reports.Create(ctx, report); err != nil {
		return nil, err
	}

	if severity == domain.SeverityCritical {
		if err := s.machines.UpdateStatus(ctx, machine.ID, domain.MachineStatusOutOfOrder); err != nil {
			return nil, err
		}
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventReportCreated,
		ActorID:   clientID,
		ActorRole: domain.RoleCliente,
		Payload: events.ReportCreatedPayload{
			ReportID:  report.ID,
			MachineID: report.MachineID,
			Severity:  report.Severity,
			Title:     report.Title,
		},
	})
	return report, nil
}

// Update applies the provided fields. Moving the status to resuelto runs the
// two-entity resolve path: report update and machine recovery commit together.
func (s *ReportService) Update(ctx context.Context, id int64, actor int64, input ReportUpdateInput) (*domain.ClientReport, error) {
	report, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		report.Title = *input.Title
	}
	if input.Description != nil {
		report.Description = *input.Description
	}
	if input.Severity != nil {
		report.Severity = *input.Severity
	}

	resolving := input.Status != nil && *input.Status == domain.ReportStatusResolved && report.Status != domain.ReportStatusResolved
	if input.Status != nil && !resolving {
		report.Status = *input.Status
	}

	if err := s.reports.Update(ctx, report); err != nil {
		return nil, err
	}

	if resolving {
		note := fmt.Sprintf("Resuelto el %s. Máquina restablecida a Operativo", time.Now().Format("02/01/2006 15:04"))
		if err := s.reports.Resolve(ctx, report.ID, note); err != nil {
			return nil, err
		}
		report.Status = domain.ReportStatusResolved
		report.ResolutionNote = &note

		s.publishEvent(ctx, events.Event{
			Type:    events.EventReportResolved,
			ActorID: actor,
			Payload: events.ReportResolvedPayload{
				ReportID:  report.ID,
				MachineID: report.MachineID,
				Note:      note,
			},
		})
	}
	return report, nil
}

// Delete removes a report, returning the removed row.
func (s *ReportService) Delete(ctx context.Context, id int64) (*domain.ClientReport, error) {
	report, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.reports.Delete(ctx, id); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *ReportService) publishEvent(ctx context.Context, event events.Event) {
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
