package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/slotfleet/maintenance-service/internal/domain"
	apperrors "github.com/slotfleet/maintenance-service/pkg/util"
)

type maintenanceFixture struct {
	svc     *MaintenanceService
	orders  *fakeWorkOrderRepo
	techs   *fakeTechnicianRepo
	records *fakeMaintenanceRepo
	order   *domain.WorkOrder
	tech    *domain.Technician
}

func newMaintenanceFixture(t *testing.T) *maintenanceFixture {
	t.Helper()
	orders := newFakeWorkOrderRepo()
	techs := newFakeTechnicianRepo()
	records := newFakeMaintenanceRepo()

	order := &domain.WorkOrder{
		Code:      "OT260831-001",
		MachineID: 1,
		Status:    domain.WorkOrderStatusOpen,
		Severity:  domain.SeverityMedium,
	}
	require.NoError(t, orders.Create(context.Background(), order))

	tech := &domain.Technician{Name: "Luis", Active: true}
	require.NoError(t, techs.Create(context.Background(), tech))

	return &maintenanceFixture{
		svc:     NewMaintenanceService(records, orders, techs, nil),
		orders:  orders,
		techs:   techs,
		records: records,
		order:   order,
		tech:    tech,
	}
}

func TestMaintenanceCreateUnknownOrder(t *testing.T) {
	f := newMaintenanceFixture(t)

	_, err := f.svc.Create(context.Background(), 1, MaintenanceCreateInput{
		WorkOrderID:   999,
		TechnicianID:  f.tech.ID,
		ScheduledDate: time.Now(),
	})
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	require.Equal(t, 404, domainErr.HTTPStatus)
	require.Equal(t, "Orden de trabajo no encontrada", domainErr.Message)
}

func TestMaintenanceCreateOrderNotOpen(t *testing.T) {
	f := newMaintenanceFixture(t)
	f.order.Status = domain.WorkOrderStatusCompleted
	require.NoError(t, f.orders.Update(context.Background(), f.order))

	_, err := f.svc.Create(context.Background(), 1, MaintenanceCreateInput{
		WorkOrderID:   f.order.ID,
		TechnicianID:  f.tech.ID,
		ScheduledDate: time.Now(),
	})
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	require.Equal(t, 400, domainErr.HTTPStatus)
	require.Equal(t, "La orden no está activa", domainErr.Message)
}

func TestMaintenanceCreateUnknownTechnician(t *testing.T) {
	f := newMaintenanceFixture(t)

	_, err := f.svc.Create(context.Background(), 1, MaintenanceCreateInput{
		WorkOrderID:   f.order.ID,
		TechnicianID:  999,
		ScheduledDate: time.Now(),
	})
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	require.Equal(t, 404, domainErr.HTTPStatus)
	require.Equal(t, "Técnico no encontrado", domainErr.Message)
}

func TestMaintenanceCreatePerformedBeforeScheduled(t *testing.T) {
	f := newMaintenanceFixture(t)

	scheduled := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	performed := scheduled.Add(-24 * time.Hour)

	_, err := f.svc.Create(context.Background(), 1, MaintenanceCreateInput{
		WorkOrderID:   f.order.ID,
		TechnicianID:  f.tech.ID,
		ScheduledDate: scheduled,
		PerformedDate: &performed,
	})
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	require.Equal(t, 400, domainErr.HTTPStatus)
	require.Contains(t, domainErr.Message, "fecha de realización no puede ser anterior")
}

func TestMaintenanceCreateNegativeCosts(t *testing.T) {
	f := newMaintenanceFixture(t)

	_, err := f.svc.Create(context.Background(), 1, MaintenanceCreateInput{
		WorkOrderID:   f.order.ID,
		TechnicianID:  f.tech.ID,
		ScheduledDate: time.Now(),
		EstimatedCost: -10,
	})
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	require.Equal(t, 400, domainErr.HTTPStatus)
	require.Contains(t, domainErr.Message, "costos no pueden ser negativos")
}

func TestMaintenanceCreatePerformedCompletesOrder(t *testing.T) {
	f := newMaintenanceFixture(t)

	scheduled := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	performed := scheduled.Add(3 * time.Hour)

	record, err := f.svc.Create(context.Background(), 1, MaintenanceCreateInput{
		WorkOrderID:   f.order.ID,
		TechnicianID:  f.tech.ID,
		Type:          domain.MaintenancePreventive,
		Description:   "Cambio de rodillos",
		ScheduledDate: scheduled,
		PerformedDate: &performed,
		EstimatedCost: 120,
		ActualCost:    95,
	})
	require.NoError(t, err)
	require.Equal(t, domain.MaintenancePreventive, record.Type)

	order, err := f.orders.GetByID(context.Background(), f.order.ID)
	require.NoError(t, err)
	require.Equal(t, domain.WorkOrderStatusCompleted, order.Status)
}

func TestMaintenanceCreateScheduledMaintenanceLeavesOrderOpen(t *testing.T) {
	f := newMaintenanceFixture(t)

	record, err := f.svc.Create(context.Background(), 1, MaintenanceCreateInput{
		WorkOrderID:   f.order.ID,
		TechnicianID:  f.tech.ID,
		ScheduledDate: time.Now().Add(48 * time.Hour),
	})
	require.NoError(t, err)
	require.Equal(t, domain.MaintenanceCorrective, record.Type)
	require.Nil(t, record.PerformedDate)

	order, err := f.orders.GetByID(context.Background(), f.order.ID)
	require.NoError(t, err)
	require.Equal(t, domain.WorkOrderStatusOpen, order.Status)
}

func TestMaintenanceUpdateRevalidatesDates(t *testing.T) {
	f := newMaintenanceFixture(t)

	scheduled := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	record, err := f.svc.Create(context.Background(), 1, MaintenanceCreateInput{
		WorkOrderID:   f.order.ID,
		TechnicianID:  f.tech.ID,
		ScheduledDate: scheduled,
	})
	require.NoError(t, err)

	tooEarly := scheduled.Add(-time.Hour)
	_, err = f.svc.Update(context.Background(), record.ID, MaintenanceUpdateInput{PerformedDate: &tooEarly})
	require.Error(t, err)
	require.Equal(t, 400, apperrors.ToDomainError(err).HTTPStatus)
}
