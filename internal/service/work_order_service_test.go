package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/slotfleet/maintenance-service/internal/domain"
	apperrors "github.com/slotfleet/maintenance-service/pkg/util"
)

func newWorkOrderServiceForTest(t *testing.T) (*WorkOrderService, *fakeWorkOrderRepo, *fakeMachineRepo) {
	t.Helper()
	machines := newFakeMachineRepo()
	orders := newFakeWorkOrderRepo()
	reports := newFakeReportRepo(machines)
	return NewWorkOrderService(orders, machines, reports, nil), orders, machines
}

func TestWorkOrderCodeFormat(t *testing.T) {
	svc, orders, machines := newWorkOrderServiceForTest(t)
	machine := seedMachine(t, machines, 7, domain.MachineStatusOperational)

	fixed := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	order, err := svc.Create(context.Background(), 1, WorkOrderCreateInput{
		MachineID:   machine.ID,
		Description: "Cambio de billetero",
		Severity:    domain.SeverityHigh,
	})
	require.NoError(t, err)
	require.Equal(t, "OT260831-001", order.Code)
	require.Equal(t, domain.WorkOrderStatusOpen, order.Status)
	require.Equal(t, 8, order.EstimatedHours)

	// Next order on the same day takes the next slot.
	stored, err := orders.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	stored.CreatedAt = fixed
	require.NoError(t, orders.Update(context.Background(), stored))

	second, err := svc.Create(context.Background(), 1, WorkOrderCreateInput{
		MachineID:   machine.ID,
		Description: "Revisión de pantalla",
	})
	require.NoError(t, err)
	require.Equal(t, "OT260831-002", second.Code)
}

// collidingOrderRepo simulates a concurrent create racing to the same daily
// sequence: the first collisions inserts fail on the codigo unique index while
// a rival row lands, so the recomputed code moves to the next slot.
type collidingOrderRepo struct {
	*fakeWorkOrderRepo
	collisions int
	day        time.Time
}

func (r *collidingOrderRepo) Create(ctx context.Context, order *domain.WorkOrder) error {
	if r.collisions > 0 {
		r.collisions--
		r.mu.Lock()
		rival := domain.WorkOrder{Code: order.Code, CreatedAt: r.day}
		rival.ID = r.nextID
		r.nextID++
		r.orders[rival.ID] = rival
		r.mu.Unlock()
		return &pgconn.PgError{Code: "23505", ConstraintName: "ordenes_trabajo_codigo_key"}
	}
	return r.fakeWorkOrderRepo.Create(ctx, order)
}

func TestWorkOrderCodeRetriesOnCollision(t *testing.T) {
	machines := newFakeMachineRepo()
	machine := seedMachine(t, machines, 7, domain.MachineStatusOperational)

	fixed := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	orders := &collidingOrderRepo{fakeWorkOrderRepo: newFakeWorkOrderRepo(), collisions: 1, day: fixed}
	svc := NewWorkOrderService(orders, machines, newFakeReportRepo(machines), nil)
	svc.now = func() time.Time { return fixed }

	order, err := svc.Create(context.Background(), 1, WorkOrderCreateInput{
		MachineID:   machine.ID,
		Description: "Cambio de billetero",
	})
	require.NoError(t, err)
	require.Equal(t, "OT260831-002", order.Code)
}

func TestWorkOrderCodeCollisionExhaustsRetries(t *testing.T) {
	machines := newFakeMachineRepo()
	machine := seedMachine(t, machines, 7, domain.MachineStatusOperational)

	fixed := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	orders := &collidingOrderRepo{fakeWorkOrderRepo: newFakeWorkOrderRepo(), collisions: 5, day: fixed}
	svc := NewWorkOrderService(orders, machines, newFakeReportRepo(machines), nil)
	svc.now = func() time.Time { return fixed }

	_, err := svc.Create(context.Background(), 1, WorkOrderCreateInput{
		MachineID:   machine.ID,
		Description: "Cambio de billetero",
	})
	require.Error(t, err)
	require.True(t, isUniqueViolation(err))
}

func TestWorkOrderEstimateHours(t *testing.T) {
	cases := []struct {
		severity domain.Severity
		hours    int
	}{
		{domain.SeverityLow, 2},
		{domain.SeverityMedium, 4},
		{domain.SeverityHigh, 8},
		{domain.SeverityCritical, 24},
		{domain.Severity("desconocida"), 4},
	}
	for _, tc := range cases {
		t.Run(string(tc.severity), func(t *testing.T) {
			require.Equal(t, tc.hours, EstimateHours(tc.severity))
		})
	}
}

func TestWorkOrderCreateUnknownMachine(t *testing.T) {
	svc, _, _ := newWorkOrderServiceForTest(t)

	_, err := svc.Create(context.Background(), 1, WorkOrderCreateInput{
		MachineID:   999,
		Description: "Cualquier cosa",
	})
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	require.Equal(t, 400, domainErr.HTTPStatus)
	require.Equal(t, "Máquina no encontrada", domainErr.Message)
}

func TestWorkOrderStatusTransitions(t *testing.T) {
	svc, _, machines := newWorkOrderServiceForTest(t)
	machine := seedMachine(t, machines, 7, domain.MachineStatusOperational)

	order, err := svc.Create(context.Background(), 1, WorkOrderCreateInput{
		MachineID:   machine.ID,
		Description: "Mantenimiento general",
	})
	require.NoError(t, err)

	inProgress := domain.WorkOrderStatusInProgress
	order, err = svc.Update(context.Background(), order.ID, WorkOrderUpdateInput{Status: &inProgress})
	require.NoError(t, err)
	require.Equal(t, domain.WorkOrderStatusInProgress, order.Status)

	completed := domain.WorkOrderStatusCompleted
	order, err = svc.Update(context.Background(), order.ID, WorkOrderUpdateInput{Status: &completed})
	require.NoError(t, err)
	require.Equal(t, domain.WorkOrderStatusCompleted, order.Status)

	// Completed is terminal.
	reopened := domain.WorkOrderStatusOpen
	_, err = svc.Update(context.Background(), order.ID, WorkOrderUpdateInput{Status: &reopened})
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	require.Equal(t, 400, domainErr.HTTPStatus)
	require.Equal(t, fmt.Sprintf("Transición de estado inválida: %s a %s", completed, reopened), domainErr.Message)
}

func TestWorkOrderSeverityUpdateReestimates(t *testing.T) {
	svc, _, machines := newWorkOrderServiceForTest(t)
	machine := seedMachine(t, machines, 7, domain.MachineStatusOperational)

	order, err := svc.Create(context.Background(), 1, WorkOrderCreateInput{
		MachineID:   machine.ID,
		Description: "Limpieza interna",
		Severity:    domain.SeverityLow,
	})
	require.NoError(t, err)
	require.Equal(t, 2, order.EstimatedHours)

	critical := domain.SeverityCritical
	order, err = svc.Update(context.Background(), order.ID, WorkOrderUpdateInput{Severity: &critical})
	require.NoError(t, err)
	require.Equal(t, 24, order.EstimatedHours)
}
