package service

import (
	"context"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/slotfleet/maintenance-service/internal/domain"
	apperrors "github.com/slotfleet/maintenance-service/pkg/util"
)

// fakeSupplierRepo shares machine storage so DeleteWithReferences can mirror
// the transactional null-out the Postgres implementation performs.
type fakeSupplierRepo struct {
	mu        sync.Mutex
	nextID    int64
	suppliers map[int64]domain.Supplier
	machines  *fakeMachineRepo
}

func newFakeSupplierRepo(machines *fakeMachineRepo) *fakeSupplierRepo {
	return &fakeSupplierRepo{nextID: 1, suppliers: make(map[int64]domain.Supplier), machines: machines}
}

func (r *fakeSupplierRepo) Create(_ context.Context, supplier *domain.Supplier) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	supplier.ID = r.nextID
	r.nextID++
	r.suppliers[supplier.ID] = *supplier
	return nil
}

func (r *fakeSupplierRepo) Update(_ context.Context, supplier *domain.Supplier) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.suppliers[supplier.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.suppliers[supplier.ID] = *supplier
	return nil
}

func (r *fakeSupplierRepo) DeleteWithReferences(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.suppliers[id]; !ok {
		return pgx.ErrNoRows
	}
	if r.machines != nil {
		r.machines.mu.Lock()
		for mid, machine := range r.machines.machines {
			if machine.SupplierID != nil && *machine.SupplierID == id {
				machine.SupplierID = nil
				r.machines.machines[mid] = machine
			}
		}
		r.machines.mu.Unlock()
	}
	delete(r.suppliers, id)
	return nil
}

func (r *fakeSupplierRepo) GetByID(_ context.Context, id int64) (*domain.Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	supplier, ok := r.suppliers[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &supplier, nil
}

func (r *fakeSupplierRepo) List(_ context.Context) ([]domain.Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]domain.Supplier, 0, len(r.suppliers))
	for _, supplier := range r.suppliers {
		result = append(result, supplier)
	}
	return result, nil
}

func TestSupplierDeleteNullsMachineReferences(t *testing.T) {
	machines := newFakeMachineRepo()
	repo := newFakeSupplierRepo(machines)
	svc := NewSupplierService(repo)
	ctx := context.Background()

	target, err := svc.Create(ctx, SupplierCreateInput{Name: "Proveedor Central"})
	require.NoError(t, err)
	other, err := svc.Create(ctx, SupplierCreateInput{Name: "Proveedor Norte"})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		require.NoError(t, machines.Create(ctx, &domain.Machine{SupplierID: &target.ID, Status: domain.MachineStatusOperational}))
	}
	untouched := &domain.Machine{SupplierID: &other.ID, Status: domain.MachineStatusOperational}
	require.NoError(t, machines.Create(ctx, untouched))

	removed, err := svc.Delete(ctx, target.ID)
	require.NoError(t, err)
	require.Equal(t, "Proveedor Central", removed.Name)

	for _, machine := range machines.machines {
		if machine.ID == untouched.ID {
			require.NotNil(t, machine.SupplierID)
			require.Equal(t, other.ID, *machine.SupplierID)
			continue
		}
		require.Nil(t, machine.SupplierID)
	}

	_, err = svc.Get(ctx, target.ID)
	domainErr := apperrors.ToDomainError(err)
	require.Equal(t, 404, domainErr.HTTPStatus)
	require.Equal(t, "Proveedor no encontrado", domainErr.Message)
}

func TestSupplierDeleteMissing(t *testing.T) {
	svc := NewSupplierService(newFakeSupplierRepo(nil))

	_, err := svc.Delete(context.Background(), 99)
	require.Equal(t, 404, apperrors.ToDomainError(err).HTTPStatus)
}

func TestSupplierCreateRequiresName(t *testing.T) {
	svc := NewSupplierService(newFakeSupplierRepo(nil))

	_, err := svc.Create(context.Background(), SupplierCreateInput{Name: "   "})
	require.Equal(t, 400, apperrors.ToDomainError(err).HTTPStatus)
}
