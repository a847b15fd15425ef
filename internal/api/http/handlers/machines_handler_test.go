package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/slotfleet/maintenance-service/internal/auth"
	"github.com/slotfleet/maintenance-service/internal/domain"
	"github.com/slotfleet/maintenance-service/internal/repository"
	"github.com/slotfleet/maintenance-service/internal/service"
	apperrors "github.com/slotfleet/maintenance-service/pkg/util"
)

type memMachineRepo struct {
	mu       sync.Mutex
	nextID   int64
	machines map[int64]domain.Machine
}

func newMemMachineRepo() *memMachineRepo {
	return &memMachineRepo{nextID: 1, machines: make(map[int64]domain.Machine)}
}

func (r *memMachineRepo) Create(_ context.Context, machine *domain.Machine) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	machine.ID = r.nextID
	r.nextID++
	r.machines[machine.ID] = *machine
	return nil
}

func (r *memMachineRepo) Update(_ context.Context, machine *domain.Machine) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.machines[machine.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.machines[machine.ID] = *machine
	return nil
}

func (r *memMachineRepo) UpdateStatus(_ context.Context, id int64, status domain.MachineStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	machine, ok := r.machines[id]
	if !ok {
		return pgx.ErrNoRows
	}
	machine.Status = status
	r.machines[id] = machine
	return nil
}

func (r *memMachineRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.machines[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.machines, id)
	return nil
}

func (r *memMachineRepo) GetByID(_ context.Context, id int64) (*domain.Machine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	machine, ok := r.machines[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &machine, nil
}

func (r *memMachineRepo) List(_ context.Context, filter repository.MachineFilter) ([]domain.Machine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Machine, 0, len(r.machines))
	for _, machine := range r.machines {
		if filter.OwnerID != nil && (machine.OwnerID == nil || *machine.OwnerID != *filter.OwnerID) {
			continue
		}
		out = append(out, machine)
	}
	return out, nil
}

func (r *memMachineRepo) CountBySupplier(context.Context, int64) (int64, error) { return 0, nil }

func machinesTestApp(t *testing.T) (*fiber.App, *auth.TokenManager, *memMachineRepo) {
	t.Helper()
	repo := newMemMachineRepo()
	svc := service.NewMachineService(repo, nil, nil, nil)
	handler := NewMachinesHandler(svc)

	tm := auth.NewTokenManager("secret", time.Hour)
	middleware := auth.NewMiddleware(tm)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"error": domainErr.Message})
		},
	})
	group := app.Group("/api/inventario/maquinas", middleware.Handle)
	group.Get("/", handler.List)
	group.Get("/:id", handler.Get)
	return app, tm, repo
}

func seedOwnedMachine(t *testing.T, repo *memMachineRepo, serial string, ownerID int64) *domain.Machine {
	t.Helper()
	machine := &domain.Machine{
		SerialNumber: serial,
		Model:        "Vortex 9",
		Type:         domain.MachineTypeSlot,
		Status:       domain.MachineStatusOperational,
		OwnerID:      &ownerID,
	}
	require.NoError(t, repo.Create(context.Background(), machine))
	return machine
}

func TestMachinesListScopedToCliente(t *testing.T) {
	app, tm, repo := machinesTestApp(t)
	seedOwnedMachine(t, repo, "SN-1", 7)
	seedOwnedMachine(t, repo, "SN-2", 7)
	seedOwnedMachine(t, repo, "SN-3", 99)

	token, _, err := tm.Issue(7, domain.RoleCliente, "")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/inventario/maquinas/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var machines []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&machines))
	require.Len(t, machines, 2)
	for _, machine := range machines {
		require.Equal(t, float64(7), machine["cliente_id"])
	}
}

func TestMachinesListAdminSeesAll(t *testing.T) {
	app, tm, repo := machinesTestApp(t)
	seedOwnedMachine(t, repo, "SN-1", 7)
	seedOwnedMachine(t, repo, "SN-2", 99)

	token, _, err := tm.Issue(1, domain.RoleAdmin, "")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/inventario/maquinas/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var machines []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&machines))
	require.Len(t, machines, 2)
}

func TestMachinesListEmptyIsArray(t *testing.T) {
	app, tm, _ := machinesTestApp(t)

	token, _, err := tm.Issue(1, domain.RoleAdmin, "")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/inventario/maquinas/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var machines []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&machines))
	require.NotNil(t, machines)
	require.Empty(t, machines)
}

func TestMachinesGetForeignMachineForbidden(t *testing.T) {
	app, tm, repo := machinesTestApp(t)
	machine := seedOwnedMachine(t, repo, "SN-1", 99)

	token, _, err := tm.Issue(7, domain.RoleCliente, "")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", fmt.Sprintf("/api/inventario/maquinas/%d", machine.ID), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 403, resp.StatusCode)
}

func TestMachinesGetInvalidID(t *testing.T) {
	app, tm, _ := machinesTestApp(t)

	token, _, err := tm.Issue(1, domain.RoleAdmin, "")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/inventario/maquinas/abc", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 400, resp.StatusCode)

	var payload struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.Equal(t, "ID inválido", payload.Error)
}
