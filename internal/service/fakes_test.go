package service

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/slotfleet/maintenance-service/internal/domain"
	"github.com/slotfleet/maintenance-service/internal/events"
	"github.com/slotfleet/maintenance-service/internal/repository"
)

// In-memory repositories backing the service tests. They mimic the Postgres
// implementations' contract: lookups miss with pgx.ErrNoRows.

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: make(map[int64]domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.User, 0, len(r.users))
	for _, user := range r.users {
		out = append(out, user)
	}
	return out, nil
}

type fakeMachineRepo struct {
	mu       sync.Mutex
	nextID   int64
	machines map[int64]domain.Machine
}

func newFakeMachineRepo() *fakeMachineRepo {
	return &fakeMachineRepo{nextID: 1, machines: make(map[int64]domain.Machine)}
}

func (r *fakeMachineRepo) Create(_ context.Context, machine *domain.Machine) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	machine.ID = r.nextID
	r.nextID++
	r.machines[machine.ID] = *machine
	return nil
}

func (r *fakeMachineRepo) Update(_ context.Context, machine *domain.Machine) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.machines[machine.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.machines[machine.ID] = *machine
	return nil
}

func (r *fakeMachineRepo) UpdateStatus(_ context.Context, id int64, status domain.MachineStatus) error {
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

func (r *fakeMachineRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.machines[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.machines, id)
	return nil
}

func (r *fakeMachineRepo) GetByID(_ context.Context, id int64) (*domain.Machine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	machine, ok := r.machines[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &machine, nil
}

func (r *fakeMachineRepo) List(_ context.Context, filter repository.MachineFilter) ([]domain.Machine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Machine, 0, len(r.machines))
	for _, machine := range r.machines {
		if filter.OwnerID != nil && (machine.OwnerID == nil || *machine.OwnerID != *filter.OwnerID) {
			continue
		}
		if filter.Status != nil && machine.Status != *filter.Status {
			continue
		}
		if filter.LocationID != nil && (machine.LocationID == nil || *machine.LocationID != *filter.LocationID) {
			continue
		}
		if filter.Type != nil && machine.Type != *filter.Type {
			continue
		}
		out = append(out, machine)
	}
	return out, nil
}

func (r *fakeMachineRepo) CountBySupplier(_ context.Context, supplierID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, machine := range r.machines {
		if machine.SupplierID != nil && *machine.SupplierID == supplierID {
			count++
		}
	}
	return count, nil
}

type fakeReportRepo struct {
	mu       sync.Mutex
	nextID   int64
	reports  map[int64]domain.ClientReport
	machines *fakeMachineRepo

	resolveCalls []string
}

func newFakeReportRepo(machines *fakeMachineRepo) *fakeReportRepo {
	return &fakeReportRepo{nextID: 1, reports: make(map[int64]domain.ClientReport), machines: machines}
}

func (r *fakeReportRepo) Create(_ context.Context, report *domain.ClientReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	report.ID = r.nextID
	r.nextID++
	r.reports[report.ID] = *report
	return nil
}

func (r *fakeReportRepo) Update(_ context.Context, report *domain.ClientReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reports[report.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.reports[report.ID] = *report
	return nil
}

func (r *fakeReportRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reports[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.reports, id)
	return nil
}

func (r *fakeReportRepo) GetByID(_ context.Context, id int64) (*domain.ClientReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	report, ok := r.reports[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &report, nil
}

func (r *fakeReportRepo) List(_ context.Context, filter repository.ReportFilter) ([]domain.ClientReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.ClientReport, 0, len(r.reports))
	for _, report := range r.reports {
		if filter.ClientID != nil && report.ClientID != *filter.ClientID {
			continue
		}
		if filter.MachineID != nil && report.MachineID != *filter.MachineID {
			continue
		}
		if filter.Status != nil && report.Status != *filter.Status {
			continue
		}
		out = append(out, report)
	}
	return out, nil
}

// Resolve mirrors the transactional repository: both writes or neither.
func (r *fakeReportRepo) Resolve(ctx context.Context, reportID int64, note string) error {
	r.mu.Lock()
	report, ok := r.reports[reportID]
	if !ok {
		r.mu.Unlock()
		return pgx.ErrNoRows
	}
	report.Status = domain.ReportStatusResolved
	report.ResolutionNote = &note
	r.reports[reportID] = report
	r.resolveCalls = append(r.resolveCalls, note)
	r.mu.Unlock()

	return r.machines.UpdateStatus(ctx, report.MachineID, domain.MachineStatusOperational)
}

type fakeWorkOrderRepo struct {
	mu     sync.Mutex
	nextID int64
	orders map[int64]domain.WorkOrder
}

func newFakeWorkOrderRepo() *fakeWorkOrderRepo {
	return &fakeWorkOrderRepo{nextID: 1, orders: make(map[int64]domain.WorkOrder)}
}

func (r *fakeWorkOrderRepo) Create(_ context.Context, order *domain.WorkOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order.ID = r.nextID
	r.nextID++
	r.orders[order.ID] = *order
	return nil
}

func (r *fakeWorkOrderRepo) Update(_ context.Context, order *domain.WorkOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[order.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.orders[order.ID] = *order
	return nil
}

func (r *fakeWorkOrderRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.orders, id)
	return nil
}

func (r *fakeWorkOrderRepo) GetByID(_ context.Context, id int64) (*domain.WorkOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &order, nil
}

func (r *fakeWorkOrderRepo) List(_ context.Context, filter repository.WorkOrderFilter) ([]domain.WorkOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.WorkOrder, 0, len(r.orders))
	for _, order := range r.orders {
		if filter.MachineID != nil && order.MachineID != *filter.MachineID {
			continue
		}
		if filter.Status != nil && order.Status != *filter.Status {
			continue
		}
		if filter.Severity != nil && order.Severity != *filter.Severity {
			continue
		}
		out = append(out, order)
	}
	return out, nil
}

func (r *fakeWorkOrderRepo) CountCreatedOn(_ context.Context, day time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, order := range r.orders {
		if order.CreatedAt.Format("2006-01-02") == day.Format("2006-01-02") {
			count++
		}
	}
	return count, nil
}

type fakeTechnicianRepo struct {
	mu     sync.Mutex
	nextID int64
	techs  map[int64]domain.Technician
}

func newFakeTechnicianRepo() *fakeTechnicianRepo {
	return &fakeTechnicianRepo{nextID: 1, techs: make(map[int64]domain.Technician)}
}

func (r *fakeTechnicianRepo) Create(_ context.Context, tech *domain.Technician) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	tech.ID = r.nextID
	r.nextID++
	r.techs[tech.ID] = *tech
	return nil
}

func (r *fakeTechnicianRepo) Update(_ context.Context, tech *domain.Technician) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.techs[tech.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.techs[tech.ID] = *tech
	return nil
}

func (r *fakeTechnicianRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.techs[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.techs, id)
	return nil
}

func (r *fakeTechnicianRepo) GetByID(_ context.Context, id int64) (*domain.Technician, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tech, ok := r.techs[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &tech, nil
}

func (r *fakeTechnicianRepo) List(_ context.Context) ([]domain.Technician, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Technician, 0, len(r.techs))
	for _, tech := range r.techs {
		out = append(out, tech)
	}
	return out, nil
}

type fakeMaintenanceRepo struct {
	mu      sync.Mutex
	nextID  int64
	records map[int64]domain.Maintenance
}

func newFakeMaintenanceRepo() *fakeMaintenanceRepo {
	return &fakeMaintenanceRepo{nextID: 1, records: make(map[int64]domain.Maintenance)}
}

func (r *fakeMaintenanceRepo) Create(_ context.Context, record *domain.Maintenance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	record.ID = r.nextID
	r.nextID++
	r.records[record.ID] = *record
	return nil
}

func (r *fakeMaintenanceRepo) Update(_ context.Context, record *domain.Maintenance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[record.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.records[record.ID] = *record
	return nil
}

func (r *fakeMaintenanceRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.records, id)
	return nil
}

func (r *fakeMaintenanceRepo) GetByID(_ context.Context, id int64) (*domain.Maintenance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &record, nil
}

func (r *fakeMaintenanceRepo) List(_ context.Context, filter repository.MaintenanceFilter) ([]domain.Maintenance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Maintenance, 0, len(r.records))
	for _, record := range r.records {
		if filter.WorkOrderID != nil && record.WorkOrderID != *filter.WorkOrderID {
			continue
		}
		if filter.TechnicianID != nil && record.TechnicianID != *filter.TechnicianID {
			continue
		}
		if filter.Type != nil && record.Type != *filter.Type {
			continue
		}
		out = append(out, record)
	}
	return out, nil
}

type recordingDispatcher struct {
	mu       sync.Mutex
	received []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.received = append(d.received, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) events() []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]events.Event{}, d.received...)
}
