package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/slotfleet/maintenance-service/internal/api/http/handlers"
	"github.com/slotfleet/maintenance-service/internal/auth"
	"github.com/slotfleet/maintenance-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Machines       *handlers.MachinesHandler
	Reports        *handlers.ReportsHandler
	WorkOrders     *handlers.WorkOrdersHandler
	Maintenance    *handlers.MaintenanceHandler
	Suppliers      *handlers.SuppliersHandler
	Locations      *handlers.LocationsHandler
	Technicians    *handlers.TechniciansHandler
	Parts          *handlers.PartsHandler
	Inventory      *handlers.InventoryHandler
	Finance        *handlers.FinanceHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes with their role gates.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	adminOnly := auth.RequireRoles(domain.RoleAdmin)
	staff := auth.RequireRoles(domain.RoleAdmin, domain.RoleTecnico)
	anyRole := auth.RequireRoles(domain.RoleAdmin, domain.RoleTecnico, domain.RoleCliente)
	adminOrCliente := auth.RequireRoles(domain.RoleAdmin, domain.RoleCliente)

	// Accounts. Login is the only public route.
	usuarios := api.Group("/usuarios")
	usuarios.Post("/login", cfg.Users.Login)
	usuarios.Post("/register", cfg.AuthMiddleware.Handle, adminOnly, cfg.Users.Register)
	usuarios.Get("/", cfg.AuthMiddleware.Handle, adminOnly, cfg.Users.List)
	usuarios.Get("/:id", cfg.AuthMiddleware.Handle, adminOnly, cfg.Users.Get)
	usuarios.Put("/:id", cfg.AuthMiddleware.Handle, adminOnly, cfg.Users.Update)
	usuarios.Delete("/:id", cfg.AuthMiddleware.Handle, adminOnly, cfg.Users.Delete)

	// Fleet. Clientes read only their own machines.
	maquinas := api.Group("/inventario/maquinas", cfg.AuthMiddleware.Handle)
	maquinas.Get("/", anyRole, cfg.Machines.List)
	maquinas.Get("/:id", anyRole, cfg.Machines.Get)
	maquinas.Post("/", adminOnly, cfg.Machines.Create)
	maquinas.Put("/:id", staff, cfg.Machines.Update)
	maquinas.Delete("/:id", adminOnly, cfg.Machines.Delete)

	// Client fault reports. Creation belongs to clientes only.
	clienteOnly := auth.RequireRoles(domain.RoleCliente)
	reportes := api.Group("/reportes-cliente", cfg.AuthMiddleware.Handle)
	reportes.Get("/", anyRole, cfg.Reports.List)
	reportes.Get("/:id", anyRole, cfg.Reports.Get)
	reportes.Post("/", clienteOnly, cfg.Reports.Create)
	reportes.Put("/:id", staff, cfg.Reports.Update)
	reportes.Delete("/:id", adminOnly, cfg.Reports.Delete)

	ordenes := api.Group("/ordenes-trabajo", cfg.AuthMiddleware.Handle, staff)
	ordenes.Get("/", cfg.WorkOrders.List)
	ordenes.Get("/:id", cfg.WorkOrders.Get)
	ordenes.Post("/", cfg.WorkOrders.Create)
	ordenes.Put("/:id", cfg.WorkOrders.Update)
	ordenes.Delete("/:id", cfg.WorkOrders.Delete)

	mantenimientos := api.Group("/mantenimientos", cfg.AuthMiddleware.Handle, staff)
	mantenimientos.Get("/", cfg.Maintenance.List)
	mantenimientos.Get("/:id", cfg.Maintenance.Get)
	mantenimientos.Post("/", cfg.Maintenance.Create)
	mantenimientos.Put("/:id", cfg.Maintenance.Update)
	mantenimientos.Delete("/:id", cfg.Maintenance.Delete)

	// Catalogs. Staff read, admin writes.
	proveedor := api.Group("/proveedor", cfg.AuthMiddleware.Handle)
	proveedor.Get("/", staff, cfg.Suppliers.List)
	proveedor.Get("/:id", staff, cfg.Suppliers.Get)
	proveedor.Post("/", adminOnly, cfg.Suppliers.Create)
	proveedor.Put("/:id", adminOnly, cfg.Suppliers.Update)
	proveedor.Delete("/:id", adminOnly, cfg.Suppliers.Delete)

	ubicaciones := api.Group("/ubicaciones", cfg.AuthMiddleware.Handle)
	ubicaciones.Get("/", staff, cfg.Locations.List)
	ubicaciones.Get("/:id", staff, cfg.Locations.Get)
	ubicaciones.Post("/", adminOnly, cfg.Locations.Create)
	ubicaciones.Put("/:id", adminOnly, cfg.Locations.Update)
	ubicaciones.Delete("/:id", adminOnly, cfg.Locations.Delete)

	tecnicos := api.Group("/tecnicos", cfg.AuthMiddleware.Handle)
	tecnicos.Get("/", staff, cfg.Technicians.List)
	tecnicos.Get("/:id", staff, cfg.Technicians.Get)
	tecnicos.Post("/", adminOnly, cfg.Technicians.Create)
	tecnicos.Put("/:id", adminOnly, cfg.Technicians.Update)
	tecnicos.Delete("/:id", adminOnly, cfg.Technicians.Delete)

	repuesto := api.Group("/repuesto", cfg.AuthMiddleware.Handle)
	repuesto.Get("/", staff, cfg.Parts.List)
	repuesto.Get("/:id", staff, cfg.Parts.Get)
	repuesto.Post("/", adminOnly, cfg.Parts.Create)
	repuesto.Put("/:id", adminOnly, cfg.Parts.Update)
	repuesto.Delete("/:id", adminOnly, cfg.Parts.Delete)

	inventario := api.Group("/inventario", cfg.AuthMiddleware.Handle)
	inventario.Get("/", staff, cfg.Inventory.List)
	inventario.Get("/:id", staff, cfg.Inventory.Get)
	inventario.Post("/", adminOnly, cfg.Inventory.Create)
	inventario.Put("/:id", adminOnly, cfg.Inventory.Update)
	inventario.Delete("/:id", adminOnly, cfg.Inventory.Delete)

	// Ledger. Clientes read only their own rows and invoices.
	finanzas := api.Group("/finanzas", cfg.AuthMiddleware.Handle)
	finanzas.Get("/", adminOrCliente, cfg.Finance.List)
	finanzas.Get("/:id", adminOrCliente, cfg.Finance.Get)
	finanzas.Get("/:id/factura", adminOrCliente, cfg.Finance.Invoice)
	finanzas.Post("/", adminOnly, cfg.Finance.Create)
	finanzas.Put("/:id", adminOnly, cfg.Finance.Update)
	finanzas.Delete("/:id", adminOnly, cfg.Finance.Delete)
}
