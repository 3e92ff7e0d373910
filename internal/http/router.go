package http

import (
	"net/http"

	"wms-backend/internal/config"
	"wms-backend/internal/handlers"
	"wms-backend/internal/middleware"
	"wms-backend/internal/ws"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth      *handlers.AuthHandler
	Users     *handlers.UserHandler
	TOTP      *handlers.TOTPHandler
	Clients   *handlers.ClientHandler
	Warehouse *handlers.WarehouseHandler
	Products  *handlers.ProductHandler
	Arrivals  *handlers.ArrivalHandler
	Delivery  *handlers.DeliveryHandler
	Invoices  *handlers.InvoiceHandler
	Reports   *handlers.ReportHandler
	Health    *handlers.HealthHandler
}

func NewRouter(cfg *config.Config, h *Handlers, authMw *middleware.AuthMiddleware, hub *ws.DeliveryHub) http.Handler {
	r := mux.NewRouter()

	r.Use(middleware.PanicRecovery)
	r.Use(middleware.MetricsMiddleware)

	r.HandleFunc("/health", h.Health.Check).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Public auth endpoints
	authRouter := r.PathPrefix("/api/auth").Subrouter()
	authRouter.HandleFunc("/signup", h.Auth.Signup).Methods("POST")
	authRouter.HandleFunc("/login", h.Auth.Login).Methods("POST")
	authRouter.HandleFunc("/verify-totp", h.Auth.VerifyTOTP).Methods("POST")

	// Everything below requires a valid token
	api := r.PathPrefix("/api").Subrouter()
	api.Use(authMw.Authenticate)

	api.HandleFunc("/me", h.Auth.Me).Methods("GET")

	api.HandleFunc("/2fa/setup", h.TOTP.Setup).Methods("POST")
	api.HandleFunc("/2fa/enable", h.TOTP.Enable).Methods("POST")
	api.HandleFunc("/2fa/disable", h.TOTP.Disable).Methods("POST")

	// User administration is admin-only
	users := r.PathPrefix("/api/users").Subrouter()
	users.Use(authMw.RequireAdmin)
	users.HandleFunc("", h.Users.List).Methods("GET")
	users.HandleFunc("", h.Users.Create).Methods("POST")
	users.HandleFunc("/{id}", h.Users.Get).Methods("GET")
	users.HandleFunc("/{id}", h.Users.Update).Methods("PUT")
	users.HandleFunc("/{id}", h.Users.Delete).Methods("DELETE")
	users.HandleFunc("/{id}/toggle-active", h.Users.ToggleActive).Methods("POST")

	api.HandleFunc("/clients", h.Clients.List).Methods("GET")
	api.HandleFunc("/clients", h.Clients.Create).Methods("POST")
	api.HandleFunc("/clients/{id}", h.Clients.Get).Methods("GET")
	api.HandleFunc("/clients/{id}", h.Clients.Update).Methods("PUT")
	api.HandleFunc("/clients/{id}", h.Clients.Delete).Methods("DELETE")

	api.HandleFunc("/warehouses", h.Warehouse.List).Methods("GET")
	api.HandleFunc("/warehouses", h.Warehouse.Create).Methods("POST")
	api.HandleFunc("/warehouses/{id}", h.Warehouse.Get).Methods("GET")
	api.HandleFunc("/warehouses/{id}", h.Warehouse.Delete).Methods("DELETE")
	api.HandleFunc("/warehouses/{id}/layouts", h.Warehouse.ListLayouts).Methods("GET")
	api.HandleFunc("/layouts", h.Warehouse.CreateLayout).Methods("POST")
	api.HandleFunc("/layouts/{id}", h.Warehouse.DeleteLayout).Methods("DELETE")
	api.HandleFunc("/layouts/{id}/sections", h.Warehouse.LayoutOccupancy).Methods("GET")

	api.HandleFunc("/sections", h.Warehouse.CreateSection).Methods("POST")
	api.HandleFunc("/sections/{id}", h.Warehouse.GetSection).Methods("GET")
	api.HandleFunc("/sections/{id}", h.Warehouse.UpdateSection).Methods("PUT")
	api.HandleFunc("/sections/{id}", h.Warehouse.DeleteSection).Methods("DELETE")
	api.HandleFunc("/sections/{id}/inventory", h.Warehouse.SectionInventory).Methods("GET")
	api.HandleFunc("/sections/{id}/usage", h.Warehouse.SectionUsage).Methods("GET")
	api.HandleFunc("/sections/{id}/reserve", h.Warehouse.ReserveCapacity).Methods("POST")
	api.HandleFunc("/sections/{id}/release", h.Warehouse.ReleaseCapacity).Methods("POST")

	api.HandleFunc("/occupancy/stats", h.Warehouse.OccupancyStats).Methods("GET")

	api.HandleFunc("/products", h.Products.List).Methods("GET")
	api.HandleFunc("/products", h.Products.Create).Methods("POST")
	api.HandleFunc("/products/{id}", h.Products.Get).Methods("GET")
	api.HandleFunc("/products/{id}", h.Products.Update).Methods("PUT")
	api.HandleFunc("/products/{id}", h.Products.Delete).Methods("DELETE")
	api.HandleFunc("/products/{id}/move", h.Products.MoveToSection).Methods("POST")
	api.HandleFunc("/products/{id}/placements", h.Products.Placements).Methods("GET")
	api.HandleFunc("/products/transfer", h.Products.Transfer).Methods("POST")

	// Intake workflow
	api.HandleFunc("/arrivals", h.Arrivals.List).Methods("GET")
	api.HandleFunc("/arrivals", h.Arrivals.Register).Methods("POST")
	api.HandleFunc("/arrivals/sessions", h.Arrivals.ActiveSessions).Methods("GET")
	api.HandleFunc("/arrivals/{id}", h.Arrivals.Get).Methods("GET")
	api.HandleFunc("/arrivals/{id}/timeline", h.Arrivals.Timeline).Methods("GET")
	api.HandleFunc("/arrivals/{id}/session", h.Arrivals.Session).Methods("GET")
	api.HandleFunc("/arrivals/{id}/start-unloading", h.Arrivals.StartUnloading).Methods("POST")
	api.HandleFunc("/arrivals/{id}/items", h.Arrivals.ListItems).Methods("GET")
	api.HandleFunc("/arrivals/{id}/items", h.Arrivals.AddItem).Methods("POST")
	api.HandleFunc("/arrivals/{id}/items/{itemID}", h.Arrivals.RemoveItem).Methods("DELETE")
	api.HandleFunc("/arrivals/{id}/items/{itemID}/upload-url", h.Arrivals.DamagePhotoUploadURL).Methods("GET")
	api.HandleFunc("/arrivals/{id}/complete-unloading", h.Arrivals.CompleteUnloading).Methods("POST")
	api.HandleFunc("/arrivals/{id}/quality-checks", h.Arrivals.ListQualityChecks).Methods("GET")
	api.HandleFunc("/arrivals/{id}/quality-checks", h.Arrivals.SubmitQualityChecks).Methods("POST")
	api.HandleFunc("/arrivals/{id}/putaway", h.Arrivals.CompletePutaway).Methods("POST")

	api.HandleFunc("/deliveries", h.Delivery.List).Methods("GET")
	api.HandleFunc("/deliveries", h.Delivery.Create).Methods("POST")
	api.HandleFunc("/deliveries/{id}", h.Delivery.Get).Methods("GET")
	api.HandleFunc("/deliveries/{id}/status", h.Delivery.UpdateStatus).Methods("POST")
	api.HandleFunc("/deliveries/{id}/position", h.Delivery.UpdatePosition).Methods("POST")
	api.HandleFunc("/delivery-stops/{stopID}/status", h.Delivery.UpdateStopStatus).Methods("POST")

	// Invoicing is restricted to admins and supervisors
	invoices := r.PathPrefix("/api/invoices").Subrouter()
	invoices.Use(authMw.RequireRole("admin", "supervisor"))
	invoices.HandleFunc("", h.Invoices.List).Methods("GET")
	invoices.HandleFunc("", h.Invoices.Create).Methods("POST")
	invoices.HandleFunc("/{id}", h.Invoices.Get).Methods("GET")
	invoices.HandleFunc("/{id}/mark-paid", h.Invoices.MarkPaid).Methods("POST")
	invoices.HandleFunc("/{id}/pdf", h.Invoices.PDF).Methods("GET")

	api.HandleFunc("/reports/occupancy/{id}", h.Reports.Occupancy).Methods("GET")
	api.HandleFunc("/reports/section-inventory/{id}", h.Reports.SectionInventory).Methods("GET")
	api.HandleFunc("/reports/arrivals", h.Reports.Arrivals).Methods("GET")

	// Live delivery tracking
	r.HandleFunc("/ws/deliveries/{id}", hub.ServeWS)

	return middleware.NewCORS(cfg)(r)
}
