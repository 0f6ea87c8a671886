package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/myit/inventory/internal/auth"
	"github.com/myit/inventory/internal/imaging"
	"github.com/myit/inventory/internal/model"
)

// Options tunes the router.
type Options struct {
	// DBPath is reported by the health check.
	DBPath string
	// CORSOrigin is the allowed browser origin; empty disables CORS headers.
	CORSOrigin string
	// MaxBodyBytes caps JSON request bodies.
	MaxBodyBytes int64
	// Images processes uploaded asset photos.
	Images *imaging.Processor
	// Now is the dashboard clock. Defaults to time.Now.
	Now func() time.Time
}

// NewRouter creates the HTTP handler with all endpoints registered.
func NewRouter(db *sql.DB, sessions *auth.Sessions, opts Options) http.Handler {
	if opts.Images == nil {
		opts.Images = imaging.NewProcessor(1024)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, Sessions: sessions, MaxBodyBytes: opts.MaxBodyBytes}
	usersHandler := &UsersHandler{DB: db, Sessions: sessions, MaxBodyBytes: opts.MaxBodyBytes}
	assetsHandler := &AssetsHandler{DB: db, Images: opts.Images, MaxBodyBytes: opts.MaxBodyBytes}
	dashboardHandler := &DashboardHandler{DB: db, Now: opts.Now}
	healthHandler := &HealthHandler{DBPath: opts.DBPath}

	authMW := AuthMiddleware(sessions)
	anyRole := RequireRole(model.Roles...)
	writers := RequireRole(model.RoleSuperadmin, model.RoleEditor)
	superadmin := RequireRole(model.RoleSuperadmin)

	guard := func(role func(http.Handler) http.Handler, h http.HandlerFunc) http.Handler {
		return authMW(role(h))
	}

	// Public.
	mux.HandleFunc("GET /{$}", healthHandler.Check)
	mux.HandleFunc("POST /api/login", authHandler.Login)
	mux.HandleFunc("POST /api/logout", authHandler.Logout)

	// Users (superadmin only).
	mux.Handle("GET /api/users", guard(superadmin, usersHandler.List))
	mux.Handle("POST /api/users", guard(superadmin, usersHandler.Create))
	mux.Handle("PUT /api/users/{id}", guard(superadmin, usersHandler.Update))
	mux.Handle("DELETE /api/users/{id}", guard(superadmin, usersHandler.Delete))

	// Dashboard and assets: read (all roles), write (superadmin, editor).
	mux.Handle("GET /api/dashboard", guard(anyRole, dashboardHandler.Stats))
	mux.Handle("GET /api/assets", guard(anyRole, assetsHandler.List))
	mux.Handle("POST /api/assets", guard(writers, assetsHandler.Create))
	mux.Handle("GET /api/assets/{id}", guard(anyRole, assetsHandler.Get))
	mux.Handle("PUT /api/assets/{id}", guard(writers, assetsHandler.Update))
	mux.Handle("DELETE /api/assets/{id}", guard(writers, assetsHandler.Delete))
	mux.Handle("GET /api/assets/{id}/image", guard(anyRole, assetsHandler.GetImage))
	mux.Handle("PUT /api/assets/{id}/image", guard(writers, assetsHandler.UploadImage))

	return RecoverMiddleware(CORSMiddleware(opts.CORSOrigin)(mux))
}
