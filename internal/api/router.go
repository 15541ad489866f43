package api

import (
	"database/sql"
	"net/http"

	"github.com/erazemk/garderoba/internal/metrics"
	"github.com/erazemk/garderoba/internal/model"
	"github.com/erazemk/garderoba/internal/wardrobe"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, wrd *wardrobe.Wardrobe, jwtSecret string) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret}
	usersHandler := &UsersHandler{DB: db}
	garmentsHandler := &GarmentsHandler{DB: db, Wardrobe: wrd}
	scannersHandler := &ScannersHandler{Wardrobe: wrd}
	scanHandler := &ScanHandler{DB: db, Wardrobe: wrd}
	eventsHandler := &EventsHandler{Notifier: wrd.Notifier()}

	authMW := AuthMiddleware(jwtSecret, db)
	requireAdmin := RequireRole(model.RoleAdmin)

	// Public: login, device scan intake, metrics.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/scan", scanHandler.Intake)
	mux.Handle("GET /metrics", metrics.Handler())

	// Authenticated routes.
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("PUT /api/auth/password", authMW(http.HandlerFunc(authHandler.ChangePassword)))

	// Users (admin only).
	mux.Handle("GET /api/users", authMW(requireAdmin(http.HandlerFunc(usersHandler.List))))
	mux.Handle("POST /api/users", authMW(requireAdmin(http.HandlerFunc(usersHandler.Create))))
	mux.Handle("GET /api/users/{id}", authMW(requireAdmin(http.HandlerFunc(usersHandler.Get))))
	mux.Handle("PUT /api/users/{id}", authMW(requireAdmin(http.HandlerFunc(usersHandler.Update))))
	mux.Handle("PUT /api/users/{id}/password", authMW(requireAdmin(http.HandlerFunc(usersHandler.ResetPassword))))
	mux.Handle("DELETE /api/users/{id}", authMW(requireAdmin(http.HandlerFunc(usersHandler.Delete))))

	// Scanners: read (all roles), write (admin).
	mux.Handle("GET /api/scanners", authMW(http.HandlerFunc(scannersHandler.List)))
	mux.Handle("PUT /api/scanners/{id}", authMW(requireAdmin(http.HandlerFunc(scannersHandler.Register))))
	mux.Handle("DELETE /api/scanners/{id}", authMW(requireAdmin(http.HandlerFunc(scannersHandler.Delete))))

	// Garments (all roles).
	mux.Handle("GET /api/garments", authMW(http.HandlerFunc(garmentsHandler.List)))
	mux.Handle("POST /api/garments", authMW(http.HandlerFunc(garmentsHandler.Register)))
	mux.Handle("GET /api/garments/{tag}", authMW(http.HandlerFunc(garmentsHandler.Get)))
	mux.Handle("DELETE /api/garments/{tag}", authMW(http.HandlerFunc(garmentsHandler.Delete)))
	mux.Handle("POST /api/garments/{tag}/state", authMW(http.HandlerFunc(garmentsHandler.ForceState)))
	mux.Handle("POST /api/garments/{tag}/wash", authMW(http.HandlerFunc(garmentsHandler.LogWash)))
	mux.Handle("GET /api/garments/{tag}/history", authMW(http.HandlerFunc(garmentsHandler.GetHistory)))
	mux.Handle("PUT /api/garments/{tag}/image", authMW(http.HandlerFunc(garmentsHandler.UploadImage)))
	mux.Handle("GET /api/garments/{tag}/image", authMW(http.HandlerFunc(garmentsHandler.GetImage)))
	mux.Handle("GET /api/categories", authMW(http.HandlerFunc(garmentsHandler.ListCategories)))

	// Notifications.
	mux.Handle("GET /api/events", authMW(http.HandlerFunc(eventsHandler.Stream)))

	return mux
}
