package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/dtroode/studypartner-auth/internal/api/http/handler"
	"github.com/dtroode/studypartner-auth/internal/api/http/middleware"
	"github.com/dtroode/studypartner-auth/internal/api/http/response"
	"github.com/dtroode/studypartner-auth/internal/logger"
	"github.com/dtroode/studypartner-auth/internal/model"
)

// Instrumenter records request metrics and serves them.
type Instrumenter interface {
	Instrument(next http.Handler) http.Handler
	Handler() http.Handler
}

// Options holds the HTTP policies applied to every route.
type Options struct {
	CORSOrigins   []string
	MaxBodyBytes  int64
	PerMinute     int
	Burst         int
	AuthPerMinute int
	AuthBurst     int
	// TrustProxy takes the client address from X-Forwarded-For/X-Real-IP.
	// Enable only behind a proxy that overwrites those headers.
	TrustProxy bool
}

// Router wires handlers and middleware into a chi mux.
type Router struct {
	authService    handler.AuthService
	roleService    handler.RoleService
	authenticator  middleware.Authenticator
	pinger         handler.Pinger
	metrics        Instrumenter
	contextManager model.ContextManager
	options        Options
	logger         *logger.Logger
}

// New creates new HTTP Router instance.
func New(
	authService handler.AuthService,
	roleService handler.RoleService,
	authenticator middleware.Authenticator,
	pinger handler.Pinger,
	metrics Instrumenter,
	contextManager model.ContextManager,
	options Options,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		roleService:    roleService,
		authenticator:  authenticator,
		pinger:         pinger,
		metrics:        metrics,
		contextManager: contextManager,
		options:        options,
		logger:         logger,
	}
}

// Register builds the route tree.
func (r *Router) Register() http.Handler {
	mux := chi.NewRouter()

	logging := middleware.NewLogging(r.logger)
	generalLimit := middleware.NewRateLimiter(r.options.PerMinute, r.options.Burst, r.logger)
	authLimit := middleware.NewRateLimiter(r.options.AuthPerMinute, r.options.AuthBurst, r.logger)
	authenticate := middleware.NewAuthenticate(r.authenticator, r.contextManager, r.logger)
	rbac := middleware.NewRBAC(r.contextManager, r.logger)
	adminOnly := rbac.RequireRoles(model.RoleAdmin)

	mux.Use(chimw.RequestID)
	if r.options.TrustProxy {
		mux.Use(chimw.RealIP)
	}
	mux.Use(
		logging.Handle,
		chimw.Recoverer,
		r.metrics.Instrument,
		middleware.CORS(r.options.CORSOrigins),
		middleware.MaxBodyBytes(r.options.MaxBodyBytes),
	)

	mux.NotFound(func(w http.ResponseWriter, req *http.Request) {
		response.JSON(w, http.StatusNotFound, response.Envelope{Success: false, Message: "route not found", Code: "not_found"})
	})
	mux.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		response.JSON(w, http.StatusMethodNotAllowed, response.Envelope{Success: false, Message: "method not allowed", Code: "method_not_allowed"})
	})

	health := handler.NewHealth(r.pinger, r.logger)
	mux.Get("/health", health.Live)
	mux.Get("/health/ready", health.Ready)
	mux.Method(http.MethodGet, "/metrics", r.metrics.Handler())

	auth := handler.NewAuth(r.authService, r.contextManager, r.logger)
	roles := handler.NewRole(r.roleService, r.contextManager, r.logger)
	users := handler.NewUser(r.authService, r.roleService, r.contextManager, r.logger)

	mux.Group(func(mux chi.Router) {
		mux.Use(generalLimit.Handle)

		mux.Route("/auth", func(ar chi.Router) {
			ar.Group(func(ar chi.Router) {
				ar.Use(authLimit.Handle)
				ar.Post("/register", auth.Register)
				ar.Post("/login", auth.Login)
				ar.Post("/refresh", auth.Refresh)
			})
			ar.Post("/logout", auth.Logout)

			ar.Group(func(ar chi.Router) {
				ar.Use(authenticate.Handle)
				ar.Post("/logout-all", auth.LogoutAll)
				ar.Get("/me", auth.Me)
				ar.Put("/password", auth.ChangePassword)
			})
		})

		mux.Route("/roles", func(rr chi.Router) {
			rr.Use(authenticate.Handle)
			rr.Get("/", roles.List)
			rr.With(adminOnly).Post("/", roles.Create)
			rr.With(adminOnly).Delete("/{id}", roles.Delete)
		})

		mux.Route("/users/{id}", func(ur chi.Router) {
			ur.Use(authenticate.Handle)
			ur.With(rbac.RequireOwnerOrAdmin(middleware.URLParamOwner("id"))).Get("/roles", users.Roles)
			ur.With(adminOnly).Post("/roles", users.AssignRole)
			ur.With(adminOnly).Delete("/roles/{roleId}", users.UnassignRole)
			ur.With(adminOnly).Put("/status", users.SetStatus)
		})
	})

	return mux
}
