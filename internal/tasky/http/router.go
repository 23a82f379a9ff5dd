package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/taskyhq/tasky/internal/tasky/service"
	"github.com/taskyhq/tasky/internal/tasky/store"
	"github.com/taskyhq/tasky/pkg/httpx"
	"github.com/taskyhq/tasky/pkg/jwtx"
	"github.com/taskyhq/tasky/pkg/slogx"

	_ "github.com/taskyhq/tasky/api" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store          store.Store
	AccountService *service.AccountService
	TaskService    *service.TaskService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Default middleware chain applies to every route.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerTasks()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
//
//	@title			Tasky API
//	@version		0.1.0
//	@description	Task-tracking backend with XP and streak rewards. Users own their
//	@description	tasks exclusively; completing a task grants its XP and bumps the streak.
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:5000
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT identity token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	signupHandler := &SignupHandler{AccountService: r.AccountService}
	loginHandler := &LoginHandler{AccountService: r.AccountService}

	// Both endpoints accept credentials, so they get the strict per-IP
	// limit to slow down brute force and enumeration attempts.
	r.Mux.Handle("POST /api/auth/signup",
		httpx.Chain(signupHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /api/auth/login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerTasks() {
	create := &TaskCreateHandler{TaskService: r.TaskService}
	list := &TaskListHandler{TaskService: r.TaskService}
	get := &TaskGetHandler{TaskService: r.TaskService}
	update := &TaskUpdateHandler{TaskService: r.TaskService}
	del := &TaskDeleteHandler{TaskService: r.TaskService}
	complete := &TaskCompleteHandler{TaskService: r.TaskService}

	// Every task route runs behind the auth gate: token verification, then
	// identity resolution against the account store.
	secured := func(h http.Handler) http.Handler {
		return httpx.Chain(h,
			httpx.AuthnMiddleware(r.verifier),
			r.withIdentity(),
			httpx.RateLimitByUser(httpx.LenientLimit),
		)
	}

	r.Mux.Handle("POST /api/tasks", secured(create))
	r.Mux.Handle("GET /api/tasks", secured(list))
	r.Mux.Handle("GET /api/tasks/{id}", secured(get))
	r.Mux.Handle("PUT /api/tasks/{id}", secured(update))
	r.Mux.Handle("DELETE /api/tasks/{id}", secured(del))
	r.Mux.Handle("POST /api/tasks/{id}/complete", secured(complete))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /{$}",
		httpx.Chain(LivezHandler(),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}
