package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/linkmark/linkmark/internal/auth/service"
	"github.com/linkmark/linkmark/internal/auth/store"
	"github.com/linkmark/linkmark/pkg/httpx"
	"github.com/linkmark/linkmark/pkg/jwtx"
	"github.com/linkmark/linkmark/pkg/slogx"

	_ "github.com/linkmark/linkmark/api/auth" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	signer       *jwtx.Signer
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store               store.Store
	RegistrationService *service.RegistrationService
	AuthService         *service.AuthService
}

func NewRouter(signer *jwtx.Signer, buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		signer:       signer,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler and applies the global middleware chain.
//
//	@title			linkmark Auth Service API
//	@version		0.1.0
//	@description	Self-hosted credential and session service for the linkmark bookmark manager.
//	@description	Sessions are HS256-signed bearer tokens valid for two hours; logout is client-side.
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	// Credential endpoints get the strict per-IP limit: they are the brute
	// force and account-enumeration surface.
	r.Mux.Handle("POST /v1/auth/register",
		httpx.Chain(&RegisterHandler{Registration: r.RegistrationService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(&LoginHandler{Auth: r.AuthService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("POST /v1/auth/logout",
		httpx.Chain(&LogoutHandler{Auth: r.AuthService},
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerUsers() {
	secured := httpx.Chain(&MeHandler{Store: r.store},
		httpx.AuthnMiddleware(r.signer),
		httpx.RateLimitByUser(httpx.LenientLimit),
	)

	r.Mux.Handle("GET /v1/me", secured)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.signer))
}
