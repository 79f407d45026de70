package http

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"financas/internal/interpreter"
	"financas/internal/log"
	"financas/internal/middleware/ratelimit"
	"financas/internal/middleware/security"
	"financas/internal/middleware/trace"
	"financas/internal/store"
)

const maxBodyBytes = 64 << 10

// TokenVerifier resolves a dashboard token to its owner.
type TokenVerifier interface {
	Verify(token string) (owner string, err error)
}

// Deps are the collaborators the HTTP surface needs. Tokens, Ready and
// TrustedProxies are optional.
type Deps struct {
	Interpreter        *interpreter.Interpreter
	Store              store.Store
	Tokens             TokenVerifier
	Ready              func(context.Context) error
	Logger             *log.Logger
	RateLimitPerMinute int
	TrustedProxies     []string
	Now                func() time.Time
}

type Server struct {
	http.Server
	interp  *interpreter.Interpreter
	store   store.Store
	tokens  TokenVerifier
	ready   func(context.Context) error
	logger  *log.Logger
	limiter *ratelimit.Limiter
	now     func() time.Time

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, d Deps) (*Server, error) {
	logger := d.Logger
	if logger == nil {
		logger = log.Discard()
	}
	now := d.Now
	if now == nil {
		now = time.Now
	}

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		interp:  d.Interpreter,
		store:   d.Store,
		tokens:  d.Tokens,
		ready:   d.Ready,
		logger:  logger.WithComponent(log.ComponentHTTP),
		limiter: ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: d.RateLimitPerMinute}),
		now:     now,
	}
	ips, err := security.NewIPResolver(d.TrustedProxies...)
	if err != nil {
		s.limiter.Stop()
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	s.Handler = s.routes(ips)
	return s, nil
}

func (s *Server) routes(ips *security.IPResolver) http.Handler {
	tracer := trace.NewMiddleware(s.logger, ips.ClientIP)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(tracer.Middleware)
	r.Use(log.Middleware(s.logger, trace.RequestIDFromRequest))
	r.Use(security.Headers(security.DefaultHeadersConfig()))
	r.Use(cors)

	r.Get("/", s.handleRoot)
	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.With(s.limiter.Middleware(senderKey, s.handleLimited)).Post("/whatsapp", s.handleWhatsApp)

	r.Route("/api", func(r chi.Router) {
		r.Post("/transacoes", s.handleCreateTransaction)
		r.Get("/transacoes/{userId}", s.handleListTransactions)
		r.Delete("/transacoes/{id}", s.handleDeleteTransaction)
		r.Post("/quick", s.handleQuick)
		r.Get("/dashboard", s.handleDashboard)
	})
	return r
}

// Shutdown stops the limiter and drains the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.limiter.Stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

// cors allows any origin; the dashboard frontend is served elsewhere.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Origin, X-Requested-With, Content-Type, Accept, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
