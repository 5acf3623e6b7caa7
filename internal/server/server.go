package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/CrateBot_Go/internal/command"
	"github.com/osse101/CrateBot_Go/internal/crate"
	"github.com/osse101/CrateBot_Go/internal/handler"
	"github.com/osse101/CrateBot_Go/internal/listener"
	"github.com/osse101/CrateBot_Go/internal/logger"
	"github.com/osse101/CrateBot_Go/internal/metrics"
	"github.com/osse101/CrateBot_Go/internal/player"
	"github.com/osse101/CrateBot_Go/internal/prize"
	"github.com/osse101/CrateBot_Go/internal/prompt"
	"github.com/osse101/CrateBot_Go/internal/sse"
)

// Services are the application services exposed over HTTP
type Services struct {
	Players  player.Service
	Commands command.Service
	Prompts  prompt.Service
	Menus    listener.Service
	Crates   crate.Service
	Prizes   prize.Service
	// Events streams bus events over SSE; the route is omitted when nil
	Events *sse.Hub
}

// Config holds the HTTP server settings
type Config struct {
	Port           int
	APIKey         string
	TrustedProxies []string
	Detector       DetectorConfig
}

type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance
func NewServer(cfg Config, db handler.Pinger, svc Services) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           NewRouter(cfg, db, svc),
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
	}
}

// NewRouter builds the routing tree. Middleware runs outermost first.
func NewRouter(cfg Config, db handler.Pinger, svc Services) http.Handler {
	detector := NewActivityDetector(cfg.Detector)

	r := chi.NewRouter()
	r.Use(SecurityHeadersMiddleware())
	r.Use(loggingMiddleware)
	r.Use(AuthMiddleware(cfg.APIKey, cfg.TrustedProxies, detector))
	r.Use(RateLimitMiddleware(cfg.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBytes))
	r.Use(metrics.Middleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(db))
	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	menuHandler := handler.NewMenuHandler(svc.Menus, svc.Players)
	crateHandler := handler.NewCrateHandler(svc.Crates, svc.Prizes)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/players", func(r chi.Router) {
			r.Post("/register", handler.HandleRegisterPlayer(svc.Players))
			r.Post("/presence", handler.HandlePresence(svc.Players, svc.Prompts, svc.Menus))
			r.Get("/{name}", handler.HandleGetPlayer(svc.Players))
			r.Put("/{name}/inventory", handler.HandleSyncInventory(svc.Players))
		})

		r.Post("/commands", handler.HandleRunCommand(svc.Commands, svc.Players))
		r.Get("/commands/complete", handler.HandleComplete(svc.Commands, svc.Players))
		r.Post("/chat", handler.HandleChat(svc.Prompts, svc.Players))

		r.Route("/menu", func(r chi.Router) {
			r.Post("/click", menuHandler.HandleClick)
			r.Post("/drag", menuHandler.HandleDrag)
			r.Post("/close", menuHandler.HandleClose)
			r.Get("/{viewer}", menuHandler.HandleView)
		})

		r.Route("/crates", func(r chi.Router) {
			r.Get("/", crateHandler.HandleListCrates)
			r.Route("/{crate}/prizes/{slot}", func(r chi.Router) {
				r.Get("/", crateHandler.HandleGetPrize)
				r.Post("/tags", crateHandler.HandleSwitchTag)
				r.Post("/chance", crateHandler.HandleChangeChance)
				r.Post("/rarity", crateHandler.HandleChangeRarity)
				r.Post("/skin", crateHandler.HandleChangeSkin)
			})
		})

		if svc.Events != nil {
			r.Get("/events", sse.Handler(svc.Events))
		}
	})

	return r
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// Flush lets streaming handlers push data through the wrapper
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// loggingMiddleware attaches a request id to the context and logs each request.
// A caller supplied X-Request-ID is kept so the bot and the API share ids.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		requestID := r.Header.Get(HeaderRequestID)
		if requestID == "" {
			requestID = logger.GenerateRequestID()
		}
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)
		w.Header().Set(HeaderRequestID, requestID)

		log := logger.FromContext(ctx)
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength)
		log.Debug(LogMsgRequestHeaders, "headers", redactHeaders(r.Header))

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

func redactHeaders(h http.Header) http.Header {
	out := make(http.Header, len(h))
	for k, v := range h {
		if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
			out[k] = []string{RedactedValue}
			continue
		}
		out[k] = v
	}
	return out
}

// Start serves until Stop is called; http.ErrServerClosed then signals a clean stop
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
