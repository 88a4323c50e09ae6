package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/marmos91/indexfs/internal/logger"
	"github.com/marmos91/indexfs/pkg/api/handlers"
	apimw "github.com/marmos91/indexfs/pkg/api/middleware"
	"github.com/marmos91/indexfs/pkg/registry"
)

// NewRouter creates the chi router with middleware and routes.
//
// Routes:
//   - GET  /health                                   liveness
//   - GET  /health/ready                             readiness (503 without disks)
//   - GET  /api/v1/disks                             list disks
//   - POST /api/v1/disks                             create disk
//   - GET  /api/v1/disks/{disk}                      disk usage
//   - DELETE /api/v1/disks/{disk}                    remove disk
//   - GET  /api/v1/disks/{disk}/blocks               free block map
//   - GET  /api/v1/disks/{disk}/files                inode table
//   - POST /api/v1/disks/{disk}/files                create file
//   - GET  /api/v1/disks/{disk}/files/{name}         inode
//   - DELETE /api/v1/disks/{disk}/files/{name}       delete file
//   - GET  /api/v1/disks/{disk}/files/{name}/content read content
//   - PUT  /api/v1/disks/{disk}/files/{name}/content write content
func NewRouter(registry *registry.Registry) http.Handler {
	r := chi.NewRouter()

	// Middleware stack - order matters
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(apimw.LogContext)
	r.Use(apimw.Trace)

	healthHandler := handlers.NewHealthHandler(registry)
	r.Route("/health", func(r chi.Router) {
		r.Get("/", healthHandler.Liveness)
		r.Get("/ready", healthHandler.Readiness)
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/health", http.StatusTemporaryRedirect)
	})

	if registry == nil {
		return r
	}

	diskHandler := handlers.NewDiskHandler(registry)
	fileHandler := handlers.NewFileHandler(registry)

	r.Route("/api/v1/disks", func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))

		r.Get("/", diskHandler.List)
		r.Post("/", diskHandler.Create)

		r.Route("/{disk}", func(r chi.Router) {
			r.Get("/", diskHandler.Get)
			r.Delete("/", diskHandler.Delete)
			r.Get("/blocks", diskHandler.Blocks)

			r.Route("/files", func(r chi.Router) {
				r.Get("/", fileHandler.List)
				r.Post("/", fileHandler.Create)
				r.Get("/{name}", fileHandler.Get)
				r.Delete("/{name}", fileHandler.Delete)
				r.Get("/{name}/content", fileHandler.ReadContent)
				r.Put("/{name}/content", fileHandler.WriteContent)
			})
		})
	})

	return r
}

// requestLogger logs each request at DEBUG on arrival and INFO on completion.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := middleware.GetReqID(r.Context())

		logger.Debug("API request started",
			logger.KeyRequestID, requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
		)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		logger.Info("API request completed",
			logger.KeyRequestID, requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			logger.KeyBytes, ww.BytesWritten(),
			logger.KeyDurationMs, float64(time.Since(start).Microseconds())/1000.0,
		)
	})
}
