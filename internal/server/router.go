package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"tutorlink/internal/dto"
	"tutorlink/internal/order"
	"tutorlink/internal/tags"
)

// NewRouter builds the HTTP routes. requestTimeout bounds every request,
// including a submit waiting on the orders service.
func NewRouter(orderModule *order.Module, tagsCtrl *tags.Controller, allowedOrigins []string, requestTimeout time.Duration, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(requestTimeout))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", health)

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		r.Get("/tags", tagsCtrl.HandleListTags)
		r.Get("/grades", tagsCtrl.HandleListGrades)

		r.Route("/drafts", func(r chi.Router) {
			r.Post("/", orderModule.Drafts.Open)
			r.Get("/{draftId}", orderModule.Drafts.Get)
			r.Patch("/{draftId}", orderModule.Drafts.Update)
			r.Delete("/{draftId}", orderModule.Drafts.Close)
			r.Post("/{draftId}/submit", orderModule.Drafts.Submit)
		})

		r.Get("/orders", orderModule.Orders.List)
		r.Get("/orders/{orderId}", orderModule.Orders.Get)
		r.Put("/orders/{orderId}", orderModule.Orders.Update)
		r.Get("/orders/{orderId}/response", orderModule.Orders.CurrentResponse)
	})

	return r
}

func health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, dto.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// requestLogger logs one line per request with its status and duration.
func requestLogger(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info("http request",
				zap.String("requestId", chimiddleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int64("durationMs", time.Since(start).Milliseconds()),
			)
		})
	}
}
