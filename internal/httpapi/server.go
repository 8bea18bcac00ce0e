package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"profanityd/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	ListModels() []types.Model
	Health() types.HealthResponse
	Predict(ctx context.Context, text, model string) (types.PredictResponse, error)
	SwitchActive(ctx context.Context, name string) (string, error)
	Ready() bool
}

// BusyError is implemented by errors that mean "a model is loading, retry".
// Handlers count those separately.
type BusyError interface {
	Busy() bool
}

func isBusy(err error) bool {
	var be BusyError
	return errors.As(err, &be) && be.Busy()
}

const bannerMessage = "Tagalog Profanity Detection API"

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	if c := corsMiddleware(); c != nil {
		r.Use(c)
	}
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	// @Summary      Service banner
	// @Tags         meta
	// @Produce      json
	// @Success      200  {object}  map[string]string
	// @Router       / [get]
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": bannerMessage})
	})

	// @Summary      List configured models
	// @Tags         models
	// @Produce      json
	// @Success      200  {object}  types.ModelsResponse
	// @Router       /models [get]
	r.Get("/models", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, types.ModelsResponse{Models: svc.ListModels()})
	})

	// @Summary      Service and per-model status
	// @Description  Never triggers a model load.
	// @Tags         meta
	// @Produce      json
	// @Success      200  {object}  types.HealthResponse
	// @Router       /health [get]
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Health())
	})

	// @Summary      Classify text
	// @Tags         predict
	// @Accept       json
	// @Produce      json
	// @Param        body  body      types.PredictRequest  true  "Text and optional model"
	// @Success      200   {object}  types.PredictResponse
	// @Failure      400   {object}  types.ErrorResponse
	// @Failure      415   {object}  types.ErrorResponse
	// @Failure      500   {object}  types.ErrorResponse
	// @Failure      503   {object}  types.ErrorResponse
	// @Router       /predict [post]
	r.Post("/predict", func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lvl := requestLogLevel(r)
		ct := r.Header.Get("Content-Type")
		if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
			writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		var req types.PredictRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			// MaxBytesReader errors also land here; keep 400 to avoid size leak details
			writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if lvl >= LevelDebug {
			zlog.Debug().Str("model", req.Model).Int("text_len", len(req.Text)).Msg("predict start")
		}

		ctx, cancel := joinContexts(r.Context(), serverBaseCtx)
		defer cancel()
		resp, err := svc.Predict(ctx, req.Text, req.Model)
		if err != nil {
			status := statusFor(err)
			if isBusy(err) {
				IncrementBusy(routePatternOrPath(r))
			}
			writeJSONError(w, status, err.Error())
			logEnd(r, lvl, "predict end", status, start, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
		logEnd(r, lvl, "predict end", http.StatusOK, start, nil)
	})

	// @Summary      Switch the active model
	// @Description  Loads the model first when needed. The active model is unchanged on failure.
	// @Tags         models
	// @Produce      json
	// @Param        name  path      string  true  "Model name"
	// @Success      200   {object}  types.SwitchResponse
	// @Failure      400   {object}  types.ErrorResponse
	// @Failure      500   {object}  types.ErrorResponse
	// @Failure      503   {object}  types.ErrorResponse
	// @Router       /switch-model/{name} [post]
	r.Post("/switch-model/{name}", func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lvl := requestLogLevel(r)
		name := chi.URLParam(r, "name")

		ctx, cancel := joinContexts(r.Context(), serverBaseCtx)
		defer cancel()
		prev, err := svc.SwitchActive(ctx, name)
		if err != nil {
			status := statusFor(err)
			if isBusy(err) {
				IncrementBusy(routePatternOrPath(r))
			}
			writeJSONError(w, status, err.Error())
			logEnd(r, lvl, "switch end", status, start, err)
			return
		}
		writeJSON(w, http.StatusOK, types.SwitchResponse{
			Message:       "Successfully switched to " + name + " model",
			ActiveModel:   name,
			PreviousModel: prev,
		})
		logEnd(r, lvl, "switch end", http.StatusOK, start, nil)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("loading"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)

	return r
}
