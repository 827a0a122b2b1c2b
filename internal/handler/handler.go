package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/iurnickita/iptvshop/internal/auth"
	"github.com/iurnickita/iptvshop/internal/handler/config"
	"github.com/iurnickita/iptvshop/internal/logger"
	"github.com/iurnickita/iptvshop/internal/model"
	"github.com/iurnickita/iptvshop/internal/service"
)

const (
	maxBodySize     = 1 << 20
	shutdownTimeout = 10 * time.Second
)

// Serve слушает адрес до отмены ctx, затем мягко останавливает сервер.
func Serve(ctx context.Context, cfg config.Config, auth auth.Auth, service service.Service, zaplog *zap.Logger) error {
	h := newHandler(auth, service, zaplog)

	srv := &http.Server{
		Addr:        cfg.ServerAddr,
		Handler:     h.newRouter(),
		ReadTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zaplog.Info("starting server", zap.String("addr", cfg.ServerAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zaplog.Info("shutting down server")
	ctxShut, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(ctxShut)
}

type handler struct {
	auth    auth.Auth
	service service.Service
	zaplog  *zap.Logger
}

func newHandler(auth auth.Auth, service service.Service, zaplog *zap.Logger) *handler {
	return &handler{
		auth:    auth,
		service: service,
		zaplog:  zaplog,
	}
}

func (h *handler) newRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(logger.RequestLogMdlw(h.zaplog))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, response{Status: statusError, Message: "Not Found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, response{Status: statusError, Message: "Method Not Allowed"})
	})

	r.Get("/healthz", h.GetHealth)
	// подпись проверяется только у POST: прочие методы отсекаются раньше
	r.With(h.auth.Middleware).Post("/api/webhooks/{flow}/{shape}", h.PostWebhook)

	return r
}

const (
	statusSuccess = "success"
	statusError   = "error"
)

type response struct {
	Status  string       `json:"status"`
	Message string       `json:"message"`
	Data    *fulfillment `json:"data,omitempty"`
}

type fulfillment struct {
	Reference    string `json:"reference"`
	Provisioning string `json:"provisioning"`
	Notified     bool   `json:"notified"`
}

func (h *handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, response{Status: statusSuccess, Message: "ok"})
}

func (h *handler) PostWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeJSON(w, http.StatusRequestEntityTooLarge, response{Status: statusError, Message: "request body too large"})
			return
		}
		writeJSON(w, http.StatusBadRequest, response{Status: statusError, Message: err.Error()})
		return
	}

	req := service.Request{
		Flow:    model.Flow(chi.URLParam(r, "flow")),
		Shape:   model.Shape(chi.URLParam(r, "shape")),
		Payload: payload,
	}
	outcome, err := h.service.Fulfill(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnsupported):
			writeJSON(w, http.StatusNotFound, response{Status: statusError, Message: err.Error()})
		case errors.Is(err, service.ErrMalformedPayload),
			errors.Is(err, service.ErrValidation),
			errors.Is(err, service.ErrDuplicateRequest):
			writeJSON(w, http.StatusBadRequest, response{Status: statusError, Message: err.Error()})
		default:
			h.zaplog.Error("fulfillment failed",
				zap.String("provider", auth.Provider(r.Context())),
				zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, response{Status: statusError, Message: "internal error"})
		}
		return
	}

	message := "Order processed successfully"
	if outcome.Flow == model.FlowTrial {
		message = "Trial request processed successfully"
	}
	writeJSON(w, http.StatusOK, response{
		Status:  statusSuccess,
		Message: message,
		Data: &fulfillment{
			Reference:    outcome.Reference,
			Provisioning: string(outcome.Provisioning.Outcome),
			Notified:     outcome.Notified,
		},
	})
}

func writeJSON(w http.ResponseWriter, code int, resp response) {
	responseJSON, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(responseJSON)
}
