package webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/aresleonardo123/dashboard-trl/internal/pipeline"
)

// Refresher refetches and rescores the dataset. pipeline.Service implements it.
type Refresher interface {
	Refresh(ctx context.Context, trigger string) (*pipeline.Dataset, error)
}

// Handler processes submission notifications.
type Handler struct {
	secret    []byte
	formID    string
	refresher Refresher
	logger    *zap.Logger
}

// NewHandler creates a webhook Handler. Events for forms other than formID
// are acknowledged and ignored; an empty formID accepts every form.
func NewHandler(secret []byte, formID string, refresher Refresher, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		secret:    secret,
		formID:    formID,
		refresher: refresher,
		logger:    logger,
	}
}

// ServeHTTP handles incoming webhook requests.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	if err := VerifySignature(body, r.Header.Get(SignatureHeader), h.secret); err != nil {
		h.logger.Warn("webhook signature verification failed", zap.Error(err))
		http.Error(w, "invalid signature", http.StatusUnauthorized)
		return
	}

	event, err := ParseEvent(body)
	if err != nil {
		h.logger.Warn("webhook parse error", zap.Error(err))
		http.Error(w, "invalid event", http.StatusBadRequest)
		return
	}

	if h.formID != "" && event.FormID != h.formID {
		h.logger.Debug("ignoring submission for other form", zap.String("form_id", event.FormID))
		writeAccepted(w, "ignored")
		return
	}

	if _, err := h.refresher.Refresh(r.Context(), pipeline.TriggerWebhook); err != nil {
		h.logger.Error("refresh after submission failed",
			zap.String("entry_id", event.EntryID),
			zap.Error(err),
		)
		http.Error(w, "refresh failed", http.StatusBadGateway)
		return
	}

	h.logger.Info("refreshed dataset after submission", zap.String("entry_id", event.EntryID))
	writeAccepted(w, "refreshed")
}

func writeAccepted(w http.ResponseWriter, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": status})
}
