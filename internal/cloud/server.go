package cloud

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// MaxPayloadBytes caps the size of an uploaded save
const MaxPayloadBytes = 1 << 20

// Handler serves the save API
type Handler struct {
	store *MemoryStore
	log   *slog.Logger
}

// NewHandler creates a handler over store
func NewHandler(store *MemoryStore, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{store: store, log: log}
}

// Routes mounts the API on r
func (h *Handler) Routes(r chi.Router) {
	r.Get("/healthz", h.Health)
	r.Post("/v1/profiles", h.CreateProfile)
	r.Route("/v1/saves", func(r chi.Router) {
		r.Get("/{key}", h.GetSave)
		r.Put("/{key}", h.PutSave)
		r.Delete("/{key}", h.DeleteSave)
	})
}

// NewRouter builds the full router with the common middleware stack
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(h.requestLog)
	h.Routes(r)
	return r
}

func (h *Handler) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		h.log.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", chimw.GetReqID(r.Context()),
		)
	})
}

// Health reports liveness and the number of stored saves
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "saves": h.store.Len()})
}

// CreateProfile allocates a fresh profile key
func (h *Handler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	key := "tycoon-" + uuid.NewString()
	h.log.Info("profile created", "key", key)
	writeJSON(w, http.StatusCreated, map[string]string{"key": key})
}

// GetSave returns the stored payload verbatim
func (h *Handler) GetSave(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	rec, err := h.store.Get(key)
	if errors.Is(err, ErrNotFound) {
		writeError(w, http.StatusNotFound, "no save for "+key)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Last-Modified", rec.UpdatedAt.Format(http.TimeFormat))
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, rec.Payload)
}

// PutSave stores a JSON payload: 201 when the key is new, 204 on replace
func (h *Handler) PutSave(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxPayloadBytes))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "payload too large")
		return
	}
	if !json.Valid(body) {
		writeError(w, http.StatusBadRequest, "payload is not JSON")
		return
	}

	created := h.store.Put(key, string(body))
	h.log.Debug("save stored", "key", key, "bytes", len(body))
	if created {
		w.WriteHeader(http.StatusCreated)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteSave removes a profile's save
func (h *Handler) DeleteSave(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if err := h.store.Delete(key); err != nil {
		writeError(w, http.StatusNotFound, "no save for "+key)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]any{
			"message": message,
			"code":    status,
		},
	})
}
