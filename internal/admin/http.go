package admin

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	httpmiddleware "github.com/saafhawa/petition/internal/http/middleware"
	"github.com/saafhawa/petition/internal/petition"
	"github.com/saafhawa/petition/internal/service"
)

// Handler serves the admin surface: login/logout plus the gated
// query/delete/export operations over the signature store.
type Handler struct {
	auth      *service.AdminAuthService
	petitions *petition.Service
}

// NewHandler creates the admin handler.
func NewHandler(auth *service.AdminAuthService, petitions *petition.Service) *Handler {
	return &Handler{auth: auth, petitions: petitions}
}

// RegisterPublicRoutes mounts the unauthenticated admin routes.
func (h *Handler) RegisterPublicRoutes(r chi.Router) {
	r.Post("/admin/login", h.handleLogin)
}

// RegisterProtectedRoutes mounts routes that require a valid bearer token;
// the caller applies the auth middleware.
func (h *Handler) RegisterProtectedRoutes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Post("/logout", h.handleLogout)
		r.Get("/signatures", h.handleListSignatures)
		r.Get("/stats", h.handleStats)
		r.Delete("/signature/{id}", h.handleDeleteSignature)
		r.Get("/export-csv", h.handleExportCSV)
	})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "invalid request body", nil)
		return
	}

	result, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "AUTH", "invalid credentials", nil)
			return
		}
		log.Error().Err(err).Msg("admin login failed")
		writeError(w, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	jti := httpmiddleware.GetTokenID(r.Context())
	if err := h.auth.Logout(r.Context(), jti); err != nil {
		log.Error().Err(err).Msg("admin logout failed")
		writeError(w, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func (h *Handler) handleListSignatures(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	dateFrom, err := parseDateParam(q.Get("date_from"), false)
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "invalid date_from", nil)
		return
	}
	dateTo, err := parseDateParam(q.Get("date_to"), true)
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "invalid date_to", nil)
		return
	}

	result, err := h.petitions.List(r.Context(), page, limit, q.Get("search"), dateFrom, dateTo)
	if err != nil {
		h.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.petitions.AdminStats(r.Context())
	if err != nil {
		h.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) handleDeleteSignature(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "signature not found", nil)
		return
	}

	if err := h.petitions.Delete(r.Context(), id); err != nil {
		h.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "signature deleted"})
}

func (h *Handler) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	signatures, err := h.petitions.ExportAll(r.Context())
	if err != nil {
		h.handleDomainError(w, err)
		return
	}

	filename := fmt.Sprintf("petition_signatures_%s.csv", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.WriteHeader(http.StatusOK)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"signature_number", "name", "phone", "email", "state", "timestamp"})

	for _, sig := range signatures {
		email, state := "", ""
		if sig.Email != nil {
			email = *sig.Email
		}
		if sig.State != nil {
			state = *sig.State
		}
		_ = cw.Write([]string{
			strconv.FormatInt(sig.SignatureNumber, 10),
			sig.Name,
			sig.Phone,
			email,
			state,
			sig.CreatedAt.Format(time.RFC3339),
		})
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		log.Error().Err(err).Msg("csv export write failed")
	}
}

func (h *Handler) handleDomainError(w http.ResponseWriter, err error) {
	var vErr *petition.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeError(w, http.StatusBadRequest, "VALIDATION", vErr.Reason, nil)
	case errors.Is(err, petition.ErrNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "signature not found", nil)
	case errors.Is(err, petition.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, "UNAVAILABLE", "store timeout, try again", nil)
	default:
		log.Error().Err(err).Msg("admin handler error")
		writeError(w, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
	}
}

// parseDateParam parses an ISO date. When endOfDay is set the returned bound
// covers the whole named day.
func parseDateParam(value string, endOfDay bool) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.AddDate(0, 0, 1).Add(-time.Second)
	}
	return &t, nil
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"data": data, "error": nil})
}

func writeError(w http.ResponseWriter, status int, code, message string, details any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"data": nil,
		"error": map[string]any{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}
