package petition

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Renderer produces downloadable artifacts for a signature. Output is fully
// buffered so a client disconnect never leaves a partial file visible.
type Renderer interface {
	PetitionPDF(sig *Signature) ([]byte, error)
	PetitionImage(sig *Signature) ([]byte, error)
	Certificate(name string) ([]byte, error)
}

// Handler serves the public petition routes.
type Handler struct {
	service  *Service
	renderer Renderer
}

// NewHandler creates the public handler.
func NewHandler(service *Service, renderer Renderer) *Handler {
	return &Handler{service: service, renderer: renderer}
}

// RegisterRoutes mounts the public petition API. signLimit, when non-nil, is
// the stricter per-IP throttle applied only to submissions.
func (h *Handler) RegisterRoutes(r chi.Router, signLimit func(http.Handler) http.Handler) {
	r.Route("/petition", func(r chi.Router) {
		if signLimit != nil {
			r.With(signLimit).Post("/sign", h.handleSign)
		} else {
			r.Post("/sign", h.handleSign)
		}
		r.Get("/stats", h.handleStats)
		r.Get("/signature/{id}", h.handleGetSignature)
		r.Get("/download-pdf/{id}", h.handleDownloadPDF)
		r.Get("/download-image/{id}", h.handleDownloadImage)
		r.Get("/download-certificate/{id}", h.handleDownloadCertificate)
	})
}

type signRequest struct {
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Mobile string `json:"mobile"`
	Email  string `json:"email"`
	State  string `json:"state"`
}

func (h *Handler) handleSign(w http.ResponseWriter, r *http.Request) {
	var req signRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "invalid request body", nil)
		return
	}

	// The Aravalli variant submits the contact as "mobile".
	phone := req.Phone
	if phone == "" {
		phone = req.Mobile
	}

	sig, err := h.service.Create(r.Context(), CreateSignatureInput{
		Name:  req.Name,
		Phone: phone,
		Email: req.Email,
		State: req.State,
	})
	if err != nil {
		h.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, sig)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.PublicStats(r.Context())
	if err != nil {
		h.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) handleGetSignature(w http.ResponseWriter, r *http.Request) {
	sig, ok := h.fetchSignature(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, sig)
}

func (h *Handler) handleDownloadPDF(w http.ResponseWriter, r *http.Request) {
	sig, ok := h.fetchSignature(w, r)
	if !ok {
		return
	}

	data, err := h.renderer.PetitionPDF(sig)
	if err != nil {
		h.handleDomainError(w, err)
		return
	}

	writeAttachment(w, data, "application/pdf", fmt.Sprintf("petition_%s.pdf", sig.ID))
}

func (h *Handler) handleDownloadImage(w http.ResponseWriter, r *http.Request) {
	sig, ok := h.fetchSignature(w, r)
	if !ok {
		return
	}

	data, err := h.renderer.PetitionImage(sig)
	if err != nil {
		h.handleDomainError(w, err)
		return
	}

	writeAttachment(w, data, "image/png", fmt.Sprintf("petition_%s.png", sig.ID))
}

func (h *Handler) handleDownloadCertificate(w http.ResponseWriter, r *http.Request) {
	sig, ok := h.fetchSignature(w, r)
	if !ok {
		return
	}

	data, err := h.renderer.Certificate(sig.Name)
	if err != nil {
		h.handleDomainError(w, err)
		return
	}

	writeAttachment(w, data, "image/png", fmt.Sprintf("certificate_%s.png", sig.ID))
}

func (h *Handler) fetchSignature(w http.ResponseWriter, r *http.Request) (*Signature, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "signature not found", nil)
		return nil, false
	}

	sig, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.handleDomainError(w, err)
		return nil, false
	}

	return sig, true
}

func (h *Handler) handleDomainError(w http.ResponseWriter, err error) {
	var vErr *ValidationError
	switch {
	case errors.As(err, &vErr):
		writeError(w, http.StatusBadRequest, "VALIDATION", vErr.Reason, nil)
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "signature not found", nil)
	case errors.Is(err, ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, "UNAVAILABLE", "store timeout, try again", nil)
	case errors.Is(err, ErrRender):
		log.Error().Err(err).Msg("render failed")
		writeError(w, http.StatusInternalServerError, "RENDER", "could not generate document", nil)
	default:
		log.Error().Err(err).Msg("petition handler error")
		writeError(w, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
	}
}

func writeAttachment(w http.ResponseWriter, data []byte, contentType, filename string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
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
