package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"eduraksha/internal/eligibility"
	"eduraksha/internal/platform/middleware"
	"eduraksha/pkg/httputil"
)

// Service defines the interface for eligibility operations.
type Service interface {
	Recommendations(ctx context.Context) ([]eligibility.Recommendation, error)
	Profile(ctx context.Context) (eligibility.Profile, error)
	Scholarships(ctx context.Context) ([]eligibility.Scholarship, error)
	ScholarshipByID(ctx context.Context, id string) (*eligibility.Scholarship, error)
	SearchScholarships(ctx context.Context, query string) ([]eligibility.Scholarship, error)
	RefreshCatalog(ctx context.Context) (int, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/scholarships", h.HandleListScholarships)
	r.Get("/scholarships/{id}", h.HandleGetScholarship)
	r.Post("/scholarships/refresh", h.HandleRefreshCatalog)
	r.Post("/eligibility/recommendations", h.HandleRecommendations)
	r.Get("/eligibility/profile", h.HandleProfile)
}

type ScholarshipListResponse struct {
	Count        int                       `json:"count"`
	Scholarships []eligibility.Scholarship `json:"scholarships"`
}

type RecommendationsResponse struct {
	Count           int                          `json:"count"`
	Profile         eligibility.Profile          `json:"profile"`
	Recommendations []eligibility.Recommendation `json:"recommendations"`
}

type RefreshCatalogResponse struct {
	Scholarships int `json:"scholarships"`
}

// HandleListScholarships returns the catalog, filtered by q when present.
func (h *Handler) HandleListScholarships(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	var (
		scholarships []eligibility.Scholarship
		err          error
	)
	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		scholarships, err = h.service.SearchScholarships(ctx, q)
	} else {
		scholarships, err = h.service.Scholarships(ctx)
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "list scholarships failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, ScholarshipListResponse{
		Count:        len(scholarships),
		Scholarships: scholarships,
	})
}

// HandleGetScholarship returns one catalog entry by id.
func (h *Handler) HandleGetScholarship(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	id := chi.URLParam(r, "id")

	scholarship, err := h.service.ScholarshipByID(ctx, id)
	if err != nil {
		h.logger.ErrorContext(ctx, "get scholarship failed", "error", err, "request_id", requestID, "scholarship_id", id)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, scholarship)
}

// HandleRefreshCatalog forces a catalog fetch.
func (h *Handler) HandleRefreshCatalog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	count, err := h.service.RefreshCatalog(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "refresh catalog failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, RefreshCatalogResponse{Scholarships: count})
}

// HandleRecommendations ranks the catalog against the profile derived from the
// holder's active credentials.
func (h *Handler) HandleRecommendations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	profile, err := h.service.Profile(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "build profile failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	recs, err := h.service.Recommendations(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "compute recommendations failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, RecommendationsResponse{
		Count:           len(recs),
		Profile:         profile,
		Recommendations: recs,
	})
}

// HandleProfile returns the matching profile derived from active credentials.
func (h *Handler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	profile, err := h.service.Profile(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "build profile failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, profile)
}
