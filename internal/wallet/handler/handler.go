package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"eduraksha/contracts/vc"
	"eduraksha/internal/platform/middleware"
	"eduraksha/internal/wallet/models"
	"eduraksha/internal/wallet/service"
	dErrors "eduraksha/pkg/domain-errors"
	"eduraksha/pkg/httputil"
)

// maxImportBodyBytes bounds externally produced credential documents.
const maxImportBodyBytes = 1 << 20

// Service defines the interface for wallet operations.
// Returns domain objects, not HTTP response DTOs.
type Service interface {
	Add(ctx context.Context, input service.AddInput) (string, error)
	SelfIssue(ctx context.Context, input service.SelfIssueInput) (string, error)
	Credential(ctx context.Context, id string) (*models.Credential, error)
	Credentials(ctx context.Context) ([]*models.Credential, error)
	CredentialsByType(ctx context.Context, credType vc.CredentialType) ([]*models.Credential, error)
	ActiveCredentials(ctx context.Context) ([]*models.Credential, error)
	SelfIssuedCredentials(ctx context.Context) ([]*models.Credential, error)
	ExternalCredentials(ctx context.Context) ([]*models.Credential, error)
	Revoke(ctx context.Context, id string) (bool, error)
	Restore(ctx context.Context, id string) (bool, error)
	Remove(ctx context.Context, id string) error
	Export(ctx context.Context, id string) ([]byte, error)
	Import(ctx context.Context, raw []byte) (string, error)
	CreateBackup(ctx context.Context) (*models.Backup, error)
	RestoreFromBackup(ctx context.Context, backup *models.Backup) (*models.RestoreReport, error)
	Search(ctx context.Context, query string) ([]*models.Credential, error)
	Expiring(ctx context.Context, daysThreshold int) ([]*models.Credential, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
	now     func() time.Time
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger, now: time.Now}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/wallet/credentials", h.HandleAddCredential)
	r.Post("/wallet/credentials/self-issued", h.HandleSelfIssue)
	r.Post("/wallet/credentials/import", h.HandleImport)
	r.Get("/wallet/credentials", h.HandleListCredentials)
	r.Get("/wallet/credentials/expiring", h.HandleExpiring)
	r.Get("/wallet/credentials/{id}", h.HandleGetCredential)
	r.Get("/wallet/credentials/{id}/export", h.HandleExport)
	r.Post("/wallet/credentials/{id}/revoke", h.HandleRevoke)
	r.Post("/wallet/credentials/{id}/restore", h.HandleRestore)
	r.Delete("/wallet/credentials/{id}", h.HandleRemove)
	r.Get("/wallet/search", h.HandleSearch)
	r.Post("/wallet/backup", h.HandleCreateBackup)
	r.Post("/wallet/backup/restore", h.HandleRestoreBackup)
}

// HandleAddCredential stores an externally issued credential.
func (h *Handler) HandleAddCredential(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[AddCredentialRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	id, err := h.service.Add(ctx, req.ToInput())
	if err != nil {
		h.logger.ErrorContext(ctx, "add credential failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, CreateCredentialResponse{ID: id})
}

// HandleSelfIssue stores a holder-authored credential.
func (h *Handler) HandleSelfIssue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[SelfIssueRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	id, err := h.service.SelfIssue(ctx, req.ToInput())
	if err != nil {
		h.logger.ErrorContext(ctx, "self-issue credential failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, CreateCredentialResponse{ID: id})
}

// HandleImport parses and stores an externally produced credential document.
func (h *Handler) HandleImport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxImportBodyBytes))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "failed to read request body"))
		return
	}

	id, err := h.service.Import(ctx, raw)
	if err != nil {
		h.logger.ErrorContext(ctx, "import credential failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, CreateCredentialResponse{ID: id})
}

// HandleListCredentials lists credentials, optionally filtered by type, status,
// or origin. Filters compose: each additional query parameter narrows the set.
func (h *Handler) HandleListCredentials(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	origin := r.URL.Query().Get("origin")
	typ := strings.TrimSpace(r.URL.Query().Get("type"))

	creds, err := h.listBase(ctx, origin, typ)
	if err != nil {
		h.logger.ErrorContext(ctx, "list credentials failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	now := h.now()
	if typ != "" && strings.TrimSpace(origin) != "" {
		// Origin picked the base projection; narrow by type here.
		creds = filterCredentials(creds, func(c *models.Credential) bool {
			return strings.EqualFold(string(c.Type), typ)
		})
	}
	if status := strings.TrimSpace(r.URL.Query().Get("status")); status != "" {
		target := models.Status(strings.ToLower(status))
		if target != models.StatusActive && target != models.StatusRevoked && target != models.StatusExpired {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "status must be active, revoked, or expired"))
			return
		}
		creds = filterCredentials(creds, func(c *models.Credential) bool {
			return c.EffectiveStatus(now) == target
		})
	}

	httputil.WriteJSON(w, http.StatusOK, toCredentialListResponse(creds, now))
}

func (h *Handler) listBase(ctx context.Context, origin, typ string) ([]*models.Credential, error) {
	switch strings.ToLower(strings.TrimSpace(origin)) {
	case "":
		if typ != "" {
			return h.service.CredentialsByType(ctx, vc.CredentialType(typ))
		}
		return h.service.Credentials(ctx)
	case "self-issued", "self_issued":
		return h.service.SelfIssuedCredentials(ctx)
	case "external":
		return h.service.ExternalCredentials(ctx)
	default:
		return nil, dErrors.New(dErrors.CodeBadRequest, "origin must be self-issued or external")
	}
}

func filterCredentials(creds []*models.Credential, keep func(*models.Credential) bool) []*models.Credential {
	out := make([]*models.Credential, 0, len(creds))
	for _, c := range creds {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

// HandleGetCredential returns one credential by id.
func (h *Handler) HandleGetCredential(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	id := chi.URLParam(r, "id")

	cred, err := h.service.Credential(ctx, id)
	if err != nil {
		h.logger.ErrorContext(ctx, "get credential failed", "error", err, "request_id", requestID, "credential_id", id)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toCredentialResponse(cred, h.now()))
}

// HandleExport returns the canonical JSON document of one credential.
func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	id := chi.URLParam(r, "id")

	data, err := h.service.Export(ctx, id)
	if err != nil {
		h.logger.ErrorContext(ctx, "export credential failed", "error", err, "request_id", requestID, "credential_id", id)
		httputil.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// HandleRevoke transitions a credential to revoked.
func (h *Handler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	h.handleStatusChange(w, r, models.StatusRevoked, h.service.Revoke)
}

// HandleRestore transitions a revoked credential back to active.
func (h *Handler) HandleRestore(w http.ResponseWriter, r *http.Request) {
	h.handleStatusChange(w, r, models.StatusActive, h.service.Restore)
}

func (h *Handler) handleStatusChange(w http.ResponseWriter, r *http.Request, target models.Status, op func(context.Context, string) (bool, error)) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	id := chi.URLParam(r, "id")

	changed, err := op(ctx, id)
	if err != nil {
		h.logger.ErrorContext(ctx, "credential status change failed", "error", err, "request_id", requestID, "credential_id", id)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, StatusChangeResponse{
		ID:      id,
		Status:  string(target),
		Changed: changed,
	})
}

// HandleRemove deletes a credential.
func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	id := chi.URLParam(r, "id")

	if err := h.service.Remove(ctx, id); err != nil {
		h.logger.ErrorContext(ctx, "remove credential failed", "error", err, "request_id", requestID, "credential_id", id)
		httputil.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleSearch returns credentials matching the q parameter.
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	creds, err := h.service.Search(ctx, r.URL.Query().Get("q"))
	if err != nil {
		h.logger.ErrorContext(ctx, "search credentials failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toCredentialListResponse(creds, h.now()))
}

// HandleExpiring returns active credentials expiring within days (default 30).
func (h *Handler) HandleExpiring(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	days := 30
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "days must be an integer"))
			return
		}
		days = parsed
	}

	creds, err := h.service.Expiring(ctx, days)
	if err != nil {
		h.logger.ErrorContext(ctx, "list expiring credentials failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toCredentialListResponse(creds, h.now()))
}

// HandleCreateBackup snapshots the full wallet.
func (h *Handler) HandleCreateBackup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	backup, err := h.service.CreateBackup(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "create backup failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, backup)
}

// HandleRestoreBackup replaces the wallet with a backup's records and returns
// the per-record restore report.
func (h *Handler) HandleRestoreBackup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[RestoreBackupRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	report, err := h.service.RestoreFromBackup(ctx, req.ToBackup())
	if err != nil {
		h.logger.ErrorContext(ctx, "restore backup failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toRestoreReportResponse(report))
}
