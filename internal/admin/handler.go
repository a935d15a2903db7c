// Package admin exposes operational endpoints over the identity store.
// The router gates them behind bearer authentication; the handlers assume
// callers are pre-authorized.
package admin

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/artiklar/identity-api/internal/httputil"
	"github.com/artiklar/identity-api/internal/logging"
	"github.com/artiklar/identity-api/internal/profile"
	"github.com/artiklar/identity-api/internal/user"
)

// UserAdminRepository is the slice of the repository the admin handlers need.
type UserAdminRepository interface {
	List(ctx context.Context) ([]*user.User, error)
	DeleteByPublicID(ctx context.Context, publicID string) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// Handler contains HTTP handlers for the admin endpoints
type Handler struct {
	users  UserAdminRepository
	cache  profile.Cache
	logger *logging.Logger
}

func NewHandler(users UserAdminRepository, cache profile.Cache, logger *logging.Logger) *Handler {
	return &Handler{
		users:  users,
		cache:  cache,
		logger: logger,
	}
}

// DeleteResponse reports how many records a delete removed.
type DeleteResponse struct {
	Deleted int64 `json:"deleted"`
}

// ListAccounts lists every identity record
// @Summary      List accounts
// @Description  Return every identity record. Credential digests are never serialized.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} user.User
// @Failure      500 {object} httputil.ErrorResponse "Store failure"
// @Router       /admin/accounts [get]
func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	users, err := h.users.List(r.Context())
	if err != nil {
		logger.Error("account listing failed", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to list accounts", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, users, http.StatusOK)
}

// DeleteAccount deletes one identity record by public id
// @Summary      Delete account
// @Description  Delete the account with the given public id and report the deleted count.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        suid path string true "Public id"
// @Success      200 {object} DeleteResponse
// @Failure      500 {object} httputil.ErrorResponse "Store failure"
// @Router       /admin/accounts/{suid} [delete]
func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	publicID := chi.URLParam(r, "suid")

	deleted, err := h.users.DeleteByPublicID(r.Context(), publicID)
	if err != nil {
		logger.Error("account deletion failed", "suid", publicID, "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to delete account", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	if err := h.cache.Invalidate(r.Context(), publicID); err != nil {
		logger.Warn("profile cache invalidation failed", "suid", publicID, "error", err.Error())
	}

	logger.Info("account deleted", "suid", publicID, "deleted", deleted)

	httputil.RespondJSON(w, DeleteResponse{Deleted: deleted}, http.StatusOK)
}

// DeleteAllAccounts deletes every identity record
// @Summary      Delete all accounts
// @Description  Delete every identity record and report the deleted count.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} DeleteResponse
// @Failure      500 {object} httputil.ErrorResponse "Store failure"
// @Router       /admin/accounts [delete]
func (h *Handler) DeleteAllAccounts(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	deleted, err := h.users.DeleteAll(r.Context())
	if err != nil {
		logger.Error("bulk account deletion failed", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to delete accounts", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	// Cached profile views for the deleted accounts age out on their TTL.
	logger.Info("all accounts deleted", "deleted", deleted)

	httputil.RespondJSON(w, DeleteResponse{Deleted: deleted}, http.StatusOK)
}
