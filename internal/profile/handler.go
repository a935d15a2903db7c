package profile

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/artiklar/identity-api/internal/auth"
	"github.com/artiklar/identity-api/internal/httputil"
	"github.com/artiklar/identity-api/internal/logging"
	"github.com/artiklar/identity-api/internal/storage"
	"github.com/artiklar/identity-api/internal/user"
)

// UserGetter is the slice of the repository the profile handlers need.
type UserGetter interface {
	GetByUsername(ctx context.Context, username string) (*user.User, error)
	GetByPublicID(ctx context.Context, publicID string) (*user.User, error)
}

// Handler serves safe profile views and profile images.
type Handler struct {
	users        UserGetter
	cache        Cache
	images       storage.ImageStore
	defaultImage string
	logger       *logging.Logger
}

func NewHandler(users UserGetter, cache Cache, images storage.ImageStore, defaultImage string, logger *logging.Logger) *Handler {
	return &Handler{
		users:        users,
		cache:        cache,
		images:       images,
		defaultImage: defaultImage,
		logger:       logger,
	}
}

// ByName returns a profile by username
// @Summary      Profile by username
// @Description  Look up an account by username and return its public-safe view.
// @Tags         profile
// @Produce      json
// @Param        name path string true "Username"
// @Success      200 {object} user.SafeProfile
// @Failure      404 {object} httputil.ErrorResponse "Unknown username"
// @Router       /profile/data/by-name/{name} [get]
func (h *Handler) ByName(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	name := chi.URLParam(r, "name")

	u, err := h.users.GetByUsername(r.Context(), name)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			httputil.RespondErrorWithCode(w, "profile not found", httputil.CodeNotFound, http.StatusNotFound)
			return
		}
		logger.Error("profile lookup failed", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to load profile", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, u.Safe(), http.StatusOK)
}

// ByID returns a profile by public id
// @Summary      Profile by public id
// @Description  Look up an account by its public id and return its public-safe view.
// @Tags         profile
// @Produce      json
// @Param        suid path string true "Public id"
// @Success      200 {object} user.SafeProfile
// @Failure      404 {object} httputil.ErrorResponse "Unknown public id"
// @Router       /profile/data/by-id/{suid} [get]
func (h *Handler) ByID(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	publicID := chi.URLParam(r, "suid")

	if cached, hit, err := h.cache.Get(r.Context(), publicID); err != nil {
		logger.Warn("profile cache read failed", "error", err.Error())
	} else if hit {
		httputil.RespondJSON(w, cached, http.StatusOK)
		return
	}

	u, err := h.users.GetByPublicID(r.Context(), publicID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			httputil.RespondErrorWithCode(w, "profile not found", httputil.CodeNotFound, http.StatusNotFound)
			return
		}
		logger.Error("profile lookup failed", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to load profile", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	safe := u.Safe()
	if err := h.cache.Set(r.Context(), safe); err != nil {
		// Cache population is best effort; the response does not depend on it.
		logger.Warn("profile cache write failed", "error", err.Error())
	}

	httputil.RespondJSON(w, safe, http.StatusOK)
}

// Image serves a profile image
// @Summary      Profile image
// @Description  Serve the stored profile image, or the bundled default when none was uploaded.
// @Tags         profile
// @Produce      png
// @Param        id path string true "Public id"
// @Success      200 {string} binary "PNG bytes"
// @Failure      404 {object} httputil.ErrorResponse "No image and no default available"
// @Router       /profile/image/{id} [get]
func (h *Handler) Image(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	id := chi.URLParam(r, "id")

	data, err := h.images.Load(r.Context(), id)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Error("image load failed", "error", err.Error())
		}
		data, err = os.ReadFile(h.defaultImage)
		if err != nil {
			httputil.RespondErrorWithCode(w, "image not found", httputil.CodeNotFound, http.StatusNotFound)
			return
		}
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		logger.Warn("failed to write image response", "error", err.Error())
	}
}

// Upload stores a profile image for the authenticated account
// @Summary      Upload profile image
// @Description  Store the raw request body as the caller's profile image, keyed by the token's public id.
// @Tags         profile
// @Accept       octet-stream
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string]string
// @Failure      401 {object} httputil.ErrorResponse "Missing or invalid token"
// @Failure      500 {object} httputil.ErrorResponse "Storage failure"
// @Router       /profile/upload-image [post]
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	claims, ok := auth.GetClaimsFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "missing authentication", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	// The body is stored verbatim; no size or content-type validation.
	data, err := io.ReadAll(r.Body)
	if err != nil {
		logger.Warn("failed to read upload body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to read body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	if err := h.images.Save(r.Context(), claims.PublicID, data); err != nil {
		logger.Error("image save failed", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to store image", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	logger.Info("profile image uploaded", "suid", claims.PublicID, "bytes", len(data))

	httputil.RespondJSON(w, map[string]string{"message": "image uploaded"}, http.StatusOK)
}
