package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/artiklar/identity-api/internal/httputil"
	"github.com/artiklar/identity-api/internal/logging"
)

// Handler contains HTTP handlers for the authentication endpoints
type Handler struct {
	service *Service
	tokens  TokenService
	logger  *logging.Logger
}

func NewHandler(service *Service, tokens TokenService, logger *logging.Logger) *Handler {
	return &Handler{
		service: service,
		tokens:  tokens,
		logger:  logger,
	}
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Username    string `json:"username"`
	DisplayName string `json:"displayname"`
	Password    string `json:"password"`
	Email       string `json:"email"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterResponse represents the registration response
type RegisterResponse struct {
	Username string `json:"username"`
	PublicID string `json:"suid"`
	Message  string `json:"message"`
}

// VerifyTokenResponse carries the public id of a verified token.
type VerifyTokenResponse struct {
	PublicID string `json:"suid"`
}

// Register handles account registration
// @Summary      Register a new account
// @Description  Create a new account. Registration issues no token; call login afterwards.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Account details"
// @Success      201 {object} RegisterResponse
// @Failure      400 {object} httputil.ErrorResponse "Invalid body, missing fields or bad email"
// @Failure      409 {object} httputil.ErrorResponse "Username or email already in use"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid registration request body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	logger = logger.WithFields(map[string]any{"username": req.Username})

	newUser, err := h.service.Register(r.Context(), req.Username, req.DisplayName, req.Password, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields):
			logger.Warn("registration failed: missing fields")
			httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeMissingFields, http.StatusBadRequest)
		case errors.Is(err, ErrInvalidEmail):
			logger.Warn("registration failed: invalid email")
			httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeInvalidEmail, http.StatusBadRequest)
		case errors.Is(err, ErrUsernameTaken):
			logger.Warn("registration failed: username taken")
			httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeUsernameTaken, http.StatusConflict)
		case errors.Is(err, ErrEmailTaken):
			logger.Warn("registration failed: email taken")
			httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeEmailTaken, http.StatusConflict)
		default:
			logger.Error("registration failed: internal error", "error", err.Error())
			httputil.RespondErrorWithCode(w, "failed to register", httputil.CodeInternalError, http.StatusInternalServerError)
		}
		return
	}

	logger.Info("account registered", "suid", newUser.PublicID)

	httputil.RespondJSON(w, RegisterResponse{
		Username: newUser.Username,
		PublicID: newUser.PublicID,
		Message:  "Registration successful.",
	}, http.StatusCreated)
}

// Login handles account login
// @Summary      Log in
// @Description  Authenticate with email and password and receive a bearer token plus the account's public id.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Credentials"
// @Success      200 {object} LoginResult
// @Failure      400 {object} httputil.ErrorResponse "Invalid request body"
// @Failure      401 {object} httputil.ErrorResponse "Wrong password"
// @Failure      404 {object} httputil.ErrorResponse "Unknown email"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid login request body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Password == "" {
		logger.Warn("login failed: missing fields")
		httputil.RespondErrorWithCode(w, "email and password are required", httputil.CodeMissingFields, http.StatusBadRequest)
		return
	}

	logger = logger.WithFields(map[string]any{"email": req.Email})

	result, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailNotFound):
			logger.Warn("login failed: email not found")
			httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeEmailNotFound, http.StatusNotFound)
		case errors.Is(err, ErrInvalidCredentials):
			logger.Warn("login failed: invalid credentials")
			httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeInvalidCredentials, http.StatusUnauthorized)
		default:
			logger.Error("login failed: internal error", "error", err.Error())
			httputil.RespondErrorWithCode(w, "failed to login", httputil.CodeInternalError, http.StatusInternalServerError)
		}
		return
	}

	logger.Info("login succeeded", "suid", result.PublicID)

	httputil.RespondJSON(w, result, http.StatusOK)
}

// VerifyToken checks a bearer token
// @Summary      Verify a token
// @Description  Validate a previously issued token and return the public id it carries.
// @Tags         auth
// @Produce      json
// @Param        token query string true "Token to verify"
// @Success      200 {object} VerifyTokenResponse
// @Failure      400 {object} httputil.ErrorResponse "Token missing"
// @Failure      401 {object} httputil.ErrorResponse "Verification failed"
// @Router       /auth/verify-token [get]
func (h *Handler) VerifyToken(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	token := r.URL.Query().Get("token")
	if token == "" {
		logger.Warn("token verification failed: token missing")
		httputil.RespondErrorWithCode(w, "token required", httputil.CodeTokenRequired, http.StatusBadRequest)
		return
	}

	claims, err := h.tokens.VerifyToken(token)
	if err != nil {
		logger.Warn("token verification failed")
		httputil.RespondErrorWithCode(w, "invalid token", httputil.CodeInvalidToken, http.StatusUnauthorized)
		return
	}

	httputil.RespondJSON(w, VerifyTokenResponse{PublicID: claims.PublicID}, http.StatusOK)
}
