package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/sebuszqo/FinanceTracker/internal/logging"
	"github.com/sebuszqo/FinanceTracker/internal/user"
)

const refreshTokenPath = "/api/refresh/token"

type Handler struct {
	authService Service
	refreshTTL  time.Duration
}

func NewHandler(authService Service, refreshTTL time.Duration) *Handler {
	return &Handler{
		authService: authService,
		refreshTTL:  refreshTTL,
	}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	})
}

func (s *Handler) setRefreshCookie(w http.ResponseWriter, r *http.Request, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshTokenCookie,
		Value:    token,
		Path:     refreshTokenPath,
		MaxAge:   int(s.refreshTTL.Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteStrictMode,
	})
}

func (s *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
		TOTPCode string `json:"totp_code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Password == "" || req.Username == "" {
		respondError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	existingUser, accessToken, refreshToken, err := s.authService.Login(r.Context(), req.Username, req.Password, req.TOTPCode)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			respondError(w, http.StatusUnauthorized, "Invalid username or password")
		case errors.Is(err, ErrTwoFactorRequired):
			respondJSON(w, http.StatusUnauthorized, map[string]interface{}{
				"status":  "2fa_required",
				"message": "Two-factor authentication code required",
				"code":    http.StatusUnauthorized,
			})
		case errors.Is(err, ErrInvalid2FACode):
			respondError(w, http.StatusUnauthorized, "Invalid 2fa code")
		default:
			logging.FromContext(r.Context()).Error("login failed", logging.FieldError, err)
			respondError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	s.setRefreshCookie(w, r, refreshToken)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Login successful",
		"data": map[string]interface{}{
			"access_token": accessToken,
			"user_id":      existingUser.ID,
			"username":     existingUser.Username,
		},
	})
}

func (s *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshTokenCookie,
		Value:    "",
		Path:     refreshTokenPath,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteStrictMode,
	})

	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Logout successful",
	})
}

func (s *Handler) HandleRegisterTwoFactor(w http.ResponseWriter, r *http.Request) {
	userID, ok := user.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "User not authorized")
		return
	}

	otpURI, secret, err := s.authService.RegisterTwoFactor(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrUser2FAAlreadyEnabled):
			respondError(w, http.StatusConflict, "Two-factor authentication is already enabled")
		case errors.Is(err, user.ErrUserNotFound):
			respondError(w, http.StatusNotFound, "User not found")
		default:
			logging.FromContext(r.Context()).Error("could not register two-factor", logging.FieldError, err)
			respondError(w, http.StatusInternalServerError, "Could not register two-factor authentication")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Scan the QR code with your authenticator app and confirm with a code",
		"data": map[string]string{
			"otp_uri": otpURI,
			"secret":  secret,
		},
	})
}

func (s *Handler) HandleVerifyTwoFactorRegistration(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	userID, ok := user.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "User not authorized")
		return
	}

	if err := s.authService.VerifyTwoFactorRegistration(r.Context(), userID, req.Code); err != nil {
		s.respondTwoFactorError(w, r, err, "Could not enable two-factor authentication")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Two-factor authentication enabled",
	})
}

func (s *Handler) HandleDisableTwoFactor(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	userID, ok := user.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "User not authorized")
		return
	}

	if err := s.authService.DisableTwoFactor(r.Context(), userID, req.Code); err != nil {
		s.respondTwoFactorError(w, r, err, "Could not disable two-factor authentication")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Two-factor authentication disabled",
	})
}

func (s *Handler) respondTwoFactorError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalid2FACode):
		respondError(w, http.StatusUnauthorized, "Invalid 2fa code")
	case errors.Is(err, ErrUser2FAAlreadyEnabled):
		respondError(w, http.StatusConflict, "Two-factor authentication is already enabled")
	case errors.Is(err, ErrUser2FANotEnabled):
		respondError(w, http.StatusBadRequest, "Two-factor authentication is not enabled")
	case errors.Is(err, ErrUser2FANotRegistered):
		respondError(w, http.StatusBadRequest, "Two-factor authentication has not been registered")
	case errors.Is(err, user.ErrUserNotFound):
		respondError(w, http.StatusNotFound, "User not found")
	default:
		logging.FromContext(r.Context()).Error(fallback, logging.FieldError, err)
		respondError(w, http.StatusInternalServerError, fallback)
	}
}

func (s *Handler) RefreshAccessToken(w http.ResponseWriter, r *http.Request) {
	userID, ok := user.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "User not authorized")
		return
	}

	accessToken, refreshToken, err := s.authService.RefreshAccessToken(r.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			respondError(w, http.StatusUnauthorized, user.ErrUserNotFound.Error())
			return
		}
		logging.FromContext(r.Context()).Error("could not refresh access token", logging.FieldError, err)
		respondError(w, http.StatusInternalServerError, ErrInternalError.Error())
		return
	}

	s.setRefreshCookie(w, r, refreshToken)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data": map[string]string{
			"access_token": accessToken,
		},
	})
}
