package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/sebuszqo/FinanceTracker/internal/logging"
)

type Handler struct {
	userService Service
}

func NewHandler(userService Service) *Handler {
	return &Handler{
		userService: userService,
	}
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.FromContext(r.Context()).Error("JSON encoding error", logging.FieldError, err)
	}
}

func respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	respondJSON(w, r, status, map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	})
}

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username        string `json:"username"`
		Email           string `json:"email"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirm_password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		respondError(w, r, http.StatusBadRequest, "Username, email and password are required")
		return
	}
	if req.Password != req.ConfirmPassword {
		respondError(w, r, http.StatusBadRequest, "Passwords do not match")
		return
	}

	created, err := h.userService.CreateUser(r.Context(), req.Username, req.Password, req.Email)
	if err != nil {
		if IsValidationError(err) {
			respondError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		logging.FromContext(r.Context()).Error("could not register user", logging.FieldError, err)
		respondError(w, r, http.StatusInternalServerError, "Could not register user")
		return
	}
	if !created {
		respondError(w, r, http.StatusConflict, "Username or email already exists")
		return
	}

	respondJSON(w, r, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Registration successful. Please log in.",
	})
}

func (h *Handler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondError(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	err := h.userService.ChangePasswordWithOldPassword(r.Context(), userID, req.OldPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			respondError(w, r, http.StatusNotFound, "User not found")
			return
		} else if errors.Is(err, ErrInvalidOldPassword) {
			respondError(w, r, http.StatusUnauthorized, "Invalid old password")
			return
		} else if errors.Is(err, ErrPasswordTooShort) || errors.Is(err, ErrPasswordTooLong) {
			respondError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		logging.FromContext(r.Context()).Error("could not change password", logging.FieldError, err)
		respondError(w, r, http.StatusInternalServerError, "Could not change password")
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Password changed successfully",
	})
}

func (h *Handler) HandleGetUserProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondError(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.userService.GetUserByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			respondError(w, r, http.StatusNotFound, "User not found")
			return
		}
		logging.FromContext(r.Context()).Error("could not fetch user", logging.FieldError, err)
		respondError(w, r, http.StatusInternalServerError, "Could not fetch user data")
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data": map[string]interface{}{
			"user_id":     user.ID,
			"username":    user.Username,
			"email":       user.Email,
			"2fa_enabled": user.TwoFactorEnabled,
			"created_at":  user.CreatedAt,
		},
	})
}
