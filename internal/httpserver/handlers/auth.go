package handlers

import (
	"errors"
	"net/http"

	"github.com/MrSnakeDoc/sitecms/internal/domain"
	"github.com/MrSnakeDoc/sitecms/internal/httpserver/deps"
	"github.com/MrSnakeDoc/sitecms/internal/logger"
)

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

func Login(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, d.Logger, err)
			return
		}

		ok, err := d.Credentials.VerifyOrBootstrap(r.Context(), req.Password)
		if err != nil {
			writeError(w, r, d.Logger, err)
			return
		}
		if !ok {
			d.Logger.Warn("admin login failed", logger.String("remote_ip", r.RemoteAddr))
			writeDetail(w, http.StatusUnauthorized, "Invalid password")
			return
		}

		token, err := d.Tokens.Issue()
		if err != nil {
			writeError(w, r, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, loginResponse{Success: true, Token: token})
	}
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

func ChangePassword(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req changePasswordRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, d.Logger, err)
			return
		}

		err := d.Credentials.ChangePassword(r.Context(), req.OldPassword, req.NewPassword)
		if errors.Is(err, domain.ErrInvalidCredential) {
			writeDetail(w, http.StatusBadRequest, "Current password is incorrect")
			return
		}
		if err != nil {
			writeError(w, r, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, successResponse{Success: true, Message: "Password changed successfully"})
	}
}
