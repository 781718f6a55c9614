package handler

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/pranav06082004/Authen-X/internal/app/service"
	"github.com/pranav06082004/Authen-X/internal/models"
)

type AuthHandler struct {
	auth   service.AuthIface
	logger *zap.Logger
}

func NewAuth(a service.AuthIface, l *zap.Logger) *AuthHandler {
	return &AuthHandler{
		auth:   a,
		logger: l,
	}
}

// HandleRegister handles POST /api/auth/register.
func (h *AuthHandler) HandleRegister(res http.ResponseWriter, req *http.Request) {
	creds, ok := h.decodeCredentials(res, req)
	if !ok {
		return
	}

	token, err := h.auth.Register(req.Context(), creds.Email, creds.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			writeError(res, http.StatusConflict, "email already registered")
			return
		}

		h.logger.Error("cannot register user", zap.Error(err))
		writeError(res, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(res, http.StatusOK, models.TokenResponse{Token: token})
}

// HandleLogin handles POST /api/auth/login.
func (h *AuthHandler) HandleLogin(res http.ResponseWriter, req *http.Request) {
	creds, ok := h.decodeCredentials(res, req)
	if !ok {
		return
	}

	token, err := h.auth.Login(req.Context(), creds.Email, creds.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(res, http.StatusUnauthorized, "invalid email or password")
			return
		}

		h.logger.Error("cannot log user in", zap.Error(err))
		writeError(res, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(res, http.StatusOK, models.TokenResponse{Token: token})
}

func (h *AuthHandler) decodeCredentials(res http.ResponseWriter, req *http.Request) (models.CredentialsRequest, bool) {
	var creds models.CredentialsRequest

	err := decodeJSONBody(res, req, &creds)
	if err != nil {
		var mr *malformedRequest
		if errors.As(err, &mr) {
			writeError(res, mr.status, mr.msg)
		} else {
			h.logger.Error("cannot decode credentials", zap.Error(err))
			writeError(res, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		}
		return creds, false
	}

	creds.Email = strings.TrimSpace(strings.ToLower(creds.Email))
	if creds.Email == "" || creds.Password == "" {
		writeError(res, http.StatusBadRequest, "email and password are required")
		return creds, false
	}

	return creds, true
}
