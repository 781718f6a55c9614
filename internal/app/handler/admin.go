package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/pranav06082004/Authen-X/internal/app/service"
	"github.com/pranav06082004/Authen-X/internal/storage"
)

type AdminHandler struct {
	analysisService service.AnalysisServiceIface
	logger          *zap.Logger
}

func NewAdmin(s service.AnalysisServiceIface, l *zap.Logger) *AdminHandler {
	return &AdminHandler{
		analysisService: s,
		logger:          l,
	}
}

// HandleStats handles GET /api/admin/stats.
func (h *AdminHandler) HandleStats(res http.ResponseWriter, req *http.Request) {
	stats, err := h.analysisService.Stats(req.Context())
	if err != nil {
		h.logger.Error("cannot compute stats", zap.Error(err))
		writeError(res, http.StatusInternalServerError, "failed to compute stats")
		return
	}

	writeJSON(res, http.StatusOK, stats)
}

// HandleListUsers handles GET /api/admin/users.
func (h *AdminHandler) HandleListUsers(res http.ResponseWriter, req *http.Request) {
	users, err := h.analysisService.ListUsers(req.Context())
	if err != nil {
		h.logger.Error("cannot list users", zap.Error(err))
		writeError(res, http.StatusInternalServerError, "failed to list users")
		return
	}

	writeJSON(res, http.StatusOK, users)
}

// HandleDeleteUser handles DELETE /api/admin/users/{id}, removing the user
// together with their analyses.
func (h *AdminHandler) HandleDeleteUser(res http.ResponseWriter, req *http.Request) {
	id := chi.URLParam(req, "id")

	if err := h.analysisService.DeleteUser(req.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(res, http.StatusNotFound, "user not found")
			return
		}

		h.logger.Error("cannot delete user", zap.Error(err), zap.String("id", id))
		writeError(res, http.StatusInternalServerError, "failed to delete user")
		return
	}

	res.WriteHeader(http.StatusNoContent)
}
