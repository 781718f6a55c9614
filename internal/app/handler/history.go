package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/pranav06082004/Authen-X/internal/app/service"
	"github.com/pranav06082004/Authen-X/internal/middleware"
)

type HistoryHandler struct {
	analysisService service.AnalysisServiceIface
	logger          *zap.Logger
}

func NewHistory(s service.AnalysisServiceIface, l *zap.Logger) *HistoryHandler {
	return &HistoryHandler{
		analysisService: s,
		logger:          l,
	}
}

// HandleHistory handles GET /api/history, returning the caller's analyses
// newest first. Visibility is owner-scoped at the query.
func (h *HistoryHandler) HandleHistory(res http.ResponseWriter, req *http.Request) {
	userID := middleware.UserIDFrom(req.Context())

	items, err := h.analysisService.History(req.Context(), userID)
	if err != nil {
		h.logger.Error("cannot load history", zap.Error(err), zap.String("user_id", userID))
		writeError(res, http.StatusInternalServerError, "failed to load history")
		return
	}

	writeJSON(res, http.StatusOK, items)
}
