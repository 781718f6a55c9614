package handler

import (
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/pranav06082004/Authen-X/internal/app/service"
	"github.com/pranav06082004/Authen-X/internal/gateway"
	"github.com/pranav06082004/Authen-X/internal/middleware"
	"github.com/pranav06082004/Authen-X/internal/models"
)

type AnalyzeHandler struct {
	analysisService service.AnalysisServiceIface
	logger          *zap.Logger
}

func NewAnalyze(s service.AnalysisServiceIface, l *zap.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{
		analysisService: s,
		logger:          l,
	}
}

// HandleAnalyze handles POST /api/analyze. The caller is already resolved by
// the bearer-auth middleware; failures map onto the error taxonomy: 400 for
// missing input, 429 retryable, 402 terminal until credits are added, 502
// for an invalid upstream verdict, 500 for everything else.
func (h *AnalyzeHandler) HandleAnalyze(res http.ResponseWriter, req *http.Request) {
	var request models.AnalysisRequest

	err := decodeJSONBody(res, req, &request)
	if err != nil {
		var mr *malformedRequest
		if errors.As(err, &mr) {
			writeError(res, mr.status, mr.msg)
		} else {
			h.logger.Error("cannot decode analyze request", zap.Error(err))
			writeError(res, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		}
		return
	}

	userID := middleware.UserIDFrom(req.Context())

	result, err := h.analysisService.Analyze(req.Context(), userID, request)
	if err != nil {
		h.writeAnalyzeError(res, err)
		return
	}

	writeJSON(res, http.StatusOK, result)
}

func (h *AnalyzeHandler) writeAnalyzeError(res http.ResponseWriter, err error) {
	var upstreamErr *gateway.UpstreamError

	switch {
	case errors.Is(err, service.ErrEmptyInput):
		writeError(res, http.StatusBadRequest, "Either text or url is required")

	case errors.Is(err, gateway.ErrRateLimited):
		writeError(res, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")

	case errors.Is(err, gateway.ErrQuotaExhausted):
		writeError(res, http.StatusPaymentRequired, "AI credits exhausted. Please add more credits.")

	case errors.Is(err, gateway.ErrMalformedVerdict):
		h.logger.Error("malformed upstream verdict", zap.Error(err))
		writeError(res, http.StatusBadGateway, "Model returned an invalid verdict")

	case errors.As(err, &upstreamErr):
		h.logger.Error("model gateway failure", zap.Int("status", upstreamErr.Status))
		writeError(res, http.StatusInternalServerError, fmt.Sprintf("AI gateway error: %d", upstreamErr.Status))

	default:
		h.logger.Error("analysis failure", zap.Error(err))
		writeError(res, http.StatusInternalServerError, "Internal server error")
	}
}

// HandleHealth handles GET /api/health.
func (h *AnalyzeHandler) HandleHealth(res http.ResponseWriter, req *http.Request) {
	writeJSON(res, http.StatusOK, map[string]string{"status": "ok"})
}

// HandlePing handles GET /ping, reporting storage availability.
func (h *AnalyzeHandler) HandlePing(res http.ResponseWriter, req *http.Request) {
	if err := h.analysisService.PingContext(req.Context()); err != nil {
		writeError(res, http.StatusInternalServerError, "storage unavailable")
		return
	}

	res.WriteHeader(http.StatusOK)
}
