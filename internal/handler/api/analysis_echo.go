package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	models "CorpFin360/internal/domain/models"
	"CorpFin360/internal/engine"
	svcmetrics "CorpFin360/internal/service/metrics"
	"CorpFin360/internal/service/ratelimit"
	"CorpFin360/internal/usecase"
	xhttp "CorpFin360/pkg/http"
	xlogger "CorpFin360/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AnalysisEchoHandler implements Echo-based HTTP handlers following Clean Architecture.
type AnalysisEchoHandler struct {
	logger   *xlogger.Logger
	analyzer *usecase.Analyzer
	limiter  *ratelimit.Limiter
	rate     float64
	burst    float64
}

func NewAnalysisEchoHandler(logger *xlogger.Logger, analyzer *usecase.Analyzer, limiter *ratelimit.Limiter, ratePerSec, burst float64) *AnalysisEchoHandler {
	return &AnalysisEchoHandler{logger: logger, analyzer: analyzer, limiter: limiter, rate: ratePerSec, burst: burst}
}

func (h *AnalysisEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/analysis")
	if h.limiter != nil {
		g.Use(h.rateLimit)
	}
	g.POST("/health", h.Health)
	g.POST("/valuation", h.Valuation)
	g.POST("/trend", h.Trend)
	g.POST("/compare", h.Compare)
	g.POST("/comprehensive", h.Comprehensive)
	g.GET("/history", h.History)
	e.GET("/api/predictor/status", h.PredictorStatus)
}

func (h *AnalysisEchoHandler) rateLimit(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !h.limiter.Allow(c.RealIP(), h.burst, h.rate) {
			return xhttp.DataResponse(c, http.StatusTooManyRequests, "Too many requests")
		}
		return next(c)
	}
}

func (h *AnalysisEchoHandler) Health(c echo.Context) error {
	start := time.Now()
	req := &models.HealthRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.analyzer.AssessFinancialHealth(c.Request().Context(), req.Financials)
	h.observe("health", start)
	if err != nil {
		h.logger.Error("health usecase error", xlogger.Error(err))
		return h.errorResponse(c, "health", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AnalysisEchoHandler) Valuation(c echo.Context) error {
	start := time.Now()
	req := &models.ValuationRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.analyzer.EstimateValuation(c.Request().Context(), req.Financials, req.ConfidenceLevel, req.Benchmark)
	h.observe("valuation", start)
	if err != nil {
		h.logger.Error("valuation usecase error", xlogger.Error(err))
		return h.errorResponse(c, "valuation", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AnalysisEchoHandler) Trend(c echo.Context) error {
	start := time.Now()
	req := &models.TrendRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.analyzer.AnalyzeTrend(c.Request().Context(), req.Symbol, req.Snapshot, req.News, req.Horizon)
	h.observe("trend", start)
	if err != nil {
		h.logger.Error("trend usecase error", xlogger.Error(err))
		return h.errorResponse(c, "trend", err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=15")
	return xhttp.SuccessResponse(c, res)
}

func (h *AnalysisEchoHandler) Compare(c echo.Context) error {
	start := time.Now()
	req := &models.CompareRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.analyzer.Compare(c.Request().Context(), req.Entities)
	h.observe("compare", start)
	if err != nil {
		h.logger.Error("compare usecase error", xlogger.Error(err))
		return h.errorResponse(c, "compare", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AnalysisEchoHandler) Comprehensive(c echo.Context) error {
	start := time.Now()
	req := &models.ComprehensiveRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.analyzer.Comprehensive(c.Request().Context(), *req)
	h.observe("comprehensive", start)
	if err != nil {
		h.logger.Error("comprehensive usecase error", xlogger.Error(err))
		return h.errorResponse(c, "comprehensive", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AnalysisEchoHandler) History(c echo.Context) error {
	subject := c.QueryParam("subject")
	if subject == "" {
		return xhttp.BadRequestResponse(c, []xhttp.ValidationError{{
			Code: "ERR_REQUIRED", Field: "subject", Message: "subject is required",
		}})
	}
	now := time.Now().UTC()
	from := xhttp.ParseTimeDefault(c.QueryParam("from"), now.AddDate(0, -1, 0))
	to := xhttp.ParseTimeDefault(c.QueryParam("to"), now)
	limit := xhttp.ParseIntDefault(c.QueryParam("limit"), 100)

	recs, err := h.analyzer.History(c.Request().Context(), subject, from, to, limit)
	if err != nil {
		h.logger.Error("history query error", xlogger.Error(err))
		return h.errorResponse(c, "history", err)
	}
	return xhttp.ListResponse(c, recs, int64(len(recs)))
}

func (h *AnalysisEchoHandler) PredictorStatus(c echo.Context) error {
	res, err := h.analyzer.PredictorStatus(c.Request().Context())
	if err != nil {
		h.logger.Error("predictor status error", xlogger.Error(err))
		return h.errorResponse(c, "status", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AnalysisEchoHandler) observe(endpoint string, start time.Time) {
	svcmetrics.AnalyticsLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}

// errorResponse maps an analytics failure onto the standard error envelope.
// Only the short message and kind leave the process.
func (h *AnalysisEchoHandler) errorResponse(c echo.Context, endpoint string, err error) error {
	svcmetrics.AnalyticsErrors.WithLabelValues(endpoint).Inc()
	return xhttp.AppErrorResponse(c, toAppError(err))
}

func toAppError(err error) error {
	var e *engine.Error
	if !errors.As(err, &e) {
		return err
	}
	status := http.StatusInternalServerError
	switch e.Kind {
	case engine.ErrInvalidInput, engine.ErrInvalidConfidenceLevel, engine.ErrInsufficientEntities:
		status = http.StatusBadRequest
	case engine.ErrMissingScore, engine.ErrPredictorOutputInvalid:
		status = http.StatusBadGateway
	case engine.ErrPredictorUnavailable:
		status = http.StatusServiceUnavailable
	}
	return xhttp.NewAppError("ERR_"+strings.ToUpper(string(e.Kind)), "", e.Message, status)
}
