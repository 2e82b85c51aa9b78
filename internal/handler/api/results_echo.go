package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	models "StarSpin/internal/domain/models"
	domrepo "StarSpin/internal/domain/repository"
	icache "StarSpin/internal/service/cache"
	"StarSpin/internal/service/metrics"
	"StarSpin/internal/service/ratelimit"
	xhttp "StarSpin/pkg/http"
	xlogger "StarSpin/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ResultsEchoHandler serves the classification results over HTTP.
type ResultsEchoHandler struct {
	logger   *xlogger.Logger
	store    domrepo.Store
	source   domrepo.Source
	cache    icache.BytesCache
	rl       *ratelimit.Limiter
	cacheTTL time.Duration
	rlCap    float64
	rlRefill float64
}

func NewResultsEchoHandler(logger *xlogger.Logger, store domrepo.Store, source domrepo.Source) *ResultsEchoHandler {
	metrics.Register()
	return &ResultsEchoHandler{
		logger:   logger,
		store:    store,
		source:   source,
		rl:       ratelimit.New(),
		cacheTTL: 30 * time.Second,
		rlCap:    5,
		rlRefill: 2,
	}
}

// SetCache enables response caching for the list endpoint.
func (h *ResultsEchoHandler) SetCache(c icache.BytesCache, ttl time.Duration) {
	h.cache = c
	if ttl > 0 {
		h.cacheTTL = ttl
	}
}

// SetRateLimit overrides the per-client token bucket parameters.
func (h *ResultsEchoHandler) SetRateLimit(capacity float64, refillPerSec float64) {
	h.rlCap = capacity
	h.rlRefill = refillPerSec
}

func (h *ResultsEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/results", h.List)
	g.GET("/results/:target", h.Get)
	g.GET("/results/:target/fold", h.Fold)
	g.GET("/health", h.Health)
}

func (h *ResultsEchoHandler) List(c echo.Context) error {
	start := time.Now()
	endpoint := "results_list"
	defer func() { metrics.APILatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.ResultListRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.rl.Allow(c.RealIP()+":"+endpoint, h.rlCap, h.rlRefill) {
		return echo.NewHTTPError(429, "rate limited")
	}

	cacheKey := fmt.Sprintf("results:%s:%d:%d", req.HarmType, req.Limit, req.Offset)
	if h.cache != nil {
		if b, ok, err := h.cache.GetBytes(cacheKey); err != nil {
			h.logger.Warn("results cache_get_error", xlogger.Error(err))
		} else if ok {
			return c.JSONBlob(200, b)
		}
	}

	rows, total, err := h.store.List(c.Request().Context(), req.HarmType, req.Limit, req.Offset)
	if err != nil {
		metrics.APIErrors.WithLabelValues(endpoint).Inc()
		h.logger.Error("results list error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}

	if h.cache != nil {
		payload := map[string]interface{}{"data": rows, "total": total}
		if b, err := json.Marshal(payload); err == nil {
			if err := h.cache.SetBytes(cacheKey, b, h.cacheTTL); err != nil {
				h.logger.Warn("results cache_set_error", xlogger.Error(err))
			}
			return c.JSONBlob(200, b)
		}
	}
	return xhttp.ListResponse(c, rows, total)
}

func (h *ResultsEchoHandler) Get(c echo.Context) error {
	start := time.Now()
	endpoint := "results_get"
	defer func() { metrics.APILatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	target := c.Param("target")
	row, err := h.store.Get(c.Request().Context(), target)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return xhttp.NotFoundResponse(c, xhttp.NotFoundErrorf("no result for target %s", target))
		}
		metrics.APIErrors.WithLabelValues(endpoint).Inc()
		h.logger.Error("results get error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, row)
}

// Fold returns the target's light curve folded at a trial period, for
// inspecting a reported rotation period by eye.
func (h *ResultsEchoHandler) Fold(c echo.Context) error {
	start := time.Now()
	endpoint := "results_fold"
	defer func() { metrics.APILatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.FoldRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	target := c.Param("target")
	row, err := h.store.Get(c.Request().Context(), target)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return xhttp.NotFoundResponse(c, xhttp.NotFoundErrorf("no result for target %s", target))
		}
		metrics.APIErrors.WithLabelValues(endpoint).Inc()
		return xhttp.AppErrorResponse(c, err)
	}

	lc, err := h.source.Read(c.Request().Context(), row.File, row.Aperture)
	if err != nil {
		metrics.APIErrors.WithLabelValues(endpoint).Inc()
		h.logger.Error("fold read error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}

	phase := lc.Fold(req.Period)

	return xhttp.SuccessResponse(c, models.FoldResponse{
		Target: target,
		Period: req.Period,
		Phase:  phase,
		Flux:   lc.Flux,
	})
}

func (h *ResultsEchoHandler) Health(c echo.Context) error {
	if err := h.store.Health(c.Request().Context()); err != nil {
		return xhttp.AppErrorResponse(c, xhttp.InternalError("storage unavailable"))
	}
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}
