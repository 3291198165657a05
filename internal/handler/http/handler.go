package http

import (
	"net/http"

	"github.com/kianlavi/onlyfan/internal/logger"
	"github.com/kianlavi/onlyfan/internal/metrics"
	"github.com/kianlavi/onlyfan/internal/service"
	"github.com/rs/zerolog"
)

type Handler struct {
	services *service.Services
	metrics  *metrics.Metrics

	logger *logger.Logger
}

func NewHandler(services *service.Services, metrics *metrics.Metrics, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		metrics:  metrics,
		logger:   logger,
	}
}

// log returns the request-scoped logger set by withTraceID, or the handler
// logger when the request bypassed it.
func (h *Handler) log(r *http.Request) *logger.Logger {
	if l := logger.FromRequest(r); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return h.logger
}
