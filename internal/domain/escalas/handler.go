// Package escalas exposes the Score Evaluator over HTTP.
package escalas

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nursesim/prontuario/internal/domain/scoring"
	"github.com/nursesim/prontuario/internal/platform/rest"
)

// Recorder counts evaluations. *telemetry.Collector satisfies it.
type Recorder interface {
	ScoreEvaluated(scale string, defined bool)
}

type Handler struct {
	metrics Recorder
}

func NewHandler(metrics Recorder) *Handler {
	return &Handler{metrics: metrics}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/escalas", h.ListScales)
	api.POST("/escalas/:escala", h.EvaluateScale)
}

func (h *Handler) ListScales(c echo.Context) error {
	return c.JSON(http.StatusOK, scoring.Catalog())
}

func (h *Handler) EvaluateScale(c echo.Context) error {
	raw, err := rest.ReadBody(c)
	if err != nil {
		return err
	}
	res, err := scoring.Evaluate(c.Param("escala"), raw)
	if err != nil {
		return err
	}
	if h.metrics != nil {
		h.metrics.ScoreEvaluated(res.Scale, res.Defined)
	}
	return c.JSON(http.StatusOK, res)
}
