package alta

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nursesim/prontuario/internal/platform/rest"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes exposes no delete route; discharge reports are only
// created and updated.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/relatorios-alta", h.List)
	api.GET("/relatorios-alta/:id", h.Get)
	api.POST("/relatorios-alta", h.Create)
	api.PUT("/relatorios-alta/:id", h.Update)
}

func (h *Handler) List(c echo.Context) error {
	items, err := h.svc.ListByProntuario(c.Request().Context(), c.QueryParam(FieldProntuario))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) Get(c echo.Context) error {
	r, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r)
}

func (h *Handler) Create(c echo.Context) error {
	var r Report
	if err := rest.BindStrict(c, &r); err != nil {
		return err
	}
	if err := h.svc.Create(c.Request().Context(), &r); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, r)
}

func (h *Handler) Update(c echo.Context) error {
	var r Report
	if err := rest.BindStrict(c, &r); err != nil {
		return err
	}
	if err := h.svc.Update(c.Request().Context(), c.Param("id"), &r); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r)
}
