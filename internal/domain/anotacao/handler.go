package anotacao

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

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/anotacoes", h.List)
	api.POST("/anotacoes", h.Create)
}

func (h *Handler) List(c echo.Context) error {
	items, err := h.svc.ListByProntuario(c.Request().Context(), c.QueryParam(FieldProntuario))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) Create(c echo.Context) error {
	var n Note
	if err := rest.BindStrict(c, &n); err != nil {
		return err
	}
	if err := h.svc.Create(c.Request().Context(), &n); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, n)
}
