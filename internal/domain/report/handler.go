package report

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dentaldesk/dentaldesk/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/reports", auth.RequireRole(auth.RoleDentist, auth.RoleReceptionist))
	g.GET("/overview", h.Overview)
}

func (h *Handler) Overview(c echo.Context) error {
	r, err := h.svc.Range(c.QueryParam("start"), c.QueryParam("end"))
	if err != nil {
		if errors.Is(err, ErrValidation) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return err
	}
	o, err := h.svc.Overview(c.Request().Context(), r)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"data": o})
}
