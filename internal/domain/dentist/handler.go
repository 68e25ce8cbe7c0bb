package dentist

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/dentaldesk/dentaldesk/internal/platform/auth"
	"github.com/dentaldesk/dentaldesk/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	staff := auth.RequireRole(auth.RoleDentist, auth.RoleReceptionist)
	admin := auth.RequireRole(auth.RoleAdmin)
	api.GET("/dentists", h.Read, staff)
	api.POST("/dentists", h.Create, admin)
	api.PUT("/dentists", h.Update, admin)
	api.DELETE("/dentists", h.Delete, admin)
}

func (h *Handler) Read(c echo.Context) error {
	ctx := c.Request().Context()
	if raw := c.QueryParam("id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid dentist id")
		}
		d, err := h.svc.Get(ctx, id)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, map[string]interface{}{"data": d})
	}

	pg := pagination.FromContext(c)
	items, total, err := h.svc.List(ctx, c.QueryParam("status") == "all", pg)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg))
}

func (h *Handler) Create(c echo.Context) error {
	var in Input
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	d, err := h.svc.Create(c.Request().Context(), in)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{"data": d})
}

func (h *Handler) Update(c echo.Context) error {
	id, err := requireID(c)
	if err != nil {
		return err
	}
	var in Input
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	d, err := h.svc.Update(c.Request().Context(), id, in)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"data": d})
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := requireID(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func requireID(c echo.Context) (uuid.UUID, error) {
	raw := strings.TrimSpace(c.QueryParam("id"))
	if raw == "" {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "Dentist ID is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid dentist id")
	}
	return id, nil
}

func toHTTPError(err error) error {
	switch {
	case errors.Is(err, ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Dentist not found")
	case errors.Is(err, ErrInUse):
		return echo.NewHTTPError(http.StatusConflict, "Dentist has appointments and cannot be deleted")
	default:
		return err
	}
}
