package appointment

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/dentaldesk/dentaldesk/internal/platform/auth"
	"github.com/dentaldesk/dentaldesk/pkg/pagination"
)

const errIDRequired = "Appointment ID is required"

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the single /appointments resource. Records are
// addressed with ?id=; any other verb gets 405 from the router.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	staff := auth.RequireRole(auth.RoleDentist, auth.RoleReceptionist)
	api.GET("/appointments", h.Read, staff)
	api.POST("/appointments", h.Create, staff)
	api.PUT("/appointments", h.Update, staff)
	api.DELETE("/appointments", h.Delete, staff)
}

// Read lists appointments, or returns one when ?id= is present. An unknown
// id yields {"data": null}.
func (h *Handler) Read(c echo.Context) error {
	ctx := c.Request().Context()

	if raw := c.QueryParam("id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid appointment id")
		}
		a, err := h.svc.Get(ctx, id)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, map[string]interface{}{"data": a})
	}

	f, err := filterFromQuery(c)
	if err != nil {
		return err
	}
	p := pagination.FromContext(c)
	items, total, err := h.svc.List(ctx, f, p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, p))
}

func (h *Handler) Create(c echo.Context) error {
	var in Input
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	a, err := h.svc.Create(c.Request().Context(), in)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{"data": a})
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
	a, err := h.svc.Update(c.Request().Context(), id, in)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"data": a})
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

// requireID checks ?id= before the body is looked at.
func requireID(c echo.Context) (uuid.UUID, error) {
	raw := strings.TrimSpace(c.QueryParam("id"))
	if raw == "" {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, errIDRequired)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid appointment id")
	}
	return id, nil
}

func filterFromQuery(c echo.Context) (ListFilter, error) {
	f := ListFilter{Status: c.QueryParam("status")}

	var err error
	if f.Date, err = NormalizeDate(c.QueryParam("date")); err != nil {
		return f, toHTTPError(err)
	}
	if f.From, err = NormalizeDate(c.QueryParam("from")); err != nil {
		return f, toHTTPError(err)
	}
	if f.To, err = NormalizeDate(c.QueryParam("to")); err != nil {
		return f, toHTTPError(err)
	}
	if f.DentistID, err = parseOptionalUUID(c.QueryParam("dentistId")); err != nil {
		return f, echo.NewHTTPError(http.StatusBadRequest, "invalid dentistId")
	}
	if f.PatientID, err = parseOptionalUUID(c.QueryParam("patientId")); err != nil {
		return f, echo.NewHTTPError(http.StatusBadRequest, "invalid patientId")
	}
	return f, nil
}

func toHTTPError(err error) error {
	switch {
	case errors.Is(err, ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrSlotTaken):
		return echo.NewHTTPError(http.StatusConflict, ConflictMessage)
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Appointment not found")
	default:
		return err
	}
}
