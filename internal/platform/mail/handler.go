package mail

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dentaldesk/dentaldesk/internal/platform/auth"
)

type Handler struct {
	box Mailbox
}

func NewHandler(box Mailbox) *Handler {
	return &Handler{box: box}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/mail", auth.RequireRole(auth.RoleReceptionist))
	g.POST("/connect", h.Connect)
	g.POST("/disconnect", h.Disconnect)
	g.GET("/status", h.Status)
	g.GET("/suggestions", h.Suggestions)
	g.GET("/templates", h.Templates)
	g.POST("/send", h.Send)
}

func (h *Handler) Connect(c echo.Context) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	st, err := h.box.Connect(c.Request().Context(), req.Email)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"data": st})
}

func (h *Handler) Disconnect(c echo.Context) error {
	st, err := h.box.Disconnect(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"data": st})
}

func (h *Handler) Status(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{"data": h.box.Status(c.Request().Context())})
}

func (h *Handler) Suggestions(c echo.Context) error {
	list, err := h.box.Suggestions(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"data": list})
}

func (h *Handler) Templates(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{"data": Templates()})
}

func (h *Handler) Send(c echo.Context) error {
	var msg Message
	if err := c.Bind(&msg); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := h.box.Send(c.Request().Context(), msg); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func toHTTPError(err error) error {
	switch {
	case errors.Is(err, ErrNotConnected):
		return echo.NewHTTPError(http.StatusConflict, "Mailbox is not connected")
	case errors.Is(err, ErrInvalidAddress), errors.Is(err, ErrInvalidMessage):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusBadGateway, err.Error()).SetInternal(err)
	}
}
