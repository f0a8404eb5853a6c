package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"hospital-booking-api/internal/scheduler"
	"hospital-booking-api/internal/store"
)

type Handler struct {
	sched *scheduler.Scheduler
	store *store.Store
}

func New(sched *scheduler.Scheduler, st *store.Store) *Handler {
	return &Handler{sched: sched, store: st}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)

	api := e.Group("/api")
	api.POST("/appointments", h.CreateAppointment)
	api.GET("/appointments", h.ListAppointments)
	api.GET("/appointments/:id", h.GetAppointment)
	api.PUT("/appointments/:id", h.UpdateAppointment)
	api.DELETE("/appointments/:id", h.CancelAppointment)

	// reference data, read-only
	api.GET("/doctors", h.ListDoctors)
	api.GET("/rooms", h.ListRooms)
}

func (h *Handler) Health(c echo.Context) error {
	if err := h.store.Ping(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "database unreachable")
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListDoctors(c echo.Context) error {
	doctors, err := h.store.ListDoctors(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, doctors)
}

func (h *Handler) ListRooms(c echo.Context) error {
	rooms, err := h.store.ListRooms(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, rooms)
}
