package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"hospital-booking-api/internal/model"
	"hospital-booking-api/internal/scheduler"
)

type appointmentRequest struct {
	RoomID      string    `json:"room_id"`
	DoctorID    string    `json:"doctor_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	PatientName string    `json:"patient_name"`
}

func (r *appointmentRequest) toModel() *model.Appointment {
	return &model.Appointment{
		RoomID:      r.RoomID,
		DoctorID:    r.DoctorID,
		ScheduledAt: r.ScheduledAt,
		PatientName: r.PatientName,
	}
}

func (h *Handler) CreateAppointment(c echo.Context) error {
	var req appointmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	a := req.toModel()
	if err := h.sched.Book(c.Request().Context(), a); err != nil {
		return fail(c, err, &req)
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) ListAppointments(c echo.Context) error {
	var f scheduler.SearchFilter

	if v := c.QueryParam("date"); v != "" {
		d, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
		}
		f.Date = &d
	}
	f.DoctorID = c.QueryParam("doctor_id")
	f.RoomID = c.QueryParam("room_id")

	appts, err := h.sched.Search(c.Request().Context(), f)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	if appts == nil {
		appts = []model.Appointment{}
	}
	return c.JSON(http.StatusOK, appts)
}

func (h *Handler) GetAppointment(c echo.Context) error {
	a, err := h.sched.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, err, nil)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) UpdateAppointment(c echo.Context) error {
	var req appointmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	a, err := h.sched.Reschedule(c.Request().Context(), c.Param("id"), req.toModel())
	if err != nil {
		return fail(c, err, &req)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) CancelAppointment(c echo.Context) error {
	if err := h.sched.Cancel(c.Request().Context(), c.Param("id")); err != nil {
		return fail(c, err, nil)
	}
	return c.NoContent(http.StatusNoContent)
}

// fail renders a scheduler failure. Client-correctable responses carry
// the submitted fields back so a form can be redisplayed without
// re-entry.
func fail(c echo.Context, err error, submitted *appointmentRequest) error {
	var serr *scheduler.Error
	if !errors.As(err, &serr) {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	code := http.StatusConflict
	switch serr.Kind {
	case scheduler.KindInvalidInput:
		code = http.StatusBadRequest
	case scheduler.KindNotFound:
		code = http.StatusNotFound
	}

	body := map[string]any{
		"error":   string(serr.Kind),
		"message": serr.Message,
	}
	if submitted != nil {
		body["submitted"] = submitted
	}
	return c.JSON(code, body)
}
