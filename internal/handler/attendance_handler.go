package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tutoria-escolar/tutoria-api/internal/models"
	"github.com/tutoria-escolar/tutoria-api/internal/service"
	appErrors "github.com/tutoria-escolar/tutoria-api/pkg/errors"
	"github.com/tutoria-escolar/tutoria-api/pkg/response"
)

// AttendanceHandler exposes attendance session and tally endpoints.
type AttendanceHandler struct {
	attendance *service.AttendanceService
}

// NewAttendanceHandler constructs AttendanceHandler.
func NewAttendanceHandler(attendance *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

// Record godoc
// @Summary Record a class attendance session
// @Tags Attendance
// @Accept json
// @Produce json
// @Param payload body service.RecordSessionRequest true "Session payload"
// @Success 201 {object} response.Envelope
// @Router /asistencia [post]
func (h *AttendanceHandler) Record(c *gin.Context) {
	var req service.RecordSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	session, err := h.attendance.RecordSession(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, session)
}

// List godoc
// @Summary List attendance sessions
// @Tags Attendance
// @Produce json
// @Param fecha query string false "Date (YYYY-MM-DD)"
// @Param claseId query string false "Class ID"
// @Param profesor query string false "Teacher name"
// @Param grado query string false "Grade"
// @Param seccion query string false "Section"
// @Param dia query string false "Weekday"
// @Param periodo query int false "Period"
// @Success 200 {object} response.Envelope
// @Router /asistencia [get]
func (h *AttendanceHandler) List(c *gin.Context) {
	filter := models.AttendanceSessionFilter{
		Date:    c.Query("fecha"),
		ClassID: c.Query("claseId"),
		Teacher: c.Query("profesor"),
		Grade:   c.Query("grado"),
		Section: c.Query("seccion"),
		Day:     models.Weekday(c.Query("dia")),
	}
	if raw := c.Query("periodo"); raw != "" {
		if period, err := strconv.Atoi(raw); err == nil {
			filter.Period = &period
		}
	}
	response.JSON(c, http.StatusOK, h.attendance.ListSessions(c.Request.Context(), filter))
}

// Tally godoc
// @Summary Per-student absence and tardy counts
// @Tags Attendance
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /asistencia/conteo [get]
func (h *AttendanceHandler) Tally(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.attendance.Tally(c.Request.Context()))
}

// Flagged godoc
// @Summary Students past the attendance attention threshold
// @Tags Attendance
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /asistencia/alertas [get]
func (h *AttendanceHandler) Flagged(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.attendance.Flagged(c.Request.Context()))
}
