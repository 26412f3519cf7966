package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tutoria-escolar/tutoria-api/internal/service"
	appErrors "github.com/tutoria-escolar/tutoria-api/pkg/errors"
	"github.com/tutoria-escolar/tutoria-api/pkg/response"
)

// NotificationHandler exposes the teacher and director attention surfaces.
type NotificationHandler struct {
	notifications *service.NotificationService
	incidents     *service.IncidentService
	attendance    *service.AttendanceService
}

// NewNotificationHandler constructs NotificationHandler.
func NewNotificationHandler(notifications *service.NotificationService, incidents *service.IncidentService, attendance *service.AttendanceService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications, incidents: incidents, attendance: attendance}
}

// TeacherSurface godoc
// @Summary Flagged students needing teacher attention
// @Tags Notifications
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /notificaciones/docente [get]
func (h *NotificationHandler) TeacherSurface(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.notifications.TeacherSurface(c.Request.Context()))
}

// DirectorSurface godoc
// @Summary Newest unacknowledged incidents for the director
// @Tags Notifications
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /notificaciones/director [get]
func (h *NotificationHandler) DirectorSurface(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.notifications.DirectorSurface(c.Request.Context()))
}

// MarkSeen godoc
// @Summary Acknowledge one incident
// @Tags Notifications
// @Param id path string true "Incident ID"
// @Success 204
// @Router /notificaciones/director/{id}/visto [post]
func (h *NotificationHandler) MarkSeen(c *gin.Context) {
	h.notifications.MarkSeen(c.Request.Context(), c.Param("id"))
	response.NoContent(c)
}

// MarkAllSeen godoc
// @Summary Acknowledge every incident on the director surface
// @Tags Notifications
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /notificaciones/director/visto [post]
func (h *NotificationHandler) MarkAllSeen(c *gin.Context) {
	marked := h.notifications.MarkAllSeen(c.Request.Context())
	response.JSON(c, http.StatusOK, gin.H{"marcadas": marked})
}

type autoIncidentRequest struct {
	Name    string `json:"nombre"`
	Teacher string `json:"profesor"`
}

// AutoIncident godoc
// @Summary Create an absence-accumulation incident for a flagged student
// @Tags Notifications
// @Accept json
// @Produce json
// @Param payload body autoIncidentRequest true "Flagged student"
// @Success 201 {object} response.Envelope
// @Router /notificaciones/incidencia-automatica [post]
func (h *NotificationHandler) AutoIncident(c *gin.Context) {
	var req autoIncidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if req.Name == "" {
		response.Error(c, appErrors.MissingField("nombre"))
		return
	}
	if req.Teacher == "" {
		response.Error(c, appErrors.MissingField("profesor"))
		return
	}
	counts := h.attendance.Tally(c.Request.Context())[req.Name]
	incident, err := h.incidents.CreateFromAttendance(c.Request.Context(), req.Name, counts, req.Teacher)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, incident)
}

type markAttendedRequest struct {
	Names   []string `json:"nombres"`
	Name    string   `json:"nombre"`
	Date    string   `json:"fecha"`
	Teacher string   `json:"profesor"`
}

// MarkAttended godoc
// @Summary Mark flagged students as attended
// @Tags Notifications
// @Accept json
// @Success 204
// @Router /notificaciones/atendidos [post]
func (h *NotificationHandler) MarkAttended(c *gin.Context) {
	var req markAttendedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if req.Teacher == "" {
		response.Error(c, appErrors.MissingField("profesor"))
		return
	}
	switch {
	case len(req.Names) > 0:
		h.notifications.MarkManyAttended(c.Request.Context(), req.Names, req.Date, req.Teacher)
	case req.Name != "":
		h.notifications.MarkAttended(c.Request.Context(), req.Name, req.Date, req.Teacher)
	default:
		response.Error(c, appErrors.MissingField("nombre"))
		return
	}
	response.NoContent(c)
}

// IsAttended godoc
// @Summary Check whether a student was already attended
// @Tags Notifications
// @Produce json
// @Param nombre query string true "Student name"
// @Param profesor query string true "Teacher name"
// @Param fecha query string false "Date (defaults to today)"
// @Success 200 {object} response.Envelope
// @Router /notificaciones/atendidos [get]
func (h *NotificationHandler) IsAttended(c *gin.Context) {
	name := c.Query("nombre")
	teacher := c.Query("profesor")
	if name == "" {
		response.Error(c, appErrors.MissingField("nombre"))
		return
	}
	if teacher == "" {
		response.Error(c, appErrors.MissingField("profesor"))
		return
	}
	attended := h.notifications.IsAttended(c.Request.Context(), name, teacher, c.Query("fecha"))
	response.JSON(c, http.StatusOK, gin.H{"atendido": attended})
}
