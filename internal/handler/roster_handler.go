package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tutoria-escolar/tutoria-api/internal/models"
	"github.com/tutoria-escolar/tutoria-api/internal/service"
	appErrors "github.com/tutoria-escolar/tutoria-api/pkg/errors"
	"github.com/tutoria-escolar/tutoria-api/pkg/response"
)

// RosterHandler exposes students, tutors, classes, marks and catalogs.
type RosterHandler struct {
	roster *service.RosterService
}

// NewRosterHandler constructs RosterHandler.
func NewRosterHandler(roster *service.RosterService) *RosterHandler {
	return &RosterHandler{roster: roster}
}

// Students godoc
// @Summary List students
// @Tags Roster
// @Produce json
// @Param grado query string false "Grade filter"
// @Param seccion query string false "Section filter"
// @Param nombre query string false "Name substring"
// @Success 200 {object} response.Envelope
// @Router /estudiantes [get]
func (h *RosterHandler) Students(c *gin.Context) {
	filter := service.StudentFilter{
		Grade:   c.Query("grado"),
		Section: c.Query("seccion"),
		Name:    c.Query("nombre"),
	}
	response.JSON(c, http.StatusOK, h.roster.Students(c.Request.Context(), filter))
}

// Student godoc
// @Summary Get one student by name
// @Tags Roster
// @Produce json
// @Param nombre path string true "Student name"
// @Success 200 {object} response.Envelope
// @Router /estudiantes/{nombre} [get]
func (h *RosterHandler) Student(c *gin.Context) {
	student, err := h.roster.Student(c.Request.Context(), c.Param("nombre"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student)
}

// SaveStudent godoc
// @Summary Create or update a student
// @Tags Roster
// @Accept json
// @Success 204
// @Router /estudiantes [put]
func (h *RosterHandler) SaveStudent(c *gin.Context) {
	var student models.Student
	if err := c.ShouldBindJSON(&student); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.roster.SaveStudent(c.Request.Context(), student); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Tutors godoc
// @Summary List tutors
// @Tags Roster
// @Produce json
// @Param nombre query string false "Name substring"
// @Success 200 {object} response.Envelope
// @Router /tutores [get]
func (h *RosterHandler) Tutors(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.roster.Tutors(c.Request.Context(), c.Query("nombre")))
}

// AddTutor godoc
// @Summary Add a tutor
// @Tags Roster
// @Accept json
// @Produce json
// @Success 201 {object} response.Envelope
// @Router /tutores [post]
func (h *RosterHandler) AddTutor(c *gin.Context) {
	var tutor models.Tutor
	if err := c.ShouldBindJSON(&tutor); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	created, err := h.roster.AddTutor(c.Request.Context(), tutor)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// Classes godoc
// @Summary List classes
// @Tags Roster
// @Produce json
// @Param profesor query string false "Teacher name"
// @Param grado query string false "Grade filter"
// @Param seccion query string false "Section filter"
// @Success 200 {object} response.Envelope
// @Router /clases [get]
func (h *RosterHandler) Classes(c *gin.Context) {
	filter := service.ClassFilter{
		Teacher: c.Query("profesor"),
		Grade:   c.Query("grado"),
		Section: c.Query("seccion"),
	}
	response.JSON(c, http.StatusOK, h.roster.Classes(c.Request.Context(), filter))
}

// AddClass godoc
// @Summary Add a class
// @Tags Roster
// @Accept json
// @Produce json
// @Success 201 {object} response.Envelope
// @Router /clases [post]
func (h *RosterHandler) AddClass(c *gin.Context) {
	var class models.Class
	if err := c.ShouldBindJSON(&class); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	created, err := h.roster.AddClass(c.Request.Context(), class)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// Grades godoc
// @Summary List academic marks
// @Tags Roster
// @Produce json
// @Param estudiante query string false "Student name"
// @Success 200 {object} response.Envelope
// @Router /notas [get]
func (h *RosterHandler) Grades(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.roster.Grades(c.Request.Context(), c.Query("estudiante")))
}

// AddGrade godoc
// @Summary Add an academic mark
// @Tags Roster
// @Accept json
// @Produce json
// @Success 201 {object} response.Envelope
// @Router /notas [post]
func (h *RosterHandler) AddGrade(c *gin.Context) {
	var grade models.Grade
	if err := c.ShouldBindJSON(&grade); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	created, err := h.roster.AddGrade(c.Request.Context(), grade)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// Catalogs godoc
// @Summary Grade and section catalogs
// @Tags Roster
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /catalogos [get]
func (h *RosterHandler) Catalogs(c *gin.Context) {
	ctx := c.Request.Context()
	response.JSON(c, http.StatusOK, gin.H{
		"grados":    h.roster.GradeCatalog(ctx),
		"secciones": h.roster.SectionCatalog(ctx),
	})
}

// HomeroomTutors godoc
// @Summary List homeroom tutor assignments
// @Tags Roster
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /catalogos/tutores [get]
func (h *RosterHandler) HomeroomTutors(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.roster.HomeroomTutors(c.Request.Context()))
}

// AssignHomeroomTutor godoc
// @Summary Assign a homeroom tutor to a (grade, section) pair
// @Tags Roster
// @Accept json
// @Success 204
// @Router /catalogos/tutores [put]
func (h *RosterHandler) AssignHomeroomTutor(c *gin.Context) {
	var assignment models.HomeroomTutor
	if err := c.ShouldBindJSON(&assignment); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.roster.AssignHomeroomTutor(c.Request.Context(), assignment); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// UnassignHomeroomTutor godoc
// @Summary Remove a homeroom tutor assignment
// @Tags Roster
// @Param grado query string true "Grade"
// @Param seccion query string true "Section"
// @Success 204
// @Router /catalogos/tutores [delete]
func (h *RosterHandler) UnassignHomeroomTutor(c *gin.Context) {
	grade := c.Query("grado")
	section := c.Query("seccion")
	if grade == "" {
		response.Error(c, appErrors.MissingField("grado"))
		return
	}
	if section == "" {
		response.Error(c, appErrors.MissingField("seccion"))
		return
	}
	h.roster.UnassignHomeroomTutor(c.Request.Context(), grade, section)
	response.NoContent(c)
}
