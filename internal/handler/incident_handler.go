package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tutoria-escolar/tutoria-api/internal/models"
	"github.com/tutoria-escolar/tutoria-api/internal/service"
	appErrors "github.com/tutoria-escolar/tutoria-api/pkg/errors"
	"github.com/tutoria-escolar/tutoria-api/pkg/export"
	"github.com/tutoria-escolar/tutoria-api/pkg/response"
)

// IncidentHandler exposes incident lifecycle endpoints.
type IncidentHandler struct {
	incidents *service.IncidentService
	csv       *export.CSVExporter
}

// NewIncidentHandler constructs IncidentHandler.
func NewIncidentHandler(incidents *service.IncidentService, csv *export.CSVExporter) *IncidentHandler {
	return &IncidentHandler{incidents: incidents, csv: csv}
}

// List godoc
// @Summary List incidents
// @Tags Incidents
// @Produce json
// @Param gravedad query string false "Severity filter, 'todas' matches all"
// @Param tipo query string false "Type filter, 'todas' matches all"
// @Param estudiante query string false "Student name substring"
// @Param desde query string false "Start date (YYYY-MM-DD)"
// @Param hasta query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /incidencias [get]
func (h *IncidentHandler) List(c *gin.Context) {
	filter := models.IncidentFilter{
		Severity:    c.Query("gravedad"),
		Type:        c.Query("tipo"),
		StudentName: c.Query("estudiante"),
		DateFrom:    c.Query("desde"),
		DateTo:      c.Query("hasta"),
	}
	response.JSON(c, http.StatusOK, h.incidents.List(c.Request.Context(), filter))
}

// Get godoc
// @Summary Get incident detail
// @Tags Incidents
// @Produce json
// @Param id path string true "Incident ID"
// @Success 200 {object} response.Envelope
// @Router /incidencias/{id} [get]
func (h *IncidentHandler) Get(c *gin.Context) {
	incident, err := h.incidents.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	// Advisory only, the workflow never enforces these.
	meta := map[string]interface{}{"siguientesEstados": models.NextStatuses(incident.Status)}
	response.JSON(c, http.StatusOK, incident, meta)
}

// Create godoc
// @Summary Register an incident
// @Tags Incidents
// @Accept json
// @Produce json
// @Param payload body service.CreateIncidentRequest true "Incident payload"
// @Success 201 {object} response.Envelope
// @Router /incidencias [post]
func (h *IncidentHandler) Create(c *gin.Context) {
	var req service.CreateIncidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	incident, err := h.incidents.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, incident)
}

type setStatusRequest struct {
	Status models.IncidentStatus `json:"estado"`
	Actor  string                `json:"usuario"`
}

// SetStatus godoc
// @Summary Change incident workflow stage
// @Tags Incidents
// @Accept json
// @Produce json
// @Param id path string true "Incident ID"
// @Param payload body setStatusRequest true "New stage"
// @Success 204
// @Router /incidencias/{id}/estado [patch]
func (h *IncidentHandler) SetStatus(c *gin.Context) {
	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.incidents.SetStatus(c.Request.Context(), c.Param("id"), req.Status, req.Actor); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

type resolveRequest struct {
	ResolvedBy string `json:"resueltaPor"`
}

// Resolve godoc
// @Summary Mark an incident operationally resolved
// @Tags Incidents
// @Accept json
// @Produce json
// @Param id path string true "Incident ID"
// @Param payload body resolveRequest false "Resolver"
// @Success 204
// @Router /incidencias/{id}/resolver [post]
func (h *IncidentHandler) Resolve(c *gin.Context) {
	var req resolveRequest
	_ = c.ShouldBindJSON(&req)
	h.incidents.Resolve(c.Request.Context(), c.Param("id"), req.ResolvedBy)
	response.NoContent(c)
}

// PendingDerivations godoc
// @Summary List unresolved incidents, optionally by derivation target
// @Tags Incidents
// @Produce json
// @Param destino query string false "Derivation target"
// @Success 200 {object} response.Envelope
// @Router /incidencias/derivaciones [get]
func (h *IncidentHandler) PendingDerivations(c *gin.Context) {
	target := models.DerivationTarget(c.Query("destino"))
	if target != "" && !target.Valid() {
		response.Error(c, appErrors.New(appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid destino"))
		return
	}
	response.JSON(c, http.StatusOK, h.incidents.PendingDerivations(c.Request.Context(), target))
}

// ByStudent godoc
// @Summary List one student's incidents
// @Tags Incidents
// @Produce json
// @Param nombre path string true "Student name"
// @Success 200 {object} response.Envelope
// @Router /incidencias/estudiante/{nombre} [get]
func (h *IncidentHandler) ByStudent(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.incidents.ByStudent(c.Request.Context(), c.Param("nombre")))
}

// Summaries godoc
// @Summary Per-student incident totals
// @Tags Incidents
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /incidencias/resumen [get]
func (h *IncidentHandler) Summaries(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.incidents.StudentSummaries(c.Request.Context()))
}

// ExportCSV godoc
// @Summary Export incidents as CSV
// @Tags Incidents
// @Produce text/csv
// @Success 200 {string} string
// @Router /incidencias/export [get]
func (h *IncidentHandler) ExportCSV(c *gin.Context) {
	filter := models.IncidentFilter{
		Severity:    c.Query("gravedad"),
		Type:        c.Query("tipo"),
		StudentName: c.Query("estudiante"),
		DateFrom:    c.Query("desde"),
		DateTo:      c.Query("hasta"),
	}
	incidents := h.incidents.List(c.Request.Context(), filter)

	headers := []string{"id", "estudiante", "tipo", "subtipo", "gravedad", "descripcion", "fecha", "profesor", "derivacion", "resuelta", "estado"}
	rows := make([]map[string]string, 0, len(incidents))
	for _, inc := range incidents {
		resolved := "no"
		if inc.Resolved {
			resolved = "si"
		}
		rows = append(rows, map[string]string{
			"id":          inc.ID,
			"estudiante":  inc.StudentName,
			"tipo":        string(inc.Type),
			"subtipo":     string(inc.Subtype),
			"gravedad":    string(inc.Severity),
			"descripcion": inc.Description,
			"fecha":       inc.Date,
			"profesor":    inc.Teacher,
			"derivacion":  string(inc.Derivation),
			"resuelta":    resolved,
			"estado":      string(inc.Status),
		})
	}

	data, err := h.csv.Render(export.Dataset{Headers: headers, Rows: rows})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="incidencias.csv"`)
	c.Data(http.StatusOK, "text/csv", data)
}
