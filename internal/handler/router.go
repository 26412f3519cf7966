package handler

import "github.com/gin-gonic/gin"

// Handlers bundles every route handler for registration.
type Handlers struct {
	Incidents     *IncidentHandler
	Attendance    *AttendanceHandler
	Notifications *NotificationHandler
	Reports       *ReportHandler
	Roster        *RosterHandler
	Metrics       *MetricsHandler
}

// Register mounts the API routes under the given prefix.
func Register(r *gin.Engine, prefix string, h Handlers) {
	api := r.Group(prefix)

	incidents := api.Group("/incidencias")
	incidents.GET("", h.Incidents.List)
	incidents.POST("", h.Incidents.Create)
	incidents.GET("/derivaciones", h.Incidents.PendingDerivations)
	incidents.GET("/resumen", h.Incidents.Summaries)
	incidents.GET("/export", h.Incidents.ExportCSV)
	incidents.GET("/estudiante/:nombre", h.Incidents.ByStudent)
	incidents.GET("/:id", h.Incidents.Get)
	incidents.PATCH("/:id/estado", h.Incidents.SetStatus)
	incidents.POST("/:id/resolver", h.Incidents.Resolve)

	attendance := api.Group("/asistencia")
	attendance.GET("", h.Attendance.List)
	attendance.POST("", h.Attendance.Record)
	attendance.GET("/conteo", h.Attendance.Tally)
	attendance.GET("/alertas", h.Attendance.Flagged)

	notifications := api.Group("/notificaciones")
	notifications.GET("/docente", h.Notifications.TeacherSurface)
	notifications.GET("/director", h.Notifications.DirectorSurface)
	notifications.POST("/director/visto", h.Notifications.MarkAllSeen)
	notifications.POST("/director/:id/visto", h.Notifications.MarkSeen)
	notifications.GET("/atendidos", h.Notifications.IsAttended)
	notifications.POST("/atendidos", h.Notifications.MarkAttended)
	notifications.POST("/incidencia-automatica", h.Notifications.AutoIncident)

	reports := api.Group("/reportes")
	reports.POST("", h.Reports.Generate)
	reports.POST("/pdf", h.Reports.ExportPDF)

	students := api.Group("/estudiantes")
	students.GET("", h.Roster.Students)
	students.PUT("", h.Roster.SaveStudent)
	students.GET("/:nombre", h.Roster.Student)

	tutors := api.Group("/tutores")
	tutors.GET("", h.Roster.Tutors)
	tutors.POST("", h.Roster.AddTutor)

	classes := api.Group("/clases")
	classes.GET("", h.Roster.Classes)
	classes.POST("", h.Roster.AddClass)

	grades := api.Group("/notas")
	grades.GET("", h.Roster.Grades)
	grades.POST("", h.Roster.AddGrade)

	catalogs := api.Group("/catalogos")
	catalogs.GET("", h.Roster.Catalogs)
	catalogs.GET("/tutores", h.Roster.HomeroomTutors)
	catalogs.PUT("/tutores", h.Roster.AssignHomeroomTutor)
	catalogs.DELETE("/tutores", h.Roster.UnassignHomeroomTutor)

	api.GET("/estado", h.Metrics.Status)
}
