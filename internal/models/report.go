package models

// ReportScope selects how a narrative report is framed.
type ReportScope string

const (
	ReportSingleIncident ReportScope = "incidencia"
	ReportSingleStudent  ReportScope = "estudiante"
	ReportGeneral        ReportScope = "general"
)

// GeneralReportSubject is the sentinel student name that switches the
// prompt to the institution-wide executive format.
const GeneralReportSubject = "Reporte General"

// Report is the parsed narrative produced by the generative backend. The
// placeholder values in Summary/Recommendations double as the degraded
// result when the backend fails.
type Report struct {
	Summary         string `json:"resumen"`
	PatternAnalysis string `json:"analisisPatrones,omitempty"`
	Strengths       string `json:"fortalezas,omitempty"`
	RiskFactors     string `json:"factoresRiesgo,omitempty"`
	Recommendations string `json:"recomendaciones"`
	FollowUpPlan    string `json:"planSeguimiento,omitempty"`
	Full            string `json:"report"`
	Raw             string `json:"raw,omitempty"`
	Truncated       bool   `json:"truncated"`
	Timestamp       string `json:"timestamp"`
	Err             string `json:"error,omitempty"`
}
