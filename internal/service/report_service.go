package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tutoria-escolar/tutoria-api/internal/models"
	appErrors "github.com/tutoria-escolar/tutoria-api/pkg/errors"
)

// Output token budgets per report scope.
const (
	tokensSingleIncident = 2000
	tokensSingleStudent  = 2500
	tokensGeneral        = 4000
)

// Degraded-result placeholder text. These land in the response body when the
// backend fails, so the reader always sees something actionable in Spanish.
const (
	fallbackConnectSummary    = "Error al conectar con el servicio de IA"
	fallbackConnectRecs       = "Por favor, intenta nuevamente más tarde."
	fallbackEmptySummary      = "No se pudo generar el análisis"
	fallbackParseSummary      = "Error al procesar la respuesta"
	fallbackRetryRecs         = "Por favor, intenta nuevamente."
	placeholderSummary        = "Análisis no disponible"
	placeholderRecs           = "Recomendaciones no disponibles"
	defaultRecommendationText = "Consulte con el tutor o coordinador para determinar acciones específicas."
)

// ReportService builds prompts for the generative backend and parses the
// sectioned plain-text answer into a structured report. Backend failures
// never propagate as errors: every path degrades to a placeholder report so
// callers can always render something.
type ReportService struct {
	generator textGenerator
	logger    *zap.Logger
	now       func() time.Time
}

// NewReportService constructs the service.
func NewReportService(generator textGenerator, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{generator: generator, logger: logger, now: time.Now}
}

// GenerateReportRequest selects the report scope. Incidents plus a student
// name produces a consolidated report (institution-wide when the name is the
// general sentinel); a single incident produces an individual analysis.
type GenerateReportRequest struct {
	Incident  *models.Incident  `json:"incidencia,omitempty"`
	Incidents []models.Incident `json:"incidencias,omitempty"`
	Student   string            `json:"estudiante,omitempty"`
}

// Generate produces a narrative report. The only returned error is a
// validation failure on the request itself.
func (s *ReportService) Generate(ctx context.Context, req GenerateReportRequest) (*models.Report, error) {
	var prompt string
	var maxTokens int

	switch {
	case len(req.Incidents) > 0 && req.Student != "":
		if req.Student == models.GeneralReportSubject {
			prompt = s.generalPrompt(req.Incidents)
			maxTokens = tokensGeneral
		} else {
			prompt = s.studentPrompt(req.Student, req.Incidents)
			maxTokens = tokensSingleStudent
		}
	case req.Incident != nil:
		prompt = s.incidentPrompt(*req.Incident)
		maxTokens = tokensSingleIncident
	default:
		return nil, appErrors.New(appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "no incident or incident list provided")
	}

	result, err := s.generator.Generate(ctx, prompt, maxTokens)
	if err != nil {
		s.logger.Warn("generation failed", zap.Error(err))
		raw := ""
		if result != nil {
			raw = result.Raw
		}
		summary, recommendations := fallbackConnectSummary, fallbackConnectRecs
		if errors.Is(err, errMalformedResponse) {
			summary, recommendations = fallbackParseSummary, fallbackRetryRecs
		}
		return s.fallback(summary, recommendations, raw, err.Error()), nil
	}
	if result.Text == "" {
		s.logger.Warn("generation returned no text")
		return s.fallback(fallbackEmptySummary, fallbackRetryRecs, result.Raw, "no text in response"), nil
	}

	report := s.parse(result.Text)
	report.Truncated = result.FinishReason == FinishMaxTokens &&
		(report.Summary == placeholderSummary || report.Recommendations == placeholderRecs)
	report.Timestamp = s.now().UTC().Format(time.RFC3339)
	return report, nil
}

func (s *ReportService) fallback(summary, recommendations, raw, errMsg string) *models.Report {
	return &models.Report{
		Summary:         summary,
		Recommendations: recommendations,
		Full:            summary,
		Raw:             raw,
		Err:             errMsg,
		Timestamp:       s.now().UTC().Format(time.RFC3339),
	}
}

type incidentStats struct {
	total    int
	byType   string
	bySev    string
	students int
}

func summarize(incidents []models.Incident) incidentStats {
	byType := make(map[string]int)
	bySev := make(map[string]int)
	students := make(map[string]struct{})
	for _, inc := range incidents {
		tipo := string(inc.Type)
		if tipo == "" {
			tipo = "otro"
		}
		gravedad := string(inc.Severity)
		if gravedad == "" {
			gravedad = "moderada"
		}
		byType[tipo]++
		bySev[gravedad]++
		students[inc.StudentName] = struct{}{}
	}
	return incidentStats{
		total:    len(incidents),
		byType:   formatCounts(byType),
		bySev:    formatCounts(bySev),
		students: len(students),
	}
}

func formatCounts(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s:%d", k, counts[k]))
	}
	return strings.Join(parts, ", ")
}

func (s *ReportService) generalPrompt(incidents []models.Incident) string {
	stats := summarize(incidents)
	return fmt.Sprintf(`Genera un reporte ejecutivo breve:

RESUMEN:
[2 líneas: total de incidencias y porcentajes principales]

RECOMENDACIONES:
[3 recomendaciones breves, una por línea. IMPORTANTE: Las "positivas" DEBEN INCREMENTARSE. Las "ausencia", "conducta" y "académica" se deben PREVENIR o REDUCIR]

Datos: %d incidencias | Tipos: %s | Gravedades: %s | Estudiantes: %d

Sin asteriscos ni markdown.`, stats.total, stats.byType, stats.bySev, stats.students)
}

func (s *ReportService) studentPrompt(student string, incidents []models.Incident) string {
	stats := summarize(incidents)
	lines := make([]string, 0, len(incidents))
	for i, inc := range incidents {
		desc := inc.Description
		if desc == "" {
			desc = "N/A"
		}
		if len(desc) > 60 {
			desc = desc[:60]
		}
		tipo := string(inc.Type)
		if tipo == "" {
			tipo = "N/A"
		}
		gravedad := string(inc.Severity)
		if gravedad == "" {
			gravedad = "N/A"
		}
		lines = append(lines, fmt.Sprintf("Inc %d: %s - %s - %s", i+1, tipo, gravedad, desc))
	}
	return fmt.Sprintf(`Analiza las incidencias y genera un reporte CONCISO:

RESUMEN:
[2 líneas máximo: situación general del estudiante]

ANÁLISIS DE PATRONES:
[1-2 líneas: patrones identificados]

FORTALEZAS Y ÁREAS DE MEJORA:
[1-2 líneas: aspectos positivos y áreas a mejorar]

FACTORES DE RIESGO:
[1 línea: principales factores si existen]

RECOMENDACIONES:
[Máximo 3 recomendaciones breves, una por línea]

PLAN DE SEGUIMIENTO:
[Máximo 2 pasos específicos, uno por línea]

Estudiante: %s
Total: %d | Tipos: %s | Gravedades: %s

Incidencias:
%s

IMPORTANTE: Máximo 2 líneas por sección. Sin asteriscos ni markdown. Lenguaje directo.`, student, stats.total, stats.byType, stats.bySev, strings.Join(lines, "\n"))
}

func (s *ReportService) incidentPrompt(inc models.Incident) string {
	orUnspecified := func(v string) string {
		if v == "" {
			return "No especificado"
		}
		return v
	}
	return fmt.Sprintf(`Analiza esta incidencia y responde BREVE y DIRECTA:

RESUMEN:
[1-2 líneas: qué pasó y por qué es importante]

RECOMENDACIONES:
[Máximo 2 acciones concretas, una por línea]

Datos: Tipo: %s | Estudiante: %s | Profesor: %s | Descripción: %s | Fecha: %s | Gravedad: %s | Derivación: %s

IMPORTANTE: Máximo 2 líneas por sección. Sin asteriscos ni markdown.`,
		orUnspecified(string(inc.Type)),
		orUnspecified(inc.StudentName),
		orUnspecified(inc.Teacher),
		orUnspecified(inc.Description),
		orUnspecified(inc.Date),
		orUnspecified(string(inc.Severity)),
		orUnspecified(string(inc.Derivation)),
	)
}

// extractSection pulls the body of a labeled section out of the raw answer.
// The label may be wrapped in bold markers; the body runs until the first of
// the stop labels, or to the end of the text.
func extractSection(text, label string, stopLabels string) string {
	pattern := regexp.MustCompile(`(?i)(?:\*\*)?` + label + `:?\s*\*?\*?`)
	loc := pattern.FindStringIndex(text)
	if loc == nil {
		return ""
	}
	remaining := strings.TrimSpace(text[loc[1]:])
	if stopLabels != "" {
		stop := regexp.MustCompile(`(?i)(?:\*\*)?(?:` + stopLabels + `):?\s*\*?\*?`)
		if next := stop.FindStringIndex(remaining); next != nil {
			return strings.TrimSpace(remaining[:next[0]])
		}
	}
	return remaining
}

var (
	boldPattern      = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicPattern    = regexp.MustCompile(`\*([^*]+)\*`)
	underBoldPattern = regexp.MustCompile(`__([^_]+)__`)
	underPattern     = regexp.MustCompile(`_([^_]+)_`)
	headingPattern   = regexp.MustCompile(`(?m)^#+\s*`)
)

// cleanMarkdown strips the bold/italic/heading markers the model emits even
// when told not to.
func cleanMarkdown(text string) string {
	if text == "" {
		return ""
	}
	text = boldPattern.ReplaceAllString(text, "$1")
	text = italicPattern.ReplaceAllString(text, "$1")
	text = underBoldPattern.ReplaceAllString(text, "$1")
	text = underPattern.ReplaceAllString(text, "$1")
	text = headingPattern.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// parse extracts the known sections in order, applies the fallback chain for
// answers that ignored the requested format, and assembles the combined
// report body.
func (s *ReportService) parse(text string) *models.Report {
	summary := extractSection(text, "RESUMEN", `ANÁLISIS DE PATRONES|PATRONES|FORTALEZAS|RIESGOS|RECOMENDACIONES|SEGUIMIENTO`)
	patterns := extractSection(text, "ANÁLISIS DE PATRONES", `FORTALEZAS|RIESGOS|RECOMENDACIONES|SEGUIMIENTO`)
	if patterns == "" {
		patterns = extractSection(text, "PATRONES", `FORTALEZAS|RIESGOS|RECOMENDACIONES|SEGUIMIENTO`)
	}
	strengths := extractSection(text, "FORTALEZAS Y ÁREAS DE MEJORA", `RIESGOS|FACTORES|RECOMENDACIONES|SEGUIMIENTO`)
	if strengths == "" {
		strengths = extractSection(text, "FORTALEZAS Y MEJORAS", `RIESGOS|FACTORES|RECOMENDACIONES|SEGUIMIENTO`)
	}
	risks := extractSection(text, "FACTORES DE RIESGO", `RECOMENDACIONES|SEGUIMIENTO`)
	if risks == "" {
		risks = extractSection(text, "RIESGOS", `RECOMENDACIONES|SEGUIMIENTO`)
	}
	recommendations := extractSection(text, "RECOMENDACIONES", `PLAN DE SEGUIMIENTO|SEGUIMIENTO`)
	followUp := extractSection(text, "PLAN DE SEGUIMIENTO", "")
	if followUp == "" {
		followUp = extractSection(text, "SEGUIMIENTO", "")
	}

	// Unformatted answer: salvage summary and recommendations by position.
	if summary == "" && recommendations == "" {
		summary = extractSection(text, "Resumen", "")
		if summary != "" {
			if idx := regexp.MustCompile(`(?i)Recomendaciones:\s*`).FindStringIndex(summary); idx != nil {
				recommendations = strings.TrimSpace(summary[idx[1]:])
				summary = strings.TrimSpace(summary[:idx[0]])
			}
		}
	}
	if summary == "" && recommendations == "" && patterns == "" && text != "" {
		summary = strings.TrimSpace(text)
	}
	if summary != "" && recommendations == "" {
		recommendations = defaultRecommendationText
	}

	summary = cleanMarkdown(summary)
	patterns = cleanMarkdown(patterns)
	strengths = cleanMarkdown(strengths)
	risks = cleanMarkdown(risks)
	recommendations = cleanMarkdown(recommendations)
	followUp = cleanMarkdown(followUp)

	full := assembleFull(summary, patterns, strengths, risks, recommendations, followUp)
	if full == "" && text != "" {
		full = strings.TrimSpace(text)
	}

	report := &models.Report{
		Summary:         summary,
		PatternAnalysis: patterns,
		Strengths:       strengths,
		RiskFactors:     risks,
		Recommendations: recommendations,
		FollowUpPlan:    followUp,
		Full:            full,
		Raw:             text,
	}
	if report.Summary == "" {
		report.Summary = placeholderSummary
	}
	if report.Recommendations == "" {
		report.Recommendations = placeholderRecs
	}
	if report.Full == "" {
		report.Full = report.Summary
	}
	if report.Raw == "" {
		report.Raw = "Sin respuesta"
	}
	return report
}

func assembleFull(summary, patterns, strengths, risks, recommendations, followUp string) string {
	var b strings.Builder
	write := func(label, body string) {
		if body == "" {
			return
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(label)
		b.WriteString(":\n")
		b.WriteString(body)
	}
	write("RESUMEN", summary)
	write("PATRONES", patterns)
	write("FORTALEZAS Y MEJORAS", strengths)
	write("RIESGOS", risks)
	write("RECOMENDACIONES", recommendations)
	write("SEGUIMIENTO", followUp)
	return b.String()
}
