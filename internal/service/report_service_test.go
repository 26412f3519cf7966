package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutoria-escolar/tutoria-api/internal/models"
)

type generatorStub struct {
	result    *GenerationResult
	err       error
	prompt    string
	maxTokens int
}

func (g *generatorStub) Generate(ctx context.Context, prompt string, maxTokens int) (*GenerationResult, error) {
	g.prompt = prompt
	g.maxTokens = maxTokens
	return g.result, g.err
}

func singleIncidentRequest() GenerateReportRequest {
	return GenerateReportRequest{Incident: &models.Incident{
		StudentName: "Juan Pérez",
		Type:        models.IncidentConduct,
		Severity:    models.SeveritySevere,
		Description: "Agresión en el patio",
		Date:        "2024-12-02",
		Teacher:     "Prof. García",
		Derivation:  models.DerivationDirector,
	}}
}

func TestGenerateParsesSectionedAnswer(t *testing.T) {
	text := `RESUMEN:
El estudiante acumula faltas graves este mes.

ANÁLISIS DE PATRONES:
Las faltas se concentran los lunes.

FORTALEZAS Y ÁREAS DE MEJORA:
Buena participación cuando asiste.

FACTORES DE RIESGO:
Riesgo de abandono escolar.

RECOMENDACIONES:
Contactar a los padres.

PLAN DE SEGUIMIENTO:
Revisión semanal con el tutor.`

	stub := &generatorStub{result: &GenerationResult{Text: text, FinishReason: "STOP"}}
	svc := NewReportService(stub, nil)

	report, err := svc.Generate(context.Background(), singleIncidentRequest())
	require.NoError(t, err)

	assert.Equal(t, "El estudiante acumula faltas graves este mes.", report.Summary)
	assert.Equal(t, "Las faltas se concentran los lunes.", report.PatternAnalysis)
	assert.Equal(t, "Buena participación cuando asiste.", report.Strengths)
	assert.Equal(t, "Riesgo de abandono escolar.", report.RiskFactors)
	assert.Equal(t, "Contactar a los padres.", report.Recommendations)
	assert.Equal(t, "Revisión semanal con el tutor.", report.FollowUpPlan)
	assert.False(t, report.Truncated)
	assert.Contains(t, report.Full, "RESUMEN:")
	assert.NotEmpty(t, report.Timestamp)
}

func TestGenerateStripsMarkdown(t *testing.T) {
	text := "**RESUMEN:**\n**Situación** _delicada_ del estudiante.\n\nRECOMENDACIONES:\n## Hablar con el tutor."
	stub := &generatorStub{result: &GenerationResult{Text: text}}
	svc := NewReportService(stub, nil)

	report, err := svc.Generate(context.Background(), singleIncidentRequest())
	require.NoError(t, err)
	assert.Equal(t, "Situación delicada del estudiante.", report.Summary)
	assert.Equal(t, "Hablar con el tutor.", report.Recommendations)
}

func TestGenerateDefaultsRecommendationsWhenMissing(t *testing.T) {
	stub := &generatorStub{result: &GenerationResult{Text: "RESUMEN:\nTodo en orden."}}
	svc := NewReportService(stub, nil)

	report, err := svc.Generate(context.Background(), singleIncidentRequest())
	require.NoError(t, err)
	assert.Equal(t, "Todo en orden.", report.Summary)
	assert.Equal(t, defaultRecommendationText, report.Recommendations)
}

func TestGenerateUsesWholeTextWhenUnformatted(t *testing.T) {
	stub := &generatorStub{result: &GenerationResult{Text: "El estudiante muestra avances sostenidos."}}
	svc := NewReportService(stub, nil)

	report, err := svc.Generate(context.Background(), singleIncidentRequest())
	require.NoError(t, err)
	assert.Equal(t, "El estudiante muestra avances sostenidos.", report.Summary)
	assert.Equal(t, defaultRecommendationText, report.Recommendations)
}

func TestGenerateBackendErrorDegradesToFallback(t *testing.T) {
	stub := &generatorStub{err: errors.New("connection refused"), result: &GenerationResult{Raw: "boom"}}
	svc := NewReportService(stub, nil)

	report, err := svc.Generate(context.Background(), singleIncidentRequest())
	require.NoError(t, err)
	assert.Equal(t, fallbackConnectSummary, report.Summary)
	assert.Equal(t, fallbackConnectRecs, report.Recommendations)
	assert.Equal(t, "boom", report.Raw)
	assert.NotEmpty(t, report.Err)
}

func TestGenerateEmptyAnswerDegradesToFallback(t *testing.T) {
	stub := &generatorStub{result: &GenerationResult{Text: "", Raw: `{"candidates":[]}`}}
	svc := NewReportService(stub, nil)

	report, err := svc.Generate(context.Background(), singleIncidentRequest())
	require.NoError(t, err)
	assert.Equal(t, fallbackEmptySummary, report.Summary)
	assert.Equal(t, fallbackRetryRecs, report.Recommendations)
}

func TestGenerateTruncatedOnlyWhenContentMissing(t *testing.T) {
	complete := "RESUMEN:\nListo.\n\nRECOMENDACIONES:\nSeguir así."
	stub := &generatorStub{result: &GenerationResult{Text: complete, FinishReason: FinishMaxTokens}}
	svc := NewReportService(stub, nil)

	report, err := svc.Generate(context.Background(), singleIncidentRequest())
	require.NoError(t, err)
	assert.False(t, report.Truncated)
}

func TestGenerateSelectsTokenBudgetByScope(t *testing.T) {
	stub := &generatorStub{result: &GenerationResult{Text: "RESUMEN:\nOK.\n\nRECOMENDACIONES:\nOK."}}
	svc := NewReportService(stub, nil)
	ctx := context.Background()

	_, err := svc.Generate(ctx, singleIncidentRequest())
	require.NoError(t, err)
	assert.Equal(t, tokensSingleIncident, stub.maxTokens)

	incidents := []models.Incident{{StudentName: "Juan Pérez", Type: models.IncidentConduct, Severity: models.SeveritySevere}}

	_, err = svc.Generate(ctx, GenerateReportRequest{Incidents: incidents, Student: "Juan Pérez"})
	require.NoError(t, err)
	assert.Equal(t, tokensSingleStudent, stub.maxTokens)
	assert.Contains(t, stub.prompt, "Estudiante: Juan Pérez")
	assert.Contains(t, stub.prompt, "Inc 1:")

	_, err = svc.Generate(ctx, GenerateReportRequest{Incidents: incidents, Student: models.GeneralReportSubject})
	require.NoError(t, err)
	assert.Equal(t, tokensGeneral, stub.maxTokens)
	assert.False(t, strings.Contains(stub.prompt, "Inc 1:"))
}

func TestGenerateRejectsEmptyRequest(t *testing.T) {
	svc := NewReportService(&generatorStub{}, nil)
	_, err := svc.Generate(context.Background(), GenerateReportRequest{})
	require.Error(t, err)
}
