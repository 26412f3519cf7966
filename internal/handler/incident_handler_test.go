package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutoria-escolar/tutoria-api/internal/repository"
	"github.com/tutoria-escolar/tutoria-api/internal/service"
	"github.com/tutoria-escolar/tutoria-api/pkg/export"
	"github.com/tutoria-escolar/tutoria-api/pkg/response"
	"github.com/tutoria-escolar/tutoria-api/pkg/store"
)

func newIncidentHandlerFixture(t *testing.T) (*IncidentHandler, *repository.IncidentRepository) {
	t.Helper()
	repo := repository.NewIncidentRepository(store.NewMemory(), nil)
	svc := service.NewIncidentService(repo, nil)
	return NewIncidentHandler(svc, export.NewCSVExporter()), repo
}

func TestIncidentHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, repo := newIncidentHandlerFixture(t)

	payload, _ := json.Marshal(service.CreateIncidentRequest{
		StudentName: "Juan Pérez",
		Type:        "conducta",
		Subtype:     "agresion",
		Severity:    "grave",
		Description: "Agresión en el patio",
		Date:        "2024-12-02",
		Teacher:     "Prof. García",
		Tutor:       "Prof. Torres",
		Location:    "Patio",
		Derivation:  "director",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/incidencias", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)

	var env response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Nil(t, env.Error)
	assert.NotNil(t, env.Data)
	require.Len(t, repo.List(c.Request.Context()), 1)
}

func TestIncidentHandlerCreateInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, _ := newIncidentHandlerFixture(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/incidencias", bytes.NewBufferString(`{"studentName":`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIncidentHandlerCreateMissingField(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, _ := newIncidentHandlerFixture(t)

	payload, _ := json.Marshal(service.CreateIncidentRequest{StudentName: "Juan Pérez"})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/incidencias", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var env response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Message, "tipo")
}

func TestIncidentHandlerPendingDerivationsRejectsUnknownTarget(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, _ := newIncidentHandlerFixture(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/incidencias/derivaciones?destino=secretaria", nil)
	c.Request = req

	handler.PendingDerivations(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIncidentHandlerGetNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, _ := newIncidentHandlerFixture(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/incidencias/missing", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	handler.Get(c)
	require.Equal(t, http.StatusNotFound, w.Code)
}
