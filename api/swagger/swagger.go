package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Tutoria API",
        "description": "Incident tracking and derivation engine for school tutoring",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Incidents", "description": "Incident lifecycle and derivation"},
        {"name": "Attendance", "description": "Class attendance sessions and tallies"},
        {"name": "Notifications", "description": "Teacher and director attention surfaces"},
        {"name": "Reports", "description": "Narrative report generation"},
        {"name": "Roster", "description": "Students, tutors, classes and catalogs"}
    ],
    "paths": {
        "/incidencias": {
            "get": {
                "tags": ["Incidents"],
                "summary": "List incidents",
                "parameters": [
                    {"name": "gravedad", "in": "query", "type": "string"},
                    {"name": "tipo", "in": "query", "type": "string"},
                    {"name": "estudiante", "in": "query", "type": "string"},
                    {"name": "desde", "in": "query", "type": "string"},
                    {"name": "hasta", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Incidents"],
                "summary": "Register an incident",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateIncidentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/incidencias/{id}": {
            "get": {
                "tags": ["Incidents"],
                "summary": "Get incident",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/incidencias/{id}/estado": {
            "patch": {
                "tags": ["Incidents"],
                "summary": "Change workflow stage",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SetStatusRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/incidencias/{id}/resolver": {
            "post": {
                "tags": ["Incidents"],
                "summary": "Mark incident resolved",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/incidencias/derivaciones": {
            "get": {
                "tags": ["Incidents"],
                "summary": "Unresolved incidents, optionally by derivation target",
                "parameters": [
                    {"name": "destino", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/asistencia": {
            "get": {
                "tags": ["Attendance"],
                "summary": "List attendance sessions",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Attendance"],
                "summary": "Record a class session",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RecordSessionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/asistencia/alertas": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Flagged students",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/notificaciones/director": {
            "get": {
                "tags": ["Notifications"],
                "summary": "Unacknowledged incidents, newest first",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/reportes": {
            "post": {
                "tags": ["Reports"],
                "summary": "Generate a narrative report",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GenerateReportRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Report"}}
                }
            }
        }
    },
    "definitions": {
        "CreateIncidentRequest": {
            "type": "object",
            "properties": {
                "studentName": {"type": "string"},
                "tipo": {"type": "string"},
                "subtipo": {"type": "string"},
                "gravedad": {"type": "string"},
                "descripcion": {"type": "string"},
                "fecha": {"type": "string"},
                "profesor": {"type": "string"},
                "tutor": {"type": "string"},
                "lugar": {"type": "string"},
                "derivacion": {"type": "string"}
            },
            "required": ["studentName", "tipo", "gravedad", "descripcion", "fecha", "profesor", "tutor", "lugar"]
        },
        "SetStatusRequest": {
            "type": "object",
            "properties": {
                "estado": {"type": "string"},
                "usuario": {"type": "string"}
            },
            "required": ["estado"]
        },
        "RecordSessionRequest": {
            "type": "object",
            "properties": {
                "fecha": {"type": "string"},
                "dia": {"type": "string"},
                "claseId": {"type": "string"},
                "grado": {"type": "string"},
                "seccion": {"type": "string"},
                "profesor": {"type": "string"},
                "periodo": {"type": "integer"},
                "lugar": {"type": "string"},
                "entries": {"type": "object"}
            },
            "required": ["fecha", "dia", "claseId", "grado", "seccion", "profesor", "periodo", "entries"]
        },
        "GenerateReportRequest": {
            "type": "object",
            "properties": {
                "incidencia": {"type": "object"},
                "incidencias": {"type": "array", "items": {"type": "object"}},
                "estudiante": {"type": "string"}
            }
        },
        "Report": {
            "type": "object",
            "properties": {
                "resumen": {"type": "string"},
                "analisisPatrones": {"type": "string"},
                "fortalezas": {"type": "string"},
                "factoresRiesgo": {"type": "string"},
                "recomendaciones": {"type": "string"},
                "planSeguimiento": {"type": "string"},
                "report": {"type": "string"},
                "raw": {"type": "string"},
                "truncated": {"type": "boolean"},
                "timestamp": {"type": "string"},
                "error": {"type": "string"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
