// Package store provides whole-collection key-value persistence. Every
// collection is read and replaced as a single JSON document, mirroring the
// last-writer-wins model the application was built around.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a collection key has never been written.
var ErrNotFound = errors.New("store: collection not found")

// Store reads and replaces named collections. Get decodes the stored JSON
// into v; Put encodes v and replaces the previous value. There are no
// partial updates: callers read the full collection, apply one change, and
// write the full collection back.
type Store interface {
	Get(ctx context.Context, key string, v interface{}) error
	Put(ctx context.Context, key string, v interface{}) error
}

// Collection keys, carried over from the legacy client-side storage so that
// exported data remains recognizable.
const (
	KeyIncidents        = "tutoria_incidencias"
	KeyStudents         = "tutoria_estudiantes"
	KeyTutors           = "tutoria_tutores"
	KeyClasses          = "tutoria_clases"
	KeyAttendance       = "tutoria_asistencia_clases"
	KeyGrades           = "tutoria_notas"
	KeyGradeCatalog     = "tutoria_grados"
	KeySectionCatalog   = "tutoria_secciones"
	KeyHomeroomTutors   = "tutoria_tutores_grado_seccion"
	KeyAttendedStudents = "tutoria_estudiantes_atendidos"
	KeySeenIncidents    = "tutoria_incidencias_vistas"
)
