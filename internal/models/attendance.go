package models

// AttendanceState is the per-student outcome of one class session.
type AttendanceState string

const (
	AttendancePresent AttendanceState = "presente"
	AttendanceTardy   AttendanceState = "tardanza"
	AttendanceAbsent  AttendanceState = "ausente"
)

// Valid returns true when the state is a supported value.
func (s AttendanceState) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceTardy, AttendanceAbsent:
		return true
	default:
		return false
	}
}

// Weekday in the school timetable.
type Weekday string

const (
	Monday    Weekday = "lunes"
	Tuesday   Weekday = "martes"
	Wednesday Weekday = "miercoles"
	Thursday  Weekday = "jueves"
	Friday    Weekday = "viernes"
)

// AttendanceSession records one class sitting. Its identity is the composite
// (Date, ClassID, Period): re-submitting the same composite replaces the
// previous record.
type AttendanceSession struct {
	ID        string                     `json:"id"`
	Date      string                     `json:"fecha"`
	Day       Weekday                    `json:"dia"`
	ClassID   string                     `json:"claseId"`
	Grade     string                     `json:"grado"`
	Section   string                     `json:"seccion"`
	Teacher   string                     `json:"profesor"`
	Period    int                        `json:"periodo"`
	Location  string                     `json:"lugar,omitempty"`
	Entries   map[string]AttendanceState `json:"entries"`
	Timestamp int64                      `json:"timestamp"`
}

// AttendanceSessionFilter scopes session listings.
type AttendanceSessionFilter struct {
	Date    string
	ClassID string
	Teacher string
	Grade   string
	Section string
	Day     Weekday
	Period  *int
}

// AttendanceCount tallies a student's absences and tardies.
type AttendanceCount struct {
	Absences int `json:"ausencias"`
	Tardies  int `json:"tardanzas"`
}

// Total is the ranking key for flagged students.
func (c AttendanceCount) Total() int {
	return c.Absences + c.Tardies
}

// FlaggedStudent is a student past the attendance attention threshold,
// annotated with the suggested incident classification for one-click
// registration.
type FlaggedStudent struct {
	Name              string          `json:"nombre"`
	Counts            AttendanceCount `json:"conteo"`
	SuggestedType     IncidentType    `json:"tipoSugerido"`
	SuggestedSeverity Severity        `json:"gravedadSugerida"`
}

// AttendedMarker records that a teacher already acted on a flagged student
// on a given date. Upserts are keyed by (student, teacher).
type AttendedMarker struct {
	Name    string `json:"nombre"`
	Date    string `json:"fecha"`
	Teacher string `json:"profesor"`
}
