package models

// IncidentType classifies what kind of event was reported. The wire values
// stay in Spanish for compatibility with previously stored records.
type IncidentType string

const (
	IncidentAbsence   IncidentType = "ausencia"
	IncidentTardiness IncidentType = "tardanza"
	IncidentConduct   IncidentType = "conducta"
	IncidentAcademic  IncidentType = "academica"
	IncidentPositive  IncidentType = "positivo"
)

// Valid returns true when the type is a supported value.
func (t IncidentType) Valid() bool {
	switch t {
	case IncidentAbsence, IncidentTardiness, IncidentConduct, IncidentAcademic, IncidentPositive:
		return true
	default:
		return false
	}
}

// IncidentSubtype refines conduct and positive incidents.
type IncidentSubtype string

const (
	SubtypeAggression    IncidentSubtype = "agresion"
	SubtypeDisrespect    IncidentSubtype = "falta_respeto"
	SubtypeInterruption  IncidentSubtype = "interrupcion"
	SubtypeDisobedience  IncidentSubtype = "desobediencia"
	SubtypeOtherConduct  IncidentSubtype = "otra"
	SubtypeHelpingPeer   IncidentSubtype = "ayuda_companero"
	SubtypeParticipation IncidentSubtype = "participacion"
	SubtypeLeadership    IncidentSubtype = "liderazgo"
	SubtypeCreativity    IncidentSubtype = "creatividad"
	SubtypeOtherPositive IncidentSubtype = "otro"
)

// SubtypesFor returns the closed subtype set for a type, or nil when the
// type carries no subtype. A non-nil result means the subtype is required.
func SubtypesFor(t IncidentType) []IncidentSubtype {
	switch t {
	case IncidentConduct:
		return []IncidentSubtype{SubtypeAggression, SubtypeDisrespect, SubtypeInterruption, SubtypeDisobedience, SubtypeOtherConduct}
	case IncidentPositive:
		return []IncidentSubtype{SubtypeHelpingPeer, SubtypeParticipation, SubtypeLeadership, SubtypeCreativity, SubtypeOtherPositive}
	default:
		return nil
	}
}

// Severity grades how serious an incident is.
type Severity string

const (
	SeveritySevere   Severity = "grave"
	SeverityModerate Severity = "moderada"
	SeverityMild     Severity = "leve"
)

// Valid returns true when the severity is a supported value.
func (s Severity) Valid() bool {
	switch s {
	case SeveritySevere, SeverityModerate, SeverityMild:
		return true
	default:
		return false
	}
}

// DerivationTarget names the party an incident is routed to.
type DerivationTarget string

const (
	DerivationNone         DerivationTarget = "ninguna"
	DerivationDirector     DerivationTarget = "director"
	DerivationPsychology   DerivationTarget = "psicologia"
	DerivationNursing      DerivationTarget = "enfermeria"
	DerivationCoordination DerivationTarget = "coordinacion"
	DerivationCounseling   DerivationTarget = "orientacion"
)

// Valid returns true when the target is a supported value.
func (d DerivationTarget) Valid() bool {
	switch d {
	case DerivationNone, DerivationDirector, DerivationPsychology, DerivationNursing, DerivationCoordination, DerivationCounseling:
		return true
	default:
		return false
	}
}

// IncidentStatus is the workflow stage, maintained in parallel with the
// Resolved flag. The two are never reconciled against each other.
type IncidentStatus string

const (
	StatusPending     IncidentStatus = "Pendiente"
	StatusUnderReview IncidentStatus = "En revisión"
	StatusResolved    IncidentStatus = "Resuelta"
	StatusClosed      IncidentStatus = "Cerrada"
)

// Valid returns true when the status is a supported value.
func (s IncidentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusUnderReview, StatusResolved, StatusClosed:
		return true
	default:
		return false
	}
}

// NextStatuses lists the usual forward stages from a status. It is advisory
// for UI pickers only; stage changes are recorded verbatim regardless.
func NextStatuses(s IncidentStatus) []IncidentStatus {
	switch s {
	case StatusPending:
		return []IncidentStatus{StatusUnderReview, StatusResolved, StatusClosed}
	case StatusUnderReview:
		return []IncidentStatus{StatusResolved, StatusClosed}
	case StatusResolved:
		return []IncidentStatus{StatusClosed}
	default:
		return nil
	}
}

// StatusChange is one append-only history entry.
type StatusChange struct {
	Status IncidentStatus `json:"estado"`
	Date   string         `json:"fecha"`
	Actor  string         `json:"usuario"`
}

// Incident is the canonical incident record.
type Incident struct {
	ID          string           `json:"id"`
	StudentName string           `json:"studentName"`
	Type        IncidentType     `json:"tipo"`
	Subtype     IncidentSubtype  `json:"subtipo,omitempty"`
	Severity    Severity         `json:"gravedad"`
	Description string           `json:"descripcion"`
	Date        string           `json:"fecha"`
	Teacher     string           `json:"profesor"`
	Tutor       string           `json:"tutor,omitempty"`
	Location    string           `json:"lugar,omitempty"`
	Timestamp   int64            `json:"timestamp"`
	Derivation  DerivationTarget `json:"derivacion,omitempty"`
	Resolved    bool             `json:"resuelta"`
	ResolvedAt  string           `json:"fechaResolucion,omitempty"`
	ResolvedBy  string           `json:"resueltaPor,omitempty"`
	Status      IncidentStatus   `json:"estado"`
	History     []StatusChange   `json:"historialEstado"`
}

// IncidentFilter scopes incident listings. Empty or "todas" fields match
// everything; the student name is a case-insensitive substring match.
type IncidentFilter struct {
	Severity    string
	Type        string
	StudentName string
	DateFrom    string
	DateTo      string
}

// StudentIncidentSummary aggregates one student's incident history.
type StudentIncidentSummary struct {
	Name           string `json:"nombre"`
	TotalIncidents int    `json:"totalIncidencias"`
	LastIncident   string `json:"ultimaIncidencia,omitempty"`
}
