package models

// ContactInfo is the guardian contact block for a student.
type ContactInfo struct {
	Phone string `json:"telefono,omitempty"`
	Email string `json:"email,omitempty"`
	Tutor string `json:"tutor,omitempty"`
}

// Student is a roster entry. The name acts as the de facto key by
// convention; uniqueness is not enforced.
type Student struct {
	Name      string       `json:"nombre"`
	Grade     string       `json:"grado"`
	Section   string       `json:"seccion"`
	Age       int          `json:"edad,omitempty"`
	BirthDate string       `json:"fechaNacimiento,omitempty"`
	Contact   *ContactInfo `json:"contacto,omitempty"`
	PhotoURL  string       `json:"foto,omitempty"`
}

// Tutor is a reporting teacher/tutor-of-record.
type Tutor struct {
	ID    string `json:"id"`
	Name  string `json:"nombre"`
	Email string `json:"email,omitempty"`
	Phone string `json:"telefono,omitempty"`
}

// HomeroomTutor assigns a tutor to one (grade, section) pair.
type HomeroomTutor struct {
	Grade     string `json:"grado"`
	Section   string `json:"seccion"`
	TutorID   string `json:"tutorId"`
	TutorName string `json:"tutorNombre"`
}
