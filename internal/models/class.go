package models

// Class is a subject taught to one (grade, section) group.
type Class struct {
	ID      string    `json:"id"`
	Name    string    `json:"nombre"`
	Grade   string    `json:"grado"`
	Section string    `json:"seccion"`
	Teacher string    `json:"profesor"`
	Days    []Weekday `json:"dias,omitempty"`
	Periods []int     `json:"periodos,omitempty"`
}

// Grade is a single academic mark for a student.
type Grade struct {
	ID          string  `json:"id"`
	StudentName string  `json:"studentName"`
	Subject     string  `json:"materia"`
	Period      string  `json:"periodo,omitempty"`
	Score       float64 `json:"nota"`
	Date        string  `json:"fecha"`
	Teacher     string  `json:"profesor"`
	Comment     string  `json:"comentario,omitempty"`
}
