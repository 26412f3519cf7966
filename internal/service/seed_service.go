package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/tutoria-escolar/tutoria-api/internal/models"
	"github.com/tutoria-escolar/tutoria-api/internal/repository"
)

// SeedService loads demo data into empty collections so a fresh install has
// something to show. Non-empty collections are left alone.
type SeedService struct {
	incidents *repository.IncidentRepository
	students  *repository.StudentRepository
	tutors    *repository.TutorRepository
	classes   *repository.ClassRepository
	grades    *repository.GradeRepository
	logger    *zap.Logger
}

// NewSeedService constructs the service.
func NewSeedService(
	incidents *repository.IncidentRepository,
	students *repository.StudentRepository,
	tutors *repository.TutorRepository,
	classes *repository.ClassRepository,
	grades *repository.GradeRepository,
	logger *zap.Logger,
) *SeedService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SeedService{
		incidents: incidents,
		students:  students,
		tutors:    tutors,
		classes:   classes,
		grades:    grades,
		logger:    logger,
	}
}

// Run seeds each empty collection.
func (s *SeedService) Run(ctx context.Context) {
	if len(s.incidents.List(ctx)) == 0 {
		s.incidents.Replace(ctx, seedIncidents())
		s.logger.Info("seeded incidents", zap.Int("count", len(seedIncidents())))
	}
	if len(s.students.List(ctx)) == 0 {
		s.students.Replace(ctx, seedStudents())
		s.logger.Info("seeded students", zap.Int("count", len(seedStudents())))
	}
	if len(s.tutors.List(ctx)) == 0 {
		s.tutors.Replace(ctx, seedTutors())
		s.logger.Info("seeded tutors", zap.Int("count", len(seedTutors())))
	}
	if len(s.classes.List(ctx)) == 0 {
		for _, class := range seedClasses() {
			s.classes.Append(ctx, class)
		}
		s.logger.Info("seeded classes", zap.Int("count", len(seedClasses())))
	}
	if len(s.grades.List(ctx)) == 0 {
		s.grades.Replace(ctx, seedGrades())
		s.logger.Info("seeded grades", zap.Int("count", len(seedGrades())))
	}
}

func seedIncident(id, student string, tipo models.IncidentType, subtipo models.IncidentSubtype, gravedad models.Severity, descripcion, fecha, profesor, lugar string, derivacion models.DerivationTarget) models.Incident {
	day, _ := time.Parse("2006-01-02", fecha)
	return models.Incident{
		ID:          id,
		StudentName: student,
		Type:        tipo,
		Subtype:     subtipo,
		Severity:    gravedad,
		Description: descripcion,
		Date:        fecha,
		Teacher:     profesor,
		Tutor:       profesor,
		Location:    lugar,
		Timestamp:   day.UnixMilli(),
		Derivation:  derivacion,
		Status:      models.StatusPending,
		History: []models.StatusChange{
			{Status: models.StatusPending, Date: day.UTC().Format(time.RFC3339), Actor: SystemActor},
		},
	}
}

func seedIncidents() []models.Incident {
	return []models.Incident{
		seedIncident("1", "Juan Pérez", models.IncidentAbsence, "", models.SeverityModerate,
			"No asistió a clase sin justificación", "2024-12-02", "Prof. García", "Aula 301", models.DerivationDirector),
		seedIncident("2", "Juan Pérez", models.IncidentAbsence, "", models.SeveritySevere,
			"Falta sin justificar por tercera vez este mes", "2024-12-09", "Prof. García", "Aula 301", models.DerivationPsychology),
		seedIncident("3", "Juan Pérez", models.IncidentPositive, models.SubtypeHelpingPeer, models.SeverityMild,
			"Ayudó a compañero en matemáticas durante la clase", "2024-12-05", "Prof. López", "Aula 205", models.DerivationNone),
		seedIncident("4", "María López", models.IncidentAcademic, "", models.SeverityModerate,
			"No entregó tarea de ciencias", "2024-12-03", "Prof. Fernández", "Aula 102", models.DerivationCoordination),
		seedIncident("5", "María López", models.IncidentAcademic, "", models.SeverityMild,
			"Tarea incompleta", "2024-12-10", "Prof. Fernández", "Aula 102", models.DerivationNone),
		seedIncident("6", "Carlos Ruiz", models.IncidentPositive, models.SubtypeParticipation, models.SeverityMild,
			"Excelente participación en clase de historia", "2024-12-08", "Prof. Torres", "Aula 401", models.DerivationNone),
		seedIncident("7", "Carlos Ruiz", models.IncidentConduct, models.SubtypeInterruption, models.SeverityModerate,
			"Interrumpió clase repetidamente", "2024-12-11", "Prof. Torres", "Aula 401", models.DerivationPsychology),
		seedIncident("8", "Ana García", models.IncidentAbsence, "", models.SeverityMild,
			"Ausencia justificada por enfermedad", "2024-12-01", "Prof. Martínez", "Aula 101", models.DerivationNursing),
		seedIncident("9", "Ana García", models.IncidentPositive, models.SubtypeLeadership, models.SeverityMild,
			"Lideró el proyecto grupal de manera excelente", "2024-12-07", "Prof. Ramírez", "Aula 103", models.DerivationNone),
		seedIncident("10", "Diego Fernández", models.IncidentConduct, models.SubtypeAggression, models.SeveritySevere,
			"Agresión física hacia un compañero", "2024-12-04", "Prof. García", "Patio", models.DerivationDirector),
		seedIncident("11", "Isabella Sánchez", models.IncidentAcademic, "", models.SeverityModerate,
			"No presentó examen parcial", "2024-12-06", "Prof. López", "Aula 205", models.DerivationCoordination),
		seedIncident("12", "Isabella Sánchez", models.IncidentPositive, models.SubtypeCreativity, models.SeverityMild,
			"Proyecto creativo destacado en arte", "2024-12-12", "Prof. Ramírez", "Aula 103", models.DerivationNone),
		seedIncident("13", "Camila Herrera", models.IncidentConduct, models.SubtypeDisrespect, models.SeverityModerate,
			"Falta de respeto hacia el profesor", "2024-12-13", "Prof. Torres", "Aula 401", models.DerivationCounseling),
		seedIncident("14", "Natalia Jiménez", models.IncidentPositive, models.SubtypeParticipation, models.SeverityMild,
			"Participación destacada en debate escolar", "2024-12-14", "Prof. Fernández", "Aula 102", models.DerivationNone),
		seedIncident("15", "Andrés Castro", models.IncidentAbsence, "", models.SeverityModerate,
			"Ausencia sin justificar", "2024-12-15", "Prof. García", "Aula 301", models.DerivationDirector),
	}
}

func seedStudent(nombre, grado, seccion string, edad int, nacimiento, tutor, telefono, email string) models.Student {
	return models.Student{
		Name:      nombre,
		Grade:     grado,
		Section:   seccion,
		Age:       edad,
		BirthDate: nacimiento,
		Contact:   &models.ContactInfo{Tutor: tutor, Phone: telefono, Email: email},
	}
}

func seedStudents() []models.Student {
	return []models.Student{
		seedStudent("Ana García", "1ro", "A", 12, "2012-05-15", "Pedro García", "555-1001", "pedro.garcia@email.com"),
		seedStudent("Luis Martínez", "1ro", "A", 12, "2012-08-20", "Carmen Martínez", "555-1002", "carmen.martinez@email.com"),
		seedStudent("Sofía Rodríguez", "1ro", "B", 12, "2012-03-10", "Miguel Rodríguez", "555-1003", "miguel.rodriguez@email.com"),
		seedStudent("Daniel Vargas", "1ro", "B", 12, "2012-11-25", "Elena Vargas", "555-1004", "elena.vargas@email.com"),
		seedStudent("María López", "2do", "A", 13, "2011-07-18", "Carlos López", "555-2001", "carlos.lopez@email.com"),
		seedStudent("Diego Fernández", "2do", "A", 13, "2011-09-12", "Laura Fernández", "555-2002", "laura.fernandez@email.com"),
		seedStudent("Valentina Torres", "2do", "B", 13, "2011-04-30", "Roberto Torres", "555-2003", "roberto.torres@email.com"),
		seedStudent("Alejandro Silva", "2do", "B", 13, "2011-12-05", "Patricia Silva", "555-2004", "patricia.silva@email.com"),
		seedStudent("Juan Pérez", "3ro", "A", 14, "2010-06-22", "María Pérez", "555-3001", "maria.perez@email.com"),
		seedStudent("Isabella Sánchez", "3ro", "A", 14, "2010-02-14", "Jorge Sánchez", "555-3002", "jorge.sanchez@email.com"),
		seedStudent("Mateo González", "3ro", "B", 14, "2010-10-08", "Patricia González", "555-3003", "patricia.gonzalez@email.com"),
		seedStudent("Lucía Ramírez", "3ro", "B", 14, "2010-01-19", "Fernando Ramírez", "555-3004", "fernando.ramirez@email.com"),
		seedStudent("Carlos Ruiz", "4to", "A", 15, "2009-08-03", "Ana Ruiz", "555-4001", "ana.ruiz@email.com"),
		seedStudent("Camila Herrera", "4to", "A", 15, "2009-05-17", "Fernando Herrera", "555-4002", "fernando.herrera@email.com"),
		seedStudent("Sebastián Morales", "4to", "B", 15, "2009-11-28", "Diana Morales", "555-4003", "diana.morales@email.com"),
		seedStudent("Gabriela Castro", "4to", "B", 15, "2009-03-09", "Roberto Castro", "555-4004", "roberto.castro@email.com"),
		seedStudent("Natalia Jiménez", "5to", "A", 16, "2008-07-21", "Alberto Jiménez", "555-5001", "alberto.jimenez@email.com"),
		seedStudent("Andrés Castro", "5to", "A", 16, "2008-09-14", "Mónica Castro", "555-5002", "monica.castro@email.com"),
		seedStudent("Fernanda Ortiz", "5to", "B", 16, "2008-12-01", "Carlos Ortiz", "555-5003", "carlos.ortiz@email.com"),
		seedStudent("Ricardo Méndez", "5to", "B", 16, "2008-04-16", "Sandra Méndez", "555-5004", "sandra.mendez@email.com"),
	}
}

func seedTutors() []models.Tutor {
	return []models.Tutor{
		{ID: "t1", Name: "Prof. García", Email: "garcia@colegio.edu", Phone: "+1234567890"},
		{ID: "t2", Name: "Prof. López", Email: "lopez@colegio.edu", Phone: "+1234567891"},
		{ID: "t3", Name: "Prof. Fernández", Email: "fernandez@colegio.edu", Phone: "+1234567892"},
		{ID: "t4", Name: "Prof. Torres", Email: "torres@colegio.edu", Phone: "+1234567893"},
		{ID: "t5", Name: "Prof. Martínez", Email: "martinez@colegio.edu", Phone: "+1234567894"},
		{ID: "t6", Name: "Prof. Ramírez", Email: "ramirez@colegio.edu", Phone: "+1234567895"},
	}
}

func seedClasses() []models.Class {
	weekdays := []models.Weekday{models.Monday, models.Tuesday, models.Wednesday, models.Thursday, models.Friday}
	return []models.Class{
		{Name: "Matemáticas", Grade: "3ro", Section: "A", Teacher: "Prof. López", Days: weekdays, Periods: []int{1, 3}},
		{Name: "Ciencias", Grade: "2do", Section: "A", Teacher: "Prof. Fernández", Days: weekdays, Periods: []int{2, 4}},
		{Name: "Lengua", Grade: "1ro", Section: "A", Teacher: "Prof. García", Days: weekdays, Periods: []int{1, 5}},
		{Name: "Historia", Grade: "4to", Section: "A", Teacher: "Prof. Torres", Days: weekdays, Periods: []int{2, 6}},
		{Name: "Arte", Grade: "5to", Section: "A", Teacher: "Prof. Ramírez", Days: weekdays, Periods: []int{3, 7}},
	}
}

func seedGrades() []models.Grade {
	return []models.Grade{
		{ID: "n1", StudentName: "Juan Pérez", Subject: "Matemáticas", Score: 85, Date: "2024-10-15", Teacher: "Prof. López", Comment: "Buen desempeño"},
		{ID: "n2", StudentName: "Juan Pérez", Subject: "Matemáticas", Score: 78, Date: "2024-11-20", Teacher: "Prof. López", Comment: "Necesita mejorar"},
		{ID: "n3", StudentName: "Juan Pérez", Subject: "Ciencias", Score: 92, Date: "2024-10-18", Teacher: "Prof. Fernández", Comment: "Excelente"},
		{ID: "n4", StudentName: "Juan Pérez", Subject: "Ciencias", Score: 88, Date: "2024-11-22", Teacher: "Prof. Fernández"},
		{ID: "n5", StudentName: "Juan Pérez", Subject: "Lengua", Score: 75, Date: "2024-10-20", Teacher: "Prof. García"},
		{ID: "n6", StudentName: "Juan Pérez", Subject: "Lengua", Score: 80, Date: "2024-11-25", Teacher: "Prof. García"},
		{ID: "n7", StudentName: "María López", Subject: "Matemáticas", Score: 90, Date: "2024-10-15", Teacher: "Prof. López", Comment: "Muy buena"},
		{ID: "n8", StudentName: "María López", Subject: "Matemáticas", Score: 88, Date: "2024-11-20", Teacher: "Prof. López"},
		{ID: "n9", StudentName: "María López", Subject: "Ciencias", Score: 65, Date: "2024-10-18", Teacher: "Prof. Fernández", Comment: "Requiere apoyo"},
		{ID: "n10", StudentName: "María López", Subject: "Ciencias", Score: 70, Date: "2024-11-22", Teacher: "Prof. Fernández"},
		{ID: "n11", StudentName: "María López", Subject: "Lengua", Score: 95, Date: "2024-10-20", Teacher: "Prof. García", Comment: "Destacada"},
		{ID: "n12", StudentName: "María López", Subject: "Lengua", Score: 93, Date: "2024-11-25", Teacher: "Prof. García"},
		{ID: "n13", StudentName: "Carlos Ruiz", Subject: "Matemáticas", Score: 82, Date: "2024-10-15", Teacher: "Prof. López"},
		{ID: "n14", StudentName: "Carlos Ruiz", Subject: "Matemáticas", Score: 85, Date: "2024-11-20", Teacher: "Prof. López", Comment: "Mejorando"},
		{ID: "n15", StudentName: "Carlos Ruiz", Subject: "Ciencias", Score: 88, Date: "2024-10-18", Teacher: "Prof. Fernández"},
		{ID: "n16", StudentName: "Carlos Ruiz", Subject: "Ciencias", Score: 90, Date: "2024-11-22", Teacher: "Prof. Fernández", Comment: "Excelente progreso"},
		{ID: "n17", StudentName: "Carlos Ruiz", Subject: "Lengua", Score: 79, Date: "2024-10-20", Teacher: "Prof. García"},
		{ID: "n18", StudentName: "Carlos Ruiz", Subject: "Lengua", Score: 81, Date: "2024-11-25", Teacher: "Prof. García"},
	}
}
