package model

// The exam structures below mirror the payload of the upstream
// GET /api/mainview/ endpoint. JSON keys are the upstream's (Spanish)
// contract and must not be renamed. Every nested reference is optional:
// the upstream serializer emits null for missing relations, so all of
// them are pointers and consumers substitute fallback labels.

// PersonRef identifies the examinee.
type PersonRef struct {
	ID       int     `json:"id"`
	FullName string  `json:"nombre_completo"`
	Email    *string `json:"email"`
}

// StatusRef is the exam's workflow status catalog entry.
type StatusRef struct {
	ID          int    `json:"id"`
	Name        string `json:"nombre"`
	Description string `json:"descripcion"`
}

// GraderRef identifies who graded the exam.
type GraderRef struct {
	ID       int    `json:"id"`
	FullName string `json:"nombre_completo"`
}

// CatalogRef is a generic catalog entry (exam level, study area).
type CatalogRef struct {
	ID          int    `json:"id"`
	Name        string `json:"nombre"`
	Description string `json:"descripcion"`
}

// TopicRef is one topic covered by the exam.
type TopicRef struct {
	ID          int     `json:"id"`
	Name        string  `json:"nombre"`
	Description string  `json:"descripcion"`
	Area        *string `json:"area"`
}

// ExamRecord is one exam result row as served by the upstream API.
// It is an immutable value: the gateway never mutates or revalidates it.
// PercentCorrect is expected in [0,100] but is passed through as-is.
type ExamRecord struct {
	ID              int         `json:"id"`
	Title           string      `json:"titulo"`
	Description     string      `json:"descripcion"`
	ExamDate        *string     `json:"fecha_examen"`
	CreatedDate     *string     `json:"fecha_creacion"`
	DurationMinutes *int        `json:"duracion_minutos"`
	MaxScore        float64     `json:"puntaje_maximo"`
	ObtainedScore   float64     `json:"puntaje_obtenido"`
	Grade           string      `json:"calificacion"`
	TotalQuestions  int         `json:"total_preguntas"`
	TotalAnswers    int         `json:"total_respuestas"`
	CorrectAnswers  int         `json:"respuestas_correctas"`
	PercentCorrect  float64     `json:"porcentaje_aciertos"`
	Person          *PersonRef  `json:"persona"`
	Status          *StatusRef  `json:"estado"`
	GradedBy        *GraderRef  `json:"calificado_por"`
	Level           *CatalogRef `json:"nivel"`
	StudyArea       *CatalogRef `json:"area_estudio"`
	Topics          []TopicRef  `json:"temas"`
}

// MainView is the aggregate dashboard payload: the full exam collection
// plus precomputed count and grade average.
type MainView struct {
	Exams   []ExamRecord `json:"examenes"`
	Count   int          `json:"cantidad"`
	Average float64      `json:"promedio"`
}
