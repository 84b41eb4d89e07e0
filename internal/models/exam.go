package models

// ExamDefinition describes one certification exam that sessions can be
// started against. Definitions are read from the exam catalog on each
// session start rather than cached for the process lifetime.
type ExamDefinition struct {
	ID              string   `json:"id" validate:"required"`
	Name            string   `json:"name" validate:"required,max=200"`
	Description     string   `json:"description" validate:"omitempty,max=1000"`
	QuestionsFile   string   `json:"questions_file" validate:"required"`
	DurationMinutes int      `json:"duration_minutes" validate:"required,min=5,max=300"`
	PassingScore    float64  `json:"passing_score" validate:"min=0,max=100"`
	TotalQuestions  int      `json:"total_questions" validate:"required,min=1"`
	Topics          []string `json:"topics,omitempty"`
}

// BankStats summarizes a single exam's question bank.
type BankStats struct {
	ExamID         string         `json:"exam_id"`
	TotalQuestions int            `json:"total_questions"`
	ByTopic        map[string]int `json:"by_topic"`
	ByDifficulty   map[string]int `json:"by_difficulty"`
}

// CatalogStats is the all-exam rollup of BankStats.
type CatalogStats struct {
	ByExam     map[string]*BankStats `json:"by_exam"`
	TotalExams int                   `json:"total_exams"`
}
