package model

// Quiz is an authored quiz; questions live under it as a separate list.
type Quiz struct {
	QuizCode      string `json:"quizCode"`
	QuizName      string `json:"quizName"`
	CategoryCode  string `json:"categoryCode"`
	Language      string `json:"language"`
	QuestionCount int    `json:"questionCount"`
	IsActive      bool   `json:"isActive"`
}

func (q Quiz) RecordID() string { return q.QuizCode }
func (q Quiz) Active() bool     { return q.IsActive }

func (q Quiz) DisplayField(name string) string {
	switch name {
	case "quizName":
		return q.QuizName
	case "categoryCode":
		return q.CategoryCode
	case "language":
		return q.Language
	default:
		return ""
	}
}

// QuizQuestion is one question of a quiz.
type QuizQuestion struct {
	QuestionCode  string   `json:"questionCode"`
	QuizCode      string   `json:"quizCode"`
	QuestionText  string   `json:"questionText"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correctOption"`
	IsActive      bool     `json:"isActive"`
}
