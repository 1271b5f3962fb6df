package model

// LearningContent is one piece of education material (article, video, etc).
type LearningContent struct {
	ContentCode  string `json:"contentCode"`
	Title        string `json:"title"`
	ContentType  string `json:"contentType"`
	CategoryCode string `json:"categoryCode"`
	Language     string `json:"language"`
	IsActive     bool   `json:"isActive"`
}

func (l LearningContent) RecordID() string { return l.ContentCode }
func (l LearningContent) Active() bool     { return l.IsActive }

func (l LearningContent) DisplayField(name string) string {
	switch name {
	case "title":
		return l.Title
	case "contentType":
		return l.ContentType
	case "language":
		return l.Language
	default:
		return ""
	}
}
