package model

// FAQ is one frequently-asked-question entry managed from the console.
type FAQ struct {
	FAQTypeCode string `json:"faqTypeCode"`
	FAQType     string `json:"faqType"`
	Question    string `json:"question"`
	Answer      string `json:"answer"`
	IsActive    bool   `json:"isActive"`
}

func (f FAQ) RecordID() string { return f.FAQTypeCode }
func (f FAQ) Active() bool     { return f.IsActive }

func (f FAQ) DisplayField(name string) string {
	switch name {
	case "faqType":
		return f.FAQType
	case "question":
		return f.Question
	case "answer":
		return f.Answer
	default:
		return ""
	}
}
