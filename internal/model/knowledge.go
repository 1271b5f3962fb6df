package model

// KnowledgeDoc is a repository document served inline (PDF, video, image).
type KnowledgeDoc struct {
	DocCode  string `json:"docCode"`
	Title    string `json:"title"`
	DocType  string `json:"docType"`
	FileName string `json:"fileName"`
	IsActive bool   `json:"isActive"`
}

func (k KnowledgeDoc) RecordID() string { return k.DocCode }
func (k KnowledgeDoc) Active() bool     { return k.IsActive }

func (k KnowledgeDoc) DisplayField(name string) string {
	switch name {
	case "title":
		return k.Title
	case "docType":
		return k.DocType
	case "fileName":
		return k.FileName
	default:
		return ""
	}
}
