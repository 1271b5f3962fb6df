package model

// APARegistration is an Anti-harassment Programme Associate registration.
type APARegistration struct {
	APACode  string `json:"apaCode"`
	FullName string `json:"fullName"`
	District string `json:"district"`
	Phone    string `json:"phone"`
	IsActive bool   `json:"isActive"`
}

func (a APARegistration) RecordID() string { return a.APACode }
func (a APARegistration) Active() bool     { return a.IsActive }

func (a APARegistration) DisplayField(name string) string {
	switch name {
	case "fullName":
		return a.FullName
	case "district":
		return a.District
	case "phone":
		return a.Phone
	default:
		return ""
	}
}
