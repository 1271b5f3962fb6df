package model

// Event is a training/awareness event run under the program.
type Event struct {
	EventCode string `json:"eventCode"`
	EventName string `json:"eventName"`
	Venue     string `json:"venue"`
	District  string `json:"district"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	IsActive  bool   `json:"isActive"`
}

func (e Event) RecordID() string { return e.EventCode }
func (e Event) Active() bool     { return e.IsActive }

func (e Event) DisplayField(name string) string {
	switch name {
	case "eventName":
		return e.EventName
	case "venue":
		return e.Venue
	case "district":
		return e.District
	default:
		return ""
	}
}
