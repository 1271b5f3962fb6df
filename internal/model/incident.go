package model

// Incident report status values as the backend delivers them.
const (
	StatusPending = "PENDING"
	StatusResolve = "RESOLVE"
	StatusReject  = "REJECT"
)

// Incident is a reported safety incident moving through a staged triage
// workflow. The set of forward actions is not hardcoded; the backend sends
// stage rules and the console filters them against the incident.
type Incident struct {
	IncidentCode string `json:"incidentCode"`
	Subject      string `json:"subject"`
	District     string `json:"district"`
	Status       string `json:"status"`
	Stage        string `json:"stage"`
	ReportedAt   string `json:"reportedAt"`
	IsActive     bool   `json:"isActive"`
}

func (i Incident) RecordID() string { return i.IncidentCode }
func (i Incident) Active() bool     { return i.IsActive }

func (i Incident) DisplayField(name string) string {
	switch name {
	case "subject":
		return i.Subject
	case "district":
		return i.District
	case "status":
		return i.Status
	case "stage":
		return i.Stage
	default:
		return ""
	}
}

// StageRule is one server-supplied forward action from a source stage.
type StageRule struct {
	RuleCode    string `json:"ruleCode"`
	FromStage   string `json:"fromStage"`
	ToStage     string `json:"toStage"`
	ActionLabel string `json:"actionLabel"`
	Visible     bool   `json:"visible"`
}

// AllowedActions returns the rules that may be offered as action buttons for
// the incident: only while the incident is still pending, and only rules whose
// source stage equals the incident's current stage and which are visible.
func AllowedActions(inc Incident, rules []StageRule) []StageRule {
	if inc.Status != StatusPending {
		return nil
	}
	var out []StageRule
	for _, r := range rules {
		if r.Visible && r.FromStage == inc.Stage {
			out = append(out, r)
		}
	}
	return out
}
