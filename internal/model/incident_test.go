package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func stageRules() []StageRule {
	return []StageRule{
		{RuleCode: "R1", FromStage: "DISTRICT", ToStage: "STATE", ActionLabel: "Escalate to State", Visible: true},
		{RuleCode: "R2", FromStage: "DISTRICT", ToStage: "CLOSED", ActionLabel: "Close", Visible: true},
		{RuleCode: "R3", FromStage: "DISTRICT", ToStage: "LEGACY", ActionLabel: "Old path", Visible: false},
		{RuleCode: "R4", FromStage: "STATE", ToStage: "CLOSED", ActionLabel: "Close", Visible: true},
	}
}

func TestAllowedActions_PendingAtMatchingStage(t *testing.T) {
	t.Parallel()

	inc := Incident{IncidentCode: "INC-1", Status: StatusPending, Stage: "DISTRICT"}
	got := AllowedActions(inc, stageRules())
	require.Len(t, got, 2)
	require.Equal(t, "R1", got[0].RuleCode)
	require.Equal(t, "R2", got[1].RuleCode)
}

func TestAllowedActions_NonPendingGetsNothing(t *testing.T) {
	t.Parallel()

	for _, status := range []string{StatusResolve, StatusReject, "UNKNOWN"} {
		inc := Incident{IncidentCode: "INC-1", Status: status, Stage: "DISTRICT"}
		require.Nil(t, AllowedActions(inc, stageRules()), "status %q must yield no actions", status)
	}
}

func TestAllowedActions_StageMismatchFiltered(t *testing.T) {
	t.Parallel()

	inc := Incident{IncidentCode: "INC-1", Status: StatusPending, Stage: "STATE"}
	got := AllowedActions(inc, stageRules())
	require.Len(t, got, 1)
	require.Equal(t, "R4", got[0].RuleCode)
}

func TestAllowedActions_InvisibleRulesFiltered(t *testing.T) {
	t.Parallel()

	rules := []StageRule{
		{RuleCode: "R3", FromStage: "DISTRICT", ToStage: "LEGACY", Visible: false},
	}
	inc := Incident{IncidentCode: "INC-1", Status: StatusPending, Stage: "DISTRICT"}
	require.Empty(t, AllowedActions(inc, rules))
}
