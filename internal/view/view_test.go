package view

import (
	"testing"

	"go-shakti-admin/internal/model"

	"github.com/stretchr/testify/require"
)

func sampleTable() Table {
	cols := []Column{
		{Key: "question", Label: "Question", Sortable: true},
		{Key: "faqType", Label: "Type"},
	}
	recs := []model.Record{
		model.FAQ{FAQTypeCode: "FAQ-2", FAQType: "general", Question: "banana", IsActive: true},
		model.FAQ{FAQTypeCode: "FAQ-1", FAQType: "safety", Question: "apple", IsActive: false},
		model.FAQ{FAQTypeCode: "FAQ-3", FAQType: "general", Question: "cherry", IsActive: true},
	}
	return BuildTable(cols, recs)
}

func TestBuildTable_RowsCarryIDAndActiveFlag(t *testing.T) {
	t.Parallel()

	tbl := sampleTable()
	require.Len(t, tbl.Rows, 3)
	require.Equal(t, "FAQ-2", tbl.Rows[0]["id"])
	require.Equal(t, "true", tbl.Rows[0]["isActive"])
	require.Equal(t, "false", tbl.Rows[1]["isActive"])
	require.Equal(t, "banana", tbl.Rows[0]["question"])
	require.Equal(t, "safety", tbl.Rows[1]["faqType"])
}

func TestSorted_DoesNotMutateOriginal(t *testing.T) {
	t.Parallel()

	tbl := sampleTable()
	asc := Sorted(tbl, "question", true)
	require.Equal(t, "apple", asc.Rows[0]["question"])
	require.Equal(t, "cherry", asc.Rows[2]["question"])

	desc := Sorted(tbl, "question", false)
	require.Equal(t, "cherry", desc.Rows[0]["question"])

	// Source order survives both sorts.
	require.Equal(t, "banana", tbl.Rows[0]["question"])
}

func TestRowActions_ToggleLabelFollowsState(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Deactivate", RowActions(true).ToggleLabel)
	require.Equal(t, "Activate", RowActions(false).ToggleLabel)
	require.Equal(t, "Edit", RowActions(true).EditLabel)
}

func TestEditConfirm(t *testing.T) {
	t.Parallel()

	d := EditConfirm("FAQ", "FAQ-7")
	require.Equal(t, "Edit FAQ", d.Title)
	require.Contains(t, d.Description, "FAQ-7")
	require.Equal(t, "Proceed", d.ConfirmLabel)
	require.Equal(t, "Cancel", d.CancelLabel)
}
