// Package view builds the render models the console shell consumes. Nothing
// here touches the network or holds state; controllers own the data, these
// helpers only shape it.
package view

import (
	"sort"

	"go-shakti-admin/internal/model"
)

type Column struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Sortable bool   `json:"sortable"`
}

// Table is the generic listing component. It sorts client-side but does not
// paginate; pagination belongs to the page controller.
type Table struct {
	Columns []Column            `json:"columns"`
	Rows    []map[string]string `json:"rows"`
}

// BuildTable projects records onto the given columns. Every row also carries
// the record id and active flag for the action buttons.
func BuildTable(cols []Column, recs []model.Record) Table {
	rows := make([]map[string]string, 0, len(recs))
	for _, r := range recs {
		row := map[string]string{
			"id":       r.RecordID(),
			"isActive": boolText(r.Active()),
		}
		for _, col := range cols {
			row[col.Key] = r.DisplayField(col.Key)
		}
		rows = append(rows, row)
	}
	return Table{Columns: cols, Rows: rows}
}

// Sorted returns a copy of the table ordered by the given column.
func Sorted(t Table, key string, ascending bool) Table {
	rows := make([]map[string]string, len(t.Rows))
	copy(rows, t.Rows)
	sort.SliceStable(rows, func(i, j int) bool {
		if ascending {
			return rows[i][key] < rows[j][key]
		}
		return rows[i][key] > rows[j][key]
	})
	return Table{Columns: t.Columns, Rows: rows}
}

func boolText(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// ConfirmDialog describes the extra friction step before an edit fetch fires.
type ConfirmDialog struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	ConfirmLabel string `json:"confirmLabel"`
	CancelLabel  string `json:"cancelLabel"`
}

func EditConfirm(resourceLabel, id string) ConfirmDialog {
	return ConfirmDialog{
		Title:        "Edit " + resourceLabel,
		Description:  "Load record " + id + " for editing?",
		ConfirmLabel: "Proceed",
		CancelLabel:  "Cancel",
	}
}

// ActionButtons is the per-row edit/toggle pair.
type ActionButtons struct {
	EditLabel   string `json:"editLabel"`
	ToggleLabel string `json:"toggleLabel"`
}

func RowActions(active bool) ActionButtons {
	toggle := "Activate"
	if active {
		toggle = "Deactivate"
	}
	return ActionButtons{EditLabel: "Edit", ToggleLabel: toggle}
}

// PageHeading tops every console page.
type PageHeading struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}
