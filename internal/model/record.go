package model

// Record is the minimal shape the generic list controller and table view
// depend on. Every backend resource carries a stable identifier (the field
// name varies per resource) and an isActive flag controlling enabled/disabled
// display state.
type Record interface {
	RecordID() string
	Active() bool
	// DisplayField returns the named display field as text for searching and
	// table rendering. Unknown names return "".
	DisplayField(name string) string
}
