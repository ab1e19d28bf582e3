package event_bus

// InputsChangedType is published whenever time entries or lookup tables are replaced.
const InputsChangedType EventType = "inputs.changed"

// InputsChanged describes which input table changed and where the data came from.
type InputsChanged struct {
	// Table is one of "time_entry", "activity", "calendar_day", "target" or "all".
	Table  string
	Source string
	// Batch is the import batch id for time entry imports, empty otherwise.
	Batch string
	Rows  int
}
