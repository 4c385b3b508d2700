// Package progress defines the progress-callback contract spec.md §6.4
// describes as the boundary to the GUI collaborator, plus a no-op default
// and a CLI rendering adapter.
package progress

// Kind enumerates the event kinds a Callback may receive.
type Kind string

const (
	KindProgress      Kind = "progress"
	KindMessage       Kind = "message"
	KindError         Kind = "error"
	KindClearAllLists Kind = "clear_all_lists"
	KindAdd           Kind = "add"
	KindUpdate        Kind = "update"
	KindDelete        Kind = "delete"
)

// Callback receives progress events from the thread running the
// operation, in order. A payload is either an int percentage (KindProgress)
// or a string (everything else).
type Callback func(kind Kind, payload interface{})

// Nop is the default callback: discards every event. Matches the teacher's
// "default no-op impl for library users" pattern (spec §9 Design Notes).
func Nop(Kind, interface{}) {}
