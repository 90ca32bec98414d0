package models

const (
	SlotTypeFree     = "free"
	SlotTypeOccupied = "occupied"
	SlotTypeBreak    = "break"
)

// Slot is one cell of the weekly template: the course occupying it and
// its derived type. Type is never trusted from caller input.
type Slot struct {
	Course string `json:"course"`
	Type   string `json:"type"`
}

// Timetable is the static weekly template, keyed day -> period -> slot.
type Timetable struct {
	Days     []string                   `json:"days,omitempty"`
	Periods  []string                   `json:"periods,omitempty"`
	Schedule map[string]map[string]Slot `json:"schedule"`
}
