// Package prep contains the core domain logic for automated meal preparation:
// calorie budgeting, meal composition, and the value types shared by the
// prep scheduler.
package prep

import (
	"fmt"
	"strings"
	"time"
)

// Slot identifies one of the three automated meal slots. Snack orders exist
// in the wider system but are never prepared automatically.
type Slot string

const (
	SlotBreakfast Slot = "breakfast"
	SlotLunch     Slot = "lunch"
	SlotDinner    Slot = "dinner"
)

// Slots lists every automated slot in serve order.
var Slots = []Slot{SlotBreakfast, SlotLunch, SlotDinner}

// ParseSlot converts user input into a Slot.
func ParseSlot(s string) (Slot, error) {
	switch Slot(strings.ToLower(strings.TrimSpace(s))) {
	case SlotBreakfast:
		return SlotBreakfast, nil
	case SlotLunch:
		return SlotLunch, nil
	case SlotDinner:
		return SlotDinner, nil
	}
	return "", fmt.Errorf("invalid meal slot %q", s)
}

// String implements fmt.Stringer.
func (s Slot) String() string {
	return string(s)
}

// IsValid reports whether the slot is one of the automated meal slots.
func (s Slot) IsValid() bool {
	switch s {
	case SlotBreakfast, SlotLunch, SlotDinner:
		return true
	}
	return false
}

// ServeTime returns the fixed serve time for the slot on the given calendar
// day: breakfast 08:00, lunch 12:00, dinner 18:00.
func (s Slot) ServeTime(day time.Time) time.Time {
	hour := 0
	switch s {
	case SlotBreakfast:
		hour = 8
	case SlotLunch:
		hour = 12
	case SlotDinner:
		hour = 18
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, day.Location())
}

// StartOfDay returns the start of the consumption window for a calendar day.
// The window opens at 00:01 rather than midnight so that orders stamped
// exactly at midnight belong to the previous day.
func StartOfDay(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 1, 0, 0, day.Location())
}

// EndOfDay returns the end of the consumption window (23:59:59.999) for a
// calendar day.
func EndOfDay(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 59, 999*int(time.Millisecond), day.Location())
}

// SlotForTriggerTime maps a wall-clock time to the slot whose prep trigger
// window contains it, or false when outside every window. Prep runs fire
// hours ahead of serve time:
//
//	03:30-04:00 -> breakfast (serves 08:00)
//	07:30-08:00 -> lunch     (serves 12:00)
//	13:30-14:00 -> dinner    (serves 18:00)
func SlotForTriggerTime(now time.Time) (Slot, bool) {
	minutes := now.Hour()*60 + now.Minute()
	switch {
	case minutes >= 210 && minutes < 240:
		return SlotBreakfast, true
	case minutes >= 450 && minutes < 480:
		return SlotLunch, true
	case minutes >= 810 && minutes < 840:
		return SlotDinner, true
	}
	return "", false
}
