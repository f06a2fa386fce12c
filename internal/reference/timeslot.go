package reference

import "fmt"

// Bookable clock values are half-hour aligned and span 05:00 through 23:30.
const (
	slotOpenHour  = 5
	slotCloseHour = 23
)

var timeSlots = buildTimeSlots()

func buildTimeSlots() []string {
	var slots []string
	for h := slotOpenHour; h <= slotCloseHour; h++ {
		slots = append(slots, fmt.Sprintf("%02d:00", h), fmt.Sprintf("%02d:30", h))
	}
	return slots
}

// TimeSlots returns the bookable clock values in ascending order.
func TimeSlots() []string {
	out := make([]string, len(timeSlots))
	copy(out, timeSlots)
	return out
}

// IsTimeSlot reports whether v is one of the bookable clock values.
func IsTimeSlot(v string) bool {
	for _, s := range timeSlots {
		if s == v {
			return true
		}
	}
	return false
}
