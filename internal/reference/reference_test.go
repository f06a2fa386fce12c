package reference

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeSlots(t *testing.T) {
	slots := TimeSlots()

	assert.Equal(t, "05:00", slots[0])
	assert.Equal(t, "23:30", slots[len(slots)-1])
	assert.Len(t, slots, 38)
	assert.True(t, sort.StringsAreSorted(slots))

	assert.True(t, IsTimeSlot("08:00"))
	assert.True(t, IsTimeSlot("17:30"))
	assert.False(t, IsTimeSlot("08:15"))
	assert.False(t, IsTimeSlot("04:30"))
	assert.False(t, IsTimeSlot("24:00"))
	assert.False(t, IsTimeSlot("8:00"))
}

func TestWeekdays(t *testing.T) {
	days := Weekdays()
	require.Len(t, days, 7)
	assert.Equal(t, "0", days[0].Code)
	assert.Equal(t, "Domingo", days[0].Label)
	assert.Equal(t, "Sábado", days[6].Label)

	assert.True(t, IsWeekday(0))
	assert.True(t, IsWeekday(6))
	assert.False(t, IsWeekday(-1))
	assert.False(t, IsWeekday(7))

	assert.Equal(t, "Segunda-feira", WeekdayLabel(1))
	assert.Empty(t, WeekdayLabel(9))
}

func TestSpecialties(t *testing.T) {
	opts := Specialties()
	require.NotEmpty(t, opts)

	codes := make([]string, len(opts))
	for i, o := range opts {
		codes[i] = o.Code
		assert.NotEmpty(t, o.Label, "label for %s", o.Code)
	}
	assert.True(t, sort.StringsAreSorted(codes))

	assert.True(t, IsSpeciality("cardiologia"))
	assert.True(t, IsSpeciality("pediatria"))
	assert.False(t, IsSpeciality("Cardiologia"))
	assert.False(t, IsSpeciality("alquimia"))

	assert.Equal(t, "Cardiologia", SpecialityLabel("cardiologia"))
	assert.Empty(t, SpecialityLabel("alquimia"))
}
