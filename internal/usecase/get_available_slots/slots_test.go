package get_available_slots

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sp075/salon-booking-system/internal/domain"
	"github.com/sp075/salon-booking-system/pkg/types"
)

func TestGenerateSlots(t *testing.T) {
	t.Run("full working day", func(t *testing.T) {
		slots, err := generateSlots("09:00", "18:00", 30)
		require.NoError(t, err)

		assert.Len(t, slots, 18)
		assert.Equal(t, types.TimeString("09:00"), slots[0].Start)
		assert.Equal(t, types.TimeString("09:30"), slots[0].End)
		assert.Equal(t, types.TimeString("17:30"), slots[17].Start)
		assert.Equal(t, types.TimeString("18:00"), slots[17].End)
	})

	t.Run("partial trailing slot is dropped", func(t *testing.T) {
		slots, err := generateSlots("09:00", "10:45", 30)
		require.NoError(t, err)

		require.Len(t, slots, 3)
		assert.Equal(t, types.TimeString("10:30"), slots[2].End)
	})

	t.Run("close before open yields no slots", func(t *testing.T) {
		slots, err := generateSlots("18:00", "09:00", 30)
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("slots are contiguous", func(t *testing.T) {
		slots, err := generateSlots("10:00", "13:00", 45)
		require.NoError(t, err)

		require.Len(t, slots, 4)
		for i := 0; i < len(slots)-1; i++ {
			assert.Equal(t, slots[i].End, slots[i+1].Start)
		}
	})
}

func TestExcludeLunch(t *testing.T) {
	slots, err := generateSlots("09:00", "18:00", 30)
	require.NoError(t, err)

	filtered := excludeLunch(slots, "13:00", "14:00")

	assert.Len(t, filtered, 16)
	for _, slot := range filtered {
		assert.False(t, slot.OverlapsRange("13:00", "14:00"),
			"slot %s-%s overlaps lunch", slot.Start, slot.End)
	}

	// Слоты, граничащие с обедом, остаются
	assert.Contains(t, filtered, domain.Slot{Start: "12:30", End: "13:00"})
	assert.Contains(t, filtered, domain.Slot{Start: "14:00", End: "14:30"})
}

func TestExcludeLunch_Misaligned(t *testing.T) {
	// Обед, не кратный ширине слота, выбивает оба пересекающих слота
	slots, err := generateSlots("09:00", "18:00", 30)
	require.NoError(t, err)

	filtered := excludeLunch(slots, "13:15", "13:45")

	assert.Len(t, filtered, 16)
	assert.NotContains(t, filtered, domain.Slot{Start: "13:00", End: "13:30"})
	assert.NotContains(t, filtered, domain.Slot{Start: "13:30", End: "14:00"})
}

func TestExcludeBooked(t *testing.T) {
	slots, err := generateSlots("09:00", "12:00", 30)
	require.NoError(t, err)

	t.Run("no bookings keeps all slots", func(t *testing.T) {
		assert.Len(t, excludeBooked(slots, nil), 6)
	})

	t.Run("booked slots removed", func(t *testing.T) {
		booked := []domain.Slot{
			{Start: "10:00", End: "10:30"},
			{Start: "11:30", End: "12:00"},
		}

		filtered := excludeBooked(slots, booked)

		assert.Len(t, filtered, 4)
		assert.NotContains(t, filtered, domain.Slot{Start: "10:00", End: "10:30"})
		assert.NotContains(t, filtered, domain.Slot{Start: "11:30", End: "12:00"})
	})

	t.Run("touching slots do not conflict", func(t *testing.T) {
		booked := []domain.Slot{{Start: "10:00", End: "10:30"}}

		filtered := excludeBooked(slots, booked)

		assert.Contains(t, filtered, domain.Slot{Start: "09:30", End: "10:00"})
		assert.Contains(t, filtered, domain.Slot{Start: "10:30", End: "11:00"})
	})
}

func TestReduceToContiguousRuns(t *testing.T) {
	// Свободны 09:00-10:00 и 11:00-12:30, между ними разрыв
	slots := []domain.Slot{
		{Start: "09:00", End: "09:30"},
		{Start: "09:30", End: "10:00"},
		{Start: "11:00", End: "11:30"},
		{Start: "11:30", End: "12:00"},
		{Start: "12:00", End: "12:30"},
	}

	t.Run("run length one returns slots unchanged", func(t *testing.T) {
		assert.Equal(t, slots, reduceToContiguousRuns(slots, 1))
	})

	t.Run("run length two", func(t *testing.T) {
		starts := reduceToContiguousRuns(slots, 2)

		assert.Equal(t, []domain.Slot{
			{Start: "09:00", End: "09:30"},
			{Start: "11:00", End: "11:30"},
			{Start: "11:30", End: "12:00"},
		}, starts)
	})

	t.Run("run length three skips the short window", func(t *testing.T) {
		starts := reduceToContiguousRuns(slots, 3)

		assert.Equal(t, []domain.Slot{{Start: "11:00", End: "11:30"}}, starts)
	})

	t.Run("run longer than any window", func(t *testing.T) {
		assert.Empty(t, reduceToContiguousRuns(slots, 4))
	})
}
