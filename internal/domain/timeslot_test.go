package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeSlot(t *testing.T) {
	assert.Equal(t, Slot0530, ParseTimeSlot("05:30 AM–6:15 AM"))
	assert.Equal(t, Slot0530, ParseTimeSlot("05:30 AM-6:15 AM"), "hyphen accepted for en dash")
	assert.Equal(t, Slot0530, ParseTimeSlot(" 05:30 am–6:15 am "))
	assert.Equal(t, Slot0600, ParseTimeSlot("0600"))
	assert.Equal(t, SlotUnknown, ParseTimeSlot("noon"))
	assert.Equal(t, SlotUnknown, ParseTimeSlot(""))
}

func TestTimeSlotRanksAscend(t *testing.T) {
	slots := TimeSlots()
	require.Len(t, slots, 6)
	for i, s := range slots {
		assert.Equal(t, i, s.Rank())
		assert.Equal(t, s, ParseTimeSlot(s.String()))
	}
	assert.Equal(t, -1, SlotUnknown.Rank())
	assert.Equal(t, "Unknown", TimeSlot(99).String())
}

func TestUpdatesApplyOnlySetFields(t *testing.T) {
	name := "The Yard"
	loc := Location{Name: "Old", Address: "1 Main St"}
	LocationUpdate{Name: &name}.Apply(&loc)
	assert.Equal(t, "The Yard", loc.Name)
	assert.Equal(t, "1 Main St", loc.Address)

	zoom := 12
	region := DefaultRegion()
	require.True(t, region.Placeholder)
	RegionUpdate{MapZoom: &zoom}.Apply(&region)
	assert.Equal(t, 12, region.MapZoom)
	assert.Equal(t, "Your Region", region.RegionName)
	assert.False(t, region.Placeholder)
}
