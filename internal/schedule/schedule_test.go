package schedule

import (
	"testing"
	"time"

	"f3region/site-api/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func workout(id, day, slot string) domain.Workout {
	return domain.Workout{ID: id, LocationID: "loc", Day: day, Time: slot}
}

func ids(workouts []domain.Workout) []string {
	out := make([]string, len(workouts))
	for i, w := range workouts {
		out[i] = w.ID
	}
	return out
}

func sample() []domain.Workout {
	return []domain.Workout{
		workout("sat0530", "Saturday", "05:30 AM–6:15 AM"),
		workout("mon0600", "Monday", "06:00 AM–7:00 AM"),
		workout("third", "Every Third Friday", "05:30 AM–6:15 AM"),
		workout("fri0515", "Friday", "05:15 AM–6:00 AM"),
		workout("mon0500", "Monday", "05:00 AM–5:45 AM"),
		workout("sun0700", "Sunday", "07:00 AM–8:00 AM"),
		workout("satx", "All Saturdays Except the Last of the Month", "06:00 AM–7:00 AM"),
		workout("tue0545", "Tuesday", "05:45 AM–6:30 AM"),
	}
}

func TestSortDayBeforeTime(t *testing.T) {
	sorted := Sort([]domain.Workout{
		workout("sat", "Saturday", "05:30 AM–6:15 AM"),
		workout("mon", "Monday", "06:00 AM–7:00 AM"),
	})
	assert.Equal(t, []string{"mon", "sat"}, ids(sorted))
}

func TestSortFullOrder(t *testing.T) {
	sorted := Sort(sample())
	assert.Equal(t, []string{
		"mon0500", "mon0600", "tue0545", "fri0515", "third", "sat0530", "satx", "sun0700",
	}, ids(sorted))
}

func TestSortProperties(t *testing.T) {
	in := sample()
	original := append([]domain.Workout(nil), in...)

	sorted := Sort(in)
	assert.Equal(t, original, in, "input must not be reordered")
	assert.ElementsMatch(t, in, sorted)
	for i := 1; i < len(sorted); i++ {
		assert.LessOrEqual(t, Key(sorted[i-1]), Key(sorted[i]))
	}
	assert.Equal(t, sorted, Sort(sorted), "sorting is idempotent")
}

func TestSortIsStableForEqualKeys(t *testing.T) {
	sorted := Sort([]domain.Workout{
		workout("b", "Monday", "0530"),
		workout("a", "Monday", "05:30 AM–6:15 AM"),
		workout("c", "Monday", "0530"),
	})
	assert.Equal(t, []string{"b", "a", "c"}, ids(sorted))
}

func TestSortUnknownValuesFirst(t *testing.T) {
	sorted := Sort([]domain.Workout{
		workout("mon", "Monday", "05:00 AM–5:45 AM"),
		workout("bad", "Someday", "05:00 AM–5:45 AM"),
	})
	assert.Equal(t, []string{"bad", "mon"}, ids(sorted))
}

func TestSortEmpty(t *testing.T) {
	assert.NotNil(t, Sort(nil))
	assert.Empty(t, Sort(nil))
}

func TestOccursTomorrowThursdayIncludesThirdFriday(t *testing.T) {
	got := OccursTomorrow(sample(), time.Thursday)
	assert.Equal(t, []string{"fri0515", "third"}, ids(got))
}

func TestOccursTomorrowFridayIncludesSaturdayVariants(t *testing.T) {
	got := OccursTomorrow(sample(), time.Friday)
	assert.Equal(t, []string{"sat0530", "satx"}, ids(got))
}

func TestOccursTomorrowSaturdayWrapsToSunday(t *testing.T) {
	got := OccursTomorrow(sample(), time.Saturday)
	assert.Equal(t, []string{"sun0700"}, ids(got))
}

func TestTomorrowAndOtherPartitionEveryWeekday(t *testing.T) {
	all := append(sample(), workout("bad", "Someday", "0500"))
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		t.Run(wd.String(), func(t *testing.T) {
			tomorrowIs := OccursTomorrow(all, wd)
			other := OccursOtherDay(all, wd)

			assert.Len(t, append(tomorrowIs, other...), len(all))
			assert.ElementsMatch(t, all, append(tomorrowIs, other...))
			for _, w := range tomorrowIs {
				assert.NotContains(t, ids(other), w.ID)
			}
			assert.Equal(t, Sort(tomorrowIs), tomorrowIs)
			assert.Equal(t, Sort(other), other)
		})
	}
}

func TestDaysAfter(t *testing.T) {
	assert.Equal(t, []domain.Day{domain.DayMonday}, DaysAfter(time.Sunday))
	assert.Equal(t, []domain.Day{domain.DayFriday, domain.DayEveryThirdFriday}, DaysAfter(time.Thursday))

	days := DaysAfter(time.Friday)
	days[0] = domain.DaySunday
	assert.Equal(t, domain.DaySaturday, DaysAfter(time.Friday)[0], "callers get a copy")
}

func TestOccursOnHonoursMonthlyRules(t *testing.T) {
	// 2024-03-22 is the fourth Friday; 2024-03-30 the last Saturday.
	on, other := OccursOn(sample(), time.Date(2024, time.March, 22, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, []string{"fri0515"}, ids(on))
	assert.Contains(t, ids(other), "third")

	on, _ = OccursOn(sample(), time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, []string{"fri0515", "third"}, ids(on))

	on, _ = OccursOn(sample(), time.Date(2024, time.March, 30, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, []string{"sat0530"}, ids(on))
}

func TestKeyScalesDayAboveSlot(t *testing.T) {
	late := workout("", "Monday", "07:00 AM–8:00 AM")
	early := workout("", "Tuesday", "05:00 AM–5:45 AM")
	require.Less(t, Key(late), Key(early))
	assert.Equal(t, 5, Key(late))
	assert.Equal(t, 100, Key(early))
}
