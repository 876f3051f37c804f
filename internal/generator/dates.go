package generator

import (
	"sort"
	"time"

	"github.com/vaku568/FinBuddy-AI/internal/category"
	"github.com/vaku568/FinBuddy-AI/internal/utils"
)

// rejectionBudget bounds the biased-day rejection loops at count*5 tries;
// any shortfall is topped up with uniform draws so the result always has
// exactly count timestamps.
const rejectionBudget = 5

// SampleDates returns count timestamps inside the given calendar month,
// shaped by the category's date bias, sorted ascending. Seconds are always
// zero.
func SampleDates(rng *utils.Random, year int, month time.Month, count int, bias category.DateBias, specificDays []int) []time.Time {
	if count <= 0 {
		return nil
	}
	dim := daysInMonth(year, month)

	var dates []time.Time
	switch bias {
	case category.BiasFixed:
		dates = sampleFixedDays(rng, year, month, count, dim, specificDays)
	case category.BiasEarlyMonth:
		dates = sampleDayRange(rng, year, month, count, 1, min(10, dim), 8, 20)
	case category.BiasWeekend:
		dates = sampleWeekdayBiased(rng, year, month, count, dim, 10, 21, 0.30, isWeekend)
	case category.BiasWeekday:
		dates = sampleWeekdayBiased(rng, year, month, count, dim, 7, 20, 0.20, isWeekday)
	case category.BiasMidToLate:
		dates = sampleDayRange(rng, year, month, count, 10, min(25, dim), 11, 21)
	default:
		dates = sampleDayRange(rng, year, month, count, 1, dim, 6, 23)
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// sampleFixedDays cycles through the category's scheduled days, keeping
// their configured order. Days past the end of a short month are skipped;
// if none survive, sampling degrades to uniform.
func sampleFixedDays(rng *utils.Random, year int, month time.Month, count, dim int, specificDays []int) []time.Time {
	available := make([]int, 0, len(specificDays))
	for _, d := range specificDays {
		if d >= 1 && d <= dim {
			available = append(available, d)
		}
	}
	if len(available) == 0 {
		return sampleDayRange(rng, year, month, count, 1, dim, 6, 23)
	}

	dates := make([]time.Time, 0, count)
	for i := 0; i < count; i++ {
		day := available[i%len(available)]
		dates = append(dates, stamp(rng, year, month, day, 9, 18))
	}
	return dates
}

func sampleDayRange(rng *utils.Random, year int, month time.Month, count, minDay, maxDay, minHour, maxHour int) []time.Time {
	dates := make([]time.Time, 0, count)
	for i := 0; i < count; i++ {
		day := rng.IntRange(minDay, maxDay)
		dates = append(dates, stamp(rng, year, month, day, minHour, maxHour))
	}
	return dates
}

// sampleWeekdayBiased accepts matching days outright and off-days with the
// leak probability, within a bounded number of tries.
func sampleWeekdayBiased(rng *utils.Random, year int, month time.Month, count, dim, minHour, maxHour int, leak float64, match func(time.Weekday) bool) []time.Time {
	dates := make([]time.Time, 0, count)
	for tries := 0; len(dates) < count && tries < count*rejectionBudget; tries++ {
		day := rng.IntRange(1, dim)
		ts := stamp(rng, year, month, day, minHour, maxHour)
		if match(ts.Weekday()) || rng.Probability(leak) {
			dates = append(dates, ts)
		}
	}
	for len(dates) < count {
		day := rng.IntRange(1, dim)
		dates = append(dates, stamp(rng, year, month, day, minHour, maxHour))
	}
	return dates
}

func stamp(rng *utils.Random, year int, month time.Month, day, minHour, maxHour int) time.Time {
	hour := rng.IntRange(minHour, maxHour)
	minute := rng.IntRange(0, 59)
	return time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func isWeekend(d time.Weekday) bool {
	return d == time.Saturday || d == time.Sunday
}

func isWeekday(d time.Weekday) bool {
	return !isWeekend(d)
}
