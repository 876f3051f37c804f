package generator

import (
	"testing"
	"time"

	"github.com/vaku568/FinBuddy-AI/internal/category"
	"github.com/vaku568/FinBuddy-AI/internal/utils"
)

func checkDates(t *testing.T, dates []time.Time, count, year int, month time.Month) {
	t.Helper()

	if len(dates) != count {
		t.Fatalf("Got %d dates, want %d", len(dates), count)
	}
	for i, d := range dates {
		if d.Year() != year || d.Month() != month {
			t.Errorf("Date %v outside %d-%02d", d, year, month)
		}
		if d.Second() != 0 {
			t.Errorf("Date %v has nonzero seconds", d)
		}
		if i > 0 && d.Before(dates[i-1]) {
			t.Errorf("Dates not sorted: %v before %v", d, dates[i-1])
		}
	}
}

func TestSampleDates_AllBiases(t *testing.T) {
	rng := utils.NewRandom(42)

	biases := []category.DateBias{
		category.BiasFixed, category.BiasEarlyMonth, category.BiasWeekend,
		category.BiasWeekday, category.BiasMidToLate, category.BiasUniform,
	}

	for _, bias := range biases {
		t.Run(string(bias), func(t *testing.T) {
			for i := 0; i < 50; i++ {
				count := rng.IntRange(1, 40)
				dates := SampleDates(rng, 2024, time.July, count, bias, []int{1, 5, 15, 25})
				checkDates(t, dates, count, 2024, time.July)
			}
		})
	}
}

func TestSampleDates_FixedDays(t *testing.T) {
	rng := utils.NewRandom(1)
	days := []int{1, 5, 15, 25}

	dates := SampleDates(rng, 2024, time.June, 20, category.BiasFixed, days)
	allowed := map[int]bool{1: true, 5: true, 15: true, 25: true}
	for _, d := range dates {
		if !allowed[d.Day()] {
			t.Errorf("Fixed-bias date on day %d, not in schedule %v", d.Day(), days)
		}
		if d.Hour() < 9 || d.Hour() > 18 {
			t.Errorf("Fixed-bias hour %d outside business window", d.Hour())
		}
	}
}

func TestSampleDates_FixedDaysShortMonth(t *testing.T) {
	rng := utils.NewRandom(1)

	// Day 30 does not exist in February; only day 5 survives.
	dates := SampleDates(rng, 2025, time.February, 10, category.BiasFixed, []int{30, 5})
	for _, d := range dates {
		if d.Day() != 5 {
			t.Errorf("Expected all dates on day 5, got day %d", d.Day())
		}
	}
}

func TestSampleDates_FixedAllDaysUnavailable(t *testing.T) {
	rng := utils.NewRandom(1)

	// No scheduled day fits February; sampling degrades to uniform but
	// still yields the full count inside the month.
	dates := SampleDates(rng, 2025, time.February, 8, category.BiasFixed, []int{30, 31})
	checkDates(t, dates, 8, 2025, time.February)
}

func TestSampleDates_EarlyMonth(t *testing.T) {
	rng := utils.NewRandom(2)

	dates := SampleDates(rng, 2024, time.August, 100, category.BiasEarlyMonth, nil)
	for _, d := range dates {
		if d.Day() > 10 {
			t.Errorf("Early-month date on day %d", d.Day())
		}
		if d.Hour() < 8 || d.Hour() > 20 {
			t.Errorf("Early-month hour %d outside window", d.Hour())
		}
	}
}

func TestSampleDates_MidToLate(t *testing.T) {
	rng := utils.NewRandom(3)

	dates := SampleDates(rng, 2024, time.September, 100, category.BiasMidToLate, nil)
	for _, d := range dates {
		if d.Day() < 10 || d.Day() > 25 {
			t.Errorf("Mid-to-late date on day %d, want 10-25", d.Day())
		}
	}
}

func TestSampleDates_WeekendLean(t *testing.T) {
	rng := utils.NewRandom(4)

	weekend := 0
	n := 2000
	dates := SampleDates(rng, 2024, time.July, n, category.BiasWeekend, nil)
	for _, d := range dates {
		wd := d.Weekday()
		if wd == time.Saturday || wd == time.Sunday {
			weekend++
		}
	}

	// July 2024 has 8 weekend days out of 31; uniform sampling would give
	// about 26% weekend. The bias should roughly double that.
	if float64(weekend)/float64(n) < 0.45 {
		t.Errorf("Weekend bias gave only %d/%d weekend dates", weekend, n)
	}
}

func TestSampleDates_WeekdayLean(t *testing.T) {
	rng := utils.NewRandom(5)

	weekday := 0
	n := 2000
	dates := SampleDates(rng, 2024, time.July, n, category.BiasWeekday, nil)
	for _, d := range dates {
		wd := d.Weekday()
		if wd != time.Saturday && wd != time.Sunday {
			weekday++
		}
	}

	if float64(weekday)/float64(n) < 0.8 {
		t.Errorf("Weekday bias gave only %d/%d weekday dates", weekday, n)
	}
}

func TestSampleDates_ZeroCount(t *testing.T) {
	rng := utils.NewRandom(6)
	if dates := SampleDates(rng, 2024, time.July, 0, category.BiasUniform, nil); dates != nil {
		t.Errorf("Expected nil for zero count, got %v", dates)
	}
}
