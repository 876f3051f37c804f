package generator

import (
	"math"

	"github.com/vaku568/FinBuddy-AI/internal/utils"
)

// SplitMode identifies which amount-splitting regime applies to a unit.
type SplitMode string

const (
	ModeFlexible SplitMode = "flexible"
	ModeStrict   SplitMode = "strict"
)

// ModeFor classifies a monthly total against a category's flex threshold.
// The boundary is closed on the strict side: a total equal to the threshold
// is strict.
func ModeFor(total float64, flexThreshold int64) SplitMode {
	if int64(math.Round(total)) < flexThreshold {
		return ModeFlexible
	}
	return ModeStrict
}

// SplitAmounts produces positive integer amounts that sum exactly to the
// rounded total.
//
// In flexible mode (total below the threshold) amounts may fall under
// minAmount; proportions come from a symmetric Dirichlet draw and rounding
// drift is corrected onto the current maximum element. In strict mode
// every amount is at least minAmount; if count*minAmount exceeds the total
// the count is silently reduced to floor(total/minAmount), never below 1.
// Infeasible requests are reconciled rather than rejected so a long
// generation run cannot be aborted by one odd unit.
//
// The returned slice may be shorter than the requested count.
func SplitAmounts(rng *utils.Random, total float64, count int, alpha float64, minAmount, flexThreshold int64) []int64 {
	t := int64(math.Round(total))
	if t <= 0 {
		return nil
	}
	if count <= 1 {
		return []int64{t}
	}

	if ModeFor(total, flexThreshold) == ModeFlexible {
		return splitFlexible(rng, t, count, alpha)
	}
	return splitStrict(rng, t, count, alpha, minAmount)
}

func splitFlexible(rng *utils.Random, total int64, count int, alpha float64) []int64 {
	// Every transaction must carry at least 1 unit, so a tiny total caps
	// the count.
	if total < int64(count) {
		count = int(total)
	}
	if count <= 1 {
		return []int64{total}
	}

	props := rng.Dirichlet(alpha, count)
	amounts := make([]int64, count)
	var sum int64
	for i, p := range props {
		amounts[i] = int64(math.Round(p * float64(total)))
		sum += amounts[i]
	}
	if drift := total - sum; drift != 0 {
		amounts[maxIndex(amounts)] += drift
	}
	enforceFloor(amounts, 1)

	return amounts
}

func splitStrict(rng *utils.Random, total int64, count int, alpha float64, minAmount int64) []int64 {
	if minAmount < 1 {
		minAmount = 1
	}
	if int64(count)*minAmount > total {
		count = int(total / minAmount)
		if count < 1 {
			count = 1
		}
	}
	if count == 1 {
		return []int64{total}
	}

	reserved := int64(count) * minAmount
	remaining := total - reserved
	if remaining <= 0 {
		amounts := make([]int64, count)
		var sum int64
		for i := range amounts {
			amounts[i] = minAmount
			sum += minAmount
		}
		amounts[count-1] += total - sum
		return amounts
	}

	props := rng.Dirichlet(alpha, count)
	amounts := make([]int64, count)
	var sum int64
	for i, p := range props {
		amounts[i] = minAmount + int64(math.Round(p*float64(remaining)))
		sum += amounts[i]
	}
	if drift := total - sum; drift != 0 {
		amounts[maxIndex(amounts)] += drift
	}
	enforceFloor(amounts, minAmount)

	return amounts
}

// enforceFloor raises any element under the floor by pulling the deficit
// from elements above it, preserving the exact sum. Feasible whenever
// total >= len(amounts)*floor, which both split modes guarantee before
// calling.
func enforceFloor(amounts []int64, floor int64) {
	for i := range amounts {
		for amounts[i] < floor {
			donor := -1
			for j, a := range amounts {
				if a > floor && (donor < 0 || a > amounts[donor]) {
					donor = j
				}
			}
			if donor < 0 {
				return
			}
			need := floor - amounts[i]
			if avail := amounts[donor] - floor; avail < need {
				need = avail
			}
			amounts[i] += need
			amounts[donor] -= need
		}
	}
}

func maxIndex(amounts []int64) int {
	idx := 0
	for i, a := range amounts {
		if a > amounts[idx] {
			idx = i
		}
	}
	return idx
}
