package srs

import (
	"math"
	"time"
)

// calculateNewEaseFactor applies the SM-2 ease factor update.
//
// The adjustment 0.1 - (5-q)(0.08 + (5-q)0.02) is +0.10 for q=5, 0 for q=4,
// -0.14 for q=3 and -0.80 for q=0. It applies for every rating, including
// failures, and the result never drops below params.MinEaseFactor.
func calculateNewEaseFactor(currentEF float64, quality Quality, params *Params) float64 {
	miss := float64(QualityInstant - quality)
	newEF := currentEF + (0.1 - miss*(0.08+miss*0.02))

	if newEF < params.MinEaseFactor {
		newEF = params.MinEaseFactor
	}
	return newEF
}

// calculateNewInterval determines the unfuzzed interval and repetition count.
//
// Successful recalls walk the 1 -> 6 -> interval*EF ladder using the ease factor
// the item had before this review. Failures restart at one day with the
// repetition streak reset.
func calculateNewInterval(
	currentInterval int,
	repetition int,
	easeFactor float64,
	quality Quality,
	params *Params,
) (interval int, newRepetition int) {
	if quality < params.PassingQuality {
		return params.FirstInterval, 0
	}

	switch repetition {
	case 0:
		interval = params.FirstInterval
	case 1:
		interval = params.SecondInterval
	default:
		interval = int(math.Round(float64(currentInterval) * easeFactor))
	}
	if interval < params.FirstInterval {
		interval = params.FirstInterval
	}

	return interval, repetition + 1
}

// applyFuzz jitters long intervals so items added together do not all fall due
// on the same day.
//
// Intervals at or below params.FuzzMinInterval are returned unchanged. Longer
// intervals move by a uniform integer in [-ceil(i*ratio), +ceil(i*ratio)] and
// never below one day.
func applyFuzz(interval int, params *Params, rng RandSource) int {
	if interval <= params.FuzzMinInterval || rng == nil {
		return interval
	}

	spread := int(math.Ceil(float64(interval) * params.FuzzRatio))
	fuzzed := interval + rng.Intn(2*spread+1) - spread

	if fuzzed < 1 {
		fuzzed = 1
	}
	return fuzzed
}

// calculateNextReviewDate moves now forward by interval calendar days and pins the
// result to the day start hour, so every due time lines up with the day boundary
// no matter when the review happened.
func calculateNextReviewDate(interval int, now time.Time, params *Params) time.Time {
	due := now.AddDate(0, 0, interval)
	return time.Date(due.Year(), due.Month(), due.Day(), params.DayStartHour, 0, 0, 0, now.Location())
}

// calculateNextState runs one full scheduling step without touching the input.
func calculateNextState(
	state State,
	quality Quality,
	now time.Time,
	params *Params,
	rng RandSource,
) Result {
	interval, repetition := calculateNewInterval(
		state.Interval,
		state.Repetition,
		state.EaseFactor,
		quality,
		params,
	)
	interval = applyFuzz(interval, params, rng)

	return Result{
		State: State{
			Interval:   interval,
			Repetition: repetition,
			EaseFactor: calculateNewEaseFactor(state.EaseFactor, quality, params),
		},
		NextReviewAt: calculateNextReviewDate(interval, now, params),
	}
}
