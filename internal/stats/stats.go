// Package stats holds the pure stat-derivation math: no side effects, no
// shared state, total over all inputs (out-of-range values are clamped).
package stats

const (
	MaxIV      = 31
	MaxEV      = 252
	MaxEVTotal = 510
	MinStage   = -6
	MaxStage   = 6
)

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// HP derives the hit-point stat from base stat, individual value, effort
// value and level:
//
//	floor(((2*base + iv + floor(ev/4)) * level) / 100) + level + 10
func HP(base, iv, ev, level int) int {
	iv = clamp(iv, 0, MaxIV)
	ev = clamp(ev, 0, MaxEV)
	return ((2*base+iv+ev/4)*level)/100 + level + 10
}

// Stat derives a non-HP stat. The nature multiplier is one of 0.9, 1.0, 1.1.
//
//	floor((floor(((2*base + iv + floor(ev/4)) * level) / 100) + 5) * nature)
func Stat(base, iv, ev, level int, nature float64) int {
	iv = clamp(iv, 0, MaxIV)
	ev = clamp(ev, 0, MaxEV)
	raw := ((2*base+iv+ev/4)*level)/100 + 5
	return int(float64(raw) * nature)
}

// StageMultiplier returns the battle-stage scaling ratio for attack,
// defense and speed stages: (2+stage)/2 for positive stages, 2/(2-stage)
// for negative ones. Stage -6 yields 2/8, stage +6 yields 8/2.
func StageMultiplier(stage int) (num, den int) {
	stage = clamp(stage, MinStage, MaxStage)
	if stage >= 0 {
		return 2 + stage, 2
	}
	return 2, 2 - stage
}

// ApplyStage scales a stat value by its stage ratio, flooring the result.
func ApplyStage(value, stage int) int {
	num, den := StageMultiplier(stage)
	return value * num / den
}

// AccuracyStageMultiplier returns the scaling ratio for accuracy and
// evasion stages, which use their own 3-based table: (3+stage)/3 positive,
// 3/(3-stage) negative.
func AccuracyStageMultiplier(stage int) (num, den int) {
	stage = clamp(stage, MinStage, MaxStage)
	if stage >= 0 {
		return 3 + stage, 3
	}
	return 3, 3 - stage
}
