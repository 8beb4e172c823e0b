// Package scoring computes the daily integrity score.
//
// The score is a pure function of a task set:
//
//	S = clamp(0, 100, EarnedWeight/TotalWeight*100 + EnergyBonus - Penalties)
//
// where non-negotiable tasks weigh 3 and standard tasks weigh 1, every snooze
// costs 5 points, and every committed task that is not completed costs 10.
// The energy bonus (+2 per completed task matching the current energy level)
// is disabled unless a Calculator enables it explicitly.
//
// Nothing in this package returns an error. Malformed input (a negative
// snooze count, an unknown energy level) is clamped or ignored.
package scoring
