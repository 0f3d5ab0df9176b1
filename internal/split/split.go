// Package split computes the per-player cost breakdown for a single session.
package split

import (
	"caulong/internal/core"
)

// Calculation is the derived breakdown for one session. It is recomputed on
// demand and never persisted.
type Calculation struct {
	TotalAmount   float64            `json:"totalAmount"`
	SplitByPlayer map[string]float64 `json:"splitByPlayer"`
}

// Calculate splits every expense of the session among its divide-set.
//
// The divide-set of an expense is the subset of session players named in
// DivideAmong; when DivideAmong is empty it is all session players. Ids in
// DivideAmong that do not match a session player are ignored. An expense
// whose divide-set comes out empty still counts toward the total but is
// attributed to nobody.
//
// The function is pure: same session in, same breakdown out, no I/O.
func Calculate(s core.Session) Calculation {
	result := Calculation{
		SplitByPlayer: make(map[string]float64, len(s.Players)),
	}

	// Every current player appears in the result, even at zero.
	for _, p := range s.Players {
		result.SplitByPlayer[p.ID] = 0
	}

	for _, e := range s.Expenses {
		result.TotalAmount += e.Amount

		shared := divideSet(s, e)
		if len(shared) == 0 {
			continue
		}

		perPlayer := e.Amount / float64(len(shared))
		for _, p := range shared {
			result.SplitByPlayer[p.ID] += perPlayer
		}
	}

	return result
}

func divideSet(s core.Session, e core.Expense) []core.Player {
	if len(e.DivideAmong) == 0 {
		return s.Players
	}
	named := make(map[string]struct{}, len(e.DivideAmong))
	for _, id := range e.DivideAmong {
		named[id] = struct{}{}
	}
	var out []core.Player
	for _, p := range s.Players {
		if _, ok := named[p.ID]; ok {
			out = append(out, p)
		}
	}
	return out
}
