// Package stats aggregates the full session history into the three summary
// views shown on the statistics screen: by month, by expense type and by
// player.
//
// All three are flat reducers over expense amounts. The by-player view
// deliberately divides each session's total equally among its players and
// ignores per-expense DivideAmong restrictions; historical statistics have
// always been computed that way and the per-session breakdown in package
// split is the only place custom divisions apply.
package stats

import (
	"math"
	"sort"

	"caulong/internal/core"
)

type MonthStat struct {
	Year     int     `json:"year"`
	Month    int     `json:"month"` // 1-12, local calendar
	Sessions int     `json:"sessions"`
	Total    float64 `json:"total"`
	Average  float64 `json:"average"`
}

type TypeStat struct {
	Type    core.ExpenseType `json:"type"`
	Label   string           `json:"label"`
	Amount  float64          `json:"amount"`
	Percent int              `json:"percent"`
}

type PlayerStat struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Sessions  int     `json:"sessions"`
	TotalPaid float64 `json:"totalPaid"`
	Average   float64 `json:"average"`
}

// ByMonth groups sessions by local (year, month) of their date and sums every
// expense amount in the group. Newest month first.
func ByMonth(sessions []core.Session) []MonthStat {
	type key struct{ year, month int }
	groups := make(map[key]*MonthStat)

	for _, s := range sessions {
		k := key{s.Date.Year(), int(s.Date.Month())}
		g, ok := groups[k]
		if !ok {
			g = &MonthStat{Year: k.year, Month: k.month}
			groups[k] = g
		}
		g.Sessions++
		for _, e := range s.Expenses {
			g.Total += e.Amount
		}
	}

	out := make([]MonthStat, 0, len(groups))
	for _, g := range groups {
		if g.Sessions > 0 {
			g.Average = g.Total / float64(g.Sessions)
		}
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year > out[j].Year
		}
		return out[i].Month > out[j].Month
	})
	return out
}

// ByType sums expense amounts per category across every session. All five
// categories are always present, sorted by amount descending. When nothing
// has been spent at all the view is empty.
func ByType(sessions []core.Session) []TypeStat {
	totals := make(map[core.ExpenseType]float64, 5)
	for _, t := range core.AllExpenseTypes() {
		totals[t] = 0
	}

	var grand float64
	for _, s := range sessions {
		for _, e := range s.Expenses {
			totals[e.Type] += e.Amount
			grand += e.Amount
		}
	}
	if grand == 0 {
		return nil
	}

	out := make([]TypeStat, 0, len(totals))
	for _, t := range core.AllExpenseTypes() {
		amount := totals[t]
		out = append(out, TypeStat{
			Type:    t,
			Label:   t.Label(),
			Amount:  amount,
			Percent: int(math.Round(amount / grand * 100)),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Amount > out[j].Amount })
	return out
}

// ByPlayer assigns each player an equal share of every session they attended:
// session total divided by head count, regardless of DivideAmong. Sessions
// without players are skipped. Biggest spender first.
func ByPlayer(sessions []core.Session) []PlayerStat {
	players := make(map[string]*PlayerStat)

	for _, s := range sessions {
		if len(s.Players) == 0 {
			continue
		}

		var sessionTotal float64
		for _, e := range s.Expenses {
			sessionTotal += e.Amount
		}
		perPlayer := sessionTotal / float64(len(s.Players))

		for _, p := range s.Players {
			ps, ok := players[p.ID]
			if !ok {
				ps = &PlayerStat{ID: p.ID, Name: p.Name}
				players[p.ID] = ps
			}
			ps.Name = p.Name // latest snapshot wins
			ps.Sessions++
			ps.TotalPaid += perPlayer
		}
	}

	out := make([]PlayerStat, 0, len(players))
	for _, ps := range players {
		if ps.Sessions > 0 {
			ps.Average = ps.TotalPaid / float64(ps.Sessions)
		}
		out = append(out, *ps)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TotalPaid > out[j].TotalPaid })
	return out
}
