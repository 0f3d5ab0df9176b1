package split

import (
	"math"
	"testing"
	"time"

	"caulong/internal/core"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func threePlayerSession() core.Session {
	return core.Session{
		ID:       "s1",
		Date:     time.Date(2025, 6, 14, 19, 30, 0, 0, time.Local),
		Location: "Sân Cầu Giấy",
		Players: []core.Player{
			{ID: "a", Name: "A"},
			{ID: "b", Name: "B"},
			{ID: "c", Name: "C"},
		},
	}
}

func TestCalculateEmptySession(t *testing.T) {
	got := Calculate(core.Session{})
	if got.TotalAmount != 0 {
		t.Errorf("TotalAmount = %v, want 0", got.TotalAmount)
	}
	if len(got.SplitByPlayer) != 0 {
		t.Errorf("SplitByPlayer = %v, want empty", got.SplitByPlayer)
	}
}

func TestCalculateTotalIgnoresDivideAmong(t *testing.T) {
	s := threePlayerSession()
	s.Expenses = []core.Expense{
		{Type: core.CourtFee, Amount: 300000},
		{Type: core.Drink, Amount: 90000, DivideAmong: []string{"a"}},
		{Type: core.Other, Amount: 10000, DivideAmong: []string{"ghost"}},
	}

	got := Calculate(s)
	if !almostEqual(got.TotalAmount, 400000) {
		t.Errorf("TotalAmount = %v, want 400000", got.TotalAmount)
	}
}

func TestCalculateFullSplit(t *testing.T) {
	s := threePlayerSession()
	s.Expenses = []core.Expense{
		{Type: core.CourtFee, Amount: 100000},
		{Type: core.Shuttle, Amount: 100000},
	}

	got := Calculate(s)

	var sum float64
	for _, v := range got.SplitByPlayer {
		sum += v
	}
	if !almostEqual(sum, got.TotalAmount) {
		t.Errorf("sum of shares = %v, want total %v", sum, got.TotalAmount)
	}
	for id, v := range got.SplitByPlayer {
		if !almostEqual(v, got.TotalAmount/3) {
			t.Errorf("share[%s] = %v, want %v", id, v, got.TotalAmount/3)
		}
	}
}

func TestCalculateDivideAmongRestriction(t *testing.T) {
	s := threePlayerSession()
	s.Expenses = []core.Expense{
		{Type: core.Drink, Amount: 90000, DivideAmong: []string{"a", "b"}},
	}

	got := Calculate(s)
	if !almostEqual(got.SplitByPlayer["a"], 45000) {
		t.Errorf("share[a] = %v, want 45000", got.SplitByPlayer["a"])
	}
	if !almostEqual(got.SplitByPlayer["b"], 45000) {
		t.Errorf("share[b] = %v, want 45000", got.SplitByPlayer["b"])
	}
	if got.SplitByPlayer["c"] != 0 {
		t.Errorf("share[c] = %v, want 0", got.SplitByPlayer["c"])
	}
}

func TestCalculateDanglingDivideAmong(t *testing.T) {
	s := threePlayerSession()
	s.Expenses = []core.Expense{
		{Type: core.Other, Amount: 50000, DivideAmong: []string{"x", "y"}},
	}

	got := Calculate(s)
	if !almostEqual(got.TotalAmount, 50000) {
		t.Errorf("TotalAmount = %v, want 50000", got.TotalAmount)
	}
	for id, v := range got.SplitByPlayer {
		if v != 0 {
			t.Errorf("share[%s] = %v, want 0 (unattributed expense)", id, v)
		}
	}
}

func TestCalculateEmptyDivideAmongMeansEveryone(t *testing.T) {
	s := threePlayerSession()
	s.Expenses = []core.Expense{
		{Type: core.CourtFee, Amount: 300000, DivideAmong: []string{}},
	}

	got := Calculate(s)
	for id, v := range got.SplitByPlayer {
		if !almostEqual(v, 100000) {
			t.Errorf("share[%s] = %v, want 100000", id, v)
		}
	}
}

// Scenario from the product docs: court fee split three ways, drinks split
// between a and b only.
func TestCalculateScenario(t *testing.T) {
	s := threePlayerSession()
	s.Expenses = []core.Expense{
		{Type: core.CourtFee, Amount: 300000},
		{Type: core.Drink, Amount: 90000, DivideAmong: []string{"a", "b"}},
	}

	got := Calculate(s)
	if !almostEqual(got.TotalAmount, 390000) {
		t.Errorf("TotalAmount = %v, want 390000", got.TotalAmount)
	}
	want := map[string]float64{"a": 145000, "b": 145000, "c": 100000}
	for id, w := range want {
		if !almostEqual(got.SplitByPlayer[id], w) {
			t.Errorf("share[%s] = %v, want %v", id, got.SplitByPlayer[id], w)
		}
	}
}

func TestCalculateAllPlayersPresentAtZero(t *testing.T) {
	s := threePlayerSession()

	got := Calculate(s)
	if len(got.SplitByPlayer) != 3 {
		t.Fatalf("SplitByPlayer has %d entries, want 3", len(got.SplitByPlayer))
	}
	for id, v := range got.SplitByPlayer {
		if v != 0 {
			t.Errorf("share[%s] = %v, want 0", id, v)
		}
	}
}

func TestCalculateIsDeterministic(t *testing.T) {
	s := threePlayerSession()
	s.Expenses = []core.Expense{
		{Type: core.CourtFee, Amount: 300000},
		{Type: core.Drink, Amount: 90000, DivideAmong: []string{"a", "b"}},
		{Type: core.Shuttle, Amount: 120000},
	}

	first := Calculate(s)
	for i := 0; i < 10; i++ {
		again := Calculate(s)
		if again.TotalAmount != first.TotalAmount {
			t.Fatalf("run %d: total %v != %v", i, again.TotalAmount, first.TotalAmount)
		}
		for id, v := range first.SplitByPlayer {
			if again.SplitByPlayer[id] != v {
				t.Fatalf("run %d: share[%s] %v != %v", i, id, again.SplitByPlayer[id], v)
			}
		}
	}
}
