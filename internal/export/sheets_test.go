package export

import (
	"context"
	"strings"
	"testing"
	"time"

	"caulong/internal/core"
)

func TestSessionRow(t *testing.T) {
	s := &core.Session{
		ID:       "sess-1",
		Date:     time.Date(2025, 6, 14, 19, 0, 0, 0, time.UTC),
		Duration: 120,
		Location: "Sân Cầu Giấy",
		Notes:    "Đặt sân số 3",
		Players: []core.Player{
			{ID: "a", Name: "An"},
			{ID: "b", Name: "Bình"},
		},
		Expenses: []core.Expense{
			{Type: core.CourtFee, Amount: 200000},
		},
	}

	row := sessionRow(s)
	if len(row) != 8 {
		t.Fatalf("row has %d columns, want 8", len(row))
	}
	if row[0] != "sess-1" {
		t.Errorf("id column = %v", row[0])
	}
	if row[1] != "14/06/2025" {
		t.Errorf("date column = %v", row[1])
	}
	if row[4] != "An, Bình" {
		t.Errorf("players column = %v", row[4])
	}
	if row[5] != "200.000 ₫" {
		t.Errorf("total column = %v", row[5])
	}
	shares, _ := row[6].(string)
	if !strings.Contains(shares, "An: 100.000 ₫") || !strings.Contains(shares, "Bình: 100.000 ₫") {
		t.Errorf("shares column = %v", row[6])
	}
}

func TestNewSheetsExporterRequiresSpreadsheetID(t *testing.T) {
	if _, err := NewSheetsExporter(context.Background(), "", "Sessions"); err == nil {
		t.Error("expected error for missing spreadsheet ID")
	}
}
