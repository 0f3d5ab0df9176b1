package split

import (
	"strings"
	"testing"
	"time"

	"caulong/internal/core"
)

func reportSession() core.Session {
	return core.Session{
		ID:       "s1",
		Date:     time.Date(2025, 6, 14, 19, 30, 0, 0, time.Local),
		Location: "Sân Cầu Giấy",
		Notes:    "Đặt sân số 3",
		Players: []core.Player{
			{ID: "c", Name: "Cường"},
			{ID: "a", Name: "An"},
			{ID: "b", Name: "Bình"},
		},
		Expenses: []core.Expense{
			{ID: "e1", Type: core.CourtFee, Amount: 300000},
			{ID: "e2", Type: core.Drink, Amount: 90000, Description: "Trà đá", DivideAmong: []string{"a", "b"}},
		},
	}
}

func TestBuildShareReport(t *testing.T) {
	s := reportSession()
	report := BuildShareReport(s, Calculate(s))

	for _, want := range []string{
		"📋 BÁO CÁO CHI PHÍ CẦU LÔNG",
		"🗓️ Ngày: 14/06/2025",
		"🕒 Giờ: 19:30",
		"📍 Địa điểm: Sân Cầu Giấy",
		"👥 Số người tham gia: 3 người",
		"📝 Ghi chú: Đặt sân số 3",
		"1. Tiền sân: 300.000 ₫",
		"2. Tiền nước: 90.000 ₫ (Trà đá)",
		"→ Chia cho: An, Bình",
		"💰 TỔNG CHI PHÍ: 390.000 ₫",
		"• An: 145.000 ₫",
		"• Bình: 145.000 ₫",
		"• Cường: 100.000 ₫",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q\n---\n%s", want, report)
		}
	}

	// Players sorted by name, not insertion order.
	if strings.Index(report, "• An:") > strings.Index(report, "• Cường:") {
		t.Error("player shares should be sorted by name")
	}
}

func TestBuildShareReportOmitsEmptySections(t *testing.T) {
	s := reportSession()
	s.Notes = ""
	s.Expenses[1].DivideAmong = nil

	report := BuildShareReport(s, Calculate(s))
	if strings.Contains(report, "Ghi chú") {
		t.Error("report should omit notes line when there are no notes")
	}
	if strings.Contains(report, "Chia cho") {
		t.Error("report should omit divide-set line when everyone splits")
	}
}

func TestBuildShareReportFullDivideSetNotListed(t *testing.T) {
	s := reportSession()
	s.Expenses[1].DivideAmong = []string{"a", "b", "c"}

	report := BuildShareReport(s, Calculate(s))
	if strings.Contains(report, "Chia cho") {
		t.Error("divide-set covering every player should not be listed")
	}
}

func TestReportTitle(t *testing.T) {
	got := ReportTitle(reportSession())
	want := "Chi phí đánh cầu lông ngày 14/06/2025"
	if got != want {
		t.Errorf("ReportTitle = %q, want %q", got, want)
	}
}
