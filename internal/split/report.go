package split

import (
	"fmt"
	"sort"
	"strings"

	"caulong/internal/core"
)

// BuildShareReport renders the shareable cost report for a session: header,
// numbered expense lines with their divide-set, the grand total and each
// player's share. The text matches what the app always sent to chat groups,
// so the format is part of the product.
func BuildShareReport(s core.Session, calc Calculation) string {
	var b strings.Builder

	b.WriteString("📋 BÁO CÁO CHI PHÍ CẦU LÔNG\n\n")
	b.WriteString(fmt.Sprintf("🗓️ Ngày: %s\n", s.Date.Format("02/01/2006")))
	b.WriteString(fmt.Sprintf("🕒 Giờ: %s\n", s.Date.Format("15:04")))
	b.WriteString(fmt.Sprintf("📍 Địa điểm: %s\n", s.Location))
	b.WriteString(fmt.Sprintf("👥 Số người tham gia: %d người\n", len(s.Players)))
	if s.Notes != "" {
		b.WriteString(fmt.Sprintf("📝 Ghi chú: %s\n", s.Notes))
	}

	b.WriteString("\n----------------------\n\n")
	b.WriteString("🧾 CHI TIẾT CÁC KHOẢN CHI:\n\n")

	for i, e := range s.Expenses {
		b.WriteString(fmt.Sprintf("%d. %s: %s", i+1, e.Type.Label(), core.FormatVND(e.Amount)))
		if e.Description != "" {
			b.WriteString(fmt.Sprintf(" (%s)", e.Description))
		}
		if names := dividedNames(s, e); names != "" {
			b.WriteString(fmt.Sprintf("\n   → Chia cho: %s", names))
		}
		b.WriteString("\n\n")
	}

	b.WriteString("----------------------\n\n")
	b.WriteString(fmt.Sprintf("💰 TỔNG CHI PHÍ: %s\n\n", core.FormatVND(calc.TotalAmount)))
	b.WriteString("💸 CHI PHÍ MỖI NGƯỜI:\n\n")

	players := make([]core.Player, len(s.Players))
	copy(players, s.Players)
	sort.Slice(players, func(i, j int) bool { return players[i].Name < players[j].Name })

	for _, p := range players {
		b.WriteString(fmt.Sprintf("• %s: %s\n", p.Name, core.FormatVND(calc.SplitByPlayer[p.ID])))
	}

	return b.String()
}

// ReportTitle is the share-sheet title accompanying the report.
func ReportTitle(s core.Session) string {
	return fmt.Sprintf("Chi phí đánh cầu lông ngày %s", s.Date.Format("02/01/2006"))
}

// dividedNames lists the names splitting an expense, but only when the
// divide-set is a proper subset of the session players.
func dividedNames(s core.Session, e core.Expense) string {
	if len(e.DivideAmong) == 0 || len(e.DivideAmong) >= len(s.Players) {
		return ""
	}
	var names []string
	for _, id := range e.DivideAmong {
		if p, ok := s.PlayerByID(id); ok {
			names = append(names, p.Name)
		}
	}
	return strings.Join(names, ", ")
}
