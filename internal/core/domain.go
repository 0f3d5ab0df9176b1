package core

import (
	"errors"
	"strings"
	"time"
)

const (
	CourtFee  ExpenseType = "court_fee"
	Shuttle   ExpenseType = "shuttle"
	Drink     ExpenseType = "drink"
	Equipment ExpenseType = "equipment"
	Other     ExpenseType = "other"
)

type (
	ExpenseType string

	// Player is a participant. Sessions embed full copies so renaming a
	// player later never rewrites history.
	Player struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	// Expense is one cost item inside a session. DivideAmong, when
	// non-empty, restricts which players split it; otherwise every
	// session player gets an equal share.
	Expense struct {
		ID          string      `json:"id"`
		Type        ExpenseType `json:"type"`
		Amount      float64     `json:"amount"`
		Description string      `json:"description"`
		DivideAmong []string    `json:"divideAmong,omitempty"`
	}

	// Session is one occasion of play. Edits replace the whole value;
	// there are no partial-field updates.
	Session struct {
		ID              string          `json:"id"`
		Date            time.Time       `json:"date"`
		EndTime         *time.Time      `json:"endTime,omitempty"`
		Duration        int             `json:"duration,omitempty"` // minutes
		CourtFeePerHour float64         `json:"courtFeePerHour,omitempty"`
		Players         []Player        `json:"players"`
		Expenses        []Expense       `json:"expenses"`
		Location        string          `json:"location"`
		Notes           string          `json:"notes,omitempty"`
		PaymentStatus   map[string]bool `json:"paymentStatus,omitempty"`
	}
)

var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidExpenseType = errors.New("invalid expense type")
	ErrInvalidDate        = errors.New("invalid date")
	ErrEmptyName          = errors.New("empty player name")
	ErrEmptyLocation      = errors.New("empty location")
)

// AllExpenseTypes returns the five categories in their canonical order.
func AllExpenseTypes() []ExpenseType {
	return []ExpenseType{CourtFee, Shuttle, Drink, Equipment, Other}
}

func (t ExpenseType) IsValid() bool {
	switch t {
	case CourtFee, Shuttle, Drink, Equipment, Other:
		return true
	default:
		return false
	}
}

// Label returns the Vietnamese display name used across the app.
func (t ExpenseType) Label() string {
	switch t {
	case CourtFee:
		return "Tiền sân"
	case Shuttle:
		return "Tiền cầu"
	case Drink:
		return "Tiền nước"
	case Equipment:
		return "Tiền phụ kiện"
	case Other:
		return "Chi phí khác"
	default:
		return "Chi phí"
	}
}

func (p Player) Validate() error {
	if len(strings.TrimSpace(p.Name)) == 0 {
		return ErrEmptyName
	}
	if len(p.Name) > 100 {
		return errors.New("player name too long (max 100 characters)")
	}
	return nil
}

func (e Expense) Validate() error {
	if !e.Type.IsValid() {
		return ErrInvalidExpenseType
	}
	if e.Amount < 0 {
		return ErrInvalidAmount
	}
	if len(e.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	return nil
}

func (s Session) Validate() error {
	if s.Date.IsZero() {
		return ErrInvalidDate
	}
	if len(strings.TrimSpace(s.Location)) == 0 {
		return ErrEmptyLocation
	}
	if s.EndTime != nil && s.EndTime.Before(s.Date) {
		return errors.New("end time must be after start time")
	}
	if s.CourtFeePerHour < 0 {
		return ErrInvalidAmount
	}
	for _, p := range s.Players {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	for _, e := range s.Expenses {
		if err := e.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// PlayerByID looks up an embedded player copy.
func (s Session) PlayerByID(id string) (Player, bool) {
	for _, p := range s.Players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}
