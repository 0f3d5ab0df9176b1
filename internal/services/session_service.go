package services

import (
	"context"
	"fmt"
	"log/slog"

	"caulong/internal/amqp"
	"caulong/internal/core"
	"caulong/internal/storage"
)

// SyncPublisher publishes session sync messages to the export pipeline
type SyncPublisher interface {
	PublishSessionSync(ctx context.Context, sessionID, action string) error
	Close() error
}

// SessionService orchestrates session operations across storage and AMQP.
// Publish failures never fail the request: the session is already saved
// locally and the export sheet will catch up on the next sync.
type SessionService struct {
	store     storage.Store
	publisher SyncPublisher
}

func NewSessionService(store storage.Store, publisher SyncPublisher) *SessionService {
	return &SessionService{
		store:     store,
		publisher: publisher,
	}
}

// ListSessions returns all sessions, newest first
func (s *SessionService) ListSessions(ctx context.Context) ([]core.Session, error) {
	return s.store.ListSessions(ctx)
}

// GetSession returns a single session by id
func (s *SessionService) GetSession(ctx context.Context, id string) (*core.Session, error) {
	return s.store.GetSession(ctx, id)
}

// CreateSession validates and saves a session, then publishes a sync message
func (s *SessionService) CreateSession(ctx context.Context, session *core.Session) error {
	if err := session.Validate(); err != nil {
		return err
	}

	if err := s.store.AddSession(ctx, session); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	s.publish(ctx, session.ID, amqp.ActionUpsert)
	return nil
}

// UpdateSession validates and replaces a session wholesale
func (s *SessionService) UpdateSession(ctx context.Context, session core.Session) error {
	if err := session.Validate(); err != nil {
		return err
	}

	if err := s.store.UpdateSession(ctx, session); err != nil {
		return err
	}

	s.publish(ctx, session.ID, amqp.ActionUpsert)
	return nil
}

// DeleteSession removes a session and publishes a delete message
func (s *SessionService) DeleteSession(ctx context.Context, id string) error {
	if err := s.store.DeleteSession(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, id, amqp.ActionDelete)
	return nil
}

// SetPaymentStatus marks whether a player has settled up for a session.
// The player does not have to appear in the session roster: stale entries
// are kept so toggling is always reversible.
func (s *SessionService) SetPaymentStatus(ctx context.Context, sessionID, playerID string, paid bool) (*core.Session, error) {
	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.PaymentStatus == nil {
		session.PaymentStatus = make(map[string]bool)
	}
	session.PaymentStatus[playerID] = paid

	if err := s.store.UpdateSession(ctx, *session); err != nil {
		return nil, err
	}

	s.publish(ctx, sessionID, amqp.ActionUpsert)
	return session, nil
}

// ReplacePaymentStatus swaps the whole payment map for a session
func (s *SessionService) ReplacePaymentStatus(ctx context.Context, sessionID string, status map[string]bool) (*core.Session, error) {
	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	session.PaymentStatus = status

	if err := s.store.UpdateSession(ctx, *session); err != nil {
		return nil, err
	}

	s.publish(ctx, sessionID, amqp.ActionUpsert)
	return session, nil
}

// SuggestCourtFee computes the court-fee expense a session's start time,
// end time and hourly rate imply, without persisting anything.
func (s *SessionService) SuggestCourtFee(ctx context.Context, sessionID string) (*core.Expense, int, error) {
	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, 0, err
	}
	if session.EndTime == nil {
		return nil, 0, fmt.Errorf("%w: session has no end time", core.ErrInvalidDate)
	}
	if session.CourtFeePerHour <= 0 {
		return nil, 0, fmt.Errorf("%w: court fee rate must be positive", core.ErrInvalidAmount)
	}

	minutes := core.DurationMinutes(session.Date, *session.EndTime)
	return &core.Expense{
		Type:        core.CourtFee,
		Amount:      core.CourtFeeFor(minutes, session.CourtFeePerHour),
		Description: core.CourtFeeDescription(minutes, session.CourtFeePerHour),
	}, minutes, nil
}

// RecalculateCourtFee recomputes the session's duration and court fee
// expense from its start time, end time and hourly rate. The court fee
// expense is replaced in place; other expenses are untouched.
func (s *SessionService) RecalculateCourtFee(ctx context.Context, sessionID string) (*core.Session, error) {
	suggestion, minutes, err := s.SuggestCourtFee(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	session.Duration = minutes

	replaced := false
	for i := range session.Expenses {
		if session.Expenses[i].Type == core.CourtFee {
			session.Expenses[i].Amount = suggestion.Amount
			session.Expenses[i].Description = suggestion.Description
			replaced = true
			break
		}
	}
	if !replaced {
		session.Expenses = append(session.Expenses, *suggestion)
	}

	if err := s.store.UpdateSession(ctx, *session); err != nil {
		return nil, err
	}

	s.publish(ctx, sessionID, amqp.ActionUpsert)
	return session, nil
}

// ListPlayers returns the player roster
func (s *SessionService) ListPlayers(ctx context.Context) ([]core.Player, error) {
	return s.store.ListPlayers(ctx)
}

// AddPlayer adds a named player to the roster
func (s *SessionService) AddPlayer(ctx context.Context, name string) (*core.Player, error) {
	return s.store.AddPlayer(ctx, name)
}

// DeletePlayer removes a player from the roster. Sessions keep their own
// player snapshots, so history is never affected.
func (s *SessionService) DeletePlayer(ctx context.Context, id string) error {
	return s.store.DeletePlayer(ctx, id)
}

func (s *SessionService) publish(ctx context.Context, sessionID, action string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishSessionSync(ctx, sessionID, action); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message",
			"session_id", sessionID,
			"action", action,
			"error", err)
	}
}

// Close closes both storage and AMQP connections
func (s *SessionService) Close() error {
	var errs []error

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close session service: %v", errs)
	}

	return nil
}
