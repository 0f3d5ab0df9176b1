package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"caulong/internal/amqp"
	"caulong/internal/export"
	"caulong/internal/storage"
)

// SyncConsumer delivers session sync messages from the broker
type SyncConsumer interface {
	ConsumeSessionSync(ctx context.Context, handler func(*amqp.SessionSyncMessage) error) error
}

// SyncWorker keeps the export sheet in step with the store. It consumes
// sync messages from AMQP and additionally resyncs every session on a
// timer to recover from lost messages.
type SyncWorker struct {
	store    storage.Store
	exporter export.SessionExporter
	consumer SyncConsumer
	interval time.Duration
}

func NewSyncWorker(store storage.Store, exporter export.SessionExporter, consumer SyncConsumer, interval time.Duration) *SyncWorker {
	return &SyncWorker{
		store:    store,
		exporter: exporter,
		consumer: consumer,
		interval: interval,
	}
}

// Run consumes sync messages and runs periodic full resyncs until ctx is
// cancelled. Returns the first error that is not a cancellation.
func (w *SyncWorker) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := w.consumer.ConsumeSessionSync(ctx, func(msg *amqp.SessionSyncMessage) error {
			return w.HandleSyncMessage(ctx, msg)
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				if err := w.ResyncAll(ctx); err != nil {
					slog.ErrorContext(ctx, "Periodic resync failed", "error", err)
				}
			}
		}
	})

	return g.Wait()
}

// HandleSyncMessage processes a single session sync message
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.SessionSyncMessage) error {
	slog.InfoContext(ctx, "Processing sync message",
		"session_id", msg.SessionID,
		"action", msg.Action)

	if msg.Action == amqp.ActionDelete {
		if err := w.exporter.RemoveSession(ctx, msg.SessionID); err != nil {
			return fmt.Errorf("remove session from sheet: %w", err)
		}
		return nil
	}

	session, err := w.store.GetSession(ctx, msg.SessionID)
	if errors.Is(err, storage.ErrNotFound) {
		// Deleted before we got to it; a delete message follows or the
		// periodic resync will clear the row.
		slog.WarnContext(ctx, "Session no longer exists, skipping export",
			"session_id", msg.SessionID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("get session from storage: %w", err)
	}

	if err := w.exporter.ExportSession(ctx, session); err != nil {
		return fmt.Errorf("export session to sheet: %w", err)
	}
	return nil
}

// ResyncAll re-exports every stored session. This is the backup mechanism
// for lost AMQP messages.
func (w *SyncWorker) ResyncAll(ctx context.Context) error {
	sessions, err := w.store.ListSessions(ctx)
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}

	successCount := 0
	errorCount := 0
	for i := range sessions {
		if err := w.exporter.ExportSession(ctx, &sessions[i]); err != nil {
			slog.ErrorContext(ctx, "Failed to export session",
				"session_id", sessions[i].ID, "error", err)
			errorCount++
			continue
		}
		successCount++
	}

	slog.InfoContext(ctx, "Resync completed",
		"total", len(sessions),
		"exported", successCount,
		"errors", errorCount)

	return nil
}
