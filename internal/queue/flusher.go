package queue

import (
	"context"
	"fmt"
	"time"

	visitdomain "github.com/smallbiznis/seatcounter/internal/visit/domain"
	"github.com/smallbiznis/seatcounter/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Config struct {
	PollInterval time.Duration
	RunTimeout   time.Duration
}

func DefaultConfig() Config {
	return Config{}.withDefaults()
}

func (c Config) withDefaults() Config {
	if c.PollInterval <= 0 {
		c.PollInterval = 5 * time.Second
	}
	if c.RunTimeout <= 0 {
		c.RunTimeout = 30 * time.Second
	}
	return c
}

type FlusherParams struct {
	fx.In

	Log    *zap.Logger
	Queue  *Queue
	Visit  visitdomain.Service
	Config Config `optional:"true"`
}

// Flusher replays queued actions through the visit service once the store is
// reachable again. Replay is strictly in enqueue order; an entry is removed
// only after its replay succeeded or it is known to be unreplayable.
type Flusher struct {
	log   *zap.Logger
	queue *Queue
	visit visitdomain.Service
	cfg   Config
}

func NewFlusher(p FlusherParams) *Flusher {
	return &Flusher{
		log:   p.Log.Named("queue.flusher"),
		queue: p.Queue,
		visit: p.Visit,
		cfg:   p.Config.withDefaults(),
	}
}

func (f *Flusher) RunForever(ctx context.Context) {
	if !f.queue.Enabled() {
		return
	}

	ticker := time.NewTicker(f.cfg.PollInterval)
	defer ticker.Stop()

	for {
		if err := f.RunOnce(ctx); err != nil {
			f.log.Warn("offline queue flush failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (f *Flusher) RunOnce(parentCtx context.Context) error {
	if !f.queue.Enabled() {
		return nil
	}

	ctx, cancel := context.WithTimeout(parentCtx, f.cfg.RunTimeout)
	defer cancel()

	entries, err := f.queue.Pending(ctx)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		action := entry.Action
		if err := f.replay(ctx, action); err != nil {
			if db.IsUnavailableErr(err) {
				// Store still down. Stop here so order is preserved.
				return fmt.Errorf("replay %s: %w", action.ID, err)
			}
			// A domain rejection will never succeed on retry.
			f.log.Warn("dropping unreplayable queued action",
				zap.String("action_id", action.ID),
				zap.String("kind", string(action.Kind)),
				zap.String("table_id", action.TableID),
				zap.Error(err),
			)
			droppedActions.Inc()
		} else {
			flushedActions.WithLabelValues(string(action.Kind)).Inc()
			f.log.Info("queued action replayed",
				zap.String("action_id", action.ID),
				zap.String("kind", string(action.Kind)),
				zap.String("table_id", action.TableID),
			)
		}

		if err := f.queue.Ack(ctx, entry); err != nil {
			return err
		}
	}
	return nil
}

func (f *Flusher) replay(ctx context.Context, action Action) error {
	var err error
	switch action.Kind {
	case KindEnter:
		_, err = f.visit.Enter(ctx, action.TableID, action.Count)
	case KindLeaveOldest:
		_, err = f.visit.Leave(ctx, action.TableID, "")
	case KindLeavePick:
		_, err = f.visit.Leave(ctx, action.TableID, action.TicketID)
	case KindCheckout:
		_, err = f.visit.Checkout(ctx, action.TableID, action.Teaching)
	case KindUndo:
		_, err = f.visit.Undo(ctx, action.TableID)
	default:
		err = fmt.Errorf("unknown queued action kind %q", action.Kind)
	}
	return err
}
