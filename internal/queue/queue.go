package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Kind enumerates the replayable till actions.
type Kind string

const (
	KindEnter       Kind = "enter"
	KindLeaveOldest Kind = "leave_oldest"
	KindLeavePick   Kind = "leave_pick"
	KindCheckout    Kind = "checkout"
	KindUndo        Kind = "undo"
)

const actionsKey = "seatcounter:offline_actions"

var ErrDisabled = errors.New("offline_queue_disabled")

// Action is one till action captured while the store was unreachable. Fields
// beyond TableID are populated per kind.
type Action struct {
	ID         string    `json:"id"`
	Kind       Kind      `json:"kind"`
	TableID    string    `json:"table_id"`
	TicketID   string    `json:"ticket_id,omitempty"`
	Count      int       `json:"count,omitempty"`
	Teaching   bool      `json:"teaching,omitempty"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

// Entry pairs a decoded action with the raw member needed to ack it.
type Entry struct {
	Raw    string
	Action Action
}

// Queue is a redis sorted set of pending actions, scored by enqueue time so
// replay preserves the order the operator acted in. A nil client disables the
// queue entirely.
type Queue struct {
	client *redis.Client
	log    *zap.Logger
}

func NewQueue(client *redis.Client, log *zap.Logger) *Queue {
	return &Queue{client: client, log: log.Named("queue")}
}

func (q *Queue) Enabled() bool {
	return q != nil && q.client != nil
}

func (q *Queue) Enqueue(ctx context.Context, action Action) (Action, error) {
	if !q.Enabled() {
		return action, ErrDisabled
	}

	if action.ID == "" {
		action.ID = uuid.NewString()
	}
	if action.EnqueuedAt.IsZero() {
		action.EnqueuedAt = time.Now().UTC()
	}

	payload, err := json.Marshal(action)
	if err != nil {
		return action, fmt.Errorf("encode queued action: %w", err)
	}

	err = q.client.ZAdd(ctx, actionsKey, redis.Z{
		Score:  float64(action.EnqueuedAt.UnixMilli()),
		Member: payload,
	}).Err()
	if err != nil {
		return action, fmt.Errorf("enqueue action: %w", err)
	}

	queuedActions.WithLabelValues(string(action.Kind)).Inc()
	q.log.Info("action queued for replay",
		zap.String("action_id", action.ID),
		zap.String("kind", string(action.Kind)),
		zap.String("table_id", action.TableID),
	)
	return action, nil
}

// Pending returns all queued actions in enqueue order.
func (q *Queue) Pending(ctx context.Context) ([]Entry, error) {
	if !q.Enabled() {
		return nil, nil
	}

	members, err := q.client.ZRangeByScore(ctx, actionsKey, &redis.ZRangeBy{
		Min: "-inf",
		Max: "+inf",
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("list queued actions: %w", err)
	}

	entries := make([]Entry, 0, len(members))
	for _, raw := range members {
		var action Action
		if err := json.Unmarshal([]byte(raw), &action); err != nil {
			// An undecodable member can never replay; drop it.
			q.log.Warn("dropping malformed queued action", zap.Error(err))
			_ = q.client.ZRem(ctx, actionsKey, raw).Err()
			continue
		}
		entries = append(entries, Entry{Raw: raw, Action: action})
	}
	return entries, nil
}

// Ack removes a replayed action. Called only after the replay succeeded.
func (q *Queue) Ack(ctx context.Context, entry Entry) error {
	if !q.Enabled() {
		return nil
	}
	return q.client.ZRem(ctx, actionsKey, entry.Raw).Err()
}

func (q *Queue) Len(ctx context.Context) (int64, error) {
	if !q.Enabled() {
		return 0, nil
	}
	return q.client.ZCard(ctx, actionsKey).Result()
}
