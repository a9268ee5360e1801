package queue

import (
	"context"
	"fmt"
	"testing"

	visitdomain "github.com/smallbiznis/seatcounter/internal/visit/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubVisit struct {
	calls []string
	err   error
}

func (s *stubVisit) Enter(_ context.Context, tableID string, count int) (*visitdomain.SessionView, error) {
	s.calls = append(s.calls, fmt.Sprintf("enter %s %d", tableID, count))
	return nil, s.err
}

func (s *stubVisit) Leave(_ context.Context, tableID, ticketID string) (*visitdomain.Charge, error) {
	s.calls = append(s.calls, fmt.Sprintf("leave %s %q", tableID, ticketID))
	return nil, s.err
}

func (s *stubVisit) Undo(_ context.Context, tableID string) (*visitdomain.TicketView, error) {
	s.calls = append(s.calls, fmt.Sprintf("undo %s", tableID))
	return nil, s.err
}

func (s *stubVisit) Checkout(_ context.Context, tableID string, teaching bool) (*visitdomain.CheckoutSummary, error) {
	s.calls = append(s.calls, fmt.Sprintf("checkout %s %v", tableID, teaching))
	return nil, s.err
}

func (s *stubVisit) Snapshot(_ context.Context, tableID string) (*visitdomain.SessionView, error) {
	s.calls = append(s.calls, fmt.Sprintf("snapshot %s", tableID))
	return nil, s.err
}

func newTestFlusher(visit *stubVisit) *Flusher {
	return NewFlusher(FlusherParams{
		Log:   zap.NewNop(),
		Queue: NewQueue(nil, zap.NewNop()),
		Visit: visit,
	})
}

func TestReplayDispatchesByKind(t *testing.T) {
	visit := &stubVisit{}
	f := newTestFlusher(visit)
	ctx := context.Background()

	require.NoError(t, f.replay(ctx, Action{Kind: KindEnter, TableID: "t1", Count: 3}))
	require.NoError(t, f.replay(ctx, Action{Kind: KindLeaveOldest, TableID: "t1"}))
	require.NoError(t, f.replay(ctx, Action{Kind: KindLeavePick, TableID: "t1", TicketID: "tk9"}))
	require.NoError(t, f.replay(ctx, Action{Kind: KindCheckout, TableID: "t1", Teaching: true}))
	require.NoError(t, f.replay(ctx, Action{Kind: KindUndo, TableID: "t1"}))

	assert.Equal(t, []string{
		`enter t1 3`,
		`leave t1 ""`,
		`leave t1 "tk9"`,
		`checkout t1 true`,
		`undo t1`,
	}, visit.calls)
}

func TestReplayRejectsUnknownKind(t *testing.T) {
	f := newTestFlusher(&stubVisit{})
	err := f.replay(context.Background(), Action{Kind: "refund", TableID: "t1"})
	assert.Error(t, err)
}

func TestRunOnceIsNoopWhenDisabled(t *testing.T) {
	visit := &stubVisit{}
	f := newTestFlusher(visit)

	require.NoError(t, f.RunOnce(context.Background()))
	assert.Empty(t, visit.calls)
}

func TestEnqueueDisabledQueue(t *testing.T) {
	q := NewQueue(nil, zap.NewNop())

	_, err := q.Enqueue(context.Background(), Action{Kind: KindEnter, TableID: "t1"})
	assert.ErrorIs(t, err, ErrDisabled)

	entries, err := q.Pending(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}
