package domain

import "context"

// Service drives the session/ticket lifecycle of one table and invokes the
// billing engine at ticket end and checkout. Callers are responsible for
// serializing checkout against concurrent enter/leave on the same table.
type Service interface {
	// Enter opens the table's session if needed and seats count new
	// occupants with the next labels.
	Enter(ctx context.Context, tableID string, count int) (*SessionView, error)
	// Leave ends one ticket. An empty ticketID ends the oldest open ticket
	// (marked auto_ended). Open seating prices the ticket immediately; room
	// tickets record minutes only and are priced at checkout.
	Leave(ctx context.Context, tableID, ticketID string) (*Charge, error)
	// Undo reopens the most recently ended ticket of the open session.
	Undo(ctx context.Context, tableID string) (*TicketView, error)
	// Checkout bills every open ticket, commits all ticket rows and only
	// then stamps the session closed.
	Checkout(ctx context.Context, tableID string, teaching bool) (*CheckoutSummary, error)
	// Snapshot returns the open session with its tickets.
	Snapshot(ctx context.Context, tableID string) (*SessionView, error)
}
