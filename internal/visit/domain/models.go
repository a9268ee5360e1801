package domain

import (
	"errors"
	"time"
)

// Billing modes recorded on charges and summaries.
const (
	ModePerPersonTiers = "per_person_tiers"
	ModeRoomHourly     = "room_hourly"
	ModeTeaching       = "teaching"
)

// Charge is the engine's output unit for one ticket. Minutes always records
// the ticket's own elapsed time for display, independent of how the price
// was split.
type Charge struct {
	TicketID   string `json:"ticket_id"`
	Label      string `json:"label"`
	Minutes    int    `json:"minutes"`
	PriceCents int64  `json:"price_cents"`
}

type TicketView struct {
	ID         string     `json:"id"`
	Label      string     `json:"label"`
	StartedAt  time.Time  `json:"started_at"`
	EndedAt    *time.Time `json:"ended_at,omitempty"`
	Minutes    *int       `json:"minutes,omitempty"`
	PriceCents *int64     `json:"price_cents,omitempty"`
	AutoEnded  bool       `json:"auto_ended"`
}

type SessionView struct {
	SessionID     string       `json:"session_id"`
	TableID       string       `json:"table_id"`
	OpenedAt      time.Time    `json:"opened_at"`
	ClosedAt      *time.Time   `json:"closed_at,omitempty"`
	Headcount     int          `json:"headcount"`
	OpenTickets   []TicketView `json:"open_tickets"`
	ClosedTickets []TicketView `json:"closed_tickets"`
}

// CheckoutSummary mirrors the receipt shown at the till.
type CheckoutSummary struct {
	Mode         string   `json:"mode"`
	Days         []string `json:"days"`
	Minutes      int      `json:"minutes"`
	BilledHours  int      `json:"billed_hours,omitempty"`
	ActualPeople int      `json:"actual_people"`
	BilledPeople int      `json:"billed_people"`
	TotalCents   int64    `json:"total_cents"`
	Charges      []Charge `json:"charges"`
}

var (
	ErrInvalidID      = errors.New("invalid_id")
	ErrInvalidCount   = errors.New("invalid_count")
	ErrTableNotFound  = errors.New("table_not_found")
	ErrNoOpenSession  = errors.New("no_open_session")
	ErrNoOpenTickets  = errors.New("no_open_tickets")
	ErrTicketNotFound = errors.New("ticket_not_found")
	ErrNothingToUndo  = errors.New("nothing_to_undo")
)
