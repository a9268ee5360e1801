package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/seatcounter/internal/clock"
	"github.com/smallbiznis/seatcounter/internal/labels"
	"github.com/smallbiznis/seatcounter/internal/pricing"
	sessiondomain "github.com/smallbiznis/seatcounter/internal/session/domain"
	tabledomain "github.com/smallbiznis/seatcounter/internal/table/domain"
	ticketdomain "github.com/smallbiznis/seatcounter/internal/ticket/domain"
	visitdomain "github.com/smallbiznis/seatcounter/internal/visit/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const recentClosedLimit = 50

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Clock    clock.Clock
	Registry *pricing.Registry
	Tables   tabledomain.Repository
	Sessions sessiondomain.Repository
	Tickets  ticketdomain.Repository
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	clock    clock.Clock
	registry *pricing.Registry
	tables   tabledomain.Repository
	sessions sessiondomain.Repository
	tickets  ticketdomain.Repository
}

func New(p Params) visitdomain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("visit.service"),
		genID:    p.GenID,
		clock:    p.Clock,
		registry: p.Registry,
		tables:   p.Tables,
		sessions: p.Sessions,
		tickets:  p.Tickets,
	}
}

func (s *Service) Enter(ctx context.Context, tableID string, count int) (*visitdomain.SessionView, error) {
	if count <= 0 {
		return nil, visitdomain.ErrInvalidCount
	}

	table, err := s.findTable(ctx, tableID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	session, err := s.ensureSession(ctx, table.ID, now)
	if err != nil {
		return nil, err
	}

	existing, err := s.tickets.CountBySession(ctx, s.db, session.ID)
	if err != nil {
		return nil, err
	}

	batch := make([]ticketdomain.Ticket, 0, count)
	for _, label := range labels.Next(int(existing), count) {
		batch = append(batch, ticketdomain.Ticket{
			ID:        s.genID.Generate(),
			SessionID: session.ID,
			Label:     label,
			StartedAt: now,
		})
	}
	if err := s.tickets.InsertBatch(ctx, s.db, batch); err != nil {
		return nil, err
	}

	s.log.Info("occupants entered",
		zap.String("table_id", table.ID.String()),
		zap.String("session_id", session.ID.String()),
		zap.Int("count", count),
	)
	return s.buildView(ctx, session)
}

func (s *Service) Leave(ctx context.Context, tableID, ticketID string) (*visitdomain.Charge, error) {
	table, err := s.findTable(ctx, tableID)
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.FindOpenByTable(ctx, s.db, table.ID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, visitdomain.ErrNoOpenSession
	}

	auto := false
	var ticket *ticketdomain.Ticket
	if strings.TrimSpace(ticketID) == "" {
		// No explicit pick: end the earliest open ticket.
		auto = true
		ticket, err = s.tickets.OldestOpen(ctx, s.db, session.ID)
		if err != nil {
			return nil, err
		}
		if ticket == nil {
			return nil, visitdomain.ErrNoOpenTickets
		}
	} else {
		id, parseErr := snowflake.ParseString(strings.TrimSpace(ticketID))
		if parseErr != nil {
			return nil, visitdomain.ErrInvalidID
		}
		ticket, err = s.tickets.FindByID(ctx, s.db, id)
		if err != nil {
			return nil, err
		}
		if ticket == nil || ticket.SessionID != session.ID {
			return nil, visitdomain.ErrTicketNotFound
		}
		if !ticket.IsOpen() {
			return nil, ticketdomain.ErrAlreadyClosed
		}
	}

	now := s.clock.Now().UTC()
	mins := elapsedMinutes(now, ticket.StartedAt)

	var priceCents int64
	meta := map[string]any{}
	if table.IsRoom() {
		// Room tickets are settled as part of the room total at checkout.
		priceCents = 0
		meta["mode"] = visitdomain.ModeRoomHourly
	} else {
		res, resolveErr := s.registry.Resolve(table.Name, table.Area, ticket.StartedAt)
		if resolveErr != nil {
			return nil, resolveErr
		}
		tier, tierErr := pricing.ComputePerPersonTier(mins, res.Rules)
		if tierErr != nil {
			return nil, tierErr
		}
		priceCents = tier.PerPersonCents
		meta["mode"] = visitdomain.ModePerPersonTiers
		meta["day"] = string(res.Day)
		meta["matched_hours"] = tier.MatchedHours
	}

	update := ticketdomain.CloseUpdate{
		ID:         ticket.ID,
		EndedAt:    now,
		Minutes:    mins,
		PriceCents: priceCents,
		AutoEnded:  auto,
		Metadata:   meta,
	}
	if err := s.tickets.Close(ctx, s.db, update); err != nil {
		return nil, err
	}

	return &visitdomain.Charge{
		TicketID:   ticket.ID.String(),
		Label:      ticket.Label,
		Minutes:    mins,
		PriceCents: priceCents,
	}, nil
}

func (s *Service) Undo(ctx context.Context, tableID string) (*visitdomain.TicketView, error) {
	table, err := s.findTable(ctx, tableID)
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.FindOpenByTable(ctx, s.db, table.ID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, visitdomain.ErrNoOpenSession
	}

	ticket, err := s.tickets.LatestClosed(ctx, s.db, session.ID)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, visitdomain.ErrNothingToUndo
	}

	if err := s.tickets.Reopen(ctx, s.db, ticket.ID); err != nil {
		return nil, err
	}

	view := toTicketView(ticket)
	view.EndedAt = nil
	view.Minutes = nil
	view.PriceCents = nil
	view.AutoEnded = false
	return &view, nil
}

// Checkout bills all open tickets of the table's session and closes it.
// Closed tickets keep their committed charges untouched; every ticket row is
// updated before the session close timestamp is written, so a crash
// mid-checkout leaves the session recoverable as still open.
func (s *Service) Checkout(ctx context.Context, tableID string, teaching bool) (*visitdomain.CheckoutSummary, error) {
	table, err := s.findTable(ctx, tableID)
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.FindOpenByTable(ctx, s.db, table.ID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, visitdomain.ErrNoOpenSession
	}

	all, err := s.tickets.ListBySession(ctx, s.db, session.ID)
	if err != nil {
		return nil, err
	}

	open := make([]ticketdomain.Ticket, 0, len(all))
	for _, t := range all {
		if t.IsOpen() {
			open = append(open, t)
		}
	}

	now := s.clock.Now().UTC()

	var summary *visitdomain.CheckoutSummary
	switch {
	case !table.IsRoom():
		summary, err = s.checkoutOpenSeating(table, open, now)
	case teaching:
		summary, err = s.checkoutTeaching(table, open, now)
	default:
		summary, err = s.checkoutRoomHourly(table, session, all, open, now)
	}
	if err != nil {
		return nil, err
	}

	// Commit ticket charges first, session close last.
	for i, charge := range summary.Charges {
		id, parseErr := snowflake.ParseString(charge.TicketID)
		if parseErr != nil {
			return nil, visitdomain.ErrInvalidID
		}
		update := ticketdomain.CloseUpdate{
			ID:         id,
			EndedAt:    now,
			Minutes:    charge.Minutes,
			PriceCents: charge.PriceCents,
			AutoEnded:  open[i].AutoEnded,
			Metadata:   map[string]any{"mode": summary.Mode},
		}
		if err := s.tickets.Close(ctx, s.db, update); err != nil {
			return nil, err
		}
	}
	if err := s.sessions.Close(ctx, s.db, session.ID, now); err != nil {
		return nil, err
	}

	s.log.Info("session checked out",
		zap.String("table_id", table.ID.String()),
		zap.String("session_id", session.ID.String()),
		zap.String("mode", summary.Mode),
		zap.Int64("total_cents", summary.TotalCents),
		zap.Int("tickets", len(summary.Charges)),
	)
	return summary, nil
}

func (s *Service) Snapshot(ctx context.Context, tableID string) (*visitdomain.SessionView, error) {
	table, err := s.findTable(ctx, tableID)
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.FindOpenByTable(ctx, s.db, table.ID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, visitdomain.ErrNoOpenSession
	}
	return s.buildView(ctx, session)
}

// checkoutOpenSeating prices every open ticket on its own elapsed time.
func (s *Service) checkoutOpenSeating(table *tabledomain.Table, open []ticketdomain.Ticket, now time.Time) (*visitdomain.CheckoutSummary, error) {
	charges := make([]visitdomain.Charge, 0, len(open))
	days := newDaySet()
	var total int64

	for _, t := range open {
		res, err := s.registry.Resolve(table.Name, table.Area, t.StartedAt)
		if err != nil {
			return nil, err
		}
		mins := elapsedMinutes(now, t.StartedAt)
		tier, err := pricing.ComputePerPersonTier(mins, res.Rules)
		if err != nil {
			return nil, err
		}
		days.add(res.Day)
		total += tier.PerPersonCents
		charges = append(charges, visitdomain.Charge{
			TicketID:   t.ID.String(),
			Label:      t.Label,
			Minutes:    mins,
			PriceCents: tier.PerPersonCents,
		})
	}

	return &visitdomain.CheckoutSummary{
		Mode:         visitdomain.ModePerPersonTiers,
		Days:         days.list(),
		ActualPeople: len(open),
		BilledPeople: len(open),
		TotalCents:   total,
		Charges:      charges,
	}, nil
}

// checkoutRoomHourly bills the room from the earliest occupant's start
// through now and splits the total evenly across the open tickets, with the
// remainder going one cent-unit at a time to the earliest arrivals.
func (s *Service) checkoutRoomHourly(table *tabledomain.Table, session *sessiondomain.Session, all, open []ticketdomain.Ticket, now time.Time) (*visitdomain.CheckoutSummary, error) {
	earliest := session.OpenedAt
	for i, t := range all {
		if i == 0 || t.StartedAt.Before(earliest) {
			earliest = t.StartedAt
		}
	}

	res, err := s.registry.Resolve(table.Name, table.Area, earliest)
	if err != nil {
		return nil, err
	}

	mins := elapsedMinutes(now, earliest)
	room := pricing.ComputeRoomHourly(mins, res.Rules.RoomHourly)
	shares := pricing.SplitEvenly(room.TotalCents, len(open))

	charges := make([]visitdomain.Charge, 0, len(open))
	for i, t := range open {
		charges = append(charges, visitdomain.Charge{
			TicketID:   t.ID.String(),
			Label:      t.Label,
			Minutes:    elapsedMinutes(now, t.StartedAt),
			PriceCents: shares[i],
		})
	}

	total := room.TotalCents
	if len(open) == 0 {
		total = 0
	}
	return &visitdomain.CheckoutSummary{
		Mode:         visitdomain.ModeRoomHourly,
		Days:         []string{string(res.Day)},
		Minutes:      mins,
		BilledHours:  room.BilledHours,
		ActualPeople: len(open),
		BilledPeople: len(open),
		TotalCents:   total,
		Charges:      charges,
	}, nil
}

// checkoutTeaching prices each open ticket on its own elapsed time, then
// inflates the total to the minimum-headcount floor when fewer people are
// present than the plan requires, rescaling shares so the sum matches the
// target exactly.
func (s *Service) checkoutTeaching(table *tabledomain.Table, open []ticketdomain.Ticket, now time.Time) (*visitdomain.CheckoutSummary, error) {
	days := newDaySet()
	minPeople := 0
	var rawTotal int64
	var totalMinutes int

	mins := make([]int, len(open))
	parts := make([]int64, len(open))
	for i, t := range open {
		res, err := s.registry.Resolve(table.Name, table.Area, t.StartedAt)
		if err != nil {
			return nil, err
		}
		days.add(res.Day)
		if res.Rules.Teaching.MinPeople > minPeople {
			minPeople = res.Rules.Teaching.MinPeople
		}
		mins[i] = elapsedMinutes(now, t.StartedAt)
		parts[i] = pricing.ComputeTeachingPerPerson(mins[i], res.Rules.Teaching)
		rawTotal += parts[i]
		totalMinutes += mins[i]
	}

	actual := len(open)
	total := rawTotal
	billed := actual
	prices := parts
	if actual > 0 && minPeople > actual {
		total = pricing.TeachingFloorTarget(rawTotal, actual, minPeople)
		prices = pricing.RescaleToTotal(parts, total)
		billed = minPeople
	}

	charges := make([]visitdomain.Charge, 0, actual)
	for i, t := range open {
		charges = append(charges, visitdomain.Charge{
			TicketID:   t.ID.String(),
			Label:      t.Label,
			Minutes:    mins[i],
			PriceCents: prices[i],
		})
	}

	return &visitdomain.CheckoutSummary{
		Mode:         visitdomain.ModeTeaching,
		Days:         days.list(),
		Minutes:      totalMinutes,
		ActualPeople: actual,
		BilledPeople: billed,
		TotalCents:   total,
		Charges:      charges,
	}, nil
}

func (s *Service) findTable(ctx context.Context, tableID string) (*tabledomain.Table, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(tableID))
	if err != nil {
		return nil, visitdomain.ErrInvalidID
	}
	table, err := s.tables.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, visitdomain.ErrTableNotFound
	}
	return table, nil
}

func (s *Service) ensureSession(ctx context.Context, tableID snowflake.ID, now time.Time) (*sessiondomain.Session, error) {
	session, err := s.sessions.FindOpenByTable(ctx, s.db, tableID)
	if err != nil {
		return nil, err
	}
	if session != nil {
		return session, nil
	}

	session = &sessiondomain.Session{
		ID:       s.genID.Generate(),
		TableID:  tableID,
		OpenedAt: now,
	}
	if err := s.sessions.Insert(ctx, s.db, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *Service) buildView(ctx context.Context, session *sessiondomain.Session) (*visitdomain.SessionView, error) {
	all, err := s.tickets.ListBySession(ctx, s.db, session.ID)
	if err != nil {
		return nil, err
	}

	view := &visitdomain.SessionView{
		SessionID: session.ID.String(),
		TableID:   session.TableID.String(),
		OpenedAt:  session.OpenedAt,
		ClosedAt:  session.ClosedAt,
	}
	for _, t := range all {
		if t.IsOpen() {
			view.OpenTickets = append(view.OpenTickets, toTicketView(&t))
		} else {
			view.ClosedTickets = append(view.ClosedTickets, toTicketView(&t))
		}
	}
	view.Headcount = len(view.OpenTickets)

	// Most recently ended first, capped like the till display.
	sortClosedDesc(view.ClosedTickets)
	if len(view.ClosedTickets) > recentClosedLimit {
		view.ClosedTickets = view.ClosedTickets[:recentClosedLimit]
	}
	return view, nil
}

func toTicketView(t *ticketdomain.Ticket) visitdomain.TicketView {
	return visitdomain.TicketView{
		ID:         t.ID.String(),
		Label:      t.Label,
		StartedAt:  t.StartedAt,
		EndedAt:    t.EndedAt,
		Minutes:    t.Minutes,
		PriceCents: t.PriceCents,
		AutoEnded:  t.AutoEnded,
	}
}

func sortClosedDesc(items []visitdomain.TicketView) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].EndedAt, items[j].EndedAt
		if a == nil || b == nil {
			return b == nil && a != nil
		}
		return a.After(*b)
	})
}

// elapsedMinutes floors the raw difference at one minute so same-minute
// open/close or clock skew still bills the smallest unit.
func elapsedMinutes(now, startedAt time.Time) int {
	return pricing.ClampMinutes(int(now.Sub(startedAt).Minutes()))
}

type daySet struct {
	seen  map[pricing.DayType]struct{}
	order []string
}

func newDaySet() *daySet {
	return &daySet{seen: map[pricing.DayType]struct{}{}}
}

func (d *daySet) add(day pricing.DayType) {
	if _, ok := d.seen[day]; ok {
		return
	}
	d.seen[day] = struct{}{}
	d.order = append(d.order, string(day))
}

func (d *daySet) list() []string { return d.order }
