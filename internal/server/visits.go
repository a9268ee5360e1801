package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/seatcounter/internal/queue"
	"github.com/smallbiznis/seatcounter/pkg/db"
	"go.uber.org/zap"
)

type enterRequest struct {
	Count int `json:"count"`
}

type leaveRequest struct {
	TicketID string `json:"ticket_id"`
}

type checkoutRequest struct {
	Teaching bool `json:"teaching"`
}

func (s *Server) GetTableSession(c *gin.Context) {
	view, err := s.visitSvc.Snapshot(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (s *Server) Enter(c *gin.Context) {
	var req enterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	view, err := s.visitSvc.Enter(c.Request.Context(), c.Param("id"), req.Count)
	if err != nil {
		if s.queueFallback(c, err, queue.Action{
			Kind:    queue.KindEnter,
			TableID: c.Param("id"),
			Count:   req.Count,
		}) {
			return
		}
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (s *Server) Leave(c *gin.Context) {
	var req leaveRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			AbortWithError(c, ErrInvalidRequest)
			return
		}
	}

	charge, err := s.visitSvc.Leave(c.Request.Context(), c.Param("id"), req.TicketID)
	if err != nil {
		kind := queue.KindLeaveOldest
		if req.TicketID != "" {
			kind = queue.KindLeavePick
		}
		if s.queueFallback(c, err, queue.Action{
			Kind:     kind,
			TableID:  c.Param("id"),
			TicketID: req.TicketID,
		}) {
			return
		}
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, charge)
}

func (s *Server) Undo(c *gin.Context) {
	ticket, err := s.visitSvc.Undo(c.Request.Context(), c.Param("id"))
	if err != nil {
		if s.queueFallback(c, err, queue.Action{
			Kind:    queue.KindUndo,
			TableID: c.Param("id"),
		}) {
			return
		}
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}

func (s *Server) Checkout(c *gin.Context) {
	var req checkoutRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			AbortWithError(c, ErrInvalidRequest)
			return
		}
	}

	summary, err := s.visitSvc.Checkout(c.Request.Context(), c.Param("id"), req.Teaching)
	if err != nil {
		if s.queueFallback(c, err, queue.Action{
			Kind:     queue.KindCheckout,
			TableID:  c.Param("id"),
			Teaching: req.Teaching,
		}) {
			return
		}
		AbortWithError(c, err)
		return
	}

	checkoutsTotal.WithLabelValues(summary.Mode).Inc()
	c.JSON(http.StatusOK, summary)
}

// queueFallback captures the action for later replay when the store is
// unreachable. Domain rejections are never queued; they would fail identically
// on replay.
func (s *Server) queueFallback(c *gin.Context, cause error, action queue.Action) bool {
	if !db.IsUnavailableErr(cause) || !s.queue.Enabled() {
		return false
	}

	queued, err := s.queue.Enqueue(c.Request.Context(), action)
	if err != nil {
		s.log.Error("failed to queue action after store error",
			zap.String("kind", string(action.Kind)),
			zap.String("table_id", action.TableID),
			zap.Error(err),
		)
		return false
	}

	c.JSON(http.StatusAccepted, gin.H{
		"queued":    true,
		"action_id": queued.ID,
	})
	return true
}
