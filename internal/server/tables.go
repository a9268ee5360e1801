package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	tabledomain "github.com/smallbiznis/seatcounter/internal/table/domain"
)

func (s *Server) ListTables(c *gin.Context) {
	tables, err := s.tableSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tables": tables})
}

func (s *Server) CreateTable(c *gin.Context) {
	var req tabledomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	table, err := s.tableSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, table)
}

func (s *Server) GetTableByID(c *gin.Context) {
	table, err := s.tableSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, table)
}
