package server

import (
	"net/http"

	referencedomain "github.com/fiscalio/facturador/internal/reference/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) ListVATRates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": referencedomain.VATRates()})
}

func (s *Server) ListVoucherTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": referencedomain.VoucherTypes()})
}

func (s *Server) ListDocumentTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": referencedomain.DocumentTypes()})
}

func (s *Server) ListConcepts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": referencedomain.Concepts()})
}

func (s *Server) ListVATConditions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": referencedomain.VATConditions()})
}
