package server

import (
	"net/http"

	issuerdomain "github.com/fiscalio/facturador/internal/issuer/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) GetIssuer(c *gin.Context) {
	profile, err := s.issuerSvc.Get(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": profile})
}

func (s *Server) UpdateIssuer(c *gin.Context) {
	var req issuerdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	profile, err := s.issuerSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": profile})
}
