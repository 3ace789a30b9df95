package server

import (
	"net/http"

	invoicedomain "github.com/fiscalio/facturador/internal/invoice/domain"
	issuingdomain "github.com/fiscalio/facturador/internal/issuing/domain"
	"github.com/gin-gonic/gin"
)

type previewRequest struct {
	Items []invoicedomain.LineItem `json:"items"`
}

func (s *Server) PreviewInvoice(c *gin.Context) {
	var req previewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	preview, err := s.issuingSvc.Preview(c.Request.Context(), req.Items)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": preview})
}

func (s *Server) IssueInvoice(c *gin.Context) {
	var req issuingdomain.IssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	voucher, err := s.issuingSvc.Issue(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": voucher})
}
