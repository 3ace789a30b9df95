package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) GetLastVoucherNumber(c *gin.Context) {
	voucherType, err := parseOptionalInt(c.Query("voucher_type"))
	if err != nil || voucherType == nil {
		AbortWithError(c, newValidationError("voucher_type", "invalid_voucher_type", "invalid voucher type"))
		return
	}
	salesPoint := parseIntDefault(c.Query("sales_point"), 0)

	last, err := s.issuingSvc.LastVoucherNumber(c.Request.Context(), salesPoint, *voucherType)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"last_voucher_number": last})
}

func (s *Server) RunCertificateAutomation(c *gin.Context) {
	if err := s.issuingSvc.RunCertificateAutomation(c.Request.Context()); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
