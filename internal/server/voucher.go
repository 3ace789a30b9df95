package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	voucherdomain "github.com/fiscalio/facturador/internal/voucher/domain"
	"github.com/fiscalio/facturador/pkg/db/pagination"
	"github.com/gin-gonic/gin"
)

func (s *Server) ListVouchers(c *gin.Context) {
	filter, err := voucherFilterFromQuery(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.voucherSvc.List(c.Request.Context(), filter)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      resp.Vouchers,
		"page_info": resp.PageInfo,
	})
}

func (s *Server) GetVoucherByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if _, err := snowflake.ParseString(id); err != nil {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid id"))
		return
	}

	item, err := s.voucherSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": item})
}

func (s *Server) GetVoucherByCAE(c *gin.Context) {
	cae := strings.TrimSpace(c.Param("cae"))
	if cae == "" {
		AbortWithError(c, newValidationError("cae", "invalid_cae", "invalid authorization code"))
		return
	}

	item, err := s.voucherSvc.GetByCAE(c.Request.Context(), cae)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": item})
}

func (s *Server) DeleteVoucher(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if _, err := snowflake.ParseString(id); err != nil {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid id"))
		return
	}

	deleted, err := s.voucherSvc.Delete(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

func (s *Server) RenderVoucherDocument(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if _, err := snowflake.ParseString(id); err != nil {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid id"))
		return
	}

	path, err := s.renderSvc.RenderDocument(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"document_path": path})
}

func (s *Server) PreviewVoucherDocument(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if _, err := snowflake.ParseString(id); err != nil {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid id"))
		return
	}

	html, err := s.renderSvc.RenderHTML(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func voucherFilterFromQuery(c *gin.Context) (voucherdomain.Filter, error) {
	dateFrom, err := parseOptionalTime(c.Query("date_from"), false)
	if err != nil {
		return voucherdomain.Filter{}, newValidationError("date_from", "invalid_date", "invalid date")
	}
	dateTo, err := parseOptionalTime(c.Query("date_to"), true)
	if err != nil {
		return voucherdomain.Filter{}, newValidationError("date_to", "invalid_date", "invalid date")
	}
	documentNumber, err := parseOptionalInt64(c.Query("document_number"))
	if err != nil {
		return voucherdomain.Filter{}, newValidationError("document_number", "invalid_number", "invalid number")
	}
	documentType, err := parseOptionalInt(c.Query("document_type"))
	if err != nil {
		return voucherdomain.Filter{}, newValidationError("document_type", "invalid_number", "invalid number")
	}
	salesPoint, err := parseOptionalInt(c.Query("sales_point"))
	if err != nil {
		return voucherdomain.Filter{}, newValidationError("sales_point", "invalid_number", "invalid number")
	}
	voucherType, err := parseOptionalInt(c.Query("voucher_type"))
	if err != nil {
		return voucherdomain.Filter{}, newValidationError("voucher_type", "invalid_number", "invalid number")
	}

	return voucherdomain.Filter{
		DateFrom:       dateFrom,
		DateTo:         dateTo,
		DocumentNumber: documentNumber,
		DocumentType:   documentType,
		SalesPoint:     salesPoint,
		VoucherType:    voucherType,
		Pagination: pagination.Pagination{
			Limit:  parseIntDefault(c.Query("limit"), 50),
			Offset: parseIntDefault(c.Query("offset"), 0),
		}.Normalize(),
	}, nil
}
