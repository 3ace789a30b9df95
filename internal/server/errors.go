package server

import (
	"errors"
	"net/http"

	afipdomain "github.com/fiscalio/facturador/internal/afip/domain"
	invoicedomain "github.com/fiscalio/facturador/internal/invoice/domain"
	issuerdomain "github.com/fiscalio/facturador/internal/issuer/domain"
	issuingdomain "github.com/fiscalio/facturador/internal/issuing/domain"
	referencedomain "github.com/fiscalio/facturador/internal/reference/domain"
	voucherdomain "github.com/fiscalio/facturador/internal/voucher/domain"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`

	// Authorization is set only on the authorized-but-unrecorded failure so
	// the caller can recover the CAE that exists on the remote side.
	Authorization *afipdomain.Authorization `json:"authorization,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var ErrInvalidRequest = errors.New("invalid_request")

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	// A rejection from the tax authority carries the remote message verbatim;
	// the operator needs the exact wording to fix the submission.
	if rejErr := afipdomain.AsValidationRejected(err); rejErr != nil {
		return http.StatusUnprocessableEntity, errorPayload{
			Type:    "authorization_rejected",
			Message: rejErr.Message,
			Errors:  rejectionFields(rejErr),
		}
	}

	if uErr := issuingdomain.AsUnrecorded(err); uErr != nil {
		auth := uErr.Authorization
		return http.StatusBadGateway, errorPayload{
			Type:          "authorized_not_recorded",
			Message:       uErr.Error(),
			Authorization: &auth,
		}
	}

	if isValidationError(err) {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Code:    err.Error(),
					Message: "invalid value",
				},
			},
		}
	}

	switch {
	case errors.Is(err, afipdomain.ErrUnauthenticated):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthenticated",
			Message: "remote service rejected the credentials",
		}
	case errors.Is(err, afipdomain.ErrConfigurationMissing):
		return http.StatusConflict, errorPayload{
			Type:    "configuration_missing",
			Message: "certificate or private key is not configured",
		}
	case errors.Is(err, issuerdomain.ErrNotConfigured):
		return http.StatusConflict, errorPayload{
			Type:    "issuer_not_configured",
			Message: "issuer profile is not configured",
		}
	case errors.Is(err, voucherdomain.ErrDuplicateNumber):
		return http.StatusConflict, errorPayload{
			Type:    "duplicate_voucher_number",
			Message: "a voucher with this sales point, type and number is already recorded",
		}
	case errors.Is(err, issuerdomain.ErrDuplicateCUIT):
		return http.StatusConflict, errorPayload{
			Type:    "duplicate_cuit",
			Message: "issuer profile write conflicted with an existing CUIT",
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case errors.Is(err, afipdomain.ErrNetworkFailure):
		return http.StatusBadGateway, errorPayload{
			Type:    "upstream_unavailable",
			Message: "remote service unreachable",
		}
	case errors.Is(err, voucherdomain.ErrStorageUnavailable):
		return http.StatusServiceUnavailable, errorPayload{
			Type:    "storage_unavailable",
			Message: "local storage unavailable",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, invoicedomain.ErrInvalidLineItem),
		errors.Is(err, issuingdomain.ErrNoLineItems),
		errors.Is(err, referencedomain.ErrUnknownTaxRate),
		errors.Is(err, referencedomain.ErrUnknownVoucherType),
		errors.Is(err, referencedomain.ErrUnknownDocumentType),
		errors.Is(err, referencedomain.ErrUnknownConcept),
		errors.Is(err, voucherdomain.ErrInvalidVoucherID),
		errors.Is(err, voucherdomain.ErrInvalidDocumentRef),
		errors.Is(err, issuerdomain.ErrInvalidCUIT),
		errors.Is(err, issuerdomain.ErrInvalidLegalName),
		errors.Is(err, issuerdomain.ErrInvalidSalesPoint):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, voucherdomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func rejectionFields(rejErr *afipdomain.ValidationRejectedError) []ValidationError {
	fields := make([]ValidationError, 0, len(rejErr.Fields))
	for _, f := range rejErr.Fields {
		fields = append(fields, ValidationError{
			Field:   f.Field,
			Message: f.Message,
		})
	}
	return fields
}
