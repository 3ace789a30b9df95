// Package arca is the HTTP adapter to the local SDK bridge that fronts the
// tax authority's WSAA/WSFE services. It keeps the wire handling in one place
// and translates transport failures into the afip domain error taxonomy.
package arca

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	afipdomain "github.com/fiscalio/facturador/internal/afip/domain"
	"github.com/fiscalio/facturador/internal/config"
	"go.uber.org/zap"
)

type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

func New(cfg config.Config, log *zap.Logger) afipdomain.Service {
	timeout := time.Duration(cfg.AFIP.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: cfg.AFIP.BridgeURL,
		http:    &http.Client{Timeout: timeout},
		log:     log.Named("afip.arca"),
	}
}

type lastNumberResponse struct {
	LastNumber int64 `json:"last_number"`
}

type authorizeBody struct {
	CUIT           string          `json:"cuit"`
	Environment    string          `json:"environment"`
	SalesPoint     int             `json:"sales_point"`
	VoucherType    int             `json:"voucher_type"`
	VoucherNumber  int64           `json:"voucher_number"`
	Concept        int             `json:"concept"`
	DocumentType   int             `json:"document_type"`
	DocumentNumber int64           `json:"document_number"`
	Currency       string          `json:"currency"`
	Net            string          `json:"net"`
	Tax            string          `json:"tax"`
	Total          string          `json:"total"`
	TaxGroups      []taxGroupEntry `json:"tax_groups"`
}

type taxGroupEntry struct {
	VATRateID   int    `json:"vat_rate_id"`
	TaxableBase string `json:"taxable_base"`
	TaxAmount   string `json:"tax_amount"`
}

type authorizeResponse struct {
	CAE         string `json:"cae"`
	CAEExpiry   string `json:"cae_expiry"`
	ProcessedAt string `json:"processed_at"`
}

type rejectionResponse struct {
	Message string                  `json:"message"`
	Fields  []afipdomain.FieldError `json:"fields,omitempty"`
}

func (c *Client) LastVoucherNumber(ctx context.Context, issuer afipdomain.IssuerContext, salesPoint, voucherType int) (int64, error) {
	if err := checkCredentials(issuer); err != nil {
		return 0, err
	}

	query := url.Values{}
	query.Set("cuit", issuer.CUIT)
	query.Set("environment", issuer.Environment)
	query.Set("sales_point", strconv.Itoa(salesPoint))
	query.Set("voucher_type", strconv.Itoa(voucherType))

	var out lastNumberResponse
	if err := c.do(ctx, http.MethodGet, "/wsfe/last-number?"+query.Encode(), nil, &out); err != nil {
		return 0, err
	}
	return out.LastNumber, nil
}

func (c *Client) Authorize(ctx context.Context, issuer afipdomain.IssuerContext, req afipdomain.AuthorizeRequest) (afipdomain.Authorization, error) {
	if err := checkCredentials(issuer); err != nil {
		return afipdomain.Authorization{}, err
	}

	body := authorizeBody{
		CUIT:           issuer.CUIT,
		Environment:    issuer.Environment,
		SalesPoint:     req.SalesPoint,
		VoucherType:    req.VoucherType,
		VoucherNumber:  req.VoucherNumber,
		Concept:        req.Concept,
		DocumentType:   req.DocumentType,
		DocumentNumber: req.DocumentNumber,
		Currency:       req.Currency,
		Net:            req.Net.StringFixed(2),
		Tax:            req.Tax.StringFixed(2),
		Total:          req.Total.StringFixed(2),
	}
	for _, g := range req.TaxGroups {
		body.TaxGroups = append(body.TaxGroups, taxGroupEntry{
			VATRateID:   g.VATRateID,
			TaxableBase: g.TaxableBase.StringFixed(2),
			TaxAmount:   g.TaxAmount.StringFixed(2),
		})
	}

	var out authorizeResponse
	if err := c.do(ctx, http.MethodPost, "/wsfe/authorize", body, &out); err != nil {
		return afipdomain.Authorization{}, err
	}

	expiry, err := time.Parse("2006-01-02", out.CAEExpiry)
	if err != nil {
		return afipdomain.Authorization{}, fmt.Errorf("%w: malformed cae expiry %q", afipdomain.ErrNetworkFailure, out.CAEExpiry)
	}
	processed := time.Now().UTC()
	if out.ProcessedAt != "" {
		if parsed, err := time.Parse(time.RFC3339, out.ProcessedAt); err == nil {
			processed = parsed
		}
	}

	return afipdomain.Authorization{
		CAE:           out.CAE,
		CAEExpiry:     expiry,
		VoucherNumber: req.VoucherNumber,
		ProcessedAt:   processed,
	}, nil
}

func (c *Client) RunCertificateAutomation(ctx context.Context, issuer afipdomain.IssuerContext) error {
	if issuer.CUIT == "" {
		return afipdomain.ErrConfigurationMissing
	}
	body := map[string]string{
		"cuit":        issuer.CUIT,
		"environment": issuer.Environment,
		"certificate": issuer.CertificatePath,
		"private_key": issuer.PrivateKeyPath,
	}
	return c.do(ctx, http.MethodPost, "/wsaa/certificate-automation", body, nil)
}

func checkCredentials(issuer afipdomain.IssuerContext) error {
	if issuer.CUIT == "" || issuer.CertificatePath == "" || issuer.PrivateKeyPath == "" {
		return afipdomain.ErrConfigurationMissing
	}
	if _, err := os.Stat(issuer.CertificatePath); err != nil {
		return fmt.Errorf("%w: certificate %s", afipdomain.ErrConfigurationMissing, issuer.CertificatePath)
	}
	if _, err := os.Stat(issuer.PrivateKeyPath); err != nil {
		return fmt.Errorf("%w: private key %s", afipdomain.ErrConfigurationMissing, issuer.PrivateKeyPath)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", afipdomain.ErrNetworkFailure, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		if out == nil {
			return nil
		}
		return json.NewDecoder(resp.Body).Decode(out)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return afipdomain.ErrUnauthenticated
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		var rejection rejectionResponse
		if err := json.NewDecoder(resp.Body).Decode(&rejection); err != nil || rejection.Message == "" {
			rejection.Message = "request rejected by the authorization service"
		}
		return &afipdomain.ValidationRejectedError{Message: rejection.Message, Fields: rejection.Fields}
	default:
		c.log.Warn("bridge returned unexpected status", zap.Int("status", resp.StatusCode), zap.String("path", path))
		return fmt.Errorf("%w: unexpected status %d", afipdomain.ErrNetworkFailure, resp.StatusCode)
	}
}
