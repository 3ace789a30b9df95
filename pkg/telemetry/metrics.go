// Package telemetry exposes Prometheus observability primitives for the
// invoicing client.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

// Module registers the metrics set.
var Module = fx.Provide(NewMetrics)

// Metrics holds the issuance counters.
type Metrics struct {
	vouchersIssued   *prometheus.CounterVec
	vouchersRejected *prometheus.CounterVec
	documentsRender  prometheus.Counter
}

// NewMetrics registers and returns Prometheus metrics.
func NewMetrics() *Metrics {
	vouchersIssued := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "facturador_vouchers_issued_total",
		Help: "Counts authorized and recorded vouchers by type and sales point.",
	}, []string{"voucher_type", "sales_point"})

	vouchersRejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "facturador_vouchers_rejected_total",
		Help: "Counts failed authorizations by error classification.",
	}, []string{"reason"})

	documentsRender := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "facturador_documents_rendered_total",
		Help: "Counts rendered voucher documents.",
	})

	prometheus.MustRegister(vouchersIssued, vouchersRejected, documentsRender)

	return &Metrics{
		vouchersIssued:   vouchersIssued,
		vouchersRejected: vouchersRejected,
		documentsRender:  documentsRender,
	}
}

func (m *Metrics) VoucherIssued(voucherType, salesPoint string) {
	if m == nil {
		return
	}
	m.vouchersIssued.WithLabelValues(voucherType, salesPoint).Inc()
}

func (m *Metrics) VoucherRejected(reason string) {
	if m == nil {
		return
	}
	m.vouchersRejected.WithLabelValues(reason).Inc()
}

func (m *Metrics) DocumentRendered() {
	if m == nil {
		return
	}
	m.documentsRender.Inc()
}
