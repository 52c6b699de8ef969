package service

import (
	"wallet_backend/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	txAppended = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_transactions_total",
			Help: "Ledger entries committed, by type and source",
		},
		[]string{"type", "source"},
	)
	referralsCompleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "referrals_completed_total",
			Help: "Referrals completed and rewarded",
		},
	)
	paymentsRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_payments_rejected_total",
			Help: "Wallet payments rejected before any mutation, by reason",
		},
		[]string{"reason"},
	)
)

func init() {
	prometheus.MustRegister(txAppended, referralsCompleted, paymentsRejected)
}

func recordTransaction(t *domain.Transaction) {
	if t != nil {
		txAppended.WithLabelValues(string(t.Type), string(t.Source)).Inc()
	}
}
