package registry

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tinoosan/atm/internal/errs"
)

var operationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "atm",
		Name:      "operations_total",
		Help:      "Registry operations by outcome",
	},
	[]string{"operation", "result"},
)

func observe(op string, err error) {
	operationsTotal.WithLabelValues(op, result(err)).Inc()
}

func result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, errs.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, errs.ErrInvalid):
		return "invalid"
	default:
		return "error"
	}
}
