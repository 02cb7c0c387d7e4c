package registry

import "github.com/prometheus/client_golang/prometheus"

// OperationsTotal exposes the operation counter to external tests.
func OperationsTotal() *prometheus.CounterVec { return operationsTotal }
