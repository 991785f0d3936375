package manager

import "github.com/prometheus/client_golang/prometheus"

var (
	predictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "medpredict",
			Subsystem: "manager",
			Name:      "predictions_total",
			Help:      "Predictions by disease and outcome (positive, negative, invalid, error)",
		},
		[]string{"disease", "outcome"},
	)

	modelLoadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "medpredict",
			Subsystem: "manager",
			Name:      "model_loads_total",
			Help:      "Classifier artifact loads by model and result",
		},
		[]string{"model", "result"},
	)
)

func init() {
	prometheus.MustRegister(predictionsTotal, modelLoadsTotal)
}
