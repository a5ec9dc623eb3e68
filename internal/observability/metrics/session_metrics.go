package metrics

import (
	"log"

	"github.com/prometheus/client_golang/prometheus"
)

func registerSessionMetrics(stats SessionStats, logger *log.Logger) {
	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: metricPrefix + "undo_depth",
			Help: "Commands available to undo",
		},
		func() float64 {
			return clampCount(stats.UndoDepth(), logger, "undo depth")
		},
	))

	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: metricPrefix + "redo_depth",
			Help: "Commands available to redo",
		},
		func() float64 {
			return clampCount(stats.RedoDepth(), logger, "redo depth")
		},
	))

	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: metricPrefix + "selection_size",
			Help: "Selected data points",
		},
		func() float64 {
			return clampCount(stats.SelectionSize(), logger, "selection size")
		},
	))

	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: metricPrefix + "document_dirty",
			Help: "1 when the open document has unsaved changes",
		},
		func() float64 {
			if stats.IsDirty() {
				return 1
			}
			return 0
		},
	))
}

func clampCount(count int, logger *log.Logger, name string) float64 {
	if count < 0 {
		if logger != nil {
			logger.Printf("metrics: negative %s %d", name, count)
		}
		return 0
	}
	return float64(count)
}
