package metrics

import (
	"log"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "motor_editor_"

	resultSuccess = "success"
	resultError   = "error"
	resultNoop    = "noop"

	conversionModeDisplay = "display"
	conversionModeStored  = "stored"

	commandOpDo   = "do"
	commandOpUndo = "undo"
	commandOpRedo = "redo"
)

var (
	registerOnce sync.Once

	commandTotal *prometheus.CounterVec

	unitConversionTotal *prometheus.CounterVec

	curveGenerateTotal   *prometheus.CounterVec
	curveGenerateLatency *prometheus.HistogramVec

	exportTotal   *prometheus.CounterVec
	exportLatency *prometheus.HistogramVec

	documentEventsTotal *prometheus.CounterVec

	selectionChangesTotal prometheus.Counter
)

// SessionStats exposes live editing-session state for gauges.
type SessionStats interface {
	UndoDepth() int
	RedoDepth() int
	SelectionSize() int
	IsDirty() bool
}

// Init registers editor metrics and, when stats is set, session gauges.
func Init(stats SessionStats, logger *log.Logger) {
	registerOnce.Do(func() {
		commandTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "command_total",
				Help: "Total command stack operations by operation and result",
			},
			[]string{"op", "result"},
		)

		unitConversionTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "unit_conversion_total",
				Help: "Total bulk unit conversions by mode and result",
			},
			[]string{"mode", "result"},
		)

		curveGenerateTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "curve_generate_total",
				Help: "Total curve generations by result",
			},
			[]string{"result"},
		)
		curveGenerateLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "curve_generate_latency_seconds",
				Help:    "Curve generation latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)

		exportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "export_total",
				Help: "Total document exports by format and result",
			},
			[]string{"format", "result"},
		)
		exportLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "export_latency_seconds",
				Help:    "Document export latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format", "result"},
		)

		documentEventsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "document_events_total",
				Help: "Total document lifecycle events by type",
			},
			[]string{"event"},
		)

		selectionChangesTotal = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "selection_changes_total",
				Help: "Total selection change notifications",
			},
		)

		prometheus.MustRegister(
			commandTotal,
			unitConversionTotal,
			curveGenerateTotal,
			curveGenerateLatency,
			exportTotal,
			exportLatency,
			documentEventsTotal,
			selectionChangesTotal,
		)

		if stats != nil {
			registerSessionMetrics(stats, logger)
		}
	})
}

// ObserveCommand counts a command stack operation.
func ObserveCommand(op, result string) {
	if op == "" {
		op = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if commandTotal != nil {
		commandTotal.WithLabelValues(op, result).Inc()
	}
}

// IncUnitConversion counts a bulk conversion.
func IncUnitConversion(mode, result string) {
	if mode == "" {
		mode = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if unitConversionTotal != nil {
		unitConversionTotal.WithLabelValues(mode, result).Inc()
	}
}

// ObserveCurveGenerate records curve generation latency and result.
func ObserveCurveGenerate(result string, duration time.Duration) {
	if result == "" {
		result = resultSuccess
	}
	if curveGenerateTotal != nil {
		curveGenerateTotal.WithLabelValues(result).Inc()
	}
	if curveGenerateLatency != nil {
		curveGenerateLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// ObserveExport records export latency and result.
func ObserveExport(format, result string, duration time.Duration) {
	if format == "" {
		format = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if exportTotal != nil {
		exportTotal.WithLabelValues(format, result).Inc()
	}
	if exportLatency != nil {
		exportLatency.WithLabelValues(format, result).Observe(duration.Seconds())
	}
}

// IncDocumentEvent counts new/open/save/close events.
func IncDocumentEvent(event string) {
	if event == "" {
		event = "unknown"
	}
	if documentEventsTotal != nil {
		documentEventsTotal.WithLabelValues(event).Inc()
	}
}

// IncSelectionChange counts a selection change notification.
func IncSelectionChange() {
	if selectionChangesTotal != nil {
		selectionChangesTotal.Inc()
	}
}

// Result maps an error to a result label.
func Result(err error) string {
	if err != nil {
		return resultError
	}
	return resultSuccess
}

// Exported constants for callers.
const (
	ResultSuccess = resultSuccess
	ResultError   = resultError
	ResultNoop    = resultNoop

	ConversionModeDisplay = conversionModeDisplay
	ConversionModeStored  = conversionModeStored

	CommandOpDo   = commandOpDo
	CommandOpUndo = commandOpUndo
	CommandOpRedo = commandOpRedo
)
