package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Business Metrics
var (
	KeysCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameKeysCreated,
			Help: HelpTextKeysCreated,
		},
	)

	KeysDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameKeysDeleted,
			Help: HelpTextKeysDeleted,
		},
	)

	KeysTransferred = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameKeysTransferred,
			Help: HelpTextKeysTransferred,
		},
		[]string{LabelOperation, LabelKey, LabelPhysical},
	)

	KeySlotChanges = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameKeySlotChanges,
			Help: HelpTextKeySlotChanges,
		},
	)

	PrizeUpdates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePrizeUpdates,
			Help: HelpTextPrizeUpdates,
		},
		[]string{LabelField},
	)

	PromptsOpened = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePromptsOpened,
			Help: HelpTextPromptsOpened,
		},
		[]string{LabelAction},
	)

	PromptsAnswered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePromptsAnswered,
			Help: HelpTextPromptsAnswered,
		},
		[]string{LabelAction, LabelOutcome},
	)

	CommandsRun = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCommandsRun,
			Help: HelpTextCommandsRun,
		},
		[]string{LabelSubcommand},
	)

	SSEClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameSSEClients,
			Help: HelpTextSSEClients,
		},
	)

	SSEEventsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSSEEventsDropped,
			Help: HelpTextSSEEventsDropped,
		},
		[]string{LabelType},
	)
)
