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
	MissionsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMissionsCompleted,
			Help: HelpTextMissionsCompleted,
		},
		[]string{LabelMission},
	)

	MissionStepsLogged = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMissionStepsLogged,
			Help: HelpTextMissionStepsLogged,
		},
		[]string{LabelMission},
	)

	AlternativesActivated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAlternativesActive,
			Help: HelpTextAlternativesActive,
		},
		[]string{LabelMission},
	)

	XPAwarded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameXPAwarded,
			Help: HelpTextXPAwarded,
		},
		[]string{LabelSource},
	)

	XPRetracted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameXPRetracted,
			Help: HelpTextXPRetracted,
		},
		[]string{LabelSource},
	)

	LevelUps = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameLevelUps,
			Help: HelpTextLevelUps,
		},
	)

	StreakResets = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameStreakResets,
			Help: HelpTextStreakResets,
		},
	)

	AchievementsUnlocked = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAchievementsUnlocked,
			Help: HelpTextAchievementsUnlocked,
		},
		[]string{LabelAchievement},
	)

	DosesTaken = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameDosesTaken,
			Help: HelpTextDosesTaken,
		},
	)

	DosesMissed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameDosesMissed,
			Help: HelpTextDosesMissed,
		},
	)

	MoodsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMoodsRecorded,
			Help: HelpTextMoodsRecorded,
		},
		[]string{LabelMood},
	)
)
