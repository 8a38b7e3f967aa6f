package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNameMissionsCompleted    = "missions_completed_total"
	MetricNameMissionStepsLogged   = "mission_steps_logged_total"
	MetricNameAlternativesActive   = "mission_alternatives_activated_total"
	MetricNameXPAwarded            = "xp_awarded_total"
	MetricNameXPRetracted          = "xp_retracted_total"
	MetricNameLevelUps             = "level_ups_total"
	MetricNameStreakResets         = "streak_resets_total"
	MetricNameAchievementsUnlocked = "achievements_unlocked_total"
	MetricNameDosesTaken           = "medication_doses_taken_total"
	MetricNameDosesMissed          = "medication_doses_missed_total"
	MetricNameMoodsRecorded        = "moods_recorded_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Business metric help text
const (
	HelpTextMissionsCompleted    = "Total number of missions completed"
	HelpTextMissionStepsLogged   = "Total number of mission steps logged"
	HelpTextAlternativesActive   = "Total number of alternative missions activated"
	HelpTextXPAwarded            = "Total XP awarded"
	HelpTextXPRetracted          = "Total XP retracted by undo operations"
	HelpTextLevelUps             = "Total number of level ups"
	HelpTextStreakResets         = "Total number of streak resets"
	HelpTextAchievementsUnlocked = "Total number of achievements unlocked"
	HelpTextDosesTaken           = "Total number of medication doses logged as taken"
	HelpTextDosesMissed          = "Total number of medication doses logged as missed"
	HelpTextMoodsRecorded        = "Total number of mood check-ins recorded"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod      = "method"
	LabelPath        = "path"
	LabelStatus      = "status"
	LabelType        = "type"
	LabelMission     = "mission"
	LabelSource      = "source"
	LabelAchievement = "achievement"
	LabelMood        = "mood"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds. These buckets range from 1ms to 10s to capture various latency
// patterns: fast (1-10ms), normal (10-100ms), slow (100ms-1s), very slow (1-10s)
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgMetricsRecorded = "Metrics recorded for event"
)
