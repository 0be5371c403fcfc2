package service

// Broadcaster pushes events to live dashboards (avoids import cycle with ws)
type Broadcaster interface {
	BroadcastToDashboards(surveyID string, msgType string, payload interface{})
	DisconnectSurvey(surveyID string)
}

// Dashboard event types
const (
	EventAnalyticsUpdate = "analytics_update"
	EventSurveyClosed    = "survey_closed"
)
