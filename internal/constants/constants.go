package constants

import "time"

// Session and context keys
const (
	SessionCookieName = "briefmate_session"
	ContextKeyUserID  = "user_id"
	ContextKeyBrief   = "brief"
	ContextKeyReqID   = "request_id"
	RequestIDHeader   = "X-Request-ID"
)

// Validation limits
const (
	MinPasswordLength   = 6
	MinNameLength       = 2
	MaxAIGeneratedTasks = 20
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Dashboard windows
const (
	UpcomingDeadlineWindow = 7 * 24 * time.Hour
	TrailingMonths         = 6
)

// Export
const (
	NoClientLabel    = "Aucun client"
	ExportFilePrefix = "briefmate-export"
)
