package constants

const (
	// Pagination
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// AI task generation
	MaxAIGeneratedTasks = 20

	// Seed user created when the store holds no users.
	DefaultAdminName = "Admin User"

	// Placeholder shown for an assignee id that no longer resolves.
	UnknownAssignee = "Unknown"

	// Context keys
	ContextKeyUserID = "user_id"

	// DateLayout is the due-date text format and the reminder day key.
	DateLayout = "2006-01-02"
)
