package constants

const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	ContextKeyUserID    = "user_id"
	ContextKeyUsername  = "username"
	ContextKeyRequestID = "request_id"

	TableTickets     = "tickets"
	TableComments    = "ticket_comments"
	TableAttachments = "ticket_attachments"
	TableAuditLogs   = "ticket_audit_logs"
	TableCounters    = "protocol_counters"
	TableDepartments = "departments"
	TableUsers       = "users"

	ErrMsgInternalServerError = "Internal server error occurred"
)
