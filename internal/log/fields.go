package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldOperation  = "operation"
	FieldDuration   = "duration_ms"
	FieldStatusCode = "status_code"
	FieldSuccess    = "success"
	FieldError      = "error"
	FieldScreen     = "screen"
	FieldExpenseID  = "expense_id"
	FieldTitle      = "title"
	FieldAmount     = "amount_cents"
	FieldCategory   = "category"
	FieldMonth      = "month"
	FieldYear       = "year"
	FieldBudget     = "budget_cents"
	FieldBackend    = "backend"
)

// Components defines standard component names
const (
	ComponentApp        = "app"
	ComponentStore      = "store"
	ComponentAPI        = "api"
	ComponentSession    = "session"
	ComponentController = "controller"
)

// Operations defines standard operation names
const (
	OpList    = "list"
	OpCreate  = "create"
	OpUpdate  = "update"
	OpDelete  = "delete"
	OpReplace = "replace"
	OpProfile = "profile"
	OpBudget  = "budget"
	OpSummary = "summary"
	OpRefresh = "refresh"
	OpStartup = "startup"
	OpLogout  = "logout"
)
