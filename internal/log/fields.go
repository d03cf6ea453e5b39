package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldOperation   = "operation"
	FieldError       = "error"
	FieldErrorType   = "error_type"
	FieldExpenseID   = "expense_id"
	FieldExpenseDesc = "expense_description"
	FieldAmount      = "amount"
	FieldDate        = "date"
	FieldCount       = "count"
	FieldMonth       = "month"
	FieldYear        = "year"
	FieldBackend     = "backend"
	FieldPath        = "path"
	FieldDuration    = "duration_ms"
	FieldExchange    = "exchange"
	FieldRoutingKey  = "routing_key"
	FieldMessageID   = "message_id"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentCLI     = "cli"
	ComponentExpense = "expense"
	ComponentStorage = "storage"
	ComponentAMQP    = "amqp"
	ComponentBackend = "backend"
	ComponentConfig  = "config"
)

// Operations defines standard operation names
const (
	OpAdd     = "add"
	OpList    = "list"
	OpUpdate  = "update"
	OpDelete  = "delete"
	OpSummary = "summary"
	OpLoad    = "load"
	OpSave    = "save"
	OpPublish = "publish"
	OpMigrate = "migrate"
)

// ErrorTypes defines standard error type categories
const (
	ErrorTypeUsage         = "usage_error"
	ErrorTypeValidation    = "validation_error"
	ErrorTypeNotFound      = "not_found_error"
	ErrorTypeCorruptState  = "corrupt_state_error"
	ErrorTypeConfiguration = "configuration_error"
	ErrorTypeStorage       = "storage_error"
	ErrorTypeNetwork       = "network_error"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithComponent adds component field
func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithErrorType adds error type field
func (f LogFields) WithErrorType(errType string) LogFields {
	f[FieldErrorType] = errType
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithExpense adds expense-related fields
func (f LogFields) WithExpense(id int, desc string, amount float64, date string) LogFields {
	f[FieldExpenseID] = id
	f[FieldExpenseDesc] = desc
	f[FieldAmount] = amount
	f[FieldDate] = date
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
