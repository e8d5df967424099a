package log

// Field names used across the application for structured logging
const (
	FieldComponent = "component"
	FieldError     = "error"
	FieldDuration  = "duration_ms"
	FieldRequestID = "request_id"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldRemoteIP  = "remote_ip"

	FieldSaleDate      = "sale_date"
	FieldSalesmanAlias = "salesman_alias"
	FieldCustomer      = "customer"
	FieldProductCode   = "product_code"
	FieldItemCount     = "item_count"
	FieldRecordCount   = "record_count"
	FieldSessionID     = "session_id"
	FieldWizardStep    = "wizard_step"
	FieldEndpoint      = "endpoint"
)

// Component names for the different parts of the front-end
const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentAPI      = "api"
	ComponentWizard   = "wizard"
	ComponentTemplate = "template"
)
