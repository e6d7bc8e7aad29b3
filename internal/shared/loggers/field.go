package loggers

const (
	FieldApp        = "app"
	FieldComponent  = "component"
	FieldHttpMethod = "http_method"
	FieldHttpPath   = "http_path"
	FieldHttpStatus = "http_status"
	FieldUserAgent  = "user_agent"

	FieldDuration   = "duration"
	FieldRequestID  = "request_id"
	FieldErrorStack = "error_stack"
	FieldErrorCode  = "error_code"

	FieldAPI          = "api"
	FieldReference    = "reference"
	FieldLogKind      = "log_kind"
	FieldEnvironment  = "environment"
	FieldUpstreamCode = "upstream_status"
)
