package logging

// Standardized field names for structured logging.
const (
	FieldFile         = "file_path"
	FieldDocumentType = "document_type"
	FieldField        = "field"
	FieldPattern      = "pattern"
	FieldPage         = "page"
	FieldPages        = "pages"
	FieldOperation    = "operation"
	FieldStatus       = "status"
	FieldError        = "error"
	FieldDuration     = "duration_ms"
	FieldCount        = "count"
	FieldFormat       = "format"
	FieldInputFile    = "input_file"
	FieldOutputFile   = "output_file"
	FieldRequestID    = "request_id"
	FieldWorkers      = "workers"
)
