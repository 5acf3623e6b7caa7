package validation

// Error messages
const (
	ErrMsgReadDataFile     = "failed to read data file"
	ErrMsgLoadSchema       = "failed to load schema"
	ErrMsgParseData        = "failed to parse JSON data"
	ErrMsgParseSchema      = "failed to parse schema JSON"
	ErrMsgAddSchema        = "failed to add schema resource"
	ErrMsgCompileSchema    = "failed to compile schema"
	ErrMsgValidation       = "validation error"
	ErrMsgSchemaValidation = "schema validation failed"
)
