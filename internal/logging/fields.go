package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"

	// Translation fields.
	FieldDialect   = "dialect"
	FieldConstruct = "construct"
	FieldLine      = "line"
	FieldColumn    = "column"
	FieldStrict    = "strict"
	FieldBytes     = "bytes"

	// Configuration fields.
	FieldConfigPath = "config_path"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
