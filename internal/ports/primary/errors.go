package primary

import "errors"

// Errors returned by TrackerService. Compare with errors.Is.
var (
	ErrAgentNotFound        = errors.New("agent not found")
	ErrDuplicateName        = errors.New("an agent with that name already exists")
	ErrConfirmationRequired = errors.New("confirmation required")
	ErrInvalidImport        = errors.New("import failed: file is not valid JSON")
	ErrUnreadableReport     = errors.New("report could not be read")
	ErrInvalidRecordKind    = errors.New("invalid record kind")
)
