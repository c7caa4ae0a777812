package diag

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevInfo is for corrections and notices.
	SevInfo Severity = iota
	// SevWarning is for suspicious input that was still processed.
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// Label is the lower-case form used in short and golden output.
func (s Severity) Label() string {
	switch s {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	default:
		return "info"
	}
}
