package diag

// Diagnostic records one correction or failure.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Path     string
	Line     int // 1-based; 0 when the diagnostic concerns the whole file
}

func New(sev Severity, code Code, path string, line int, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Path:     path,
		Line:     line,
	}
}

func NewError(code Code, path string, msg string) Diagnostic {
	return New(SevError, code, path, 0, msg)
}
