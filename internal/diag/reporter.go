package diag

// Reporter is the minimal contract rules use to emit diagnostics.
type Reporter interface {
	Report(code Code, sev Severity, line int, msg string)
}

// BagReporter writes into a Bag, stamping every diagnostic with Path.
type BagReporter struct {
	Bag  *Bag
	Path string
}

func (r BagReporter) Report(code Code, sev Severity, line int, msg string) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(New(sev, code, r.Path, line, msg))
}

// NopReporter drops everything.
type NopReporter struct{}

func (NopReporter) Report(Code, Severity, int, string) {}

// ReportInfo is a shortcut for SevInfo diagnostics; a nil reporter is allowed.
func ReportInfo(r Reporter, code Code, line int, msg string) {
	if r == nil {
		return
	}
	r.Report(code, SevInfo, line, msg)
}
