package diag

// Severity ranks how serious a diagnostic is. The numeric order matters:
// Bag.HasErrors and Bag.HasWarnings compare against these levels, and
// SevError is the only level that makes a pipeline stage fail.
type Severity uint8

const (
	// SevInfo marks purely informational entries, e.g. timing reports.
	SevInfo Severity = iota
	// SevWarning marks suspicious but non-fatal findings.
	SevWarning
	// SevError marks findings that abort the requested operation.
	SevError
)

var severityNames = [...]string{
	SevInfo:    "INFO",
	SevWarning: "WARNING",
	SevError:   "ERROR",
}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "UNKNOWN"
}
