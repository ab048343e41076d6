package fontquery

import "fmt"

// Severity represents the severity level of a table issue.
type Severity int

const (
	// SeverityCritical indicates that metrics cannot be derived from the font.
	SeverityCritical Severity = iota
	// SeverityMajor indicates a table which had to be ignored.
	SeverityMajor
	// SeverityMinor indicates an issue that can be safely ignored in most cases.
	SeverityMinor
)

// String returns a human-readable representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityCritical:
		return "CRITICAL"
	case SeverityMajor:
		return "MAJOR"
	case SeverityMinor:
		return "MINOR"
	default:
		return "UNKNOWN"
	}
}

// TableIssue represents a problem encountered while decoding a font table.
type TableIssue struct {
	Table    string   // OpenType table tag, e.g. "hhea"
	Issue    string   // human-readable description of the issue
	Severity Severity // severity level of the issue
}

// Error implements the error interface.
func (e TableIssue) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Severity, e.Table, e.Issue)
}

// issueCollector accumulates issues while decoding tables.
type issueCollector struct {
	issues []TableIssue
}

func (ic *issueCollector) add(table string, severity Severity, format string, args ...any) {
	issue := TableIssue{Table: table, Issue: fmt.Sprintf(format, args...), Severity: severity}
	tracer().Debugf("table issue: %s", issue.Error())
	ic.issues = append(ic.issues, issue)
}

// filter returns all issues with a severity of at least min.
func (ic *issueCollector) filter(min Severity) []TableIssue {
	var r []TableIssue
	for _, i := range ic.issues {
		if i.Severity <= min {
			r = append(r, i)
		}
	}
	return r
}
