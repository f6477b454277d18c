package diag

// Severity ranks diagnostics. The numeric order is load-bearing: bag
// checks and the sort comparator compare severities with >=.
type Severity uint8

const (
	// SevInfo is advisory output; it never fails a file.
	SevInfo Severity = iota
	// SevWarning flags suspicious but recoverable input.
	SevWarning
	// SevError fails the file it is reported against.
	SevError
)

// String returns the upper-case label rendered in CLI diagnostics.
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
