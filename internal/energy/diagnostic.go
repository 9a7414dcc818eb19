package energy

// Severity indicates the severity level of a diagnostic.
type Severity string

// Severity levels.
const (
	Error   Severity = "error"
	Warning Severity = "warning"
)

// Diagnostic represents a single validation finding against a system.
type Diagnostic struct {
	Model    string
	Node     string
	RuleID   string
	RuleName string
	Severity Severity
	Message  string
}
