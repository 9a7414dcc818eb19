package report

import "strconv"

// ValueKind describes how to render a numeric metric value.
type ValueKind string

const (
	// KindInteger renders values as rounded integers.
	KindInteger ValueKind = "integer"
	// KindFloat renders values with fixed decimal precision.
	KindFloat ValueKind = "float"
	// KindPercent renders values as percentages.
	KindPercent ValueKind = "percent"
)

// Value is a computed numeric metric value.
type Value struct {
	Number    float64
	Available bool
}

// AvailableValue constructs an available metric value.
func AvailableValue(n float64) Value {
	return Value{
		Number:    n,
		Available: true,
	}
}

// UnavailableValue constructs an unavailable metric value.
func UnavailableValue() Value {
	return Value{}
}

// Render formats a value according to kind and precision.
func (v Value) Render(kind ValueKind, precision int) string {
	if !v.Available {
		return "n/a"
	}
	switch kind {
	case KindInteger:
		return strconv.FormatFloat(v.Number, 'f', 0, 64)
	case KindPercent:
		return strconv.FormatFloat(v.Number*100, 'f', precision, 64) + "%"
	default:
		return strconv.FormatFloat(v.Number, 'f', precision, 64)
	}
}
