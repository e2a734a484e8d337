package scanner

// ConfidenceLevel grades how trustworthy a set of findings is, based on
// which parsing tier produced it: structural parsing yields HIGH, regex
// fallback yields MEDIUM, LOW is reserved for findings derived from file
// or directory naming alone.
type ConfidenceLevel int

const (
	ConfidenceLow ConfidenceLevel = iota
	ConfidenceMedium
	ConfidenceHigh
)

// String returns the level name used in reports and JSON output
func (c ConfidenceLevel) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	default:
		return "low"
	}
}

// Description names the extraction method behind this level
func (c ConfidenceLevel) Description() string {
	switch c {
	case ConfidenceHigh:
		return "structural parse"
	case ConfidenceMedium:
		return "regex fallback"
	default:
		return "heuristic"
	}
}

// Weight returns the numeric trust weight (1.0 HIGH, 0.7 MEDIUM, 0.4 LOW)
func (c ConfidenceLevel) Weight() float64 {
	switch c {
	case ConfidenceHigh:
		return 1.0
	case ConfidenceMedium:
		return 0.7
	default:
		return 0.4
	}
}

// AtLeast reports whether this level meets the given minimum
func (c ConfidenceLevel) AtLeast(minimum ConfidenceLevel) bool {
	return c >= minimum
}

// Levels lists all confidence levels, highest first
func Levels() []ConfidenceLevel {
	return []ConfidenceLevel{ConfidenceHigh, ConfidenceMedium, ConfidenceLow}
}
