// Package scanner contains the scanning core: the Scanner contract, the
// per-run ScanContext, result and statistics types, the scanner registry
// and the orchestrator that sequences registered scanners.
package scanner

// Scanner is the pluggable extraction unit. Implementations analyze one
// aspect of a codebase (a dependency manifest format, a web framework,
// a messaging library) and produce a ScanResult.
//
// Scanners self-register via Register, typically from an init function
// in their own package, and are executed by the Orchestrator in priority
// order. A scanner may read results of scanners that ran before it
// through ScanContext.Previous.
type Scanner interface {
	// ID returns the unique, stable identifier for this scanner
	// (kebab-case, e.g. "maven-dependencies"). Used as the result
	// accumulation key and in configuration enable lists.
	ID() string

	// DisplayName returns the human-readable name used in CLI output
	// and logs.
	DisplayName() string

	// Priority orders execution; lower runs earlier. Dependency
	// scanners use 1-50 so framework scanners (50-100) can condition
	// on their results. Ties are broken by registration order.
	Priority() int

	// AppliesTo reports whether this scanner should run for the given
	// context. Must be cheap and side-effect free; the orchestrator
	// calls it before committing to a full scan.
	AppliesTo(ctx *ScanContext) bool

	// Scan performs the extraction. Recoverable conditions (no matching
	// files) must yield an empty result, not an error; a failed result
	// (Success=false, Errors populated) is reserved for conditions that
	// make the scanner's whole output untrustworthy. A single bad file
	// within a multi-file scan is recorded in statistics and never
	// fails the scanner.
	Scan(ctx *ScanContext) *ScanResult
}
