package models

// StatSnapshot is the raw career-stat mapping for one player in one stat
// group, exactly as returned by the upstream API. The upstream guarantees no
// fixed schema: rate stats usually arrive as strings (".250", "3.12"), counts
// as numbers, and any field may be missing. Consumers must apply defaults.
type StatSnapshot map[string]interface{}

// Stat group identifiers accepted by the career-stats endpoint
const (
	GroupPitching = "pitching"
	GroupHitting  = "hitting"
)
