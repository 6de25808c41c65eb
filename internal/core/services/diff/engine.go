// Package diff turns successive snapshots of a league's entities into
// display-ready notification lines. Each entity type has an explicit
// typed comparison; there is no generic structural diff.
package diff

// DefaultThreshold is the noise floor: the minimum numeric delta a score
// must move before the change is considered notification-worthy.
const DefaultThreshold = 2.0

type Engine struct {
	threshold float64
}

func New(threshold float64) *Engine {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Engine{threshold: threshold}
}
