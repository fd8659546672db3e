package agent

import (
	"fmt"
	"math/rand"
	"strings"
)

// Config carries the cross-agent construction knobs. Seed feeds any
// stochastic policy; deterministic agents ignore it.
type Config struct {
	Seed int64
}

// CatalogEntry describes one buildable experimenter kind.
type CatalogEntry struct {
	Kind    string
	Summary string
}

func Catalog() []CatalogEntry {
	return []CatalogEntry{
		{Kind: "noop", Summary: "never intervenes, never reports; the control arm"},
		{Kind: "pulse", Summary: "pokes the world on a fixed schedule and reports periodically"},
		{Kind: "curious", Summary: "tabular Q-learner rewarded by its own prediction errors"},
	}
}

// New builds an experimenter by kind. The empty kind defaults to noop.
func New(kind string, cfg Config) (Experimenter, error) {
	switch strings.TrimSpace(strings.ToLower(kind)) {
	case "", "noop":
		return NoopExperimenter{}, nil
	case "pulse":
		return PulseExperimenter{}, nil
	case "curious":
		return NewCurious(CuriousConfig{Rand: rand.New(rand.NewSource(cfg.Seed))}), nil
	default:
		return nil, fmt.Errorf("unsupported experimenter: %s", kind)
	}
}
