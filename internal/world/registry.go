package world

import (
	"fmt"
	"strings"
)

// CatalogEntry describes one buildable world kind.
type CatalogEntry struct {
	Kind    string
	Summary string
}

func Catalog() []CatalogEntry {
	return []CatalogEntry{
		{Kind: "life", Summary: "Conway's Game of Life on a toroidal grid, seeded with an r-pentomino"},
		{Kind: "lorenz", Summary: "Lorenz attractor integrated with fixed-step RK4"},
		{Kind: "rossler", Summary: "Rossler attractor integrated with fixed-step RK4"},
		{Kind: "gray-scott", Summary: "Gray-Scott reaction-diffusion field (coral preset)"},
	}
}

// New builds a world by kind. The empty kind defaults to life.
func New(kind string) (World, error) {
	switch strings.TrimSpace(strings.ToLower(kind)) {
	case "", "life":
		return NewLife(0, 0), nil
	case "lorenz":
		return NewODE(Lorenz), nil
	case "rossler":
		return NewODE(Rossler), nil
	case "gray-scott", "grayscott":
		return NewGrayScott(0, 0), nil
	default:
		return nil, fmt.Errorf("unsupported world: %s", kind)
	}
}
