package world

import (
	"sort"
	"strings"

	"golang.org/x/exp/maps"
)

const (
	defaultLifeWidth  = 64
	defaultLifeHeight = 64
)

// patternLibrary holds seedable cell layouts as (row, col) offsets from a
// pattern's center.
var patternLibrary = map[string][][2]int{
	"r-pentomino": {{-1, 0}, {-1, 1}, {0, -1}, {0, 0}, {1, 0}},
	"glider":      {{-1, 0}, {0, 1}, {1, -1}, {1, 0}, {1, 1}},
	"blinker":     {{0, -1}, {0, 0}, {0, 1}},
	"block":       {{0, 0}, {0, 1}, {1, 0}, {1, 1}},
}

// Life is a dense toroidal Conway grid. It starts from a centered
// r-pentomino, the classic long-lived methuselah.
type Life struct {
	width      int
	height     int
	cells      []bool
	scratch    []bool
	generation uint64
}

func NewLife(width, height int) *Life {
	if width <= 0 {
		width = defaultLifeWidth
	}
	if height <= 0 {
		height = defaultLifeHeight
	}
	l := &Life{
		width:   width,
		height:  height,
		cells:   make([]bool, width*height),
		scratch: make([]bool, width*height),
	}
	l.injectPattern("r-pentomino")
	return l
}

func (l *Life) Name() string {
	return "life"
}

func (l *Life) Step() {
	for r := 0; r < l.height; r++ {
		for c := 0; c < l.width; c++ {
			i := r*l.width + c
			n := l.livingNeighbors(r, c)
			l.scratch[i] = n == 3 || (l.cells[i] && n == 2)
		}
	}
	l.cells, l.scratch = l.scratch, l.cells
	l.generation++
}

func (l *Life) livingNeighbors(row, col int) int {
	count := 0
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			r := (row + dr + l.height) % l.height
			c := (col + dc + l.width) % l.width
			if l.cells[r*l.width+c] {
				count++
			}
		}
	}
	return count
}

func (l *Life) State() StateSnapshot {
	cells := make([]bool, len(l.cells))
	copy(cells, l.cells)
	return StateSnapshot{
		Kind:   SnapGrid,
		Width:  l.width,
		Height: l.height,
		Cells:  cells,
	}
}

func (l *Life) SetParam(key string, value ParamValue) {
	switch key {
	case "inject_pattern":
		if name, ok := value.AsString(); ok {
			l.injectPattern(name)
		}
	case "clear":
		if v, ok := value.AsBool(); ok && v {
			for i := range l.cells {
				l.cells[i] = false
			}
		}
	}
}

func (l *Life) injectPattern(name string) {
	offsets, ok := patternLibrary[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return
	}
	cr, cc := l.height/2, l.width/2
	for _, off := range offsets {
		r := (cr + off[0] + l.height) % l.height
		c := (cc + off[1] + l.width) % l.width
		l.cells[r*l.width+c] = true
	}
}

func (l *Life) Observe() Observation {
	return GridObservation(l.aliveCount(), l.width, l.height)
}

func (l *Life) ApplyAction(action Action) {
	switch action.Kind {
	case ActFlipCell:
		r := ((action.Row % l.height) + l.height) % l.height
		c := ((action.Col % l.width) + l.width) % l.width
		// Births only; killing cells is not an intervention this world offers.
		l.cells[r*l.width+c] = true
	case ActSetParam:
		l.SetParam(action.Name, action.Value)
	}
}

// Reward rises with survival: one point per generation stepped.
func (l *Life) Reward() float64 {
	return float64(l.generation)
}

func (l *Life) aliveCount() int {
	count := 0
	for _, alive := range l.cells {
		if alive {
			count++
		}
	}
	return count
}

// PatternNames lists the seedable patterns accepted by inject_pattern.
func PatternNames() []string {
	names := maps.Keys(patternLibrary)
	sort.Strings(names)
	return names
}
