// Package world defines the boundary between evolving dynamical models and
// the rest of the system: stepping, rendering snapshots, parameter updates,
// and the optional observe/act surface agents experiment through.
package world

// World is a stepwise dynamical model.
type World interface {
	Name() string
	Step()
	State() StateSnapshot
	SetParam(key string, value ParamValue)
}

// Experimentable optionally exposes the observation/action surface used by
// experimenting agents. Worlds without it are stepped blind.
type Experimentable interface {
	World
	Observe() Observation
	ApplyAction(action Action)
	Reward() float64
}

type ObservationKind string

const (
	ObsNone        ObservationKind = "none"
	ObsGridSummary ObservationKind = "grid_summary"
	ObsStateVec    ObservationKind = "state_vec"
	ObsText        ObservationKind = "text"
)

// Observation is a kind-tagged snapshot of what a world exposes to agents.
// Only the field matching Kind is meaningful.
type Observation struct {
	Kind ObservationKind
	Grid GridSummary
	Vec  [3]float64
	Text string
}

type GridSummary struct {
	Alive  int
	Width  int
	Height int
}

func NoObservation() Observation {
	return Observation{Kind: ObsNone}
}

func GridObservation(alive, width, height int) Observation {
	return Observation{Kind: ObsGridSummary, Grid: GridSummary{Alive: alive, Width: width, Height: height}}
}

func VecObservation(x, y, z float64) Observation {
	return Observation{Kind: ObsStateVec, Vec: [3]float64{x, y, z}}
}

func TextObservation(text string) Observation {
	return Observation{Kind: ObsText, Text: text}
}

type ActionKind string

const (
	ActNoop     ActionKind = "noop"
	ActFlipCell ActionKind = "flip_cell"
	ActPerturb  ActionKind = "perturb"
	ActSetParam ActionKind = "set_param"
)

// Action is a kind-tagged intervention on a world. Worlds ignore kinds they
// cannot express rather than failing.
type Action struct {
	Kind  ActionKind
	Row   int
	Col   int
	Axis  int
	Delta float64
	Name  string
	Value ParamValue
}

func Noop() Action {
	return Action{Kind: ActNoop}
}

func FlipCell(row, col int) Action {
	return Action{Kind: ActFlipCell, Row: row, Col: col}
}

func Perturb(axis int, delta float64) Action {
	return Action{Kind: ActPerturb, Axis: axis, Delta: delta}
}

func SetParam(name string, value ParamValue) Action {
	return Action{Kind: ActSetParam, Name: name, Value: value}
}

type ParamKind string

const (
	ParamBool   ParamKind = "bool"
	ParamInt    ParamKind = "int"
	ParamFloat  ParamKind = "float"
	ParamString ParamKind = "string"
)

// ParamValue is a tagged scalar for best-effort parameter updates.
type ParamValue struct {
	Kind  ParamKind
	Bool  bool
	Int   int64
	Float float64
	Str   string
}

func BoolParam(v bool) ParamValue {
	return ParamValue{Kind: ParamBool, Bool: v}
}

func IntParam(v int64) ParamValue {
	return ParamValue{Kind: ParamInt, Int: v}
}

func FloatParam(v float64) ParamValue {
	return ParamValue{Kind: ParamFloat, Float: v}
}

func StringParam(v string) ParamValue {
	return ParamValue{Kind: ParamString, Str: v}
}

// AsFloat reads the value as a float, coercing ints.
func (p ParamValue) AsFloat() (float64, bool) {
	switch p.Kind {
	case ParamFloat:
		return p.Float, true
	case ParamInt:
		return float64(p.Int), true
	default:
		return 0, false
	}
}

func (p ParamValue) AsString() (string, bool) {
	if p.Kind != ParamString {
		return "", false
	}
	return p.Str, true
}

func (p ParamValue) AsBool() (bool, bool) {
	if p.Kind != ParamBool {
		return false, false
	}
	return p.Bool, true
}

type SnapshotKind string

const (
	SnapGrid      SnapshotKind = "grid"
	SnapPoints    SnapshotKind = "points"
	SnapFloatGrid SnapshotKind = "float_grid"
)

// StateSnapshot is a render-oriented copy of world state. Cells and Values
// are owned by the caller once returned.
type StateSnapshot struct {
	Kind    SnapshotKind
	OffsetX int64
	OffsetY int64
	Width   int
	Height  int
	Cells   []bool
	Values  []float64
	Points  []Point3
}

type Point3 struct {
	X float64
	Y float64
	Z float64
}
