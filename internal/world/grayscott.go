package world

import "math"

// grayScottStencil is the 9-point isotropic Laplacian: center -1, adjacent
// 0.2, diagonal 0.05. Weights sum to zero.
var grayScottStencil = [9]struct {
	dx, dy int
	weight float64
}{
	{-1, -1, 0.05}, {0, -1, 0.2}, {1, -1, 0.05},
	{-1, 0, 0.2}, {0, 0, -1.0}, {1, 0, 0.2},
	{-1, 1, 0.05}, {0, 1, 0.2}, {1, 1, 0.05},
}

// GrayScott is a two-chemical reaction-diffusion model on a toroidal grid.
// Defaults are the "coral" preset.
type GrayScott struct {
	width  int
	height int

	u     []float64
	v     []float64
	nextU []float64
	nextV []float64

	f  float64
	k  float64
	da float64
	db float64
	dt float64
}

func NewGrayScott(width, height int) *GrayScott {
	if width <= 0 {
		width = 128
	}
	if height <= 0 {
		height = 128
	}
	size := width * height
	g := &GrayScott{
		width:  width,
		height: height,
		u:      make([]float64, size),
		v:      make([]float64, size),
		nextU:  make([]float64, size),
		nextV:  make([]float64, size),
		f:      0.055,
		k:      0.062,
		da:     1.0,
		db:     0.5,
		dt:     1.0,
	}
	for i := range g.u {
		g.u[i] = 1.0
	}
	g.seedCenter()
	return g
}

// seedCenter injects a square of V into the U-saturated field so the
// reaction has something to grow from.
func (g *GrayScott) seedCenter() {
	cx, cy := g.width/2, g.height/2
	const r = 10
	for y := cy - r; y < cy+r; y++ {
		for x := cx - r; x < cx+r; x++ {
			g.v[g.idx(x, y)] = 1.0
		}
	}
}

func (g *GrayScott) idx(x, y int) int {
	x = ((x % g.width) + g.width) % g.width
	y = ((y % g.height) + g.height) % g.height
	return y*g.width + x
}

func (g *GrayScott) Name() string {
	return "gray-scott"
}

func (g *GrayScott) Step() {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			i := y*g.width + x
			u := g.u[i]
			v := g.v[i]

			lapU, lapV := 0.0, 0.0
			for _, s := range grayScottStencil {
				ni := g.idx(x+s.dx, y+s.dy)
				lapU += g.u[ni] * s.weight
				lapV += g.v[ni] * s.weight
			}

			uvv := u * v * v
			du := (g.da*lapU - uvv + g.f*(1.0-u)) * g.dt
			dv := (g.db*lapV + uvv - (g.f+g.k)*v) * g.dt

			g.nextU[i] = clampUnit(u + du)
			g.nextV[i] = clampUnit(v + dv)
		}
	}
	g.u, g.nextU = g.nextU, g.u
	g.v, g.nextV = g.nextV, g.v
}

func (g *GrayScott) State() StateSnapshot {
	values := make([]float64, len(g.v))
	copy(values, g.v)
	return StateSnapshot{
		Kind:   SnapFloatGrid,
		Width:  g.width,
		Height: g.height,
		Values: values,
	}
}

func (g *GrayScott) SetParam(key string, value ParamValue) {
	v, ok := value.AsFloat()
	if !ok {
		return
	}
	switch key {
	case "f":
		g.f = v
	case "k":
		g.k = v
	}
}

// Observe exposes the total V mass plus the live feed/kill rates, so an
// agent can correlate its parameter pokes with the field's response.
func (g *GrayScott) Observe() Observation {
	totalV := 0.0
	for _, v := range g.v {
		totalV += v
	}
	return VecObservation(totalV, g.f, g.k)
}

func (g *GrayScott) ApplyAction(action Action) {
	switch action.Kind {
	case ActPerturb:
		if action.Axis == 0 {
			g.injectDisc(action.Delta)
		}
	case ActSetParam:
		g.SetParam(action.Name, action.Value)
	}
}

// injectDisc adds V in a small disc whose position derives from the delta,
// keeping interventions reproducible without a position channel.
func (g *GrayScott) injectDisc(delta float64) {
	if math.IsNaN(delta) || math.IsInf(delta, 0) {
		return
	}
	cx := int(float64(g.width) * math.Mod(math.Abs(delta), 1.0))
	cy := int(float64(g.height) * math.Mod(math.Abs(delta*10.0), 1.0))
	const r = 4
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy < r*r {
				i := y*g.width + x
				g.v[i] = math.Min(g.v[i]+0.5, 1.0)
			}
		}
	}
}

// Reward peaks when V covers roughly a fifth of the field: extinction and
// saturation both score near zero, sustained patterns score high.
func (g *GrayScott) Reward() float64 {
	totalV := 0.0
	for _, v := range g.v {
		totalV += v
	}
	coverage := totalV / float64(g.width*g.height)
	return math.Exp(-((coverage-0.2)*(coverage-0.2))*100.0) * 10.0
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
