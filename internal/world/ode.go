package world

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// maxTailPoints bounds the trajectory history kept for rendering.
const maxTailPoints = 800

type ODESystem string

const (
	Lorenz  ODESystem = "lorenz"
	Rossler ODESystem = "rossler"
)

type odeParams struct {
	// Lorenz
	sigma float64
	rho   float64
	beta  float64
	// Rossler
	a float64
	b float64
	c float64
}

func defaultODEParams() odeParams {
	return odeParams{
		sigma: 10.0,
		rho:   28.0,
		beta:  8.0 / 3.0,
		a:     0.2,
		b:     0.2,
		c:     5.7,
	}
}

// ODE integrates a three-dimensional chaotic attractor with a fixed-step
// RK4 scheme.
type ODE struct {
	system ODESystem
	params odeParams
	state  [3]float64
	dt     float64
	tail   []Point3
}

func NewODE(system ODESystem) *ODE {
	o := &ODE{
		system: system,
		params: defaultODEParams(),
		dt:     0.01,
		tail:   make([]Point3, 0, maxTailPoints),
	}
	if o.system != Rossler {
		o.system = Lorenz
	}
	o.reset()
	return o
}

func (o *ODE) Name() string {
	return string(o.system)
}

func (o *ODE) Step() {
	next := rk4Step(o.state, o.dt, o.deriv)
	if !finiteVec(next) {
		// A diverged trajectory carries no further information; restart it.
		o.reset()
		return
	}
	o.state = next
	o.tail = append(o.tail, Point3{X: next[0], Y: next[1], Z: next[2]})
	if len(o.tail) > maxTailPoints {
		o.tail = o.tail[len(o.tail)-maxTailPoints:]
	}
}

func (o *ODE) State() StateSnapshot {
	points := make([]Point3, len(o.tail))
	copy(points, o.tail)
	return StateSnapshot{Kind: SnapPoints, Points: points}
}

func (o *ODE) SetParam(key string, value ParamValue) {
	if v, ok := value.AsFloat(); ok {
		switch key {
		case "sigma":
			o.params.sigma = v
		case "rho":
			o.params.rho = v
		case "beta":
			o.params.beta = v
		case "a":
			o.params.a = v
		case "b":
			o.params.b = v
		case "c":
			o.params.c = v
		}
		return
	}
	switch key {
	case "system":
		if name, ok := value.AsString(); ok {
			switch ODESystem(name) {
			case Lorenz, Rossler:
				o.system = ODESystem(name)
				o.reset()
			}
		}
	case "reset":
		if v, ok := value.AsBool(); ok && v {
			o.reset()
		}
	}
}

func (o *ODE) Observe() Observation {
	return VecObservation(o.state[0], o.state[1], o.state[2])
}

func (o *ODE) ApplyAction(action Action) {
	switch action.Kind {
	case ActPerturb:
		if action.Axis < 0 || action.Axis > 2 {
			return
		}
		if !math.IsNaN(action.Delta) && !math.IsInf(action.Delta, 0) {
			o.state[action.Axis] += action.Delta
		}
	case ActSetParam:
		o.SetParam(action.Name, action.Value)
	}
}

// Reward favors trajectories that stay on attractor scales: 1 near the
// origin, falling toward 0 as the state wanders off.
func (o *ODE) Reward() float64 {
	if !finiteVec(o.state) {
		return 0
	}
	norm := floats.Norm(o.state[:], 2)
	return math.Exp(-(norm * norm) / 2500.0)
}

func (o *ODE) reset() {
	o.state = [3]float64{1.0, 1.0, 1.0}
	o.tail = o.tail[:0]
}

func (o *ODE) deriv(s [3]float64) [3]float64 {
	p := o.params
	switch o.system {
	case Rossler:
		return [3]float64{
			-s[1] - s[2],
			s[0] + p.a*s[1],
			p.b + s[2]*(s[0]-p.c),
		}
	default:
		return [3]float64{
			p.sigma * (s[1] - s[0]),
			s[0]*(p.rho-s[2]) - s[1],
			s[0]*s[1] - p.beta*s[2],
		}
	}
}

func rk4Step(state [3]float64, dt float64, deriv func([3]float64) [3]float64) [3]float64 {
	k1 := deriv(state)
	k2 := deriv(shifted(state, k1, dt*0.5))
	k3 := deriv(shifted(state, k2, dt*0.5))
	k4 := deriv(shifted(state, k3, dt))

	sum := make([]float64, 3)
	floats.AddScaled(sum, 1, k1[:])
	floats.AddScaled(sum, 2, k2[:])
	floats.AddScaled(sum, 2, k3[:])
	floats.AddScaled(sum, 1, k4[:])

	next := state
	floats.AddScaled(next[:], dt/6.0, sum)
	return next
}

func shifted(state, k [3]float64, h float64) [3]float64 {
	out := state
	floats.AddScaled(out[:], h, k[:])
	return out
}

func finiteVec(v [3]float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
