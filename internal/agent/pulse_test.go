package agent

import "testing"

func TestPulseFlipsGridCenterOnSchedule(t *testing.T) {
	p := PulseExperimenter{}
	action, _ := p.Act(GridObservation(64, 48), 0, 60)
	if action.Kind != ActFlipCell {
		t.Fatalf("expected flip at step 60, got %s", action.Kind)
	}
	if action.Row != 24 || action.Col != 32 {
		t.Fatalf("expected center flip (24,32), got (%d,%d)", action.Row, action.Col)
	}
	if action, _ := p.Act(GridObservation(64, 48), 0, 61); action.Kind != ActNoop {
		t.Fatalf("expected noop off schedule, got %s", action.Kind)
	}
}

func TestPulseKicksVectorAxisOnSchedule(t *testing.T) {
	p := PulseExperimenter{}
	action, _ := p.Act(VecObservation(0, 0, 0), 0, 30)
	if action.Kind != ActPerturb || action.Axis != 0 || action.Delta != 2.0 {
		t.Fatalf("expected +2.0 kick on axis 0 at step 30, got %+v", action)
	}
	if action, _ := p.Act(VecObservation(0, 0, 0), 0, 31); action.Kind != ActNoop {
		t.Fatalf("expected noop off schedule, got %s", action.Kind)
	}
}

func TestPulseReportsOnItsOwnCadence(t *testing.T) {
	p := PulseExperimenter{}
	if _, d := p.Act(VecObservation(0, 0, 0), 0, 0); d != nil {
		t.Fatalf("step zero should stay quiet, got %+v", d)
	}
	if _, d := p.Act(VecObservation(0, 0, 0), 0, 60); d != nil {
		t.Fatalf("step 60 should stay quiet, got %+v", d)
	}
	_, d := p.Act(VecObservation(0, 0, 0), 0, 120)
	if d == nil || d.Kind != DiscoveryText {
		t.Fatalf("expected text report at step 120, got %+v", d)
	}
	if d.Text != "Scientist: Tick 120 shows interesting stability." {
		t.Fatalf("unexpected report: %s", d.Text)
	}
}

func TestPulseIgnoresUnknownObservations(t *testing.T) {
	p := PulseExperimenter{}
	action, _ := p.Act(NoObservation(), 0, 60)
	if action.Kind != ActNoop {
		t.Fatalf("expected noop on empty observation, got %s", action.Kind)
	}
}
