package domain

import "testing"

func TestCustomBreath_Build(t *testing.T) {
	tests := []struct {
		name   string
		input  CustomBreath
		phases int
		first  PhaseType
	}{
		{"all four", CustomBreath{Inhale: 4, Hold: 2, Exhale: 6, EmptyHold: 2}, 4, PhaseInhale},
		{"skips zero hold", CustomBreath{Inhale: 4, Exhale: 4}, 2, PhaseInhale},
		{"exhale only", CustomBreath{Exhale: 5}, 1, PhaseExhale},
		{"all zero falls back", CustomBreath{}, 2, PhaseInhale},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.input.Build()
			if len(s.Phases) != tt.phases {
				t.Fatalf("Build() phases = %d, want %d", len(s.Phases), tt.phases)
			}
			if s.Phases[0].Type != tt.first {
				t.Errorf("first phase = %v, want %v", s.Phases[0].Type, tt.first)
			}
		})
	}

	fallback := CustomBreath{}.Build()
	if fallback.Phases[0].Seconds != 4 || fallback.Phases[1].Seconds != 4 {
		t.Errorf("fallback phases = %+v, want 4s inhale / 4s exhale", fallback.Phases)
	}
	if fallback.TotalMinutes <= 0 {
		t.Error("fallback TotalMinutes should be positive")
	}
}

func TestBreathPhase_Level(t *testing.T) {
	tests := []struct {
		phase BreathPhase
		tick  int
		want  float64
	}{
		{BreathPhase{Type: PhaseInhale, Seconds: 4}, 0, 0},
		{BreathPhase{Type: PhaseInhale, Seconds: 4}, 2, 50},
		{BreathPhase{Type: PhaseInhale, Seconds: 4}, 4, 100},
		{BreathPhase{Type: PhaseExhale, Seconds: 4}, 0, 100},
		{BreathPhase{Type: PhaseExhale, Seconds: 4}, 4, 0},
		{BreathPhase{Type: PhaseHold, Seconds: 4}, 1, 100},
		{BreathPhase{Type: PhaseHold, Seconds: 4, EmptyHold: true}, 1, 0},
	}
	for _, tt := range tests {
		if got := tt.phase.Level(tt.tick); got != tt.want {
			t.Errorf("%s Level(%d) = %v, want %v", tt.phase.Label(), tt.tick, got, tt.want)
		}
	}
}

func TestBreathCatalog(t *testing.T) {
	box, err := LookupBreath(PatternBox, CustomBreath{})
	if err != nil {
		t.Fatalf("LookupBreath(box) error = %v", err)
	}
	if box.CycleSeconds() != 16 {
		t.Errorf("box cycle = %d, want 16", box.CycleSeconds())
	}
	if !box.Phases[3].EmptyHold {
		t.Error("box last phase should be an empty hold")
	}

	if _, err := LookupBreath("square", CustomBreath{}); err == nil {
		t.Error("LookupBreath(square) should fail")
	}

	custom, err := LookupBreath(PatternCustom, CustomBreath{Inhale: 3})
	if err != nil || len(custom.Phases) != 1 {
		t.Errorf("LookupBreath(custom) = %+v, %v", custom, err)
	}
}
