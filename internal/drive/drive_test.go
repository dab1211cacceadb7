package drive

import "testing"

func TestNoneIsZero(t *testing.T) {
	d := NewNone()
	for _, tm := range []float64{0, 1, 100} {
		if d.Level(tm) != 0 {
			t.Errorf("none driver produced %f at t=%f", d.Level(tm), tm)
		}
	}
}

func TestBreathingStaysInRange(t *testing.T) {
	d := NewBreathing(1.0, 4.0)
	for i := 0; i < 400; i++ {
		tm := float64(i) * 0.05
		level := d.Level(tm)
		if level < 0 || level > 1 {
			t.Fatalf("breathing level %f out of range at t=%f", level, tm)
		}
	}
}

func TestBreathingPeaksAndTroughs(t *testing.T) {
	d := NewBreathing(1.0, 4.0)

	// Quarter period: sin at its maximum.
	if peak := d.Level(1.0); peak < 0.99 {
		t.Errorf("expected peak near 1.0, got %f", peak)
	}
	// Three quarters: sin at its minimum.
	if trough := d.Level(3.0); trough > 0.01 {
		t.Errorf("expected trough near 0, got %f", trough)
	}
}

func TestBreathingDefaultsPeriod(t *testing.T) {
	d := NewBreathing(0.5, 0)
	if d.Period <= 0 {
		t.Errorf("expected positive fallback period, got %f", d.Period)
	}
}

func TestSpasmDeterministicPerSeed(t *testing.T) {
	a := NewSpasm(42, 0.3, 1.0)
	b := NewSpasm(42, 0.3, 1.0)

	for i := 0; i < 100; i++ {
		if a.Level(0) != b.Level(0) {
			t.Fatalf("same seed diverged at step %d", i)
		}
	}
}

func TestSpasmBurstLevels(t *testing.T) {
	d := NewSpasm(1, 0.5, 0.8)

	fired := false
	for i := 0; i < 200; i++ {
		level := d.Level(0)
		if level != 0 && level != 0.8 {
			t.Fatalf("spasm level must be 0 or burst, got %f", level)
		}
		if level == 0.8 {
			fired = true
		}
	}
	if !fired {
		t.Error("spasm with p=0.5 never fired in 200 ticks")
	}
}
