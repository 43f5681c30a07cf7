package main

import (
	"errors"
	"testing"

	"github.com/decker502/inktrail/pkg/trail"
)

type countingSurface struct {
	segments, dots int
}

func (s *countingSurface) Resize(w, h int) error       { return nil }
func (s *countingSurface) Clear()                      { s.segments, s.dots = 0, 0 }
func (s *countingSurface) StrokeSegment(trail.Segment) { s.segments++ }
func (s *countingSurface) FillDot(trail.Dot)           { s.dots++ }

type zeroRand struct{}

func (zeroRand) Float64() float64 { return 0 }

func TestParseScript(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    int
		wantErr bool
	}{
		{"valid", "samples:\n  - {x: 1, y: 2, t: 0}\n  - {x: 3, y: 4, t: 10}\n", 2, false},
		{"same time", "samples:\n  - {x: 1, y: 2, t: 5}\n  - {x: 3, y: 4, t: 5}\n", 2, false},
		{"empty", "samples: []\n", 0, true},
		{"backwards", "samples:\n  - {x: 1, y: 2, t: 10}\n  - {x: 3, y: 4, t: 5}\n", 0, true},
		{"negative", "samples:\n  - {x: 1, y: 2, t: -1}\n", 0, true},
		{"bad yaml", "samples: [", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := parseScript([]byte(tt.data))
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseScript() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && len(s.Samples) != tt.want {
				t.Errorf("samples = %d, want %d", len(s.Samples), tt.want)
			}
		})
	}
}

func TestParseTimes(t *testing.T) {
	got, err := parseTimes(" 900, 300 ,600,")
	if err != nil {
		t.Fatalf("parseTimes() error: %v", err)
	}
	want := []int{300, 600, 900}
	if len(got) != len(want) {
		t.Fatalf("parseTimes() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("parseTimes()[%d] = %d, want %d", i, got[i], want[i])
		}
	}

	for _, bad := range []string{"", "abc", "-5", " , "} {
		if _, err := parseTimes(bad); err == nil {
			t.Errorf("parseTimes(%q) should fail", bad)
		}
	}
}

func TestRunReplay(t *testing.T) {
	script := &Script{Samples: []Sample{
		{X: 10, Y: 10, T: 0},
		{X: 20, Y: 20, T: 100},
		{X: 30, Y: 30, T: 200},
	}}
	surface := &countingSurface{}

	var got []trail.FrameStats
	err := runReplay(script, []int{150, 250, 1150, 1300}, replayConfig{
		Options: trail.DefaultOptions(),
		Surface: surface,
		Rand:    zeroRand{},
		Width:   100,
		Height:  100,
	}, func(ms int, stats trail.FrameStats) error {
		if stats.Segments != surface.segments || stats.Dots != surface.dots {
			t.Errorf("%dms: stats %+v disagree with surface (%d segments, %d dots)",
				ms, stats, surface.segments, surface.dots)
		}
		got = append(got, stats)
		return nil
	})
	if err != nil {
		t.Fatalf("runReplay() error: %v", err)
	}

	want := []trail.FrameStats{
		{Live: 2, Segments: 1, Dots: 1},
		{Live: 3, Segments: 2, Dots: 1},
		{Purged: 2, Live: 1},
		{Purged: 1, Live: 0},
	}
	if len(got) != len(want) {
		t.Fatalf("frames = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("frame %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestRunReplayStopsOnError(t *testing.T) {
	script := &Script{Samples: []Sample{{X: 1, Y: 1, T: 0}}}
	errStop := errors.New("stop")
	calls := 0
	err := runReplay(script, []int{10, 20}, replayConfig{
		Options: trail.DefaultOptions(),
		Surface: &countingSurface{},
		Width:   10,
		Height:  10,
	}, func(int, trail.FrameStats) error {
		calls++
		return errStop
	})
	if !errors.Is(err, errStop) {
		t.Errorf("runReplay() error = %v, want %v", err, errStop)
	}
	if calls != 1 {
		t.Errorf("onFrame calls = %d, want 1", calls)
	}
}

func TestRunReplayWithoutSurface(t *testing.T) {
	script := &Script{Samples: []Sample{{X: 1, Y: 1, T: 0}}}
	err := runReplay(script, []int{10}, replayConfig{Options: trail.DefaultOptions()},
		func(int, trail.FrameStats) error { return nil })
	if err == nil {
		t.Error("runReplay() without a surface should fail")
	}
}
