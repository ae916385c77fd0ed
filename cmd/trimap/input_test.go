package main

import (
	"testing"

	"github.com/taigrr/trimap/pkg/render"
)

func TestKeyLatchDecays(t *testing.T) {
	k := newKeyLatch(60)
	if k.held() {
		t.Fatal("new latch should not be held")
	}

	k.press()
	k.step()
	if !k.held() {
		t.Error("latch should stay held right after a press")
	}

	// Two seconds without a repeat.
	for range 120 {
		k.step()
	}
	if k.held() {
		t.Errorf("latch still held at level %v", k.level)
	}
}

func TestKeyLatchRelease(t *testing.T) {
	k := newKeyLatch(60)
	k.press()
	k.release()
	if k.held() {
		t.Error("release should drop the latch at once")
	}
}

func TestInputSnapshot(t *testing.T) {
	s := newInputState(30)
	s.press(turnLeft)
	s.press(advance)

	got := s.snapshot()
	want := render.Input{TurnLeft: true, Advance: true}
	if got != want {
		t.Errorf("snapshot = %+v, want %+v", got, want)
	}

	s.release(turnLeft)
	if got := s.snapshot(); got.TurnLeft || !got.Advance {
		t.Errorf("after release snapshot = %+v", got)
	}

	s.reset()
	if got := s.snapshot(); got != (render.Input{}) {
		t.Errorf("after reset snapshot = %+v", got)
	}
}

func TestControlFor(t *testing.T) {
	tests := []struct {
		key  string
		want control
		ok   bool
	}{
		{"left", turnLeft, true},
		{"right", turnRight, true},
		{"up", lookUp, true},
		{"down", lookDown, true},
		{"w", advance, true},
		{"space", advance, true},
		{"q", 0, false},
	}
	for _, tt := range tests {
		match := func(keys ...string) bool {
			for _, k := range keys {
				if k == tt.key {
					return true
				}
			}
			return false
		}
		c, ok := controlFor(match)
		if ok != tt.ok || c != tt.want {
			t.Errorf("controlFor(%q) = %v, %v; want %v, %v", tt.key, c, ok, tt.want, tt.ok)
		}
	}
}
