package main

import (
	"sync"

	"github.com/charmbracelet/harmonica"
	"github.com/taigrr/trimap/pkg/render"
)

// control is one directional input.
type control int

const (
	turnLeft control = iota
	turnRight
	lookUp
	lookDown
	advance
	numControls
)

// Latch tuning: a spring at this angular frequency drops a pressed key
// below the hold threshold after roughly 0.4s without a repeat.
const (
	latchFrequency = 4.0
	latchDamping   = 1.0
	holdThreshold  = 0.5
)

// keyLatch keeps a key held between terminal auto-repeats. Many terminals
// never report releases, so the level decays toward zero on its own.
type keyLatch struct {
	level  float64
	vel    float64
	spring harmonica.Spring
}

func newKeyLatch(fps int) keyLatch {
	return keyLatch{spring: harmonica.NewSpring(harmonica.FPS(fps), latchFrequency, latchDamping)}
}

func (k *keyLatch) press() {
	k.level, k.vel = 1, 0
}

func (k *keyLatch) release() {
	k.level, k.vel = 0, 0
}

func (k *keyLatch) held() bool {
	return k.level > holdThreshold
}

func (k *keyLatch) step() {
	k.level, k.vel = k.spring.Update(k.level, k.vel, 0)
}

// inputState is written by the event goroutine and read once per frame.
type inputState struct {
	mu   sync.Mutex
	keys [numControls]keyLatch
}

func newInputState(fps int) *inputState {
	s := &inputState{}
	for i := range s.keys {
		s.keys[i] = newKeyLatch(fps)
	}
	return s
}

func (s *inputState) press(c control) {
	s.mu.Lock()
	s.keys[c].press()
	s.mu.Unlock()
}

func (s *inputState) release(c control) {
	s.mu.Lock()
	s.keys[c].release()
	s.mu.Unlock()
}

func (s *inputState) reset() {
	s.mu.Lock()
	for i := range s.keys {
		s.keys[i].release()
	}
	s.mu.Unlock()
}

// snapshot returns the frame's input and then decays every latch by one
// frame.
func (s *inputState) snapshot() render.Input {
	s.mu.Lock()
	defer s.mu.Unlock()
	in := render.Input{
		TurnLeft:  s.keys[turnLeft].held(),
		TurnRight: s.keys[turnRight].held(),
		LookUp:    s.keys[lookUp].held(),
		LookDown:  s.keys[lookDown].held(),
		Advance:   s.keys[advance].held(),
	}
	for i := range s.keys {
		s.keys[i].step()
	}
	return in
}

// keyControls maps key names to controls.
var keyControls = []struct {
	keys []string
	c    control
}{
	{[]string{"left"}, turnLeft},
	{[]string{"right"}, turnRight},
	{[]string{"up"}, lookUp},
	{[]string{"down"}, lookDown},
	{[]string{"w", "space"}, advance},
}

// controlFor reports which control a key event drives.
func controlFor(match func(...string) bool) (control, bool) {
	for _, kc := range keyControls {
		if match(kc.keys...) {
			return kc.c, true
		}
	}
	return 0, false
}
