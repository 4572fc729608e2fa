package slider

import "time"

type scrollCall struct {
	offset   float64
	animated bool
}

// fakeSurface jumps straight to every scroll target.
type fakeSurface struct {
	offset  float64
	width   float64
	scrolls []scrollCall

	nextSub  int
	onScroll map[int]func()
	onResize map[int]func()
}

func newFakeSurface(width float64) *fakeSurface {
	return &fakeSurface{
		width:    width,
		onScroll: make(map[int]func()),
		onResize: make(map[int]func()),
	}
}

func (s *fakeSurface) Offset() float64        { return s.offset }
func (s *fakeSurface) ViewportWidth() float64 { return s.width }

func (s *fakeSurface) ScrollTo(offset float64, animated bool) {
	s.scrolls = append(s.scrolls, scrollCall{offset: offset, animated: animated})
	s.offset = offset
}

func (s *fakeSurface) OnScroll(fn func()) func() {
	s.nextSub++
	id := s.nextSub
	s.onScroll[id] = fn
	return func() { delete(s.onScroll, id) }
}

func (s *fakeSurface) OnResize(fn func()) func() {
	s.nextSub++
	id := s.nextSub
	s.onResize[id] = fn
	return func() { delete(s.onResize, id) }
}

// userScroll moves the strip the way a wheel or drag would.
func (s *fakeSurface) userScroll(offset float64) {
	s.offset = offset
	for _, fn := range s.onScroll {
		fn()
	}
}

func (s *fakeSurface) resize(width float64) {
	s.width = width
	for _, fn := range s.onResize {
		fn()
	}
}

func (s *fakeSurface) lastScroll() (scrollCall, bool) {
	if len(s.scrolls) == 0 {
		return scrollCall{}, false
	}
	return s.scrolls[len(s.scrolls)-1], true
}

type fakeScheduler struct {
	frames []func()

	nextTimer int
	timers    map[int]func()
	cancels   int
	interval  time.Duration
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{timers: make(map[int]func())}
}

func (s *fakeScheduler) RequestFrame(fn func()) { s.frames = append(s.frames, fn) }

func (s *fakeScheduler) Every(d time.Duration, fn func()) func() {
	s.nextTimer++
	id := s.nextTimer
	s.timers[id] = fn
	s.interval = d
	return func() {
		if _, ok := s.timers[id]; ok {
			s.cancels++
			delete(s.timers, id)
		}
	}
}

// drainFrames runs frames until none are pending.
func (s *fakeScheduler) drainFrames() int {
	n := 0
	for len(s.frames) > 0 && n < 10000 {
		pending := s.frames
		s.frames = nil
		for _, fn := range pending {
			fn()
		}
		n++
	}
	return n
}

func (s *fakeScheduler) liveTimers() int { return len(s.timers) }

// tick fires every live timer once.
func (s *fakeScheduler) tick() {
	fns := make([]func(), 0, len(s.timers))
	for _, fn := range s.timers {
		fns = append(fns, fn)
	}
	for _, fn := range fns {
		fn()
	}
}
