package rtss

import (
	"sync"
)

// Completion is one finished generation delivered to the render
// thread.
type Completion struct {
	Material    string
	Fingerprint Fingerprint
	Result      *GeneratedProgramSet
	Err         error

	// Discarded marks results superseded by a newer request for the
	// same material, or cancelled by fingerprint. The render thread
	// must not apply them.
	Discarded bool
}

// request is one queued generation.
type request struct {
	material string
	seq      uint64
	pass     *Pass
	rs       *RenderState
}

// Scheduler runs generation on one background worker and delivers
// completions to the render thread through a queue drained each
// frame. Both queues grow as needed: Submit, Cancel and Drain never
// block, and a frame that skips Drain only defers delivery. For a
// given material a newer request supersedes an older in-flight one:
// the older result arrives marked Discarded unless its fingerprint
// matches the latest request. Requests are cancellable by
// fingerprint; cancellation marks results for discard on arrival, it
// never interrupts a running build.
type Scheduler struct {
	gen *Generator

	mu        sync.Mutex
	seq       uint64
	latest    map[string]uint64      // material -> newest request seq
	latestFP  map[string]Fingerprint // material -> newest fingerprint
	cancelled map[Fingerprint]bool
	closed    bool
	queue     []request
	pending   []Completion

	wake chan struct{}
	done chan struct{}
}

// NewScheduler starts the background worker. queueLen sizes the
// queues' initial capacity.
func NewScheduler(gen *Generator, queueLen int) *Scheduler {
	if queueLen < 1 {
		queueLen = 16
	}
	s := &Scheduler{
		gen:       gen,
		latest:    make(map[string]uint64),
		latestFP:  make(map[string]Fingerprint),
		cancelled: make(map[Fingerprint]bool),
		queue:     make([]request, 0, queueLen),
		pending:   make([]Completion, 0, queueLen),
		wake:      make(chan struct{}, 1),
		done:      make(chan struct{}),
	}
	go s.worker()
	return s
}

// Submit queues a generation for a material and returns the request's
// fingerprint. A later Submit for the same material supersedes this
// one.
func (s *Scheduler) Submit(material string, pass *Pass, rs *RenderState) (Fingerprint, error) {
	fp := s.gen.Fingerprint(pass, rs)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return fp, ErrSchedulerClosed
	}
	s.seq++
	seq := s.seq
	s.latest[material] = seq
	s.latestFP[material] = fp
	s.queue = append(s.queue, request{material: material, seq: seq, pass: pass.Clone(), rs: rs})
	s.mu.Unlock()

	s.signal()
	return fp, nil
}

// Cancel marks a fingerprint's pending result for discard on arrival.
func (s *Scheduler) Cancel(fp Fingerprint) {
	s.mu.Lock()
	s.cancelled[fp] = true
	s.mu.Unlock()
}

// Drain returns all completions delivered since the last call, without
// blocking. The render thread calls it once per frame.
func (s *Scheduler) Drain() []Completion {
	s.mu.Lock()
	out := s.pending
	s.pending = nil
	s.mu.Unlock()
	return out
}

// Close stops the worker after it finishes the queued requests.
// Pending completions remain drainable.
func (s *Scheduler) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()
	s.signal()
	<-s.done
}

// signal wakes the worker without blocking; a token already in flight
// covers any number of queued requests.
func (s *Scheduler) signal() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *Scheduler) worker() {
	defer close(s.done)
	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			if s.closed {
				s.mu.Unlock()
				return
			}
			s.mu.Unlock()
			<-s.wake
			continue
		}
		req := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()

		result, err := s.gen.Generate(req.pass, req.rs)

		c := Completion{Material: req.material, Err: err}
		if result != nil {
			c.Fingerprint = result.Fingerprint
			c.Result = result
		}

		s.mu.Lock()
		superseded := s.latest[req.material] != req.seq && s.latestFP[req.material] != c.Fingerprint
		if superseded || s.cancelled[c.Fingerprint] {
			c.Discarded = true
		}
		s.pending = append(s.pending, c)
		s.mu.Unlock()
	}
}
