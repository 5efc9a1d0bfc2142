package rtss

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/gogpu/rtss/ir"
)

// gateSRS blocks program creation until its gate is released, so tests
// can hold a build in flight deterministically. The state key tracks
// the pass shininess to give distinct passes distinct fingerprints.
type gateSRS struct {
	gate chan struct{}
	key  string
}

func (g *gateSRS) Type() string        { return "Test_Gate" }
func (g *gateSRS) ExecutionOrder() int { return OrderPostProcess }
func (g *gateSRS) StateKey() string    { return g.key }

func (g *gateSRS) PreAddToRenderState(src, dst *Pass) bool {
	g.key = fmt.Sprintf("%v", src.Shininess)
	return true
}

func (g *gateSRS) CopyFrom(other SubRenderState) {}

func (g *gateSRS) CreateCPUSubPrograms(set *ir.ProgramSet) error {
	if g.gate != nil {
		<-g.gate
	}
	return nil
}

// drainUntil polls the scheduler until n completions arrive or the
// deadline passes.
func drainUntil(t *testing.T, s *Scheduler, n int) []Completion {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	var out []Completion
	for len(out) < n {
		if time.Now().After(deadline) {
			t.Fatalf("Expected %d completions, got %d", n, len(out))
		}
		out = append(out, s.Drain()...)
		time.Sleep(time.Millisecond)
	}
	return out
}

func TestSchedulerDeliversCompletion(t *testing.T) {
	gen := NewGenerator(DefaultGeneratorOptions())
	s := NewScheduler(gen, 4)
	defer s.Close()

	pass := texturedPass()
	rs := gen.CreateRenderState(pass)
	fp, err := s.Submit("wall", pass, rs)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	got := drainUntil(t, s, 1)[0]
	if got.Material != "wall" {
		t.Errorf("Expected material wall, got %q", got.Material)
	}
	if got.Fingerprint != fp {
		t.Errorf("Expected fingerprint %q, got %q", fp, got.Fingerprint)
	}
	if got.Err != nil {
		t.Errorf("Expected no error, got %v", got.Err)
	}
	if got.Discarded {
		t.Error("Expected completion not discarded")
	}
	if got.Result == nil || got.Result.VertexSource == "" {
		t.Error("Expected a generated result")
	}
}

func TestSchedulerSupersedesOlderRequest(t *testing.T) {
	gen := NewGenerator(DefaultGeneratorOptions())
	s := NewScheduler(gen, 4)
	defer s.Close()

	gate := make(chan struct{})

	passA := &Pass{Shininess: 1}
	rsA := NewRenderState()
	rsA.Add(&gateSRS{gate: gate})
	fpA, err := s.Submit("mat", passA, rsA)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	passB := &Pass{Shininess: 2}
	rsB := NewRenderState()
	rsB.Add(&gateSRS{gate: gate})
	fpB, err := s.Submit("mat", passB, rsB)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if fpA == fpB {
		t.Fatalf("Expected distinct fingerprints, both %q", fpA)
	}

	close(gate)

	byFP := make(map[Fingerprint]Completion)
	for _, c := range drainUntil(t, s, 2) {
		byFP[c.Fingerprint] = c
	}
	if !byFP[fpA].Discarded {
		t.Error("Expected the superseded completion discarded")
	}
	if byFP[fpB].Discarded {
		t.Error("Expected the latest completion kept")
	}
}

func TestSchedulerCancel(t *testing.T) {
	gen := NewGenerator(DefaultGeneratorOptions())
	s := NewScheduler(gen, 4)
	defer s.Close()

	pass := texturedPass()
	rs := gen.CreateRenderState(pass)
	fp := gen.Fingerprint(pass, rs)
	s.Cancel(fp)

	if _, err := s.Submit("wall", pass, rs); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	got := drainUntil(t, s, 1)[0]
	if !got.Discarded {
		t.Error("Expected cancelled completion discarded")
	}
}

func TestSchedulerSubmitAfterClose(t *testing.T) {
	gen := NewGenerator(DefaultGeneratorOptions())
	s := NewScheduler(gen, 4)
	s.Close()

	pass := texturedPass()
	rs := gen.CreateRenderState(pass)
	if _, err := s.Submit("wall", pass, rs); !errors.Is(err, ErrSchedulerClosed) {
		t.Errorf("Expected ErrSchedulerClosed, got %v", err)
	}
}

func TestSchedulerCloseIsIdempotent(t *testing.T) {
	gen := NewGenerator(DefaultGeneratorOptions())
	s := NewScheduler(gen, 4)
	s.Close()
	s.Close()
}

func TestSchedulerQueuesGrowWithoutDrain(t *testing.T) {
	gen := NewGenerator(DefaultGeneratorOptions())
	s := NewScheduler(gen, 1)

	// Far more submissions than the initial capacity, no Drain until
	// the end: neither the worker nor Close may stall on delivery.
	pass := texturedPass()
	for i := 0; i < 8; i++ {
		rs := gen.CreateRenderState(pass)
		if _, err := s.Submit(fmt.Sprintf("mat%d", i), pass, rs); err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
	}
	s.Close()

	got := s.Drain()
	if len(got) != 8 {
		t.Fatalf("Expected 8 completions after close, got %d", len(got))
	}
	for _, c := range got {
		if c.Discarded {
			t.Errorf("Expected %s kept, got discarded", c.Material)
		}
		if c.Err != nil {
			t.Errorf("Expected no error for %s, got %v", c.Material, c.Err)
		}
	}
}

func TestSchedulerPendingCompletionsDrainableAfterClose(t *testing.T) {
	gen := NewGenerator(DefaultGeneratorOptions())
	s := NewScheduler(gen, 4)

	pass := texturedPass()
	rs := gen.CreateRenderState(pass)
	if _, err := s.Submit("wall", pass, rs); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	s.Close() // waits for the worker, the completion stays queued

	got := s.Drain()
	if len(got) != 1 {
		t.Fatalf("Expected 1 completion after close, got %d", len(got))
	}
	if got[0].Err != nil {
		t.Errorf("Expected no error, got %v", got[0].Err)
	}
}
