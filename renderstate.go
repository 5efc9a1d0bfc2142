package rtss

import (
	"fmt"
	"sort"

	"github.com/gogpu/rtss/ir"
)

// RenderState is the ordered collection of contributors attached to a
// pass or inherited from a scheme.
type RenderState struct {
	states []SubRenderState
}

// NewRenderState returns an empty render state.
func NewRenderState() *RenderState {
	return &RenderState{}
}

// Add appends a contributor. A contributor of the same type replaces
// the existing one by copying its configuration over it.
func (r *RenderState) Add(s SubRenderState) {
	for _, existing := range r.states {
		if existing.Type() == s.Type() {
			existing.CopyFrom(s)
			return
		}
	}
	r.states = append(r.states, s)
}

// Remove drops the contributor with the given type tag, reporting
// whether one was present.
func (r *RenderState) Remove(typeTag string) bool {
	for i, s := range r.states {
		if s.Type() == typeTag {
			r.states = append(r.states[:i], r.states[i+1:]...)
			return true
		}
	}
	return false
}

// States returns the contributors in insertion order.
func (r *RenderState) States() []SubRenderState { return r.states }

// assemble runs pipeline assembly for (src, dst): filter contributors
// through PreAddToRenderState, apply the GBuffer/lighting exclusion,
// and sort survivors into canonical order. The canonical order is
// (execution order, type tag, state key); insertion order never leaks
// into the generated programs or the fingerprint.
func (r *RenderState) assemble(src, dst *Pass) []SubRenderState {
	var active []SubRenderState
	gbuffer := false
	for _, s := range r.states {
		if !s.PreAddToRenderState(src, dst) {
			continue
		}
		if s.Type() == GBufferType {
			gbuffer = true
		}
		active = append(active, s)
	}
	if gbuffer {
		kept := active[:0]
		for _, s := range active {
			if s.Type() != PerPixelLightingType {
				kept = append(kept, s)
			}
		}
		active = kept
	}
	sort.SliceStable(active, func(i, j int) bool {
		a, b := active[i], active[j]
		if a.ExecutionOrder() != b.ExecutionOrder() {
			return a.ExecutionOrder() < b.ExecutionOrder()
		}
		if a.Type() != b.Type() {
			return a.Type() < b.Type()
		}
		return a.StateKey() < b.StateKey()
	})
	return active
}

// createPrograms builds the ProgramSet for an assembled contributor
// list and validates stage linkage.
func createPrograms(active []SubRenderState) (*ir.ProgramSet, error) {
	set := ir.NewProgramSet()
	for _, s := range active {
		if err := s.CreateCPUSubPrograms(set); err != nil {
			return nil, fmt.Errorf("%s: %w", s.Type(), err)
		}
	}
	if errs := ir.ValidateLinkage(set); len(errs) > 0 {
		return nil, fmt.Errorf("%d linkage errors, first: %w", len(errs), errs[0])
	}
	return set, nil
}
