package ir

import "fmt"

// LinkError describes one reachability violation in a ProgramSet.
type LinkError struct {
	Stage     ProgramKind
	Parameter string
	Message   string
}

// Error implements the error interface.
func (e LinkError) Error() string {
	return fmt.Sprintf("%s program, parameter %s: %s", e.Stage, e.Parameter, e.Message)
}

// Unwrap makes the error match ErrUnresolvedLink via errors.Is.
func (e LinkError) Unwrap() error { return ErrUnresolvedLink }

// ValidateLinkage verifies a ProgramSet for reachability: every
// declared output is written by at least one atom, every fragment
// varying has a matching vertex producer, and every vertex varying is
// consumed by the fragment stage. Returns nil when the set links.
func ValidateLinkage(set *ProgramSet) []LinkError {
	var errs []LinkError
	arena := set.Arena()

	errs = append(errs, validateOutputsWritten(set.Vertex())...)
	errs = append(errs, validateOutputsWritten(set.Fragment())...)

	// Fragment inputs need a vertex producer, except builtins the
	// rasterizer supplies.
	vertOut := set.Vertex().EntryFunction().Outputs()
	for _, h := range set.Fragment().EntryFunction().Inputs() {
		p := arena.Get(h)
		if p.Content == ContentFrontFacing {
			continue
		}
		if findMatch(arena, vertOut, p) == InvalidHandle {
			errs = append(errs, LinkError{
				Stage:     ProgramFragment,
				Parameter: p.Name,
				Message:   "varying has no vertex-stage producer",
			})
		}
	}

	// Vertex varyings need a fragment consumer, except outputs the
	// rasterizer itself consumes.
	fragIn := set.Fragment().EntryFunction().Inputs()
	for _, h := range vertOut {
		p := arena.Get(h)
		if p.Content == ContentPositionProjectiveSpace || p.Content == ContentPointSpriteSize {
			continue
		}
		if findMatch(arena, fragIn, p) == InvalidHandle {
			errs = append(errs, LinkError{
				Stage:     ProgramVertex,
				Parameter: p.Name,
				Message:   "varying output consumed by no later stage",
			})
		}
	}
	return errs
}

func validateOutputsWritten(prog *Program) []LinkError {
	var errs []LinkError
	fn := prog.EntryFunction()
	written := make(map[ParameterHandle]bool)
	for _, atom := range fn.Atoms() {
		for _, op := range atom.Operands() {
			if op.Semantic == OperandOut || op.Semantic == OperandInOut {
				written[op.Param] = true
			}
		}
	}
	for _, h := range fn.Outputs() {
		if !written[h] {
			errs = append(errs, LinkError{
				Stage:     prog.Kind(),
				Parameter: fn.Arena().Get(h).Name,
				Message:   "declared output is never written",
			})
		}
	}
	return errs
}

func findMatch(arena *ParameterArena, handles []ParameterHandle, want *Parameter) ParameterHandle {
	for _, h := range handles {
		p := arena.Get(h)
		if p.Semantic == want.Semantic && p.Index == want.Index &&
			p.Content == want.Content && p.Type == want.Type {
			return h
		}
	}
	return InvalidHandle
}
