package ir

// ParameterArena owns every Parameter of a ProgramSet and hands out
// stable handles. Functions and Operands reference parameters by
// handle only; the arena is freed with the ProgramSet.
type ParameterArena struct {
	params []Parameter
}

// NewParameterArena creates an empty arena.
func NewParameterArena() *ParameterArena {
	return &ParameterArena{params: make([]Parameter, 0, 32)}
}

// Alloc stores p and returns its handle.
func (a *ParameterArena) Alloc(p Parameter) ParameterHandle {
	if p.PhysicalIndex == 0 {
		p.PhysicalIndex = -1
	}
	h := ParameterHandle(len(a.params))
	a.params = append(a.params, p)
	return h
}

// Get returns the parameter for h. The pointer stays valid until the
// next Alloc; callers must not retain it across allocations.
func (a *ParameterArena) Get(h ParameterHandle) *Parameter {
	return &a.params[h]
}

// Lookup returns the parameter for h, or false when h is out of range.
func (a *ParameterArena) Lookup(h ParameterHandle) (*Parameter, bool) {
	if h == InvalidHandle || int(h) >= len(a.params) {
		return nil, false
	}
	return &a.params[h], true
}

// Count returns the number of allocated parameters.
func (a *ParameterArena) Count() int {
	return len(a.params)
}
