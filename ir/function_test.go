package ir

import "testing"

func TestResolveInput_Coalesces(t *testing.T) {
	fn := NewFunction(NewParameterArena())

	h1, err := fn.ResolveInput(ContentPositionObjectSpace, TypeFloat4)
	if err != nil {
		t.Fatalf("ResolveInput: %v", err)
	}
	h2, err := fn.ResolveInput(ContentPositionObjectSpace, TypeFloat4)
	if err != nil {
		t.Fatalf("ResolveInput: %v", err)
	}

	if h1 != h2 {
		t.Errorf("Expected same handle for repeated resolve, got %d and %d", h1, h2)
	}
	if len(fn.Inputs()) != 1 {
		t.Errorf("Expected 1 input, got %d", len(fn.Inputs()))
	}
}

func TestResolveInput_DistinctContents(t *testing.T) {
	fn := NewFunction(NewParameterArena())

	pos, _ := fn.ResolveInput(ContentPositionObjectSpace, TypeFloat4)
	tex, _ := fn.ResolveInput(ContentTextureCoordinate(0), TypeFloat2)
	if pos == tex {
		t.Error("Different contents must resolve to different parameters")
	}
	if len(fn.Inputs()) != 2 {
		t.Errorf("Expected 2 inputs, got %d", len(fn.Inputs()))
	}
}

func TestResolveInput_SamplerRejected(t *testing.T) {
	fn := NewFunction(NewParameterArena())

	_, err := fn.ResolveInput(ContentTextureCoordinate(0), TypeSampler2D)
	if err == nil {
		t.Fatal("Expected error resolving a sampler input")
	}
}

func TestResolveNames(t *testing.T) {
	arena := NewParameterArena()
	fn := NewFunction(arena)

	tests := []struct {
		content Content
		t       Type
		out     bool
		want    string
	}{
		{ContentPositionObjectSpace, TypeFloat4, false, "iPos_0"},
		{ContentPositionProjectiveSpace, TypeFloat4, true, "oPos_0"},
		{ContentTextureCoordinate(0), TypeFloat2, false, "iTexcoord_0"},
		{ContentTextureCoordinate(3), TypeFloat2, false, "iTexcoord_3"},
		{ContentColorDiffuse, TypeFloat4, true, "oColour_0"},
		{ContentDepthViewSpace, TypeFloat1, true, "oDepthView_0"},
	}
	for _, tt := range tests {
		var h ParameterHandle
		var err error
		if tt.out {
			h, err = fn.ResolveOutput(tt.content, tt.t)
		} else {
			h, err = fn.ResolveInput(tt.content, tt.t)
		}
		if err != nil {
			t.Fatalf("resolve %v: %v", tt.content, err)
		}
		if got := arena.Get(h).Name; got != tt.want {
			t.Errorf("content %v: name = %q, want %q", tt.content, got, tt.want)
		}
	}
}

func TestResolveInputFromOutput(t *testing.T) {
	arena := NewParameterArena()
	vs := NewFunction(arena)
	fs := NewFunction(arena)

	out, err := vs.ResolveOutput(ContentTextureCoordinate(0), TypeFloat2)
	if err != nil {
		t.Fatalf("ResolveOutput: %v", err)
	}
	in1, err := fs.ResolveInputFromOutput(arena.Get(out))
	if err != nil {
		t.Fatalf("ResolveInputFromOutput: %v", err)
	}
	in2, err := fs.ResolveInputFromOutput(arena.Get(out))
	if err != nil {
		t.Fatalf("ResolveInputFromOutput: %v", err)
	}

	if in1 != in2 {
		t.Error("Repeated varying resolve must coalesce")
	}
	if got, want := arena.Get(in1).Name, arena.Get(out).Name; got != want {
		t.Errorf("Varying input name = %q, want producer name %q", got, want)
	}
}

func TestAtoms_FlattenedByGroupKey(t *testing.T) {
	arena := NewParameterArena()
	fn := NewFunction(arena)
	p, _ := fn.ResolveLocal(ContentColorDiffuse, TypeFloat4)

	mk := func(name string, group int) *FunctionInvocation {
		inv := NewFunctionInvocation(name, group)
		inv.MustPush(InOut(p))
		return inv
	}

	// Insert out of stage order; equal keys keep insertion order.
	fn.AddAtom(mk("fog", 500))
	fn.AddAtom(mk("transform", 100))
	fn.AddAtom(mk("texture_a", 400))
	fn.AddAtom(mk("texture_b", 400))
	fn.AddAtom(mk("lighting", 300))

	want := []string{"transform", "lighting", "texture_a", "texture_b", "fog"}
	atoms := fn.Atoms()
	if len(atoms) != len(want) {
		t.Fatalf("Expected %d atoms, got %d", len(want), len(atoms))
	}
	for i, a := range atoms {
		inv := a.(*FunctionInvocation)
		if inv.Name != want[i] {
			t.Errorf("atom %d = %s, want %s", i, inv.Name, want[i])
		}
	}
}

func TestDeleteAtom(t *testing.T) {
	arena := NewParameterArena()
	fn := NewFunction(arena)
	p, _ := fn.ResolveLocal(ContentColorDiffuse, TypeFloat4)

	a := NewFunctionInvocation("a", 100)
	a.MustPush(InOut(p))
	b := NewFunctionInvocation("b", 100)
	b.MustPush(InOut(p))
	fn.AddAtom(a)
	fn.AddAtom(b)

	if !fn.DeleteAtom(a) {
		t.Fatal("DeleteAtom returned false for present atom")
	}
	if fn.DeleteAtom(a) {
		t.Fatal("DeleteAtom returned true for absent atom")
	}
	if fn.AtomCount() != 1 {
		t.Errorf("Expected 1 atom after delete, got %d", fn.AtomCount())
	}
}

func TestInvocationCompare(t *testing.T) {
	arena := NewParameterArena()
	fn := NewFunction(arena)
	p4, _ := fn.ResolveLocal(ContentColorDiffuse, TypeFloat4)

	mk := func(name, ret string, ops ...Operand) *FunctionInvocation {
		inv := &FunctionInvocation{Name: name, ReturnType: ret}
		inv.MustPush(ops...)
		return inv
	}

	tests := []struct {
		name string
		a, b *FunctionInvocation
		want int
	}{
		{"underscore first", mk("_helper", "void"), mk("aaa", "void"), -1},
		{"lexicographic", mk("FFP_Add", "void"), mk("FFP_Mul", "void"), -1},
		{"return type", mk("f", "float3"), mk("f", "float4"), -1},
		{"arity", mk("f", "void", In(p4)), mk("f", "void", In(p4), In(p4)), -1},
		{"direction", mk("f", "void", In(p4)), mk("f", "void", Out(p4)), -1},
		{"float count", mk("f", "void", In(p4).WithMask(MaskXY)), mk("f", "void", In(p4)), -1},
		{"equal", mk("f", "void", In(p4)), mk("f", "void", In(p4)), 0},
	}
	for _, tt := range tests {
		if got := tt.a.Compare(tt.b, arena); got != tt.want {
			t.Errorf("%s: Compare = %d, want %d", tt.name, got, tt.want)
		}
		if tt.want != 0 {
			if got := tt.b.Compare(tt.a, arena); got != -tt.want {
				t.Errorf("%s reversed: Compare = %d, want %d", tt.name, got, -tt.want)
			}
		}
	}
}

func TestInvocationPrototypes(t *testing.T) {
	arena := NewParameterArena()
	fn := NewFunction(arena)
	p4, _ := fn.ResolveLocal(ContentColorDiffuse, TypeFloat4)

	mk := func(name string, group int, ops ...Operand) *FunctionInvocation {
		inv := NewFunctionInvocation(name, group)
		inv.MustPush(ops...)
		return inv
	}

	fn.AddAtom(mk("FFP_Mul", 200, In(p4), Out(p4)))
	fn.AddAtom(mk("FFP_Add", 300, In(p4), Out(p4)))
	fn.AddAtom(mk("_helper", 400, In(p4)))
	// Same prototype as the first FFP_Mul: collapses to one entry.
	fn.AddAtom(mk("FFP_Mul", 500, In(p4), Out(p4)))
	// Same name, different arity: stays a distinct overload.
	fn.AddAtom(mk("FFP_Mul", 500, In(p4), In(p4), Out(p4)))
	fn.AddAtom(NewAssignment(100, Out(p4), In(p4)))

	protos := fn.InvocationPrototypes()
	want := []string{"_helper", "FFP_Add", "FFP_Mul", "FFP_Mul"}
	if len(protos) != len(want) {
		t.Fatalf("Expected %d prototypes, got %d", len(want), len(protos))
	}
	for i, inv := range protos {
		if inv.Name != want[i] {
			t.Errorf("prototype %d = %s, want %s", i, inv.Name, want[i])
		}
	}
	if len(protos[2].Operands()) != 2 || len(protos[3].Operands()) != 3 {
		t.Error("Expected overloads ordered by arity")
	}
}
