// Package ir defines the code-graph intermediate representation for
// runtime shader generation.
//
// The IR is designed to be:
//   - Backend-agnostic: Not tied to any specific shading language
//   - Composable: Independently authored contributors append atoms at
//     integer-keyed pipeline stages without knowing about each other
//   - Deterministic: Flattening, parameter resolution and naming are
//     stable so identical inputs always produce identical source
//
// # Structure
//
// The IR is organized around a ProgramSet that contains:
//   - A ParameterArena owning every Parameter by stable handle
//   - A vertex and a fragment Program, each with one entry Function
//   - Uniform lists and library dependency lists per Program
//
// A Function buckets FunctionAtom nodes by their group execution order.
// Buckets are concatenated in ascending key order; insertion order is
// preserved within a bucket. The group key is the sole scheduling
// mechanism between contributors.
//
// # Generation Pipeline
//
// The typical generation pipeline is:
//
//	Pass description → contributors mutate ProgramSet → flatten → writer (GLSL/HLSL)
//
// Writers live in their own packages and consume a Program plus its
// arena; they never mutate atoms, only parameter names (aliasing
// outputs the target language renames, e.g. gl_Position).
package ir
