package rtss

import (
	"errors"
	"testing"
)

func TestLibraryPoolResolve(t *testing.T) {
	p := NewLibraryPool()
	p.Register("FFPLib_Common", "// common")
	p.Register("FFPLib_Transform", "// transform\n")

	got, err := p.Resolve([]string{"FFPLib_Common", "FFPLib_Transform"})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	want := "// common\n// transform\n"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestLibraryPoolMissingDependency(t *testing.T) {
	p := NewLibraryPool()
	p.Register("FFPLib_Common", "// common")

	if _, err := p.Source("SGXLib_Nope"); !errors.Is(err, ErrDependencyMissing) {
		t.Errorf("Expected ErrDependencyMissing, got %v", err)
	}
	if _, err := p.Resolve([]string{"FFPLib_Common", "SGXLib_Nope"}); !errors.Is(err, ErrDependencyMissing) {
		t.Errorf("Expected ErrDependencyMissing, got %v", err)
	}
}

func TestLibraryPoolReRegisterInvalidatesMemo(t *testing.T) {
	p := NewLibraryPool()
	p.Register("FFPLib_Fog", "v1\n")

	got, err := p.Resolve([]string{"FFPLib_Fog"})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got != "v1\n" {
		t.Errorf("Expected v1, got %q", got)
	}

	p.Register("FFPLib_Fog", "v2\n")
	got, err = p.Resolve([]string{"FFPLib_Fog"})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got != "v2\n" {
		t.Errorf("Expected v2 after re-registration, got %q", got)
	}
}

func TestLibraryPoolResolveEmpty(t *testing.T) {
	p := NewLibraryPool()
	got, err := p.Resolve(nil)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got != "" {
		t.Errorf("Expected empty concatenation, got %q", got)
	}
}
