package patch

import "testing"

func TestApplyRoundTrip(t *testing.T) {
	p := New()

	before := "<p>Der erste Absatz.</p>"
	after := "<p>Der erste Absatz.</p><p>Ein zweiter Absatz.</p>"

	patched, err := p.Apply(before, p.Make(before, after))
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if patched != after {
		t.Errorf("patched = %q, want %q", patched, after)
	}
}

func TestApplyInvalidPatchText(t *testing.T) {
	p := New()
	if _, err := p.Apply("base", "@@ not a patch"); err == nil {
		t.Error("expected error for invalid patch text")
	}
}

func TestApplyEmptyPatch(t *testing.T) {
	p := New()
	out, err := p.Apply("unchanged", "")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if out != "unchanged" {
		t.Errorf("out = %q, want unchanged", out)
	}
}
