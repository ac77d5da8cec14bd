package templates

import (
	"errors"
	"testing"
)

func TestRegistryGetKnownTemplates(t *testing.T) {
	reg := NewRegistry()

	ids := []string{
		"business-executive", "it", "project-manager", "cashier", "medical",
		"modern", "classic", "realtor", "hr-professional", "devops-engineer",
	}
	for _, id := range ids {
		tpl, err := reg.Get(id)
		if err != nil {
			t.Fatalf("Get(%q): %v", id, err)
		}
		if tpl.ID != id {
			t.Fatalf("Get(%q) returned template %q", id, tpl.ID)
		}
		if len(tpl.Colors) == 0 {
			t.Fatalf("template %q declares no color schemes", id)
		}
		if len(tpl.Layout.Sections) == 0 {
			t.Fatalf("template %q has an empty section order", id)
		}
	}

	if got := len(reg.All()); got != len(ids) {
		t.Fatalf("expected %d templates, got %d", len(ids), got)
	}
}

func TestRegistryGetUnknownTemplate(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Get("bogus")
	if !errors.Is(err, ErrUnknownTemplate) {
		t.Fatalf("expected ErrUnknownTemplate, got %v", err)
	}
}

func TestColorSchemeResolution(t *testing.T) {
	reg := NewRegistry()

	// Explicit color id.
	c, err := reg.ColorScheme("classic", "teal")
	if err != nil {
		t.Fatalf("ColorScheme: %v", err)
	}
	if c.Primary != "#0d9488" {
		t.Fatalf("expected teal primary #0d9488, got %s", c.Primary)
	}

	// Empty color id falls back to the template's first option.
	c, err = reg.ColorScheme("classic", "")
	if err != nil {
		t.Fatalf("ColorScheme default: %v", err)
	}
	if c.ID != "blue" {
		t.Fatalf("expected default color blue, got %s", c.ID)
	}

	// A color outside the template's palette is rejected even if another
	// template declares it.
	_, err = reg.ColorScheme("classic", "coral")
	if !errors.Is(err, ErrUnknownColor) {
		t.Fatalf("expected ErrUnknownColor, got %v", err)
	}

	_, err = reg.ColorScheme("bogus", "blue")
	if !errors.Is(err, ErrUnknownTemplate) {
		t.Fatalf("expected ErrUnknownTemplate, got %v", err)
	}
}

func TestEveryTemplateSectionOrderIsComplete(t *testing.T) {
	reg := NewRegistry()

	want := map[Section]bool{
		SectionSummary: true, SectionExperience: true, SectionEducation: true,
		SectionSkills: true, SectionLanguages: true, SectionCertifications: true,
	}
	for _, tpl := range reg.All() {
		seen := map[Section]bool{}
		for _, s := range tpl.Layout.Sections {
			if seen[s] {
				t.Fatalf("template %q lists section %q twice", tpl.ID, s)
			}
			seen[s] = true
		}
		for s := range want {
			if !seen[s] {
				t.Fatalf("template %q is missing section %q", tpl.ID, s)
			}
		}
	}
}
