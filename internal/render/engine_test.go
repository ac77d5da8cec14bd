package render

import (
	"errors"
	"strings"
	"testing"

	"resume-builder/internal/resumes"
	"resume-builder/internal/templates"
)

func newTestEngine() *Engine {
	return NewEngine(templates.NewRegistry())
}

func TestRenderEveryTemplateWithEmptyDocument(t *testing.T) {
	eng := newTestEngine()

	// Every optional field absent, every list empty: rendering must
	// still produce a page with legible placeholders.
	doc := resumes.Resume{ID: "r1", OwnerID: "u1"}

	for _, tpl := range eng.Registry.All() {
		page, err := eng.Render(doc, tpl.ID, Options{Mode: ModePrint})
		if err != nil {
			t.Fatalf("render %q with empty document: %v", tpl.ID, err)
		}
		if page.HTML == "" {
			t.Fatalf("render %q produced empty HTML", tpl.ID)
		}
		if !strings.Contains(page.HTML, "Your Name") {
			t.Fatalf("render %q missing name placeholder", tpl.ID)
		}
		if !strings.Contains(page.HTML, "No experience information provided") {
			t.Fatalf("render %q missing empty-experience placeholder", tpl.ID)
		}
	}
}

func TestRenderUnknownTemplateFailsClosed(t *testing.T) {
	eng := newTestEngine()

	doc := resumes.Resume{ID: "r1", TemplateID: "bogus"}
	_, err := eng.Render(doc, "", Options{Mode: ModePrint})
	if !errors.Is(err, templates.ErrUnknownTemplate) {
		t.Fatalf("expected ErrUnknownTemplate, got %v", err)
	}
}

func TestRenderExplicitTemplateWinsOverDocument(t *testing.T) {
	eng := newTestEngine()

	doc := resumes.Resume{ID: "r1", TemplateID: "classic"}
	page, err := eng.Render(doc, "modern", Options{Mode: ModeInteractive})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if page.TemplateID != "modern" {
		t.Fatalf("expected explicit template to win, got %q", page.TemplateID)
	}
}

func TestRenderSplitsDescriptionIntoBulletLines(t *testing.T) {
	eng := newTestEngine()

	doc := resumes.Resume{
		ID:         "r1",
		TemplateID: "classic",
		PersonalInfo: resumes.PersonalInfo{
			FullName: "Jane Diaz",
		},
		Experience: []resumes.Experience{
			{
				ID:          "exp1",
				Company:     "Acme",
				Position:    "Engineer",
				Description: "Led 3 projects\nShipped 2 releases",
			},
		},
	}

	for _, templateID := range []string{"cashier", "classic"} {
		page, err := eng.Render(doc, templateID, Options{Mode: ModePrint})
		if err != nil {
			t.Fatalf("render %q: %v", templateID, err)
		}
		if !strings.Contains(page.HTML, "Led 3 projects") || !strings.Contains(page.HTML, "Shipped 2 releases") {
			t.Fatalf("render %q missing description lines", templateID)
		}
		// Two separate list items, not one concatenated line.
		if strings.Count(page.HTML, "<li>") < 2 {
			t.Fatalf("render %q did not split description into separate lines", templateID)
		}
		if strings.Contains(page.HTML, "Led 3 projectsShipped") {
			t.Fatalf("render %q concatenated description lines", templateID)
		}
	}
}

func TestRenderClampsSkillLevels(t *testing.T) {
	eng := newTestEngine()

	// Levels written outside [1,5] straight into the store must still
	// render a sane indicator count.
	doc := resumes.Resume{
		ID:         "r1",
		TemplateID: "classic", // dots indicator
		Skills: []resumes.Skill{
			{ID: "s1", Name: "Go", Level: 9},
			{ID: "s2", Name: "SQL", Level: -2},
		},
	}

	page, err := eng.Render(doc, "", Options{Mode: ModePrint})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	// A level of 9 clamps to 5 filled, 0 empty; -2 clamps to 1 filled,
	// 4 empty. Total glyphs per skill is always 5.
	filled := strings.Count(page.HTML, "&#9679;")
	empty := strings.Count(page.HTML, "&#9675;")
	if filled != 6 || empty != 4 {
		t.Fatalf("expected 6 filled / 4 empty dots, got %d / %d", filled, empty)
	}
}

func TestRenderDeterministic(t *testing.T) {
	eng := newTestEngine()

	doc := resumes.Resume{
		ID:         "r1",
		TemplateID: "modern",
		Colors:     resumes.Colors{Primary: "#2563eb", Secondary: "#93c5fd"},
		PersonalInfo: resumes.PersonalInfo{
			FullName: "Jane Diaz",
			Summary:  strings.Repeat("A long summary that has to wrap. ", 40),
		},
	}

	first, err := eng.Render(doc, "", Options{Mode: ModePrint})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	second, err := eng.Render(doc, "", Options{Mode: ModePrint})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if first.HTML != second.HTML {
		t.Fatal("print render is not deterministic for identical input")
	}
}

func TestRenderPageGeometry(t *testing.T) {
	eng := newTestEngine()
	doc := resumes.Resume{ID: "r1", TemplateID: "classic"}

	// Print mode renders native inches regardless of zoom.
	page, err := eng.Render(doc, "", Options{Mode: ModePrint, Zoom: 0.5})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if page.WidthIn != PageWidthIn || page.HeightIn != PageHeightIn {
		t.Fatalf("print geometry %gx%g, want %gx%g", page.WidthIn, page.HeightIn, PageWidthIn, PageHeightIn)
	}
	if page.PixelWidth() != 816 || page.PixelHeight() != 1056 {
		t.Fatalf("pixel geometry %dx%d, want 816x1056", page.PixelWidth(), page.PixelHeight())
	}

	// Interactive mode scales by the zoom factor.
	page, err = eng.Render(doc, "", Options{Mode: ModeInteractive, Zoom: 0.5})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if page.WidthIn != PageWidthIn/2 {
		t.Fatalf("zoomed width %g, want %g", page.WidthIn, PageWidthIn/2)
	}
}

func TestRenderDynamicColorCapability(t *testing.T) {
	eng := newTestEngine()

	doc := resumes.Resume{
		ID:         "r1",
		TemplateID: "modern",
		Colors:     resumes.Colors{Primary: "#7e22ce", Secondary: "#d8b4fe"},
	}

	// A color-capable template applies the resolved scheme.
	page, err := eng.Render(doc, "modern", Options{Mode: ModePrint})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(page.HTML, "#7e22ce") {
		t.Fatal("modern template ignored the document's primary color")
	}

	// The classic template declares no dynamic color support: the
	// scheme is ignored, not an error.
	page, err = eng.Render(doc, "classic", Options{Mode: ModePrint})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(page.HTML, "#7e22ce") {
		t.Fatal("classic template should keep its hardcoded palette")
	}
}
