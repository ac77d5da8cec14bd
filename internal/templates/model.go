package templates

// Template is a registered visual layout together with its allowed color
// schemes and style metadata. Entries are static; the registry never
// mutates them after startup.
type Template struct {
	ID           string
	Name         string
	Description  string
	PreviewImage string
	Pro          bool
	Colors       []ColorScheme
	Style        StyleHints
	Layout       LayoutDescriptor
}

// ColorScheme is one selectable color option for a template.
type ColorScheme struct {
	ID        string
	Name      string
	Primary   string
	Secondary string
	Accent    string
}

// StyleHints carry presentation metadata used for filtering and catalog
// display, not for layout decisions.
type StyleHints struct {
	FontFamily string // "serif", "sans-serif", "monospace"
	Spacing    string // "compact", "standard", "spacious"
	Layout     string // "traditional", "modern", "creative"
}

// Section identifies one renderable content section of a resume.
type Section string

const (
	SectionSummary        Section = "summary"
	SectionExperience     Section = "experience"
	SectionEducation      Section = "education"
	SectionSkills         Section = "skills"
	SectionLanguages      Section = "languages"
	SectionCertifications Section = "certifications"
)

// SkillStyle selects how a skill level is drawn.
type SkillStyle string

const (
	SkillDots SkillStyle = "dots" // filled/empty dot row
	SkillBars SkillStyle = "bars" // proportional bar
	SkillTags SkillStyle = "tags" // name only, no level indicator
)

// HeaderStyle selects the header block arrangement.
type HeaderStyle string

const (
	HeaderCentered HeaderStyle = "centered"
	HeaderLeft     HeaderStyle = "left"
	HeaderBanner   HeaderStyle = "banner" // full-width band filled with the primary color
)

// LayoutDescriptor is the declarative configuration that drives the one
// parameterized layout engine. Ten templates, one rendering code path.
type LayoutDescriptor struct {
	FontStack      string
	Header         HeaderStyle
	Sections       []Section
	SkillIndicator SkillStyle
	SkillColumns   int
	// DynamicColors reports whether the template applies the document's
	// resolved color scheme. When false the template keeps its hardcoded
	// palette and resolved colors are ignored, which is an accepted
	// capability and not an error.
	DynamicColors bool
	// BulletGlyph prefixes each description line split out of a
	// free-text paragraph.
	BulletGlyph string
	// PaddingIn is the page padding in inches.
	PaddingIn float64
}
