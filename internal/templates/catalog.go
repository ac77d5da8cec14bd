package templates

// Color palettes shared by the catalog. A template references a palette
// wholesale; documents denormalize the chosen scheme at creation time.
var (
	professionalColors = []ColorScheme{
		{ID: "blue", Name: "Professional Blue", Primary: "#2563eb", Secondary: "#93c5fd"},
		{ID: "teal", Name: "Teal Accent", Primary: "#0d9488", Secondary: "#5eead4"},
		{ID: "purple", Name: "Royal Purple", Primary: "#7e22ce", Secondary: "#d8b4fe"},
		{ID: "gray", Name: "Executive Gray", Primary: "#4b5563", Secondary: "#cbd5e1"},
	}
	creativeColors = []ColorScheme{
		{ID: "coral", Name: "Coral Sunset", Primary: "#f43f5e", Secondary: "#fecdd3"},
		{ID: "emerald", Name: "Vibrant Emerald", Primary: "#059669", Secondary: "#6ee7b7"},
		{ID: "amber", Name: "Golden Amber", Primary: "#d97706", Secondary: "#fcd34d"},
		{ID: "indigo", Name: "Deep Indigo", Primary: "#4f46e5", Secondary: "#c7d2fe"},
	}
	minimalColors = []ColorScheme{
		{ID: "monochrome", Name: "Monochrome", Primary: "#262626", Secondary: "#e5e5e5"},
		{ID: "light", Name: "Light Minimal", Primary: "#737373", Secondary: "#f5f5f5"},
		{ID: "warm", Name: "Warm Gray", Primary: "#78716c", Secondary: "#f5f5f4"},
		{ID: "cool", Name: "Cool Gray", Primary: "#64748b", Secondary: "#f1f5f9"},
	}
)

const (
	serifStack = `Georgia, "Times New Roman", serif`
	sansStack  = `"Helvetica Neue", Arial, sans-serif`
	monoStack  = `"Courier New", Courier, monospace`
)

var standardOrder = []Section{
	SectionSummary,
	SectionExperience,
	SectionEducation,
	SectionSkills,
	SectionLanguages,
	SectionCertifications,
}

// catalog is the full template set. Order matters: it is the catalog
// display order.
var catalog = []Template{
	{
		ID:           "business-executive",
		Name:         "Business Executive",
		Description:  "Designed for business professionals and executives.",
		PreviewImage: "/templates/business-executive.png",
		Colors:       professionalColors,
		Style:        StyleHints{FontFamily: "serif", Spacing: "standard", Layout: "traditional"},
		Layout: LayoutDescriptor{
			FontStack:      serifStack,
			Header:         HeaderCentered,
			Sections:       standardOrder,
			SkillIndicator: SkillBars,
			SkillColumns:   2,
			DynamicColors:  true,
			BulletGlyph:    "•",
			PaddingIn:      0.75,
		},
	},
	{
		ID:           "it",
		Name:         "IT Professional",
		Description:  "Optimized for IT and tech-related roles.",
		PreviewImage: "/templates/it.png",
		Colors:       append(append([]ColorScheme{}, professionalColors...), minimalColors...),
		Style:        StyleHints{FontFamily: "sans-serif", Spacing: "compact", Layout: "modern"},
		Layout: LayoutDescriptor{
			FontStack:      sansStack,
			Header:         HeaderLeft,
			Sections:       []Section{SectionSummary, SectionSkills, SectionExperience, SectionEducation, SectionCertifications, SectionLanguages},
			SkillIndicator: SkillBars,
			SkillColumns:   3,
			DynamicColors:  true,
			BulletGlyph:    "›",
			PaddingIn:      0.5,
		},
	},
	{
		ID:           "project-manager",
		Name:         "Project Manager",
		Description:  "Structured for project management roles.",
		PreviewImage: "/templates/project-manager.png",
		Colors:       professionalColors,
		Style:        StyleHints{FontFamily: "sans-serif", Spacing: "standard", Layout: "modern"},
		Layout: LayoutDescriptor{
			FontStack:      sansStack,
			Header:         HeaderBanner,
			Sections:       standardOrder,
			SkillIndicator: SkillBars,
			SkillColumns:   2,
			DynamicColors:  true,
			BulletGlyph:    "•",
			PaddingIn:      0.6,
		},
	},
	{
		ID:           "cashier",
		Name:         "Cashier/Retail",
		Description:  "A template suitable for cashier and retail positions.",
		PreviewImage: "/templates/cashier.png",
		Colors:       minimalColors,
		Style:        StyleHints{FontFamily: "sans-serif", Spacing: "compact", Layout: "traditional"},
		Layout: LayoutDescriptor{
			FontStack:      sansStack,
			Header:         HeaderLeft,
			Sections:       []Section{SectionSummary, SectionSkills, SectionExperience, SectionCertifications, SectionLanguages, SectionEducation},
			SkillIndicator: SkillTags,
			SkillColumns:   4,
			DynamicColors:  false, // keeps its amber accent regardless of the chosen scheme
			BulletGlyph:    "◇",
			PaddingIn:      0.5,
		},
	},
	{
		ID:           "medical",
		Name:         "Medical Assistant",
		Description:  "Tailored for medical assistant and healthcare roles.",
		PreviewImage: "/templates/medical.png",
		Colors:       professionalColors,
		Style:        StyleHints{FontFamily: "sans-serif", Spacing: "standard", Layout: "traditional"},
		Layout: LayoutDescriptor{
			FontStack:      sansStack,
			Header:         HeaderCentered,
			Sections:       []Section{SectionSummary, SectionCertifications, SectionExperience, SectionEducation, SectionSkills, SectionLanguages},
			SkillIndicator: SkillDots,
			SkillColumns:   2,
			DynamicColors:  true,
			BulletGlyph:    "•",
			PaddingIn:      0.7,
		},
	},
	{
		ID:           "modern",
		Name:         "Modern",
		Description:  "A clean and contemporary resume template.",
		PreviewImage: "/templates/modern.png",
		Colors:       append(append([]ColorScheme{}, professionalColors...), creativeColors...),
		Style:        StyleHints{FontFamily: "sans-serif", Spacing: "standard", Layout: "modern"},
		Layout: LayoutDescriptor{
			FontStack:      sansStack,
			Header:         HeaderBanner,
			Sections:       standardOrder,
			SkillIndicator: SkillBars,
			SkillColumns:   2,
			DynamicColors:  true,
			BulletGlyph:    "–",
			PaddingIn:      0.55,
		},
	},
	{
		ID:           "classic",
		Name:         "Classic",
		Description:  "A traditional and professional resume template.",
		PreviewImage: "/templates/classic.png",
		Colors:       professionalColors,
		Style:        StyleHints{FontFamily: "serif", Spacing: "standard", Layout: "traditional"},
		Layout: LayoutDescriptor{
			FontStack:      serifStack,
			Header:         HeaderCentered,
			Sections:       []Section{SectionSummary, SectionEducation, SectionExperience, SectionSkills, SectionLanguages, SectionCertifications},
			SkillIndicator: SkillDots,
			SkillColumns:   2,
			DynamicColors:  false, // black-on-white, rules drawn in gray
			BulletGlyph:    "•",
			PaddingIn:      0.75,
		},
	},
	{
		ID:           "realtor",
		Name:         "Realtor",
		Description:  "Designed specifically for real estate professionals.",
		PreviewImage: "/templates/realtor.png",
		Colors:       creativeColors,
		Style:        StyleHints{FontFamily: "sans-serif", Spacing: "standard", Layout: "creative"},
		Layout: LayoutDescriptor{
			FontStack:      sansStack,
			Header:         HeaderBanner,
			Sections:       []Section{SectionSummary, SectionExperience, SectionCertifications, SectionEducation, SectionSkills, SectionLanguages},
			SkillIndicator: SkillBars,
			SkillColumns:   2,
			DynamicColors:  true,
			BulletGlyph:    "▸",
			PaddingIn:      0.6,
		},
	},
	{
		ID:           "hr-professional",
		Name:         "HR Professional",
		Description:  "Optimized for human resources professionals.",
		PreviewImage: "/templates/hr-professional.png",
		Colors:       professionalColors,
		Style:        StyleHints{FontFamily: "sans-serif", Spacing: "standard", Layout: "modern"},
		Layout: LayoutDescriptor{
			FontStack:      sansStack,
			Header:         HeaderLeft,
			Sections:       standardOrder,
			SkillIndicator: SkillDots,
			SkillColumns:   2,
			DynamicColors:  true,
			BulletGlyph:    "•",
			PaddingIn:      0.65,
		},
	},
	{
		ID:           "devops-engineer",
		Name:         "DevOps Engineer",
		Description:  "Tailored for DevOps and IT professionals.",
		PreviewImage: "/templates/devops-engineer.png",
		Colors:       creativeColors,
		Style:        StyleHints{FontFamily: "monospace", Spacing: "compact", Layout: "modern"},
		Layout: LayoutDescriptor{
			FontStack:      monoStack,
			Header:         HeaderLeft,
			Sections:       []Section{SectionSummary, SectionSkills, SectionExperience, SectionEducation, SectionCertifications, SectionLanguages},
			SkillIndicator: SkillBars,
			SkillColumns:   3,
			DynamicColors:  true,
			BulletGlyph:    "$",
			PaddingIn:      0.5,
		},
	},
}
