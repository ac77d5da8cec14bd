package render

import (
	"fmt"
	"html/template"
	"regexp"
	"strings"

	"resume-builder/internal/resumes"
	"resume-builder/internal/templates"
)

// View models consumed by the page template. Built deterministically
// from the document and the template's layout descriptor; no layout
// decision is made inside the HTML template itself.

type pageView struct {
	WidthIn   float64
	HeightIn  float64
	PaddingIn float64
	Zoom      float64

	FontStack template.CSS
	Header    string // "centered", "left", "banner"

	Primary   template.CSS
	Secondary template.CSS
	Accent    template.CSS

	FullName     string
	Title        string
	ContactLine  []string
	LinkLine     []string
	Sections     []sectionView
	SkillColumns int
}

type sectionView struct {
	Kind        string // mirrors templates.Section
	Title       string
	Placeholder string // shown when the section has zero entries

	Paragraph string      // summary
	Entries   []entryView // experience, education, certifications
	Skills    []skillView
	SkillMode string // "dots", "bars", "tags"
	Columns   int
	Languages []languageView
}

type entryView struct {
	Heading    string
	SubHeading string
	Meta       string
	DateRange  string
	Bullets    []string
	Note       string
}

type skillView struct {
	Name    string
	Filled  int
	Empty   int
	Percent int
}

type languageView struct {
	Name        string
	Proficiency string
}

// fallbackColors is used by templates that declare no dynamic color
// support.
var fallbackColors = resumes.Colors{Primary: "#262626", Secondary: "#e5e5e5", Accent: "#d97706"}

func buildView(doc resumes.Resume, tpl *templates.Template, opts Options) pageView {
	zoom := opts.zoom()
	desc := tpl.Layout

	colors := doc.Colors
	if !desc.DynamicColors || colors.Primary == "" {
		colors = fallbackColors
	}
	if colors.Accent == "" {
		colors.Accent = colors.Primary
	}

	v := pageView{
		WidthIn:   PageWidthIn * zoom,
		HeightIn:  PageHeightIn * zoom,
		PaddingIn: desc.PaddingIn * zoom,
		Zoom:      zoom,
		FontStack: template.CSS(desc.FontStack),
		Header:    string(desc.Header),
		Primary:   cssColor(colors.Primary),
		Secondary: cssColor(colors.Secondary),
		Accent:    cssColor(colors.Accent),
		FullName:  textOr(doc.PersonalInfo.FullName, "Your Name"),
		Title:     doc.PersonalInfo.Title,
	}

	for _, part := range []string{doc.PersonalInfo.Email, doc.PersonalInfo.Phone, doc.PersonalInfo.Address} {
		if strings.TrimSpace(part) != "" {
			v.ContactLine = append(v.ContactLine, part)
		}
	}
	for _, part := range []string{doc.PersonalInfo.Website, doc.PersonalInfo.LinkedIn, doc.PersonalInfo.GitHub} {
		if strings.TrimSpace(part) != "" {
			v.LinkLine = append(v.LinkLine, part)
		}
	}

	for _, section := range desc.Sections {
		v.Sections = append(v.Sections, buildSection(doc, desc, section))
	}
	return v
}

func buildSection(doc resumes.Resume, desc templates.LayoutDescriptor, section templates.Section) sectionView {
	switch section {
	case templates.SectionSummary:
		return sectionView{
			Kind:        string(section),
			Title:       "Professional Summary",
			Paragraph:   strings.TrimSpace(doc.PersonalInfo.Summary),
			Placeholder: "No summary provided",
		}
	case templates.SectionExperience:
		sv := sectionView{Kind: string(section), Title: "Experience", Placeholder: "No experience information provided"}
		for _, exp := range doc.Experience {
			sv.Entries = append(sv.Entries, entryView{
				Heading:    exp.Position,
				SubHeading: exp.Company,
				Meta:       exp.Location,
				DateRange:  dateRange(exp.StartDate, exp.EndDate),
				Bullets:    splitLines(exp.Description),
			})
		}
		return sv
	case templates.SectionEducation:
		sv := sectionView{Kind: string(section), Title: "Education", Placeholder: "No education information provided"}
		for _, edu := range doc.Education {
			degree := edu.Degree
			if edu.Field != "" {
				if degree != "" {
					degree = fmt.Sprintf("%s in %s", edu.Degree, edu.Field)
				} else {
					degree = edu.Field
				}
			}
			sv.Entries = append(sv.Entries, entryView{
				Heading:    edu.Institution,
				SubHeading: degree,
				DateRange:  dateRange(edu.StartDate, edu.EndDate),
				Note:       strings.TrimSpace(edu.Description),
			})
		}
		return sv
	case templates.SectionSkills:
		sv := sectionView{
			Kind:        string(section),
			Title:       "Skills",
			SkillMode:   string(desc.SkillIndicator),
			Columns:     columnsOr(desc.SkillColumns),
			Placeholder: "No skills information provided",
		}
		for _, sk := range doc.Skills {
			level := resumes.ClampLevel(sk.Level)
			sv.Skills = append(sv.Skills, skillView{
				Name:    sk.Name,
				Filled:  level,
				Empty:   5 - level,
				Percent: level * 20,
			})
		}
		return sv
	case templates.SectionLanguages:
		sv := sectionView{Kind: string(section), Title: "Languages", Placeholder: "No languages provided"}
		for _, lang := range doc.Languages {
			sv.Languages = append(sv.Languages, languageView{Name: lang.Language, Proficiency: lang.Proficiency})
		}
		return sv
	case templates.SectionCertifications:
		sv := sectionView{Kind: string(section), Title: "Certifications", Placeholder: "No certifications provided"}
		for _, cert := range doc.Certifications {
			meta := []string{}
			if cert.Issuer != "" {
				meta = append(meta, cert.Issuer)
			}
			if cert.IssueDate != "" {
				meta = append(meta, "Issued "+cert.IssueDate)
			}
			if cert.ExpiryDate != "" {
				meta = append(meta, "Expires "+cert.ExpiryDate)
			}
			if cert.CredentialID != "" {
				meta = append(meta, "ID "+cert.CredentialID)
			}
			sv.Entries = append(sv.Entries, entryView{
				Heading: cert.Name,
				Meta:    strings.Join(meta, " • "),
				Note:    strings.TrimSpace(cert.Description),
			})
		}
		return sv
	}
	return sectionView{Kind: string(section), Title: string(section)}
}

// splitLines turns a free-text paragraph into bullet lines, one per
// non-blank newline-separated line.
func splitLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func dateRange(start, end string) string {
	start = strings.TrimSpace(start)
	end = strings.TrimSpace(end)
	if start == "" && end == "" {
		return ""
	}
	if end == "" {
		end = "Present"
	}
	return start + " - " + end
}

func textOr(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

var hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{3,8}$`)

// cssColor admits only hex color literals into the style block. Colors
// are denormalized from documents, so they are user-reachable data.
func cssColor(s string) template.CSS {
	if hexColorRe.MatchString(s) {
		return template.CSS(s)
	}
	return template.CSS(fallbackColors.Primary)
}

func columnsOr(n int) int {
	if n <= 0 {
		return 2
	}
	return n
}
