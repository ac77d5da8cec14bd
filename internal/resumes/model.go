package resumes

import "time"

// Resume is the canonical structured representation of one resume: all
// content sections plus the owner's presentation choices. The store owns
// the durable copy; an open editor session owns the live in-memory copy.
type Resume struct {
	ID      string `json:"id"`
	OwnerID string `json:"ownerId"`
	Name    string `json:"name"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	TemplateID string `json:"templateId"`
	ColorID    string `json:"colorId,omitempty"`
	// Colors is the denormalized copy of the chosen scheme, resolved at
	// creation or template selection time. It is not re-derived when the
	// catalog changes.
	Colors Colors `json:"colors"`

	PersonalInfo   PersonalInfo    `json:"personalInfo"`
	Education      []Education     `json:"education"`
	Experience     []Experience    `json:"experience"`
	Skills         []Skill         `json:"skills"`
	Languages      []Language      `json:"languages,omitempty"`
	Certifications []Certification `json:"certifications,omitempty"`
}

// Colors is a resolved color scheme.
type Colors struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Accent    string `json:"accent,omitempty"`
}

// PersonalInfo always exists on a resume; every field is individually
// optional.
type PersonalInfo struct {
	FullName string `json:"fullName"`
	Title    string `json:"title"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Summary  string `json:"summary"`
	Website  string `json:"website,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
}

// Education is one education entry. An empty EndDate means ongoing.
type Education struct {
	ID          string `json:"id"`
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

// Experience is one work experience entry. Templates split Description
// into bullet lines on newlines.
type Experience struct {
	ID          string `json:"id"`
	Company     string `json:"company"`
	Position    string `json:"position"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

// Skill has a 1-5 proficiency level.
type Skill struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Level int    `json:"level"`
}

// Language proficiency is a free-text label, not an enum.
type Language struct {
	Language    string `json:"language"`
	Proficiency string `json:"proficiency"`
}

// Certification is one certification entry.
type Certification struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Issuer       string `json:"issuer"`
	IssueDate    string `json:"issueDate"`
	ExpiryDate   string `json:"expiryDate,omitempty"`
	CredentialID string `json:"credentialId,omitempty"`
	Description  string `json:"description,omitempty"`
}

// ClampLevel forces a skill level into the valid [1,5] range.
func ClampLevel(level int) int {
	if level < 1 {
		return 1
	}
	if level > 5 {
		return 5
	}
	return level
}

// Clone returns a deep copy. The repos and the editor session hand out
// copies so no two writers ever share backing slices.
func (r Resume) Clone() Resume {
	out := r
	out.Education = append([]Education(nil), r.Education...)
	out.Experience = append([]Experience(nil), r.Experience...)
	out.Skills = append([]Skill(nil), r.Skills...)
	out.Languages = append([]Language(nil), r.Languages...)
	out.Certifications = append([]Certification(nil), r.Certifications...)
	return out
}
