package resumes

import "time"

// ResumeResponse is the outward-facing representation of a resume.
type ResumeResponse struct {
	ResumeID       string          `json:"resumeId"`
	Name           string          `json:"name"`
	TemplateID     string          `json:"templateId"`
	ColorID        string          `json:"colorId,omitempty"`
	Colors         Colors          `json:"colors"`
	PersonalInfo   PersonalInfo    `json:"personalInfo"`
	Education      []Education     `json:"education"`
	Experience     []Experience    `json:"experience"`
	Skills         []Skill         `json:"skills"`
	Languages      []Language      `json:"languages,omitempty"`
	Certifications []Certification `json:"certifications,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// ListItemResponse is the compact shape used by the dashboard list.
type ListItemResponse struct {
	ResumeID   string    `json:"resumeId"`
	Name       string    `json:"name"`
	TemplateID string    `json:"templateId"`
	UpdatedAt  time.Time `json:"updatedAt"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toResponse(doc Resume) ResumeResponse {
	return ResumeResponse{
		ResumeID:       doc.ID,
		Name:           doc.Name,
		TemplateID:     doc.TemplateID,
		ColorID:        doc.ColorID,
		Colors:         doc.Colors,
		PersonalInfo:   doc.PersonalInfo,
		Education:      doc.Education,
		Experience:     doc.Experience,
		Skills:         doc.Skills,
		Languages:      doc.Languages,
		Certifications: doc.Certifications,
		CreatedAt:      doc.CreatedAt,
		UpdatedAt:      doc.UpdatedAt,
	}
}

func toListItem(doc Resume) ListItemResponse {
	return ListItemResponse{
		ResumeID:   doc.ID,
		Name:       doc.Name,
		TemplateID: doc.TemplateID,
		UpdatedAt:  doc.UpdatedAt,
		CreatedAt:  doc.CreatedAt,
	}
}
