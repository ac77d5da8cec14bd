package optimize

import "errors"

// Request is the payload sent to the optimizer: the rewriteable text of
// a resume plus the job it should be tailored to.
type Request struct {
	ResumeID               string   `json:"resumeId"`
	Summary                string   `json:"summary"`
	EducationDescriptions  []string `json:"educationDescriptions"`
	ExperienceDescriptions []string `json:"experienceDescriptions"`
	TargetJob              string   `json:"targetJob"`
}

// Result carries the optimizer's rewritten text. A nil field was not
// returned and leaves the corresponding part of the document untouched.
type Result struct {
	Summary                *string   `json:"summary,omitempty"`
	EducationDescriptions  *[]string `json:"educationDescriptions,omitempty"`
	ExperienceDescriptions *[]string `json:"experienceDescriptions,omitempty"`
}

var (
	// ErrAlreadyPending rejects a second optimization request while one
	// is still in flight for the same resume.
	ErrAlreadyPending = errors.New("optimization already pending for resume")
	// ErrUnknownJob marks a result for which no pending request exists.
	ErrUnknownJob = errors.New("no pending optimization for resume")
)
