package domain

// Step identifies which view of the session flow is currently active.
// Exactly one step is active at a time.
type Step string

const (
	StepUpload           Step = "UPLOAD"
	StepGeneratingImages Step = "GENERATING_IMAGES"
	StepGallery          Step = "GALLERY"
	StepGeneratingPlan   Step = "GENERATING_PLAN"
	StepPlanView         Step = "PLAN_VIEW"
)

// SubjectHuman is the default subject descriptor. Classification failures
// fall back to it, and the prompt policy branches on it.
const SubjectHuman = "Human"

// CareerImage is one slot of the image-generation fan-out. A record is
// created as a loading placeholder and settles exactly once into either
// an image URL or an error; it never transitions again.
type CareerImage struct {
	ID       string `json:"id"`
	Career   string `json:"career"`
	ImageURL string `json:"imageUrl"`
	Loading  bool   `json:"loading"`
	Error    string `json:"error,omitempty"`
}

// Settled reports whether the record has reached a terminal state.
func (ci CareerImage) Settled() bool {
	return !ci.Loading && (ci.ImageURL != "" || ci.Error != "")
}
