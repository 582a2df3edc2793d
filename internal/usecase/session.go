package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"career-reimagined/internal/domain"
	"career-reimagined/internal/model"
)

// AIService is the boundary to the external generative service. The three
// operations mirror the upstream contracts: classification never fails (it
// falls back to "Human"), image generation fails per career, and plan
// generation fails loudly so the caller can surface it.
type AIService interface {
	ClassifySubject(ctx context.Context, image []byte, mimeType string) (string, error)
	GenerateCareerImage(ctx context.Context, image []byte, mimeType, career, subject string) (string, error)
	GenerateCareerPlan(ctx context.Context, career, subject string) (*model.CareerPlan, error)
}

// MaxPhotoBytes is the upload size cap (5 MiB), checked before any network call.
const MaxPhotoBytes = 5 * 1024 * 1024

var (
	ErrPhotoTooLarge    = errors.New("file size too large, please upload an image under 5MB")
	ErrUnsupportedPhoto = errors.New("unsupported image format, use JPEG, PNG or WEBP")
	ErrNoPhoto          = errors.New("no photo uploaded")
	ErrNoCareers        = errors.New("select at least one career")
	ErrCareerLimit      = fmt.Errorf("career list is full (max %d)", domain.MaxCareers)
	ErrEmptyCareer      = errors.New("career name is empty")
	ErrUnknownCareer    = errors.New("career not in the current gallery")
	ErrNoPlanSelected   = errors.New("no plan is currently selected")
)

// Snapshot is a copy of the session state safe to hand to transport layers.
type Snapshot struct {
	Step             domain.Step          `json:"step"`
	HasPhoto         bool                 `json:"hasPhoto"`
	Subject          string               `json:"subject"`
	Careers          []string             `json:"careers"`
	Images           []domain.CareerImage `json:"images"`
	SelectedPlan     *model.CareerPlan    `json:"selectedPlan,omitempty"`
	SelectedImageURL string               `json:"selectedImageUrl,omitempty"`
	LoadingMessage   string               `json:"loadingMessage,omitempty"`
}

// Session owns all state for one user flow: the current step, the uploaded
// photo, the subject descriptor, the career list, the image fan-out slots,
// and the per-career plan cache. All mutation goes through its methods; the
// mutex serializes them, and blocking service calls always happen outside it.
//
// epoch guards against stale completions after a reset, batch against a
// superseded image fan-out: each bumps its counter, and any in-flight
// request that settles under an older value is discarded at write time.
type Session struct {
	mu  sync.Mutex
	ai  AIService
	log zerolog.Logger

	step      domain.Step
	photo     []byte
	photoMIME string
	subject   string
	careers   []string
	images    []domain.CareerImage

	planCache        map[string]*model.CareerPlan
	selectedPlan     *model.CareerPlan
	selectedImageURL string

	loadingMessage string
	epoch          uint64
	batch          uint64
}

func NewSession(ai AIService, log zerolog.Logger) *Session {
	return &Session{
		ai:        ai,
		log:       log,
		step:      domain.StepUpload,
		subject:   domain.SubjectHuman,
		planCache: map[string]*model.CareerPlan{},
	}
}

// AttachPhoto validates and stores the uploaded photo, then runs subject
// classification. Validation happens before any network call; classification
// failure is absorbed and leaves the descriptor at "Human". The step stays
// at UPLOAD either way.
func (s *Session) AttachPhoto(ctx context.Context, data []byte) error {
	if len(data) > MaxPhotoBytes {
		return ErrPhotoTooLarge
	}
	mimeType := http.DetectContentType(data)
	switch mimeType {
	case "image/jpeg", "image/png", "image/webp":
	default:
		return ErrUnsupportedPhoto
	}

	s.mu.Lock()
	epoch := s.epoch
	s.loadingMessage = "Analyzing subject..."
	s.mu.Unlock()

	subject, err := s.ai.ClassifySubject(ctx, data, mimeType)
	if err != nil || strings.TrimSpace(subject) == "" {
		// Classification is advisory; never block the upload flow.
		s.log.Warn().Err(err).Msg("session: classification failed, defaulting to Human")
		subject = domain.SubjectHuman
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		// Reset happened while classifying; the result belongs to a dead flow.
		return nil
	}
	s.photo = data
	s.photoMIME = mimeType
	s.subject = strings.TrimSpace(subject)
	s.loadingMessage = ""
	s.log.Info().Str("subject", s.subject).Msg("session: photo attached")
	return nil
}

// ClearPhoto removes the photo and resets the descriptor without touching
// the career list.
func (s *Session) ClearPhoto() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.photo = nil
	s.photoMIME = ""
	s.subject = domain.SubjectHuman
}

// AddCareer appends a career to the list. Duplicates are silently ignored
// (exact, case-sensitive match); a full list is rejected.
func (s *Session) AddCareer(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyCareer
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.careers {
		if c == name {
			return nil
		}
	}
	if len(s.careers) >= domain.MaxCareers {
		return ErrCareerLimit
	}
	s.careers = append(s.careers, name)
	return nil
}

// RemoveCareer drops a career from the list if present.
func (s *Session) RemoveCareer(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.careers[:0]
	for _, c := range s.careers {
		if c != name {
			kept = append(kept, c)
		}
	}
	s.careers = kept
}

// Surprise replaces the career list with a few distinct suggestions drawn
// at random from the fixed pool.
func (s *Session) Surprise() []string {
	picks := make([]string, 0, domain.SurpriseCount)
	for _, i := range rand.Perm(len(domain.SuggestedCareers))[:domain.SurpriseCount] {
		picks = append(picks, domain.SuggestedCareers[i])
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.careers = picks
	return append([]string(nil), picks...)
}

// GenerateImages runs the per-career portrait fan-out. Every career gets a
// loading placeholder up front; all requests start together and the call
// returns only once each slot has settled (all-settled join, not fail-fast).
// One career's failure stays on its own record and never cancels siblings.
func (s *Session) GenerateImages(ctx context.Context) error {
	s.mu.Lock()
	if len(s.photo) == 0 {
		s.mu.Unlock()
		return ErrNoPhoto
	}
	if len(s.careers) < domain.MinCareers {
		s.mu.Unlock()
		return ErrNoCareers
	}

	// Starting a new batch supersedes any still-running one; its goroutines
	// see the bumped counter and drop their results instead of writing into
	// slots that no longer belong to them.
	s.batch++
	batch := s.batch
	epoch := s.epoch
	photo := s.photo
	mimeType := s.photoMIME
	subject := s.subject
	careers := append([]string(nil), s.careers...)

	s.step = domain.StepGeneratingImages
	s.loadingMessage = fmt.Sprintf("Reimagining your %s...", subject)
	s.images = make([]domain.CareerImage, len(careers))
	for i, career := range careers {
		s.images[i] = domain.CareerImage{
			ID:      uuid.New().String(),
			Career:  career,
			Loading: true,
		}
	}
	s.mu.Unlock()

	var wg sync.WaitGroup
	for i, career := range careers {
		wg.Add(1)
		go func(slot int, career string) {
			defer wg.Done()
			url, err := s.ai.GenerateCareerImage(ctx, photo, mimeType, career, subject)

			s.mu.Lock()
			defer s.mu.Unlock()
			if s.epoch != epoch || s.batch != batch {
				// Superseded by a reset or a newer batch; drop the result.
				s.log.Debug().Str("career", career).Msg("session: discarding stale image result")
				return
			}
			if err != nil {
				s.log.Warn().Err(err).Str("career", career).Msg("session: image generation failed")
				s.images[slot].Loading = false
				s.images[slot].Error = "Failed to generate."
				return
			}
			s.images[slot].Loading = false
			s.images[slot].ImageURL = url
		}(i, career)
	}
	wg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch || s.batch != batch {
		return nil
	}
	s.loadingMessage = ""
	s.step = domain.StepGallery
	return nil
}

// SelectCareer opens the plan view for one generated career. A cached plan
// transitions immediately; otherwise the plan generator runs and the result
// is cached before being shown. On failure the session reverts to the
// gallery and the cache is left untouched.
func (s *Session) SelectCareer(ctx context.Context, career string) error {
	s.mu.Lock()
	var imageURL string
	found := false
	for _, img := range s.images {
		if img.Career == career {
			imageURL = img.ImageURL
			found = true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		return ErrUnknownCareer
	}
	if plan, ok := s.planCache[career]; ok {
		s.selectedPlan = plan
		s.selectedImageURL = imageURL
		s.step = domain.StepPlanView
		s.mu.Unlock()
		return nil
	}

	epoch := s.epoch
	subject := s.subject
	s.step = domain.StepGeneratingPlan
	s.loadingMessage = fmt.Sprintf("Drafting plan for %s as %s...", subject, career)
	s.mu.Unlock()

	plan, err := s.ai.GenerateCareerPlan(ctx, career, subject)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		return nil
	}
	s.loadingMessage = ""
	if err != nil {
		s.log.Error().Err(err).Str("career", career).Msg("session: plan generation failed")
		s.step = domain.StepGallery
		return fmt.Errorf("generate plan: %w", err)
	}
	s.planCache[career] = plan
	s.selectedPlan = plan
	s.selectedImageURL = imageURL
	s.step = domain.StepPlanView
	return nil
}

// BackToGallery leaves the plan view without clearing the cache or images.
func (s *Session) BackToGallery() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step == domain.StepPlanView {
		s.step = domain.StepGallery
	}
}

// Reset wipes the whole session back to the initial upload state: photo,
// descriptor, careers, images, selection, and the entire plan cache. The
// epoch bump makes any still-in-flight completion stale.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epoch++
	s.step = domain.StepUpload
	s.photo = nil
	s.photoMIME = ""
	s.subject = domain.SubjectHuman
	s.careers = nil
	s.images = nil
	s.planCache = map[string]*model.CareerPlan{}
	s.selectedPlan = nil
	s.selectedImageURL = ""
	s.loadingMessage = ""
}

// SelectedPlan returns the plan and portrait currently in view.
func (s *Session) SelectedPlan() (*model.CareerPlan, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step != domain.StepPlanView || s.selectedPlan == nil {
		return nil, "", ErrNoPlanSelected
	}
	return s.selectedPlan, s.selectedImageURL, nil
}

// ImageByID looks up one fan-out record for downloads.
func (s *Session) ImageByID(id string) (domain.CareerImage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, img := range s.images {
		if img.ID == id {
			return img, true
		}
	}
	return domain.CareerImage{}, false
}

// Snapshot copies the observable state for transport layers.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Step:             s.step,
		HasPhoto:         len(s.photo) > 0,
		Subject:          s.subject,
		Careers:          append([]string(nil), s.careers...),
		Images:           append([]domain.CareerImage(nil), s.images...),
		SelectedPlan:     s.selectedPlan,
		SelectedImageURL: s.selectedImageURL,
		LoadingMessage:   s.loadingMessage,
	}
}
