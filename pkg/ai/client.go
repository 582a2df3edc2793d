package ai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"career-reimagined/internal/domain"
	"career-reimagined/internal/model"
)

// ErrNoImage is returned when the model answered with text only (usually a
// refusal or a description) and no inline image data could be extracted.
var ErrNoImage = errors.New("no image generated")

const (
	defaultTextModel  = "gemini-2.5-flash"
	defaultImageModel = "gemini-2.5-flash-image"
)

// Options configures the Gemini client.
type Options struct {
	APIKey     string
	TextModel  string
	ImageModel string
	Logger     zerolog.Logger
}

// Client calls the Gemini API for the three operations the session needs:
// subject classification, career portrait generation, and structured plan
// generation. One best-effort attempt per request; no retries.
type Client struct {
	genai      *genai.Client
	textModel  string
	imageModel string
	log        zerolog.Logger
}

func NewClient(ctx context.Context, opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	textModel := opts.TextModel
	if textModel == "" {
		textModel = defaultTextModel
	}
	imageModel := opts.ImageModel
	if imageModel == "" {
		imageModel = defaultImageModel
	}

	return &Client{
		genai:      client,
		textModel:  textModel,
		imageModel: imageModel,
		log:        opts.Logger,
	}, nil
}

// ClassifySubject determines whether the photo shows a human or an animal and
// returns a short descriptor. Any failure falls back to "Human" instead of
// propagating; classification must never block the upload flow.
func (c *Client) ClassifySubject(ctx context.Context, image []byte, mimeType string) (string, error) {
	contents := []*genai.Content{{
		Parts: []*genai.Part{
			{InlineData: &genai.Blob{Data: image, MIMEType: mimeType}},
			{Text: ClassifyPrompt()},
		},
	}}

	res, err := c.genai.Models.GenerateContent(ctx, c.textModel, contents, nil)
	if err != nil {
		c.log.Warn().Err(err).Msg("ai: subject classification failed, assuming Human")
		return domain.SubjectHuman, nil
	}

	subject := strings.TrimSpace(res.Text())
	if subject == "" {
		c.log.Warn().Msg("ai: empty classification response, assuming Human")
		return domain.SubjectHuman, nil
	}
	return subject, nil
}

// GenerateCareerImage produces a reimagined portrait for one career and
// returns it as a PNG data URL. The response may carry several content
// parts; the first one with inline image data wins. Text-only responses
// are logged for diagnostics and reported as ErrNoImage.
func (c *Client) GenerateCareerImage(ctx context.Context, image []byte, mimeType, career, subject string) (string, error) {
	contents := []*genai.Content{{
		Parts: []*genai.Part{
			{InlineData: &genai.Blob{Data: image, MIMEType: mimeType}},
			{Text: ImagePrompt(career, subject)},
		},
	}}

	res, err := c.genai.Models.GenerateContent(ctx, c.imageModel, contents, nil)
	if err != nil {
		return "", fmt.Errorf("generate image for %q: %w", career, err)
	}

	if len(res.Candidates) > 0 && res.Candidates[0].Content != nil {
		parts := res.Candidates[0].Content.Parts
		for _, p := range parts {
			if p.InlineData != nil && len(p.InlineData.Data) > 0 {
				return "data:image/png;base64," + base64.StdEncoding.EncodeToString(p.InlineData.Data), nil
			}
		}
		for _, p := range parts {
			if p.Text != "" {
				c.log.Warn().Str("career", career).Str("text", p.Text).
					Msg("ai: model returned text instead of an image")
				break
			}
		}
	}

	return "", ErrNoImage
}

// GenerateCareerPlan requests an 8-week transition plan as structured output
// constrained to the plan schema, then validates and decodes it. Failures
// propagate to the caller; nothing is cached here.
func (c *Client) GenerateCareerPlan(ctx context.Context, career, subject string) (*model.CareerPlan, error) {
	contents := []*genai.Content{{
		Parts: []*genai.Part{{Text: PlanPrompt(career, subject)}},
	}}

	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   planResponseSchema(),
	}

	res, err := c.genai.Models.GenerateContent(ctx, c.textModel, contents, cfg)
	if err != nil {
		return nil, fmt.Errorf("generate plan for %q: %w", career, err)
	}

	raw := strings.TrimSpace(res.Text())
	if raw == "" {
		return nil, fmt.Errorf("empty plan response for %q", career)
	}

	plan, err := model.ParsePlan([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("plan for %q: %w", career, err)
	}
	return plan, nil
}

// planResponseSchema mirrors plan.schema.json in the Gemini response-schema
// dialect so the model is constrained server-side, not just validated after.
func planResponseSchema() *genai.Schema {
	linkableItem := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title": {Type: genai.TypeString},
			"url":   {Type: genai.TypeString, Description: "A valid URL or search URL."},
		},
		Required: []string{"title", "url"},
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"career":          {Type: genai.TypeString},
			"isFictional":     {Type: genai.TypeBoolean},
			"intro":           {Type: genai.TypeString},
			"skillsToDevelop": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			"thoughtLeaders":  {Type: genai.TypeArray, Items: linkableItem},
			"recommendedCourses": {
				Type: genai.TypeArray, Items: linkableItem,
			},
			"targetCompanies": {
				Type: genai.TypeArray, Items: linkableItem,
			},
			"weeks": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"weekNumber":  {Type: genai.TypeInteger},
						"theme":       {Type: genai.TypeString},
						"goals":       {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
						"actionItems": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
					},
					Required: []string{"weekNumber", "theme", "goals", "actionItems"},
				},
			},
		},
		Required: []string{
			"career", "isFictional", "intro", "weeks",
			"skillsToDevelop", "thoughtLeaders", "recommendedCourses", "targetCompanies",
		},
	}
}
