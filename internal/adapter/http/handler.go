package http

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"career-reimagined/internal/export"
	"career-reimagined/internal/usecase"
)

// Handler exposes the session state machine over a JSON API. Errors follow
// the one-shot notification model: every failure is a response body, never
// persisted state.
type Handler struct {
	session  *usecase.Session
	exporter *export.Exporter
	log      zerolog.Logger
}

func NewHandler(s *usecase.Session, e *export.Exporter, log zerolog.Logger) *Handler {
	return &Handler{session: s, exporter: e, log: log}
}

func (h *Handler) Register(app *fiber.App) {
	app.Get("/session", h.GetSession)
	app.Post("/session/photo", h.UploadPhoto)
	app.Delete("/session/photo", h.ClearPhoto)
	app.Post("/session/careers", h.AddCareer)
	app.Delete("/session/careers/:career", h.RemoveCareer)
	app.Post("/session/careers/surprise", h.Surprise)
	app.Post("/session/generate", h.Generate)
	app.Post("/session/select", h.SelectCareer)
	app.Post("/session/back", h.Back)
	app.Post("/session/reset", h.Reset)
	app.Get("/session/plan/pdf", h.ExportPlanPDF)
	app.Get("/session/images/:id/download", h.DownloadImage)
}

func (h *Handler) GetSession(c *fiber.Ctx) error {
	return c.JSON(h.session.Snapshot())
}

func (h *Handler) UploadPhoto(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "photo file is required"})
	}

	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "could not read photo"})
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "could not read photo"})
	}

	if err := h.session.AttachPhoto(c.UserContext(), data); err != nil {
		switch {
		case errors.Is(err, usecase.ErrPhotoTooLarge), errors.Is(err, usecase.ErrUnsupportedPhoto):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not process image"})
		}
	}
	return c.JSON(h.session.Snapshot())
}

func (h *Handler) ClearPhoto(c *fiber.Ctx) error {
	h.session.ClearPhoto()
	return c.JSON(h.session.Snapshot())
}

type careerReq struct {
	Career string `json:"career"`
}

func (h *Handler) AddCareer(c *fiber.Ctx) error {
	var req careerReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	if err := h.session.AddCareer(req.Career); err != nil {
		switch {
		case errors.Is(err, usecase.ErrCareerLimit):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
	}
	return c.JSON(h.session.Snapshot())
}

func (h *Handler) RemoveCareer(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("career"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid career name"})
	}
	h.session.RemoveCareer(name)
	return c.JSON(h.session.Snapshot())
}

func (h *Handler) Surprise(c *fiber.Ctx) error {
	h.session.Surprise()
	return c.JSON(h.session.Snapshot())
}

// Generate blocks until the whole image batch has settled, then returns the
// gallery. Individual failures stay on their cards.
func (h *Handler) Generate(c *fiber.Ctx) error {
	if err := h.session.GenerateImages(c.UserContext()); err != nil {
		switch {
		case errors.Is(err, usecase.ErrNoPhoto), errors.Is(err, usecase.ErrNoCareers):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "generation failed"})
		}
	}
	return c.JSON(h.session.Snapshot())
}

func (h *Handler) SelectCareer(c *fiber.Ctx) error {
	var req careerReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	if err := h.session.SelectCareer(c.UserContext(), req.Career); err != nil {
		if errors.Is(err, usecase.ErrUnknownCareer) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Failed to generate plan. Please try again.",
		})
	}
	return c.JSON(h.session.Snapshot())
}

func (h *Handler) Back(c *fiber.Ctx) error {
	h.session.BackToGallery()
	return c.JSON(h.session.Snapshot())
}

func (h *Handler) Reset(c *fiber.Ctx) error {
	h.session.Reset()
	return c.JSON(h.session.Snapshot())
}

// ExportPlanPDF renders the currently viewed plan as a paginated A4 PDF.
// Export failures leave the session untouched; no partial file is sent.
func (h *Handler) ExportPlanPDF(c *fiber.Ctx) error {
	plan, portrait, err := h.session.SelectedPlan()
	if err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}

	pdf, filename, err := h.exporter.ExportPDF(c.UserContext(), plan, portrait)
	if err != nil {
		h.log.Error().Err(err).Str("career", plan.Career).Msg("http: pdf export failed")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Could not export PDF. Please try again.",
		})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(pdf)
}

// DownloadImage serves one generated portrait as a file download named
// reimagined-<career>.<ext>.
func (h *Handler) DownloadImage(c *fiber.Ctx) error {
	img, ok := h.session.ImageByID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "image not found"})
	}
	if img.ImageURL == "" {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "image is not available"})
	}

	mediaType, data, err := parseDataURL(img.ImageURL)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "image could not be decoded"})
	}

	ext := "png"
	switch mediaType {
	case "image/jpeg":
		ext = "jpg"
	case "image/webp":
		ext = "webp"
	}

	c.Set(fiber.HeaderContentType, mediaType)
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("reimagined-%s.%s", img.Career, ext)))
	return c.Send(data)
}

func parseDataURL(u string) (string, []byte, error) {
	if !strings.HasPrefix(u, "data:") {
		return "", nil, fmt.Errorf("not a data URL")
	}
	idx := strings.Index(u, ",")
	if idx < 0 {
		return "", nil, fmt.Errorf("malformed data URL")
	}
	meta := strings.TrimPrefix(u[:idx], "data:")
	mediaType := strings.SplitN(meta, ";", 2)[0]
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}
	data, err := base64.StdEncoding.DecodeString(u[idx+1:])
	if err != nil {
		return "", nil, err
	}
	return mediaType, data, nil
}
