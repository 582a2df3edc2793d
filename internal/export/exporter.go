package export

import (
	"bytes"
	"context"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"career-reimagined/internal/model"
)

//go:embed blocks.html.tmpl pages.html.tmpl
var templateFS embed.FS

var (
	blocksTmpl = template.Must(template.ParseFS(templateFS, "blocks.html.tmpl"))
	pagesTmpl  = template.Must(template.ParseFS(templateFS, "pages.html.tmpl"))

	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Raster is one content block rendered to an image.
type Raster struct {
	PNG      []byte
	WidthPx  int
	HeightPx int
}

// Rasterizer renders the given HTML document and screenshots each element by
// id. Treated as an external capability; the chromedp implementation lives
// in pkg/infrastructure.
type Rasterizer interface {
	RasterizeBlocks(ctx context.Context, html string, ids []string) (map[string]Raster, error)
}

// Printer turns a final paged HTML document into PDF bytes.
type Printer interface {
	PrintToPDF(ctx context.Context, html string) ([]byte, error)
}

// Exporter assembles a paginated PDF from one plan and its portrait: render
// the print blocks, rasterize them, run the layout, and print the paged
// document. Best effort — any failure returns an error and no partial file
// is ever produced.
type Exporter struct {
	rasterizer Rasterizer
	printer    Printer
	log        zerolog.Logger
}

func NewExporter(r Rasterizer, p Printer, log zerolog.Logger) *Exporter {
	return &Exporter{rasterizer: r, printer: p, log: log}
}

// Filename derives the download name from the career, whitespace collapsed
// to underscores.
func Filename(career string) string {
	return whitespaceRe.ReplaceAllString(strings.TrimSpace(career), "_") + "_Plan.pdf"
}

// BlockIDs returns the fixed rasterization order for a plan: cover text,
// the four profile blocks, then one block per week.
func BlockIDs(plan *model.CareerPlan) []string {
	ids := []string{"cover", "skills", "resources", "leaders", "companies"}
	for _, w := range plan.Weeks {
		ids = append(ids, fmt.Sprintf("week-%d", w.WeekNumber))
	}
	return ids
}

// ExportPDF produces the document and its filename.
func (e *Exporter) ExportPDF(ctx context.Context, plan *model.CareerPlan, portraitDataURL string) ([]byte, string, error) {
	imgW, imgH, err := decodePortraitSize(portraitDataURL)
	if err != nil {
		return nil, "", fmt.Errorf("portrait image: %w", err)
	}

	var buf bytes.Buffer
	if err := blocksTmpl.Execute(&buf, plan); err != nil {
		return nil, "", fmt.Errorf("render blocks: %w", err)
	}

	ids := BlockIDs(plan)
	rasters, err := e.rasterizer.RasterizeBlocks(ctx, buf.String(), ids)
	if err != nil {
		return nil, "", fmt.Errorf("rasterize blocks: %w", err)
	}
	for _, id := range ids {
		if _, ok := rasters[id]; !ok {
			return nil, "", fmt.Errorf("rasterize blocks: missing block %q", id)
		}
	}

	cover := rasters["cover"]
	coverLayout := LayoutCover(HeightMM(cover.WidthPx, cover.HeightPx), imgW, imgH)

	profile := make([]Block, 0, 4)
	for _, id := range []string{"skills", "resources", "leaders", "companies"} {
		r := rasters[id]
		profile = append(profile, Block{ID: id, HeightMM: HeightMM(r.WidthPx, r.HeightPx)})
	}
	weeks := make([]Block, 0, len(plan.Weeks))
	for _, w := range plan.Weeks {
		id := fmt.Sprintf("week-%d", w.WeekNumber)
		r := rasters[id]
		weeks = append(weeks, Block{ID: id, HeightMM: HeightMM(r.WidthPx, r.HeightPx)})
	}

	pages := PaginateContent(profile, weeks)

	doc, err := buildPrintDocument(coverLayout, portraitDataURL, pages, rasters)
	if err != nil {
		return nil, "", err
	}

	pdf, err := e.printer.PrintToPDF(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("print pdf: %w", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		return nil, "", fmt.Errorf("invalid PDF output (len=%d)", len(pdf))
	}

	e.log.Info().Str("career", plan.Career).Int("pages", len(pages)+1).Msg("export: pdf assembled")
	return pdf, Filename(plan.Career), nil
}

type printItem struct {
	Header     bool
	Text       string
	Src        template.URL
	X, Y, W, H float64
}

type printPage struct {
	Items []printItem
}

func buildPrintDocument(cover CoverLayout, portraitDataURL string, pages []Page, rasters map[string]Raster) (string, error) {
	rasterSrc := func(id string) template.URL {
		return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(rasters[id].PNG))
	}

	coverPage := printPage{Items: []printItem{{
		Src: rasterSrc("cover"),
		X:   cover.Text.X, Y: cover.Text.Y, W: cover.Text.W, H: cover.Text.H,
	}}}
	if cover.HasImage {
		coverPage.Items = append(coverPage.Items, printItem{
			Src: template.URL(portraitDataURL),
			X:   cover.Portrait.X, Y: cover.Portrait.Y, W: cover.Portrait.W, H: cover.Portrait.H,
		})
	}

	out := []printPage{coverPage}
	for _, p := range pages {
		var pp printPage
		for _, it := range p.Items {
			if it.Header {
				pp.Items = append(pp.Items, printItem{
					Header: true, Text: it.Title,
					X: it.X, Y: it.Y, W: it.W, H: it.H,
				})
				continue
			}
			pp.Items = append(pp.Items, printItem{
				Src: rasterSrc(it.ID),
				X:   it.X, Y: it.Y, W: it.W, H: it.H,
			})
		}
		out = append(out, pp)
	}

	var buf bytes.Buffer
	if err := pagesTmpl.Execute(&buf, map[string]any{"Pages": out}); err != nil {
		return "", fmt.Errorf("render pages: %w", err)
	}
	return buf.String(), nil
}

// decodePortraitSize reads the portrait's intrinsic dimensions from its data
// URL. A portrait that cannot be decoded fails the whole export.
func decodePortraitSize(dataURL string) (int, int, error) {
	idx := strings.Index(dataURL, ",")
	if !strings.HasPrefix(dataURL, "data:") || idx < 0 {
		return 0, 0, fmt.Errorf("not a data URL")
	}
	raw, err := base64.StdEncoding.DecodeString(dataURL[idx+1:])
	if err != nil {
		return 0, 0, fmt.Errorf("decode base64: %w", err)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return 0, 0, fmt.Errorf("decode image: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}
