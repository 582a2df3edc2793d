package infrastructure

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"career-reimagined/internal/export"
)

// ChromedpRenderer implements the exporter's rasterizer and printer
// capabilities with headless Chrome.
type ChromedpRenderer struct {
	execPath string
}

func NewChromedpRenderer(execPath string) *ChromedpRenderer {
	return &ChromedpRenderer{execPath: execPath}
}

// withDocument boots a headless browser, serves the HTML from a temp file,
// waits for the body, and hands control to fn.
func (r *ChromedpRenderer) withDocument(ctx context.Context, html string, fn chromedp.ActionFunc) error {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.execPath != "" {
		opts = append(opts, chromedp.ExecPath(r.execPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	cctx, cancelCtx := chromedp.NewContext(allocCtx)
	defer cancelCtx()

	ctx2, cancel2 := context.WithTimeout(cctx, 60*time.Second)
	defer cancel2()

	tmpDir, err := os.MkdirTemp("", "careerplan-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return err
	}

	return chromedp.Run(ctx2,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		fn,
	)
}

// RasterizeBlocks screenshots each block element by id at its rendered size.
func (r *ChromedpRenderer) RasterizeBlocks(ctx context.Context, html string, ids []string) (map[string]export.Raster, error) {
	out := make(map[string]export.Raster, len(ids))

	err := r.withDocument(ctx, html, func(ctx context.Context) error {
		for _, id := range ids {
			var shot []byte
			if err := chromedp.Screenshot("#"+id, &shot, chromedp.ByID).Do(ctx); err != nil {
				return fmt.Errorf("screenshot %q: %w", id, err)
			}
			cfg, err := png.DecodeConfig(bytes.NewReader(shot))
			if err != nil {
				return fmt.Errorf("decode screenshot %q: %w", id, err)
			}
			out[id] = export.Raster{PNG: shot, WidthPx: cfg.Width, HeightPx: cfg.Height}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// PrintToPDF renders the paged document to A4 PDF bytes.
func (r *ChromedpRenderer) PrintToPDF(ctx context.Context, html string) ([]byte, error) {
	var pdfBuf []byte
	err := r.withDocument(ctx, html, func(ctx context.Context) error {
		var err error
		// A4: 210mm x 297mm -> inches: 8.27 x 11.69
		pdfBuf, _, err = page.PrintToPDF().WithPrintBackground(true).
			WithPaperWidth(8.27).
			WithPaperHeight(11.69).
			WithPreferCSSPageSize(true).
			Do(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return pdfBuf, nil
}
