// Manual harness for the PDF export pipeline: renders a canned plan through
// the real chromedp renderer and writes the PDF next to the binary. Useful
// when tuning the print templates, since unit tests fake the rasterizer.
package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"career-reimagined/internal/export"
	"career-reimagined/internal/model"
	infra "career-reimagined/pkg/infrastructure"
)

func main() {
	logger := infra.NewLogger("development")

	renderer := infra.NewChromedpRenderer(os.Getenv("CHROME_PATH"))
	exporter := export.NewExporter(renderer, renderer, logger)

	plan := samplePlan()
	pdf, filename, err := exporter.ExportPDF(context.Background(), plan, placeholderPortrait())
	if err != nil {
		fmt.Fprintf(os.Stderr, "export: %v\n", err)
		os.Exit(2)
	}

	if err := os.WriteFile(filename, pdf, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write: %v\n", err)
		os.Exit(2)
	}
	fmt.Printf("wrote %s (%d bytes)\n", filename, len(pdf))
}

func samplePlan() *model.CareerPlan {
	weeks := make([]model.PlanWeek, 0, model.WeekCount)
	for i := 1; i <= model.WeekCount; i++ {
		weeks = append(weeks, model.PlanWeek{
			WeekNumber:  i,
			Theme:       fmt.Sprintf("Week %d theme with a reasonably long description", i),
			Goals:       []string{"Review the fundamentals", "Shadow a practitioner", "Write a reflection"},
			ActionItems: []string{"Read two chapters", "Schedule one informational interview", "Practice daily"},
		})
	}
	return &model.CareerPlan{
		Career:      "Marine Biologist",
		IsFictional: false,
		Intro: "An eight week transition into marine biology, moving from curiosity " +
			"about the ocean to hands-on field experience and a professional network.",
		SkillsToDevelop: []string{"Scientific diving", "Data analysis", "Species identification", "Grant writing"},
		ThoughtLeaders: []model.LinkableItem{
			{Title: "Sylvia Earle", URL: "https://mission.blue"},
			{Title: "NOAA Ocean Exploration"},
		},
		RecommendedCourses: []model.LinkableItem{
			{Title: "Introduction to Marine Biology", URL: "https://www.coursera.org/learn/marine-biology"},
			{Title: "Oceanography Basics"},
		},
		TargetCompanies: []model.LinkableItem{
			{Title: "Monterey Bay Aquarium", URL: "https://www.montereybayaquarium.org"},
			{Title: "Woods Hole Oceanographic Institution"},
		},
		Weeks: weeks,
	}
}

// placeholderPortrait builds a solid-color PNG data URL standing in for a
// generated portrait.
func placeholderPortrait() string {
	img := image.NewRGBA(image.Rect(0, 0, 640, 480))
	fill := color.RGBA{R: 20, G: 83, B: 45, A: 255}
	for y := 0; y < 480; y++ {
		for x := 0; x < 640; x++ {
			img.Set(x, y, fill)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}
