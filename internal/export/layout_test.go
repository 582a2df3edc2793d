package export

import (
	"fmt"
	"testing"
)

func profileBlocks(h float64) []Block {
	return []Block{
		{ID: "skills", HeightMM: h},
		{ID: "resources", HeightMM: h},
		{ID: "leaders", HeightMM: h},
		{ID: "companies", HeightMM: h},
	}
}

func weekBlocks(h float64) []Block {
	out := make([]Block, 0, 8)
	for i := 1; i <= 8; i++ {
		out = append(out, Block{ID: fmt.Sprintf("week-%d", i), HeightMM: h})
	}
	return out
}

func TestHeightMM(t *testing.T) {
	// 640px wide maps onto the 170mm content width.
	if got := HeightMM(BlockWidthPx, BlockWidthPx); got != ContentWidthMM {
		t.Fatalf("square raster: got %.2f, want %.2f", got, ContentWidthMM)
	}
	if got := HeightMM(0, 100); got != 0 {
		t.Fatalf("zero width must yield 0, got %.2f", got)
	}
}

func TestPaginateContentNeverOverflows(t *testing.T) {
	pages := PaginateContent(profileBlocks(60), weekBlocks(45))
	if len(pages) < 2 {
		t.Fatalf("expected multiple pages, got %d", len(pages))
	}
	limit := PageHeightMM - MarginMM
	for pi, p := range pages {
		if len(p.Items) == 0 {
			t.Fatalf("page %d is empty", pi)
		}
		for _, it := range p.Items {
			if it.Y < MarginMM {
				t.Fatalf("page %d: item %q above top margin (y=%.2f)", pi, it.ID, it.Y)
			}
			if it.Y+it.H > limit+0.001 {
				t.Fatalf("page %d: item %q crosses bottom margin (y=%.2f h=%.2f)", pi, it.ID, it.Y, it.H)
			}
		}
	}
}

func TestPaginateContentKeepsOrder(t *testing.T) {
	pages := PaginateContent(profileBlocks(30), weekBlocks(30))

	var ids []string
	for _, p := range pages {
		prevY := -1.0
		for _, it := range p.Items {
			if it.Y < prevY {
				t.Fatalf("items out of top-to-bottom order on a page")
			}
			prevY = it.Y
			if !it.Header {
				ids = append(ids, it.ID)
			}
		}
	}

	want := []string{"skills", "resources", "leaders", "companies",
		"week-1", "week-2", "week-3", "week-4", "week-5", "week-6", "week-7", "week-8"}
	if len(ids) != len(want) {
		t.Fatalf("got %d blocks, want %d: %v", len(ids), len(want), ids)
	}
	for i, id := range want {
		if ids[i] != id {
			t.Fatalf("block %d = %q, want %q", i, ids[i], id)
		}
	}
}

func TestPaginateContentNeverSplitsBlocks(t *testing.T) {
	// A block taller than the page still gets placed whole on its own page.
	tall := PageHeightMM * 1.5
	pages := PaginateContent([]Block{{ID: "skills", HeightMM: tall}}, weekBlocks(20))

	for pi, p := range pages {
		for _, it := range p.Items {
			if it.ID == "skills" {
				if it.Y != MarginMM {
					t.Fatalf("oversized block not at top of its page (y=%.2f)", it.Y)
				}
				if len(p.Items) > 1 && p.Items[0].ID != "skills" && !p.Items[0].Header {
					t.Fatalf("page %d mixes other blocks before the oversized one", pi)
				}
				return
			}
		}
	}
	t.Fatalf("oversized block was dropped")
}

func TestPaginateContentRoadmapHeaderNotOrphaned(t *testing.T) {
	// Fill the first page so the roadmap reserve cannot fit; the header must
	// move to the next page together with the first week.
	pages := PaginateContent(profileBlocks(58), weekBlocks(40))

	for _, p := range pages {
		for i, it := range p.Items {
			if it.Header && it.Title == "8-Week Roadmap" {
				if i == len(p.Items)-1 {
					t.Fatalf("roadmap header orphaned at page bottom")
				}
				next := p.Items[i+1]
				if next.ID != "week-1" {
					t.Fatalf("item after roadmap header = %q, want week-1", next.ID)
				}
				return
			}
		}
	}
	t.Fatalf("roadmap header missing")
}

func TestLayoutCoverScalesPortrait(t *testing.T) {
	// Plenty of room: full content width, aspect preserved.
	c := LayoutCover(40, 640, 480)
	if !c.HasImage {
		t.Fatalf("expected a portrait placement")
	}
	if c.Portrait.W != ContentWidthMM {
		t.Fatalf("width = %.2f, want %.2f", c.Portrait.W, ContentWidthMM)
	}
	wantH := 480.0 * ContentWidthMM / 640.0
	if diff := c.Portrait.H - wantH; diff > 0.001 || diff < -0.001 {
		t.Fatalf("height = %.2f, want %.2f", c.Portrait.H, wantH)
	}

	// Tall portrait: clamped to remaining height, width shrinks, centered.
	c = LayoutCover(40, 480, 2000)
	maxH := PageHeightMM - (MarginMM + 40 + 15) - MarginMM
	if c.Portrait.H > maxH+0.001 {
		t.Fatalf("portrait height %.2f exceeds available %.2f", c.Portrait.H, maxH)
	}
	wantCenter := PageWidthMM / 2
	gotCenter := c.Portrait.X + c.Portrait.W/2
	if diff := gotCenter - wantCenter; diff > 0.001 || diff < -0.001 {
		t.Fatalf("portrait not centered: %.2f vs %.2f", gotCenter, wantCenter)
	}
}

func TestLayoutCoverNoRoomForImage(t *testing.T) {
	c := LayoutCover(260, 640, 480)
	if c.HasImage {
		t.Fatalf("no vertical space left, portrait should be dropped")
	}
	if c.Text.H != 260 {
		t.Fatalf("text height = %.2f, want 260", c.Text.H)
	}
}
