package export

// Page geometry: A4 in millimetres with fixed margins. Content blocks are
// rasterized at a fixed pixel width and scaled onto the content width, so
// all layout math happens in mm.
const (
	PageWidthMM    = 210.0
	PageHeightMM   = 297.0
	MarginMM       = 20.0
	ContentWidthMM = PageWidthMM - 2*MarginMM

	// Rasterization width in CSS pixels; maps 1:1 onto ContentWidthMM.
	BlockWidthPx = 640

	blockSpacingMM   = 5.0
	headerHeightMM   = 8.0
	coverGapMM       = 15.0
	roadmapReserveMM = 25.0
)

// Block is a rasterized content unit with its height already converted to mm.
type Block struct {
	ID       string
	HeightMM float64
}

// Placement positions one item on a page. Headers carry their text and are
// drawn by the printer; blocks reference a raster by ID.
type Placement struct {
	ID     string
	Header bool
	Title  string
	X, Y   float64
	W, H   float64
}

// Page is an ordered set of placements; order follows the fixed block
// sequence, top to bottom.
type Page struct {
	Items []Placement
}

// HeightMM converts a raster's pixel dimensions to its printed height.
func HeightMM(widthPx, heightPx int) float64 {
	if widthPx <= 0 {
		return 0
	}
	return float64(heightPx) * ContentWidthMM / float64(widthPx)
}

// CoverLayout positions the cover page: the text block (title + intro) at the
// top and the portrait scaled to fit whatever vertical space remains, aspect
// preserved and centered horizontally.
type CoverLayout struct {
	Text     Placement
	Portrait Placement
	HasImage bool
}

// LayoutCover computes the cover page from the measured text-block height and
// the portrait's intrinsic pixel dimensions.
func LayoutCover(textHeightMM float64, imgWidthPx, imgHeightPx int) CoverLayout {
	out := CoverLayout{
		Text: Placement{ID: "cover", X: MarginMM, Y: MarginMM, W: ContentWidthMM, H: textHeightMM},
	}

	cursor := MarginMM + textHeightMM + coverGapMM
	maxH := PageHeightMM - cursor - MarginMM
	if maxH <= 0 || imgWidthPx <= 0 || imgHeightPx <= 0 {
		return out
	}

	w := ContentWidthMM
	h := float64(imgHeightPx) * ContentWidthMM / float64(imgWidthPx)
	if h > maxH {
		h = maxH
		w = float64(imgWidthPx) * maxH / float64(imgHeightPx)
	}

	out.HasImage = true
	out.Portrait = Placement{
		ID: "portrait",
		X:  (PageWidthMM - w) / 2,
		Y:  cursor,
		W:  w,
		H:  h,
	}
	return out
}

// PaginateContent lays the profile blocks and then the week blocks onto
// content pages. Before each item the remaining space on the current page is
// checked; an item that would overflow starts a new page instead. A block is
// never split across pages. The roadmap section reserves room for its header
// plus the top of the first week so the heading is never orphaned at a page
// bottom.
func PaginateContent(profile []Block, weeks []Block) []Page {
	var pages []Page
	cur := Page{}
	cursor := MarginMM
	limit := PageHeightMM - MarginMM

	nextPage := func() {
		pages = append(pages, cur)
		cur = Page{}
		cursor = MarginMM
	}

	placeHeader := func(title string) {
		if cursor+headerHeightMM > limit && cursor > MarginMM {
			nextPage()
		}
		cur.Items = append(cur.Items, Placement{
			Header: true,
			Title:  title,
			X:      MarginMM,
			Y:      cursor,
			W:      ContentWidthMM,
			H:      headerHeightMM,
		})
		cursor += headerHeightMM
	}

	placeBlock := func(b Block) {
		if cursor+b.HeightMM > limit && cursor > MarginMM {
			nextPage()
		}
		cur.Items = append(cur.Items, Placement{
			ID: b.ID,
			X:  MarginMM,
			Y:  cursor,
			W:  ContentWidthMM,
			H:  b.HeightMM,
		})
		cursor += b.HeightMM + blockSpacingMM
	}

	placeHeader("Professional Profile")
	for _, b := range profile {
		placeBlock(b)
	}

	if cursor+roadmapReserveMM > limit {
		nextPage()
	} else {
		cursor += blockSpacingMM
	}
	placeHeader("8-Week Roadmap")
	for _, b := range weeks {
		placeBlock(b)
	}

	pages = append(pages, cur)
	return pages
}
