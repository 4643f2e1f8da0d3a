package gofpdf

import "strings"

// Page geometry in millimetres, A4 portrait.
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginX      = 18.0
	marginTop    = 18.0
	marginBottom = 18.0

	contentWidth = pageWidth - 2*marginX
	bottomLimit  = pageHeight - marginBottom

	headerHeight  = 28.0
	noteLineH     = 4.5
	totalsReserve = 55.0 // five totals lines plus surrounding air
)

// pageCursor is the only mutable layout state of one build. It is owned by
// the document and threaded explicitly through every drawing helper;
// nothing captures it implicitly.
type pageCursor struct {
	y    float64
	page int
}

func (c *pageCursor) remaining() float64 { return bottomLimit - c.y }

func (c *pageCursor) advance(h float64) { c.y += h }

func (c *pageCursor) reset() {
	c.y = marginTop
	c.page++
}

// wrapText splits free-form text into lines no wider than maxWidth. Words
// accumulate greedily; a word wider than maxWidth alone still gets its own
// line, so wrapping always terminates. Paragraph breaks in the input
// produce an empty separator line.
func wrapText(text string, maxWidth float64, width func(string) float64) []string {
	var lines []string
	paragraphs := strings.Split(text, "\n")
	for pi, p := range paragraphs {
		line := ""
		for _, word := range strings.Fields(p) {
			test := strings.TrimSpace(line + " " + word)
			if line == "" || width(test) <= maxWidth {
				line = test
				continue
			}
			lines = append(lines, line)
			line = word
		}
		if line != "" {
			lines = append(lines, line)
		}
		if pi < len(paragraphs)-1 {
			lines = append(lines, "")
		}
	}
	return lines
}
