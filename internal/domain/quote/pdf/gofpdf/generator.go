// Package gofpdf renders quote documents with jung-kurt/gofpdf. One
// document build is one straight-line computation: fresh cursor, fresh
// totals, no state shared between builds.
package gofpdf

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/jung-kurt/gofpdf"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cokeke26/cotizador/internal/domain/quote"
	"github.com/cokeke26/cotizador/internal/domain/quote/money"
	qpdf "github.com/cokeke26/cotizador/internal/domain/quote/pdf"
)

const (
	logoName   = "brand-logo"
	logoWidth  = 28.0
	logoHeight = 18.0

	tableWidth   = 170.0
	tableHeaderH = 8.0
	itemLineH    = 6.0
	cellPadX     = 2.0
)

var itemColWidths = [4]float64{92, 18, 30, 30}

type Generator struct {
	log zerolog.Logger
}

func New(log zerolog.Logger) *Generator { return &Generator{log: log} }

func (g *Generator) Generate(q quote.Quote) ([]byte, error) {
	if len(q.Items) == 0 {
		return nil, quote.ErrNoItems
	}

	doc := newDocument(q, g.log)
	if err := doc.render(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := doc.pdf.Output(&buf); err != nil {
		g.log.Error().Err(err).Str("quote", q.Number).Msg("quote pdf: output failed")
		return nil, err
	}
	g.log.Debug().Str("quote", q.Number).Int("pages", doc.pdf.PageCount()).Msg("quote pdf rendered")
	return buf.Bytes(), nil
}

// document assembles one quote onto one or more pages.
type document struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
	log zerolog.Logger

	q      quote.Quote
	totals quote.Totals
	cur    pageCursor

	hasLogo     bool
	logoOpts    gofpdf.ImageOptions
	headerPages int
}

func newDocument(q quote.Quote, log zerolog.Logger) *document {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Cotización "+q.Number, true)
	pdf.SetAutoPageBreak(false, marginBottom)

	d := &document{
		pdf:    pdf,
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
		log:    log,
		q:      q,
		totals: q.Totals(),
	}
	d.hasLogo = d.registerLogo()
	return d
}

func (d *document) render() error {
	d.newPage(false)
	d.drawClientBlock()
	if err := d.drawItemTable(); err != nil {
		return err
	}
	d.drawTotals()
	d.drawNotes()
	return d.pdf.Error()
}

// newPage closes the current page, resets the cursor to the top content
// area and redraws the header. The client block is first-page only.
func (d *document) newPage(continuation bool) {
	d.pdf.AddPage()
	d.cur.reset()
	d.drawHeader(continuation)
}

// registerLogo probes and registers the brand logo up front. Any failure
// leaves the document without a logo; it never fails the build.
func (d *document) registerLogo() bool {
	path := d.q.Brand.LogoPath
	if path == "" {
		return false
	}
	f, err := os.Open(path)
	if err != nil {
		d.log.Warn().Err(err).Str("logo", path).Msg("quote pdf: logo unavailable, continuing without it")
		return false
	}
	defer f.Close()

	_, format, err := image.DecodeConfig(f)
	if err != nil {
		d.log.Warn().Err(err).Str("logo", path).Msg("quote pdf: logo not a decodable image, continuing without it")
		return false
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return false
	}

	d.logoOpts = gofpdf.ImageOptions{ImageType: format}
	d.pdf.RegisterImageOptionsReader(logoName, d.logoOpts, f)
	if d.pdf.Err() {
		d.log.Warn().Err(d.pdf.Error()).Str("logo", path).Msg("quote pdf: logo rejected by renderer, continuing without it")
		d.pdf.ClearError()
		return false
	}
	return true
}

func (d *document) drawHeader(continuation bool) {
	pdf := d.pdf
	y := d.cur.y
	d.headerPages++

	textX := marginX
	if d.hasLogo {
		pdf.ImageOptions(logoName, marginX, y, logoWidth, logoHeight, false, d.logoOpts, 0, "")
		if pdf.Err() {
			d.log.Warn().Err(pdf.Error()).Msg("quote pdf: logo draw failed, continuing without it")
			pdf.ClearError()
		} else {
			textX += logoWidth + 6
		}
	}

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text(textX, y+6, d.tr(d.q.Brand.Name))
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(textX, y+11, d.tr(fmt.Sprintf("%s | %s", d.q.Brand.Email, d.q.Brand.Phone)))

	title := fmt.Sprintf("COTIZACIÓN #%s", d.q.Number)
	if continuation {
		title += " (continuación)"
	}
	pdf.SetFont("Helvetica", "B", 12)
	d.textRight(y+6, title)
	pdf.SetFont("Helvetica", "", 10)
	d.textRight(y+11, "Fecha: "+d.q.IssueDate.Format("02-01-2006"))

	ruleY := y + headerHeight - 10
	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(marginX, ruleY, pageWidth-marginX, ruleY)

	d.cur.advance(headerHeight)
}

func (d *document) drawClientBlock() {
	pdf := d.pdf
	y := d.cur.y

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Text(marginX, y+4, "Cliente")
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(marginX, y+10, d.tr("Nombre: "+d.q.Client.Name))
	pdf.Text(marginX, y+15, d.tr("Empresa: "+d.q.Client.Company))
	pdf.Text(marginX, y+20, d.tr("Email: "+d.q.Client.Email))

	d.cur.advance(30)
}

type rowLayout struct {
	item  quote.Item
	lines []string
	h     float64
}

func (d *document) drawItemTable() error {
	pdf := d.pdf
	pdf.SetFont("Helvetica", "", 9)

	// Measure every row first. Descriptions wrap inside their column; a
	// single row taller than a whole content area cannot be broken and
	// fails the build.
	maxRowH := bottomLimit - marginTop - headerHeight - tableHeaderH
	layouts := make([]rowLayout, 0, len(d.q.Items))
	totalH := tableHeaderH
	for _, it := range d.q.Items {
		lines := wrapText(it.Description, itemColWidths[0]-2*cellPadX, d.measure)
		if len(lines) == 0 {
			lines = []string{""}
		}
		h := float64(len(lines)) * itemLineH
		if h > maxRowH {
			return fmt.Errorf("item %q: %w", trim(it.Description, 40), qpdf.ErrLayoutOverflow)
		}
		layouts = append(layouts, rowLayout{item: it, lines: lines, h: h})
		totalH += h
	}

	// Whole table goes to a fresh page when it would fit there but not
	// here. Longer tables flow row by row instead.
	fullContent := bottomLimit - marginTop - headerHeight
	if d.cur.remaining() < totalH && totalH <= fullContent {
		d.newPage(true)
	}

	d.drawTableHeader()
	for i, rl := range layouts {
		if d.cur.remaining() < rl.h {
			d.newPage(true)
			d.drawTableHeader()
		}
		d.drawItemRow(rl, i%2 == 1)
	}

	d.cur.advance(8)
	return nil
}

func (d *document) drawTableHeader() {
	pdf := d.pdf
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(245, 245, 245)
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetXY(marginX, d.cur.y)

	headers := [4]string{"Descripción", "Cant.", "Precio unit.", "Total"}
	aligns := [4]string{"LM", "RM", "RM", "RM"}
	for i, h := range headers {
		pdf.CellFormat(itemColWidths[i], tableHeaderH, d.tr(h), "1", 0, aligns[i], true, 0, "")
	}
	d.cur.advance(tableHeaderH)
}

func (d *document) drawItemRow(rl rowLayout, shaded bool) {
	pdf := d.pdf
	y := d.cur.y
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetDrawColor(200, 200, 200)

	if shaded {
		pdf.SetFillColor(250, 250, 250)
		pdf.Rect(marginX, y, tableWidth, rl.h, "F")
	}
	x := marginX
	for _, w := range itemColWidths {
		pdf.Rect(x, y, w, rl.h, "D")
		x += w
	}

	for i, line := range rl.lines {
		pdf.Text(marginX+cellPadX, y+itemLineH*float64(i)+4, d.tr(line))
	}

	numbers := [3]string{
		rl.item.Qty.String(),
		money.FormatCLP(rl.item.UnitPrice),
		money.FormatCLP(rl.item.LineTotal()),
	}
	x = marginX + itemColWidths[0]
	baseline := y + rl.h/2 + 1.5
	for i, s := range numbers {
		s = d.tr(s)
		pdf.Text(x+itemColWidths[i+1]-cellPadX-pdf.GetStringWidth(s), baseline, s)
		x += itemColWidths[i+1]
	}

	d.cur.advance(rl.h)
}

func (d *document) drawTotals() {
	if d.cur.remaining() < totalsReserve {
		d.newPage(true)
	}
	pdf := d.pdf
	y := d.cur.y
	t := d.totals
	taxPct := quote.TaxRate.Mul(decimal.NewFromInt(100))

	pdf.SetFont("Helvetica", "", 10)
	d.textRight(y+5, "Subtotal: "+money.FormatCLP(t.Subtotal))
	d.textRight(y+10, fmt.Sprintf("Descuento (%s%%): - %s", d.q.DiscountPct.String(), money.FormatCLP(t.Discount)))
	d.textRight(y+15, "Neto: "+money.FormatCLP(t.Net))
	d.textRight(y+20, fmt.Sprintf("IVA (%s%%): %s", taxPct.String(), money.FormatCLP(t.Tax)))
	pdf.SetFont("Helvetica", "B", 12)
	d.textRight(y+27, "TOTAL: "+money.FormatCLP(t.Total))

	d.cur.advance(37)
}

func (d *document) drawNotes() {
	pdf := d.pdf
	if d.cur.remaining() < 2*noteLineH+12 {
		d.newPage(true)
	}

	y := d.cur.y
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Text(marginX, y+4, d.tr("Notas y condiciones"))
	pdf.SetFont("Helvetica", "", 9)
	pdf.Text(marginX, y+9, d.tr(fmt.Sprintf("Validez: %d días.", d.q.ValidityDays)))
	d.cur.advance(12)

	lines := wrapText(d.q.Notes, contentWidth, d.measure)
	for _, line := range lines {
		// checked before every line, not once per block
		if d.cur.remaining() < 2*noteLineH {
			d.newPage(true)
			pdf.SetFont("Helvetica", "", 9)
		}
		if line != "" {
			pdf.Text(marginX, d.cur.y+3.5, d.tr(line))
		}
		d.cur.advance(noteLineH)
	}
}

// measure returns the rendered width of s in the current font.
func (d *document) measure(s string) float64 {
	return d.pdf.GetStringWidth(d.tr(s))
}

// textRight draws s right-aligned against the content edge with its
// baseline at y.
func (d *document) textRight(y float64, s string) {
	s = d.tr(s)
	d.pdf.Text(pageWidth-marginX-d.pdf.GetStringWidth(s), y, s)
}

func trim(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
