package pdf

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"dealdesk/internal/models"
)

// Generator renders deal documents (handy to mock in handler tests).
type Generator interface {
	TimelineReport(w io.Writer, view models.DealView, generatedAt time.Time) error
}

// DocumentGenerator renders with gofpdf. With an empty FontPath the core
// Helvetica font is used, which covers Latin-1 only.
type DocumentGenerator struct {
	FontPath string // TTF with the needed glyphs, e.g. "assets/fonts/DejaVuSans.ttf"
	fontName string
}

func NewDocumentGenerator(fontPath string) *DocumentGenerator {
	g := &DocumentGenerator{FontPath: fontPath, fontName: "Helvetica"}
	if fontPath != "" {
		g.fontName = "DejaVu"
	}
	return g
}

// TimelineReport writes a one-deal timeline summary: header, metrics and the
// milestone table.
func (g *DocumentGenerator) TimelineReport(w io.Writer, view models.DealView, generatedAt time.Time) error {
	deal, m := view.Deal, view.Metrics

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Deal %s timeline", deal.DealNumber), false)
	pdf.SetAuthor("dealdesk", false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	g.addUTF8Font(pdf)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(g.fontName, "", 9)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 18)
	pdf.CellFormat(0, 10, "DEAL TIMELINE", "", 1, "C", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("%s  generated %s", deal.DealNumber, generatedAt.UTC().Format("2006-01-02 15:04 MST")),
		"", 1, "C", false, 0, "")
	g.hr(pdf)

	g.sectionTitle(pdf, "Deal")
	g.kvLine(pdf, "Status", string(deal.Status))
	g.kvLine(pdf, "Priority", string(deal.Priority))
	g.kvLine(pdf, "Listing", deal.ListingID)
	g.kvLine(pdf, "Current offer", deal.CurrentOffer.StringFixed(2))
	g.kvLine(pdf, "Offer date", deal.OfferDate.Format(time.DateOnly))
	g.kvLine(pdf, "Closing date", deal.ClosingDate.Format(time.DateOnly))
	g.hr(pdf)

	g.sectionTitle(pdf, "Progress")
	g.kvLine(pdf, "Milestones", fmt.Sprintf("%d of %d complete (%d%%)", m.CompletedMilestones, m.TotalMilestones, m.ProgressPercentage))
	g.kvLine(pdf, "Time elapsed", fmt.Sprintf("%d of %d days (%d%%)", m.ElapsedDays, m.TotalDays, m.TimeProgressPercentage))
	g.kvLine(pdf, "Remaining days", fmt.Sprintf("%d", m.RemainingDays))
	g.kvLine(pdf, "Timeline", string(m.Status))
	if len(m.OverdueCritical) > 0 {
		pdf.SetTextColor(180, 0, 0)
		for _, o := range m.OverdueCritical {
			g.kvLine(pdf, "Overdue", fmt.Sprintf("%s (due %s)", o.MilestoneName, o.DueDate.Format(time.DateOnly)))
		}
		pdf.SetTextColor(0, 0, 0)
	}
	g.hr(pdf)

	g.sectionTitle(pdf, "Milestones")
	widths := []float64{10, 70, 30, 30, 30}
	pdf.SetFont(g.fontName, "B", 10)
	for i, h := range []string{"#", "Milestone", "Due", "Completed", "Flags"} {
		pdf.CellFormat(widths[i], 7, h, "B", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont(g.fontName, "", 10)
	for _, ms := range view.Milestones {
		completed := "-"
		if ms.CompletedAt != nil {
			completed = ms.CompletedAt.UTC().Format(time.DateOnly)
		}
		flags := ""
		if ms.IsCritical {
			flags = "critical"
		}
		if ms.IsOverdue(generatedAt) {
			flags += " overdue"
		}
		row := []string{fmt.Sprintf("%d", ms.SequenceIndex), ms.MilestoneName, ms.DueDate.Format(time.DateOnly), completed, flags}
		for i, v := range row {
			pdf.CellFormat(widths[i], 6, v, "", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render timeline %s: %w", deal.ID, err)
	}
	return nil
}

func (g *DocumentGenerator) sectionTitle(pdf *gofpdf.Fpdf, s string) {
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 7, s, "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
}

func (g *DocumentGenerator) kvLine(pdf *gofpdf.Fpdf, key, val string) {
	pdf.SetFont(g.fontName, "B", 11)
	pdf.CellFormat(45, 6, key+":", "", 0, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, val, "", 1, "L", false, 0, "")
}

func (g *DocumentGenerator) hr(pdf *gofpdf.Fpdf) {
	y := pdf.GetY() + 1.5
	pdf.SetLineWidth(0.2)
	pdf.Line(20, y, 190, y)
	pdf.SetY(y + 2)
}

func (g *DocumentGenerator) addUTF8Font(pdf *gofpdf.Fpdf) {
	if g.FontPath == "" {
		return
	}
	pdf.AddUTF8Font(g.fontName, "", g.FontPath)
	pdf.AddUTF8Font(g.fontName, "B", g.FontPath)
}
