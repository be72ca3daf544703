package export

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/briefmate/briefmate/internal/models"
	"github.com/go-pdf/fpdf"
)

const (
	pdfMargin     = 14.0
	pdfRowHeight  = 7.0
	pdfFontFamily = "Helvetica"
	emptyCell     = "-"
)

var headerFill = [3]int{37, 99, 235}

// tableColumn describes one column of a PDF table.
type tableColumn struct {
	Title string
	Width float64
}

var listColumns = []tableColumn{
	{"Titre", 52},
	{"Client", 36},
	{"Statut", 24},
	{"Priorité", 22},
	{"Deadline", 22},
	{"Budget", 26},
}

var taskColumns = []tableColumn{
	{"Statut", 15},
	{"Titre", 60},
	{"Description", 107},
}

// document wraps fpdf with the cp1252 translation needed by the core fonts.
type document struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func newDocument() *document {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, 20, pdfMargin)
	pdf.SetAutoPageBreak(false, 15)
	pdf.SetCreator("Briefmate", true)
	return &document{
		pdf: pdf,
		tr:  pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

func (d *document) text(s string) string {
	return d.tr(spaceNormalizer.Replace(s))
}

func (d *document) heading(title string, size float64, generatedAt time.Time) {
	d.pdf.SetFont(pdfFontFamily, "B", size)
	d.pdf.SetTextColor(0, 0, 0)
	d.pdf.CellFormat(0, 10, d.text(title), "", 1, "L", false, 0, "")

	d.pdf.SetFont(pdfFontFamily, "", 10)
	d.pdf.SetTextColor(100, 100, 100)
	d.pdf.CellFormat(0, 6, d.text("Généré le "+FormatDate(generatedAt, generatedAt.Location())), "", 1, "L", false, 0, "")
	d.pdf.Ln(4)
	d.pdf.SetTextColor(0, 0, 0)
}

func (d *document) tableHeader(columns []tableColumn) {
	d.pdf.SetFont(pdfFontFamily, "B", 9)
	d.pdf.SetFillColor(headerFill[0], headerFill[1], headerFill[2])
	d.pdf.SetTextColor(255, 255, 255)
	for _, col := range columns {
		d.pdf.CellFormat(col.Width, pdfRowHeight, d.text(col.Title), "1", 0, "L", true, 0, "")
	}
	d.pdf.Ln(-1)
	d.pdf.SetFont(pdfFontFamily, "", 8)
	d.pdf.SetTextColor(0, 0, 0)
}

// table draws rows under a header, starting a new page and repeating the
// header whenever the next row would cross the bottom margin.
func (d *document) table(columns []tableColumn, rows [][]string) {
	_, pageHeight := d.pdf.GetPageSize()
	_, _, _, bottom := d.pdf.GetMargins()

	d.tableHeader(columns)
	for _, row := range rows {
		if d.pdf.GetY()+pdfRowHeight > pageHeight-bottom {
			d.pdf.AddPage()
			d.tableHeader(columns)
		}
		for i, col := range columns {
			d.pdf.CellFormat(col.Width, pdfRowHeight, d.fit(row[i], col.Width-2), "1", 0, "L", false, 0, "")
		}
		d.pdf.Ln(-1)
	}
}

// fit translates s and shortens it with an ellipsis until it fits in width.
func (d *document) fit(s string, width float64) string {
	out := d.text(s)
	if d.pdf.GetStringWidth(out) <= width {
		return out
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		out = d.text(string(runes) + "...")
		if d.pdf.GetStringWidth(out) <= width {
			return out
		}
	}
	return out
}

func orDash(s string) string {
	if s == "" {
		return emptyCell
	}
	return s
}

func buildListDocument(rows []Row, generatedAt time.Time) *document {
	d := newDocument()
	d.pdf.AddPage()
	d.heading("Briefmate - Export des briefs", 18, generatedAt)

	loc := generatedAt.Location()
	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		deadline, budget := emptyCell, emptyCell
		if row.Deadline != nil {
			deadline = FormatDate(*row.Deadline, loc)
		}
		if row.Budget != nil {
			budget = FormatMoney(*row.Budget)
		}
		cells = append(cells, []string{
			orDash(row.Title),
			orDash(row.ClientName),
			StatusLabel(row.Status),
			PriorityLabel(row.Priority),
			deadline,
			budget,
		})
	}
	d.table(listColumns, cells)

	return d
}

// WritePDF renders rows as a paginated table. Dates are printed in the
// location of generatedAt.
func WritePDF(w io.Writer, rows []Row, generatedAt time.Time) error {
	d := buildListDocument(rows, generatedAt)
	if err := d.pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

func buildBriefDocument(brief *models.Brief, generatedAt time.Time) *document {
	d := newDocument()
	d.pdf.AddPage()
	d.heading(brief.Title, 20, generatedAt)
	loc := generatedAt.Location()

	d.pdf.SetFont(pdfFontFamily, "B", 14)
	d.pdf.CellFormat(0, 8, "Informations", "", 1, "L", false, 0, "")
	d.pdf.SetFont(pdfFontFamily, "", 10)

	client := "Aucun"
	if brief.Client != nil {
		client = brief.Client.Name
	}
	infos := []string{
		"Client: " + client,
		"Statut: " + StatusLabel(brief.Status),
		"Priorité: " + PriorityLabel(brief.Priority),
	}
	if brief.Deadline != nil {
		infos = append(infos, "Deadline: "+FormatDate(*brief.Deadline, loc))
	}
	if brief.Budget != nil {
		infos = append(infos, "Budget: "+FormatMoney(*brief.Budget))
	}
	if brief.EstimatedHours != nil {
		infos = append(infos, "Heures estimées: "+FormatNumber(*brief.EstimatedHours)+"h")
	}
	infos = append(infos, "Créé le: "+FormatDate(brief.CreatedAt, loc))
	for _, info := range infos {
		d.pdf.CellFormat(0, 6, d.text(info), "", 1, "L", false, 0, "")
	}

	if brief.Description != nil && *brief.Description != "" {
		d.pdf.Ln(6)
		d.pdf.SetFont(pdfFontFamily, "B", 14)
		d.pdf.CellFormat(0, 8, "Description", "", 1, "L", false, 0, "")
		d.pdf.SetFont(pdfFontFamily, "", 10)
		d.pdf.SetAutoPageBreak(true, 15)
		d.pdf.MultiCell(0, 6, d.text(*brief.Description), "", "L", false)
		d.pdf.SetAutoPageBreak(false, 15)
	}

	if len(brief.Tasks) > 0 {
		d.pdf.Ln(6)
		_, pageHeight := d.pdf.GetPageSize()
		if d.pdf.GetY() > pageHeight-50 {
			d.pdf.AddPage()
		}
		d.pdf.SetFont(pdfFontFamily, "B", 14)
		d.pdf.CellFormat(0, 8, d.text("Tâches ("+strconv.Itoa(len(brief.Tasks))+")"), "", 1, "L", false, 0, "")

		cells := make([][]string, 0, len(brief.Tasks))
		for _, task := range brief.Tasks {
			mark := "O"
			if task.Completed {
				mark = "V"
			}
			description := emptyCell
			if task.Description != nil && *task.Description != "" {
				description = *task.Description
			}
			cells = append(cells, []string{mark, task.Title, description})
		}
		d.table(taskColumns, cells)
	}

	return d
}

// WriteBriefPDF renders a single brief with its details and task list.
// brief.Client and brief.Tasks are used when loaded.
func WriteBriefPDF(w io.Writer, brief *models.Brief, generatedAt time.Time) error {
	d := buildBriefDocument(brief, generatedAt)
	if err := d.pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}
