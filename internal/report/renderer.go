package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"

	"github.com/spec-kit/hr-docs/internal/domain"
)

const (
	fontFamily = "Helvetica"
	rowHeight  = 6.0
)

// Options configure the renderer.
type Options struct {
	// UploadDir is the root that employee photo paths are relative to.
	UploadDir string
	// Compress toggles stream compression; tests turn it off to inspect text.
	Compress bool
}

// Renderer writes A4 PDF reports. It never mutates what it is given.
type Renderer struct {
	opts   Options
	logger *zap.Logger
}

// NewRenderer builds a renderer.
func NewRenderer(opts Options, logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{opts: opts, logger: logger}
}

// document wraps an fpdf instance with the translator for Latin-1 text.
type document struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func (r *Renderer) newDocument(title string, margin float64, generatedOn time.Time) *document {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(r.opts.Compress)
	pdf.SetMargins(margin, 12, margin)
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetCreationDate(generatedOn)
	pdf.SetModificationDate(generatedOn)
	pdf.AliasNbPages("")

	d := &document{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	pdf.SetTitle(title, true)

	stamp := "Gerado em " + generatedOn.Format(DateLayout)
	pdf.SetFooterFunc(func() {
		pageWidth, _ := pdf.GetPageSize()
		half := (pageWidth - 2*margin) / 2
		pdf.SetY(-12)
		pdf.SetFont(fontFamily, "I", 8)
		pdf.SetTextColor(110, 110, 110)
		pdf.CellFormat(half, 5, d.tr(stamp), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 5, d.tr(fmt.Sprintf("Página %d/{nb}", pdf.PageNo())), "", 0, "R", false, 0, "")
	})

	pdf.AddPage()
	return d
}

func (d *document) title(text string) {
	d.pdf.SetFont(fontFamily, "B", 15)
	d.pdf.SetTextColor(0, 0, 0)
	d.pdf.CellFormat(0, 9, d.tr(text), "", 1, "L", false, 0, "")
	d.pdf.Ln(2)
}

// fit shortens text with an ellipsis until it fits in width.
func (d *document) fit(text string, width float64) string {
	text = d.tr(strings.TrimSpace(text))
	limit := width - 2
	if d.pdf.GetStringWidth(text) <= limit {
		return text
	}
	for len(text) > 0 && d.pdf.GetStringWidth(text+"...") > limit {
		text = text[:len(text)-1]
	}
	return text + "..."
}

func (d *document) tableHeader(t Table) {
	d.pdf.SetFont(fontFamily, "B", 8.5)
	d.pdf.SetFillColor(235, 235, 235)
	d.pdf.SetDrawColor(150, 150, 150)
	for i, h := range t.Header {
		d.pdf.CellFormat(t.Widths[i], rowHeight+1, d.fit(h, t.Widths[i]), "1", 0, "L", true, 0, "")
	}
	d.pdf.Ln(-1)
	d.pdf.SetFont(fontFamily, "", 8.5)
}

// table draws t, repeating the header row on every new page.
func (d *document) table(t Table) {
	_, pageHeight := d.pdf.GetPageSize()
	_, _, _, bottom := d.pdf.GetMargins()

	d.tableHeader(t)
	for _, row := range t.Rows {
		if d.pdf.GetY()+rowHeight > pageHeight-bottom {
			d.pdf.AddPage()
			d.tableHeader(t)
		}
		for i, cell := range row {
			d.pdf.CellFormat(t.Widths[i], rowHeight, d.fit(cell, t.Widths[i]), "1", 0, "L", false, 0, "")
		}
		d.pdf.Ln(-1)
	}
}

func (d *document) output(w io.Writer) error {
	if err := d.pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

// DocumentListing renders the corporate document table.
func (r *Renderer) DocumentListing(w io.Writer, opts ListingOptions, docs []domain.Document) error {
	d := r.newDocument(opts.Title, 12, opts.GeneratedOn)
	d.title(opts.Title)
	d.table(documentTable(docs, opts.GeneratedOn, opts.WindowDays))
	return d.output(w)
}

// ToxicologyListing renders the toxicology exam table.
func (r *Renderer) ToxicologyListing(w io.Writer, opts ListingOptions, employees []domain.Employee) error {
	d := r.newDocument(opts.Title, 16, opts.GeneratedOn)
	d.title(opts.Title)
	d.table(toxicologyTable(employees, opts.GeneratedOn, opts.WindowDays))
	return d.output(w)
}

// EmployeeProfile renders the profile sheet of one employee. A photo that
// cannot be read is left out.
func (r *Renderer) EmployeeProfile(w io.Writer, e *domain.Employee, generatedOn time.Time) error {
	title := "Ficha do Colaborador"
	d := r.newDocument(title, 16, generatedOn)

	top := d.pdf.GetY()
	if r.embedPhoto(d, e.PhotoPath, 210-16-36, top, 36, 44) {
		d.title(title)
		d.pdf.SetY(top + 46)
	} else {
		d.title(title)
	}

	widths := [4]float64{30, 62, 30, 56}
	for _, row := range employeeFields(e) {
		for i, cell := range row {
			style := ""
			if i%2 == 0 {
				style = "B"
			}
			d.pdf.SetFont(fontFamily, style, 9)
			d.pdf.CellFormat(widths[i], rowHeight+1, d.fit(cell, widths[i]), "1", 0, "L", false, 0, "")
		}
		d.pdf.Ln(-1)
	}
	return d.output(w)
}

// CompanyProfile renders the profile sheet of one company.
func (r *Renderer) CompanyProfile(w io.Writer, c *domain.Company, generatedOn time.Time) error {
	title := "Ficha da Empresa"
	d := r.newDocument(title, 16, generatedOn)
	d.title(title)

	for _, row := range companyFields(c) {
		d.pdf.SetFont(fontFamily, "B", 10)
		d.pdf.CellFormat(50, rowHeight+1, d.fit(row[0], 50), "1", 0, "L", false, 0, "")
		d.pdf.SetFont(fontFamily, "", 10)
		d.pdf.CellFormat(128, rowHeight+1, d.fit(row[1], 128), "1", 1, "L", false, 0, "")
	}
	return d.output(w)
}

func (r *Renderer) embedPhoto(d *document, photoPath string, x, y, w, h float64) bool {
	if strings.TrimSpace(photoPath) == "" || r.opts.UploadDir == "" {
		return false
	}

	path, ok := r.photoFile(photoPath)
	if !ok {
		r.logger.Warn("photo path outside upload dir", zap.String("photo", photoPath))
		return false
	}

	imageType := imageTypeOf(path)
	if imageType == "" {
		return false
	}

	f, err := os.Open(path)
	if err != nil {
		r.logger.Warn("photo unavailable", zap.String("photo", photoPath), zap.Error(err))
		return false
	}
	defer f.Close()

	opts := fpdf.ImageOptions{ImageType: imageType}
	d.pdf.RegisterImageOptionsReader(path, opts, f)
	if d.pdf.Err() {
		r.logger.Warn("photo could not be decoded", zap.String("photo", photoPath), zap.Error(d.pdf.Error()))
		d.pdf.ClearError()
		return false
	}
	d.pdf.ImageOptions(path, x, y, w, h, false, opts, 0, "")
	return true
}

func (r *Renderer) photoFile(photoPath string) (string, bool) {
	root, err := filepath.Abs(r.opts.UploadDir)
	if err != nil {
		return "", false
	}
	path := filepath.Join(root, filepath.Clean("/"+domain.NormalizeUploadPath(photoPath)))
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return path, true
}

func imageTypeOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "JPG"
	case ".png":
		return "PNG"
	case ".gif":
		return "GIF"
	default:
		return ""
	}
}
