package document

import (
	"bytes"
	"fmt"
	"strconv"

	"clinical-assistant/internal/domain/entity"

	"github.com/go-pdf/fpdf"
)

const reportTitle = "Medical Consultation Report"

// ConsultationReportRenderer lays out a single booking as a printable PDF
type ConsultationReportRenderer struct{}

func NewConsultationReportRenderer() *ConsultationReportRenderer {
	return &ConsultationReportRenderer{}
}

func (r *ConsultationReportRenderer) Render(consultation *entity.Consultation) ([]byte, error) {
	doc := fpdf.New("P", "mm", "Letter", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.SetTitle(reportTitle, true)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 16)
	doc.CellFormat(0, 12, reportTitle, "", 1, "C", false, 0, "")
	doc.Ln(6)

	fields := []struct {
		label string
		value string
	}{
		{"Booked by", consultation.PatientUsername},
		{"Patient Name", consultation.Name},
		{"Age", strconv.Itoa(consultation.Age)},
		{"Doctor", consultation.Doctor},
		{"Date", consultation.Date},
		{"Time", consultation.Time},
	}

	for _, f := range fields {
		doc.SetFont("Helvetica", "B", 12)
		doc.CellFormat(40, 8, tr(f.label+":"), "", 0, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 12)
		doc.CellFormat(0, 8, tr(f.value), "", 1, "L", false, 0, "")
	}

	doc.Ln(4)
	doc.SetFont("Helvetica", "B", 12)
	doc.CellFormat(0, 8, "Symptoms:", "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 12)
	doc.MultiCell(0, 7, tr(consultation.SymptomsText()), "", "L", false)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render consultation %d: %w", consultation.ID, err)
	}
	return buf.Bytes(), nil
}
