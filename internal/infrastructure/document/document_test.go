package document

import (
	"bytes"
	"testing"

	"clinical-assistant/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsultationReportRenderer_Render(t *testing.T) {
	symptoms := "Chest pain after exercise"
	consultation := &entity.Consultation{
		ID:              7,
		PatientUsername: "alice",
		Name:            "Alice Smith",
		Age:             34,
		Doctor:          "Dr. Sharma (Cardiologist)",
		Date:            "2024-05-01",
		Time:            "10:30:00",
		Symptoms:        &symptoms,
	}

	out, err := NewConsultationReportRenderer().Render(consultation)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.True(t, bytes.Contains(out, []byte("%%EOF")))
}

func TestConsultationReportRenderer_NullSymptoms(t *testing.T) {
	out, err := NewConsultationReportRenderer().Render(&entity.Consultation{ID: 1, Name: "Legacy", Age: 50})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestPDFTextExtractor_RejectsNonPDF(t *testing.T) {
	_, err := NewPDFTextExtractor().ExtractText([]byte("plain text, not a pdf"))
	assert.ErrorIs(t, err, ErrUnreadablePDF)
}

func TestPDFTextExtractor_RejectsEmptyUpload(t *testing.T) {
	_, err := NewPDFTextExtractor().ExtractText(nil)
	assert.ErrorIs(t, err, ErrUnreadablePDF)
}
