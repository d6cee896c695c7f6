package usecase

import (
	"context"
	"errors"
	"unicode/utf8"

	"clinical-assistant/internal/delivery/dto"
	"clinical-assistant/internal/domain/entity"
	"clinical-assistant/internal/service"
	"clinical-assistant/pkg/clinical"

	"github.com/sirupsen/logrus"
)

// ReportPreviewLength caps the extracted text echoed back to the client
const ReportPreviewLength = 2000

var ErrNoExtractableText = errors.New("could not extract text from PDF")

// TextExtractor reads the text layer of an uploaded document
type TextExtractor interface {
	ExtractText(data []byte) (string, error)
}

type ReportAnalyzerUsecase interface {
	Analyze(ctx context.Context, filename string, data []byte, language string) (*dto.ReportAnalysisResponse, error)
}

type reportAnalyzerUsecase struct {
	log        *logrus.Logger
	extractor  TextExtractor
	translator service.Translator
}

func NewReportAnalyzerUsecase(log *logrus.Logger, extractor TextExtractor, translator service.Translator) ReportAnalyzerUsecase {
	return &reportAnalyzerUsecase{
		log:        log,
		extractor:  extractor,
		translator: translator,
	}
}

func (u *reportAnalyzerUsecase) Analyze(ctx context.Context, filename string, data []byte, language string) (*dto.ReportAnalysisResponse, error) {
	text, err := u.extractor.ExtractText(data)
	if err != nil {
		u.log.Warnf("Failed to extract text from %s: %+v", filename, err)
		return nil, ErrNoExtractableText
	}
	if text == "" {
		return nil, ErrNoExtractableText
	}

	if language == "" {
		language = entity.LanguageEnglish
	}

	preview, truncated := truncateRunes(text, ReportPreviewLength)
	findings := clinical.Extract(text)

	resp := &dto.ReportAnalysisResponse{
		Filename:       filename,
		Language:       language,
		Preview:        preview,
		Truncated:      truncated,
		CharacterCount: utf8.RuneCountInString(text),
		Findings:       make([]dto.FindingResponse, 0, len(findings)),
	}

	for _, f := range findings {
		resp.Findings = append(resp.Findings, dto.FindingResponse{
			Name:     f.Name,
			Value:    f.Value,
			Status:   string(f.Status),
			Abnormal: f.Abnormal(),
			Summary:  u.translate(ctx, f.Display(), language),
		})
	}

	return resp, nil
}

// translate keeps the English line when translation fails
func (u *reportAnalyzerUsecase) translate(ctx context.Context, text, language string) string {
	if language == entity.LanguageEnglish {
		return text
	}

	translated, err := u.translator.Translate(ctx, text, language)
	if err != nil {
		u.log.Warnf("Failed to translate finding to %s: %+v", language, err)
		return text
	}
	return translated
}

func truncateRunes(text string, limit int) (string, bool) {
	if utf8.RuneCountInString(text) <= limit {
		return text, false
	}
	runes := []rune(text)
	return string(runes[:limit]), true
}
