package service

import (
	"context"

	"clinical-assistant/internal/domain/entity"
)

// Translator renders generated text in the reader's language
type Translator interface {
	Translate(ctx context.Context, text, language string) (string, error)
}

type passthroughTranslator struct{}

// NewPassthroughTranslator returns text unchanged. English needs no model, and
// no translation model is bundled for the other languages.
func NewPassthroughTranslator() Translator {
	return passthroughTranslator{}
}

func (passthroughTranslator) Translate(_ context.Context, text, _ string) (string, error) {
	return text, nil
}

// IsSupportedLanguage checks language against the interface languages
func IsSupportedLanguage(language string) bool {
	return language == entity.LanguageEnglish || language == entity.LanguageHindi
}
