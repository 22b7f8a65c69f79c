package enrich

import (
	"strings"

	"github.com/pemistahl/lingua-go"

	"github.com/Vinodk-17/NewsExplorer/pkg/article"
)

const (
	// Spans shorter than this (after trimming) are too short to classify reliably.
	minDetectLen = 10
	// Detection runs on at most this many leading runes; longer input adds
	// cost without improving accuracy.
	maxDetectRunes = 1000
)

// LinguaDetector detects languages with the lingua-go library over a fixed
// language set covering the configured feed countries. Build it once at
// process start; detection is deterministic for a given input.
type LinguaDetector struct {
	detector lingua.LanguageDetector
}

// NewLinguaDetector builds the detector. Construction loads the language
// models and is comparatively expensive, so callers should reuse the result.
func NewLinguaDetector() *LinguaDetector {
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(
			lingua.English, lingua.German, lingua.French, lingua.Spanish,
			lingua.Chinese, lingua.Russian, lingua.Italian, lingua.Portuguese,
			lingua.Japanese, lingua.Korean, lingua.Hindi, lingua.Arabic,
			lingua.Turkish, lingua.Indonesian, lingua.Malay, lingua.Dutch,
		).
		Build()
	return &LinguaDetector{detector: detector}
}

// Detect returns the ISO 639-1 code of the detected language, or "unknown"
// for short spans and failed detections.
func (d *LinguaDetector) Detect(text string) string {
	trimmed := strings.TrimSpace(text)
	if len([]rune(trimmed)) < minDetectLen {
		return article.LanguageUnknown
	}
	runes := []rune(trimmed)
	if len(runes) > maxDetectRunes {
		trimmed = string(runes[:maxDetectRunes])
	}
	lang, ok := d.detector.DetectLanguageOf(trimmed)
	if !ok {
		return article.LanguageUnknown
	}
	code := strings.ToLower(lang.IsoCode639_1().String())
	if code == "" {
		return article.LanguageUnknown
	}
	return code
}
