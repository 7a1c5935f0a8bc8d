// Package concept loads the product concept under research from a text
// file, a PDF brochure, or a URL.
package concept

import (
	"context"
	"fmt"
	"os"
	"strings"
)

type SourceType string

const (
	SourceURL  SourceType = "url"
	SourcePDF  SourceType = "pdf"
	SourceText SourceType = "text"

	// maxInputSize caps concept sources at 10 MB; a product description
	// should be orders of magnitude smaller.
	maxInputSize = 10 * 1024 * 1024
)

func (s SourceType) String() string {
	return string(s)
}

// Concept is the extracted product description presented to respondents.
type Concept struct {
	Text      string
	Title     string
	Source    string
	WordCount int
}

// Loader extracts a concept from one kind of source.
type Loader interface {
	Load(ctx context.Context, source string) (*Concept, error)
}

// DetectSource classifies an input as URL, PDF, or plain text file.
func DetectSource(input string) SourceType {
	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		return SourceURL
	}
	if strings.HasSuffix(strings.ToLower(input), ".pdf") {
		return SourcePDF
	}
	return SourceText
}

// NewLoader picks a loader for the input.
func NewLoader(input string) Loader {
	switch DetectSource(input) {
	case SourceURL:
		return &URLLoader{}
	case SourcePDF:
		return &PDFLoader{}
	default:
		return &TextLoader{}
	}
}

func wordCount(text string) int {
	count := 0
	inWord := false
	for _, r := range text {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			inWord = false
		} else if !inWord {
			inWord = true
			count++
		}
	}
	return count
}

func titleFromText(text string, maxLen int) string {
	line := text
	if idx := strings.IndexByte(text, '\n'); idx > 0 {
		line = text[:idx]
	}
	line = strings.TrimSpace(line)
	if len(line) > maxLen {
		line = line[:maxLen] + "..."
	}
	if line == "" {
		return "Untitled"
	}
	return line
}

func validateFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, not a file", path)
	}
	if info.Size() > maxInputSize {
		return fmt.Errorf("%s is too large (%d MB, max %d MB)", path, info.Size()/(1024*1024), maxInputSize/(1024*1024))
	}
	return nil
}
