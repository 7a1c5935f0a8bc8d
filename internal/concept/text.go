package concept

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type TextLoader struct{}

func (t *TextLoader) Load(ctx context.Context, source string) (*Concept, error) {
	if err := validateFile(source); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("could not read file %s: %w", source, err)
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return nil, fmt.Errorf("file %s is empty", source)
	}

	return &Concept{
		Text:      text,
		Title:     titleFromText(text, 80),
		Source:    filepath.Base(source),
		WordCount: wordCount(text),
	}, nil
}
