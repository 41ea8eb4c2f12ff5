package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/andybalholm/cascadia"
	"gopkg.in/yaml.v3"

	"weban-autopilot/internal/scraper"
)

// LoadSelectors загружает селекторы из YAML файла поверх DefaultSelectors
func LoadSelectors(filePath string) (scraper.Selectors, error) {
	selectors := scraper.DefaultSelectors()

	if filePath == "" {
		return selectors, fmt.Errorf("selectors file path is empty")
	}

	// Проверяем существование файла
	if _, err := os.Stat(filePath); err != nil {
		return selectors, fmt.Errorf("selectors file not found: %s: %w", filePath, err)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return selectors, fmt.Errorf("failed to open selectors file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close selectors file: %v\n", closeErr)
		}
	}()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&selectors); err != nil && !errors.Is(err, io.EOF) {
		return selectors, fmt.Errorf("failed to parse selectors YAML: %w", err)
	}

	if err := validateSelectors(selectors); err != nil {
		return selectors, err
	}

	return selectors, nil
}

// Selectors returns the built-in selectors, overridden by SelectorsFile when set.
func (c *Config) Selectors() (scraper.Selectors, error) {
	if c.SelectorsFile == "" {
		return scraper.DefaultSelectors(), nil
	}
	return LoadSelectors(c.SelectorsFile)
}

// validateSelectors проверяет, что CSS селекторы компилируются
func validateSelectors(s scraper.Selectors) error {
	css := []struct {
		key   string
		value string
	}{
		{"return_button", s.ReturnButton},
		{"collapse_item", s.CollapseItem},
		{"collapse_title", s.CollapseTitle},
		{"collapse_count", s.CollapseCount},
		{"collapse_toggle", s.CollapseToggle},
		{"lesson_item", s.LessonItem},
	}
	for _, sel := range css {
		if sel.value == "" {
			return fmt.Errorf("%s is required", sel.key)
		}
		if _, err := cascadia.Compile(sel.value); err != nil {
			return fmt.Errorf("%s: invalid selector %q: %w", sel.key, sel.value, err)
		}
	}

	if s.ReturnText == "" {
		return fmt.Errorf("return_text is required")
	}
	if s.PassedClass == "" {
		return fmt.Errorf("passed_class is required")
	}

	return nil
}
