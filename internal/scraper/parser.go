package scraper

import (
	"fmt"
	"regexp"
	"strconv"
)

// Счётчик раздела вида "3/5" или "3 / 5".
var progressRe = regexp.MustCompile(`(\d+)\s*/\s*(\d+)`)

// ParseProgress извлекает пару done/total из видимого текста счётчика.
// Берётся первое совпадение.
func ParseProgress(text string) (done, total int, err error) {
	matches := progressRe.FindStringSubmatch(text)
	if matches == nil {
		return 0, 0, fmt.Errorf("no progress counter in %q", text)
	}

	done, err = strconv.Atoi(matches[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid done count: %q: %w", matches[1], err)
	}

	total, err = strconv.Atoi(matches[2])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid total count: %q: %w", matches[2], err)
	}

	return done, total, nil
}

// NeedsExpand reports whether a section with the given counter still has
// unfinished lessons.
func NeedsExpand(done, total int) bool {
	return done < total
}
