package qtdoc

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Section represents a heading in a converted markdown document.
type Section struct {
	Level  int    `json:"level"`
	Title  string `json:"title"`
	Anchor string `json:"anchor"`

	// Offset is the byte offset of the heading line in the document.
	Offset int `json:"-"`
}

var headingRe = regexp.MustCompile(`(?m)^(#{1,6})\s+(.+)$`)

// ExtractSections parses markdown and returns all headings (H1-H6).
// It generates URL-safe anchors and handles duplicates with numeric suffixes.
// Headings inside fenced code blocks are ignored.
func ExtractSections(markdown string) []Section {
	if markdown == "" {
		return nil
	}

	matches := headingRe.FindAllStringSubmatchIndex(markdown, -1)
	if len(matches) == 0 {
		return nil
	}

	fences := codeBlockRanges(markdown)

	sections := make([]Section, 0, len(matches))
	anchorCounts := make(map[string]int)

	for _, m := range matches {
		start := m[0]
		if insideRange(fences, start) {
			continue
		}

		level := m[3] - m[2]
		title := strings.TrimSpace(markdown[m[4]:m[5]])
		baseAnchor := generateAnchor(title)

		anchor := baseAnchor
		if count, exists := anchorCounts[baseAnchor]; exists {
			anchor = baseAnchor + "-" + strconv.Itoa(count)
			anchorCounts[baseAnchor]++
		} else {
			anchorCounts[baseAnchor] = 1
		}

		sections = append(sections, Section{
			Level:  level,
			Title:  title,
			Anchor: anchor,
			Offset: start,
		})
	}

	return sections
}

// SliceSection returns the part of markdown belonging to the section whose
// anchor matches fragment: from its heading up to the next heading of the
// same or a higher level. A fragment with no matching heading returns the
// full document unchanged; missing anchors are common and not an error.
func SliceSection(markdown, fragment string) string {
	if fragment == "" {
		return markdown
	}

	sections := ExtractSections(markdown)
	want := generateAnchor(fragment)

	for i, s := range sections {
		if s.Anchor != want && s.Anchor != fragment {
			continue
		}
		end := len(markdown)
		for _, next := range sections[i+1:] {
			if next.Level <= s.Level {
				end = next.Offset
				break
			}
		}
		return strings.TrimRight(markdown[s.Offset:end], "\n")
	}

	return markdown
}

// codeBlockRanges returns the [start, end) byte ranges of fenced code blocks.
func codeBlockRanges(s string) [][2]int {
	fenceRe := regexp.MustCompile("(?s)```.*?```")
	idx := fenceRe.FindAllStringIndex(s, -1)
	ranges := make([][2]int, 0, len(idx))
	for _, m := range idx {
		ranges = append(ranges, [2]int{m[0], m[1]})
	}
	return ranges
}

func insideRange(ranges [][2]int, pos int) bool {
	for _, r := range ranges {
		if pos >= r[0] && pos < r[1] {
			return true
		}
	}
	return false
}

// generateAnchor creates a URL-safe anchor from a title.
// Converts to lowercase, replaces spaces with hyphens, removes special chars.
func generateAnchor(title string) string {
	var sb strings.Builder
	prevHyphen := false

	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			prevHyphen = false
		} else if unicode.IsSpace(r) || r == '-' {
			if !prevHyphen && sb.Len() > 0 {
				sb.WriteRune('-')
				prevHyphen = true
			}
		}
	}

	return strings.TrimSuffix(sb.String(), "-")
}
