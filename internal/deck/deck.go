// Package deck reads the slides shown by the carousel.
//
// Two formats are accepted. YAML files (.yaml, .yml) hold a list of
// {title, body} entries. Any other file is plain text where slides are
// separated by a line containing only "---" and the first non-empty line of
// each slide is its title.
package deck

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/andyrewlee/glide/internal/validation"
)

// Separator splits slides in the plain text format.
const Separator = "---"

// ErrEmpty is returned when a deck contains no slides.
var ErrEmpty = errors.New("deck has no slides")

// Slide is one carousel item.
type Slide struct {
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
}

// Text returns the slide as it is copied to the clipboard.
func (s Slide) Text() string {
	switch {
	case s.Title == "":
		return s.Body
	case s.Body == "":
		return s.Title
	default:
		return s.Title + "\n\n" + s.Body
	}
}

// ReadFile loads the slides in path, choosing the format by extension.
func ReadFile(path string) ([]Slide, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open deck: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(f)
	default:
		return Parse(f)
	}
}

// Parse reads the plain text format.
func Parse(r io.Reader) ([]Slide, error) {
	var (
		slides []Slide
		lines  []string
	)
	flush := func() {
		if slide, ok := slideFromLines(lines); ok {
			slides = append(slides, slide)
		}
		lines = lines[:0]
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == Separator {
			flush()
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read deck: %w", err)
	}
	flush()

	if len(slides) == 0 {
		return nil, ErrEmpty
	}
	return slides, nil
}

// ParseYAML reads the YAML format.
func ParseYAML(r io.Reader) ([]Slide, error) {
	var raw []Slide
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("decode deck: %w", err)
	}

	slides := make([]Slide, 0, len(raw))
	for _, s := range raw {
		s.Title = validation.SanitizeInput(s.Title)
		s.Body = strings.TrimRight(validation.SanitizeText(s.Body), "\n")
		if s.Title == "" && strings.TrimSpace(s.Body) == "" {
			continue
		}
		slides = append(slides, s)
	}
	if len(slides) == 0 {
		return nil, ErrEmpty
	}
	return slides, nil
}

func slideFromLines(lines []string) (Slide, bool) {
	start := 0
	for start < len(lines) && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	if start == len(lines) {
		return Slide{}, false
	}
	title := validation.SanitizeInput(strings.TrimLeft(lines[start], "# "))
	body := strings.Trim(validation.SanitizeText(strings.Join(lines[start+1:], "\n")), "\n")
	return Slide{Title: title, Body: body}, true
}
