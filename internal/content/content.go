package content

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sheriffbukari/xtx-training/internal/quiz"
)

var ErrPathNotFound = errors.New("learning path not found")

// Resource is an external link attached to a learning path.
type Resource struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

// Path is an immutable catalog entry: a named, ordered curriculum of topics.
type Path struct {
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	Duration    string     `json:"duration" yaml:"duration"`
	Level       string     `json:"level" yaml:"level"`
	Topics      []string   `json:"topics" yaml:"topics"`
	Resources   []Resource `json:"resources" yaml:"resources"`
}

// QuizSet is a named, ordered bank of single-choice questions.
type QuizSet struct {
	ID        string          `json:"id" yaml:"id"`
	Title     string          `json:"title" yaml:"title"`
	Questions []quiz.Question `json:"questions" yaml:"questions"`
}

// DocCard is one entry of the documentation browser.
type DocCard struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Benefits    []string `json:"benefits" yaml:"benefits"`
	UseCases    []string `json:"use_cases" yaml:"use_cases"`
}

// Catalog bundles all static content the platform serves. Content is loaded
// once at startup and never mutated.
type Catalog struct {
	Paths    []Path    `yaml:"paths"`
	QuizSets []QuizSet `yaml:"quizzes"`
	Docs     []DocCard `yaml:"docs"`
}

// Load returns the built-in catalog, or the catalog parsed from path when one
// is configured.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return defaultCatalog(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	for _, p := range c.Paths {
		if p.Title == "" || len(p.Topics) == 0 {
			return fmt.Errorf("path %q: title and topics required", p.Title)
		}
	}
	for _, qs := range c.QuizSets {
		if qs.ID == "" || len(qs.Questions) == 0 {
			return fmt.Errorf("quiz %q: id and questions required", qs.ID)
		}
		for i, q := range qs.Questions {
			if !optionExists(q.Options, q.CorrectOption) {
				return fmt.Errorf("quiz %q question %d: correct option %q not among options", qs.ID, i, q.CorrectOption)
			}
		}
	}
	return nil
}

func optionExists(opts []quiz.Option, id string) bool {
	for _, o := range opts {
		if o.ID == id {
			return true
		}
	}
	return false
}

// PathByTitle looks up a learning path by its title key.
func (c *Catalog) PathByTitle(title string) (Path, error) {
	for _, p := range c.Paths {
		if p.Title == title {
			return p, nil
		}
	}
	return Path{}, ErrPathNotFound
}

// QuizByID looks up a quiz bank.
func (c *Catalog) QuizByID(id string) (QuizSet, error) {
	for _, qs := range c.QuizSets {
		if qs.ID == id {
			return qs, nil
		}
	}
	return QuizSet{}, quiz.ErrQuizNotFound
}
