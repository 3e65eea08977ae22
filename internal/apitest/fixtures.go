package apitest

import (
	_ "embed"
	"fmt"

	"github.com/riordanpawley/daybook/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed testdata/default.yaml
var defaultFixtures []byte

// Fixtures seeds a Backend
type Fixtures struct {
	Users []FixtureUser `yaml:"users"`
	Tasks []FixtureTask `yaml:"tasks"`
}

// FixtureUser is an account created before the server starts
type FixtureUser struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	FullName string `yaml:"fullName"`
}

// FixtureTask is a task owned by one of the fixture users
type FixtureTask struct {
	Owner       string `yaml:"owner"`
	Title       string `yaml:"title"`
	Date        string `yaml:"date"`
	Completed   bool   `yaml:"completed"`
	Description string `yaml:"description"`
	Priority    string `yaml:"priority"`
	Category    string `yaml:"category"`
}

// ParseFixtures decodes YAML fixtures
func ParseFixtures(data []byte) (Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Fixtures{}, fmt.Errorf("parse fixtures: %w", err)
	}
	return f, nil
}

// DefaultFixtures returns the fixtures bundled with the package
func DefaultFixtures() Fixtures {
	f, err := ParseFixtures(defaultFixtures)
	if err != nil {
		panic(err)
	}
	return f
}

// Seed loads fixtures into the backend. Task ids follow fixture order.
func (b *Backend) Seed(f Fixtures) error {
	for _, u := range f.Users {
		if err := b.AddUser(u.Username, u.Password, u.FullName); err != nil {
			return fmt.Errorf("seed user %s: %w", u.Username, err)
		}
	}
	for _, t := range f.Tasks {
		_, err := b.Create(t.Owner, domain.Task{
			Title:       t.Title,
			TaskDate:    t.Date,
			Completed:   t.Completed,
			Description: t.Description,
			Priority:    domain.Priority(t.Priority),
			Category:    domain.Category(t.Category),
		})
		if err != nil {
			return fmt.Errorf("seed task %q: %w", t.Title, err)
		}
	}
	return nil
}
