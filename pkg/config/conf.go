package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/mchmarny/gradepoint/pkg/gradebook"
)

const (
	AppName             = "gradepoint"
	GradebookFileName   = "gradebook.yaml"
	FormatJSON          = "json"
	FormatYAML          = "yaml"
	dirMode             = 0700
	fileMode            = 0600
	concurrencyFallback = 4
)

// Settings are runtime defaults read from the environment.
type Settings struct {
	LogLevel    string `env:"GRADEPOINT_LOG_LEVEL" envDefault:"info"`
	Format      string `env:"GRADEPOINT_FORMAT" envDefault:"json"`
	Concurrency int    `env:"GRADEPOINT_CONCURRENCY" envDefault:"4"`
	Gradebook   string `env:"GRADEPOINT_GRADEBOOK"`
	Token       string `env:"GRADEPOINT_TOKEN"`
	NoColor     string `env:"NO_COLOR"`
}

// LoadSettings parses settings from the environment.
func LoadSettings() (*Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	s.Format = NormalizeFormat(s.Format)
	if s.Concurrency < 1 {
		s.Concurrency = concurrencyFallback
	}
	return &s, nil
}

// Color reports whether log output may use terminal colors.
func (s *Settings) Color() bool {
	return s.NoColor == ""
}

// NormalizeFormat maps yml/yaml to yaml and anything else to json.
func NormalizeFormat(f string) string {
	switch strings.ToLower(strings.TrimSpace(f)) {
	case FormatYAML, "yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// GetOrCreateHomeDir returns the app directory under the user home.
// The create flag is set to true if the directory was created.
func GetOrCreateHomeDir(name string) (path string, created bool, err error) {
	if name == "" {
		return "", false, errors.New("name cannot be empty")
	}

	if !strings.HasPrefix(name, ".") {
		name = "." + name
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", false, fmt.Errorf("failed to get user home dir: %w", err)
	}
	slog.Debug("home dir", "path", home)

	dir := filepath.Join(home, name)
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		slog.Debug("creating dir", "path", dir)
		if err := os.Mkdir(dir, dirMode); err != nil {
			return "", false, fmt.Errorf("failed to create dir %s: %w", dir, err)
		}
		created = true
	}
	return dir, created, nil
}

// DefaultGradebookPath returns the gradebook path used when none is given.
func DefaultGradebookPath() (string, error) {
	dir, _, err := GetOrCreateHomeDir(AppName)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, GradebookFileName), nil
}

// WriteSample writes a sample gradebook to path. Existing files are left alone.
func WriteSample(path string) error {
	if path == "" {
		return errors.New("gradebook path required")
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("gradebook already exists: %s", path)
	}

	b, err := gradebook.Encode(Sample())
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, fileMode); err != nil {
		return fmt.Errorf("failed to write gradebook file %s: %w", path, err)
	}
	return nil
}

// Sample returns a small gradebook showing weighted and point-based courses.
func Sample() *gradebook.Gradebook {
	return &gradebook.Gradebook{
		Institutions: []*gradebook.Institution{
			{Name: "State University", Points: "university"},
		},
		Courses: []*gradebook.Course{
			{
				Name:        "Neural Computation",
				CRN:         14469,
				Instructor:  "Cengiz Pehlevan",
				Institution: "State University",
				Units:       4,
				Scale:       "STD",
				Mode:        "weighted",
				Categories: []*gradebook.Category{
					{
						Name:   "Assignments",
						Weight: 0.3,
						Drops:  1,
						Scores: []gradebook.Score{{Earned: 9, Possible: 10}, {Earned: 6, Possible: 10}, {Earned: 10, Possible: 10}},
					},
					{
						Name:    "Midterm",
						Weight:  0.3,
						Replace: &gradebook.Replacement{Count: 1, From: "Final"},
						Scores:  []gradebook.Score{{Earned: 71, Possible: 100}},
					},
					{
						Name:   "Final",
						Weight: 0.4,
						Scores: []gradebook.Score{{Earned: 88, Possible: 100}},
					},
				},
			},
			{
				Name:        "Organic Chemistry",
				Institution: "State University",
				Units:       3,
				Scale:       "U11",
				Mode:        "points",
				TotalPoints: 1000,
				Extra:       5,
				Categories: []*gradebook.Category{
					{Name: "Labs", Drops: 1, Scores: []gradebook.Score{{Earned: 40, Possible: 50}, {Earned: 48, Possible: 50}}},
					{Name: "Exams", Scores: []gradebook.Score{{Earned: 172, Possible: 200}}},
				},
			},
		},
	}
}
