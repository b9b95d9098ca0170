// Package profile loads the user's job-search profile: who they are and
// which skills their documents should be matched against.
package profile

import (
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ErrConfiguration marks a missing or invalid profile. It surfaces to the
// top-level caller before any pipeline stage runs.
var ErrConfiguration = errors.New("invalid profile configuration")

const profileFilename = "profile.yaml"

type Profile struct {
	Name   string   `yaml:"name" validate:"required"`
	Email  string   `yaml:"email" validate:"required,email"`
	Skills []string `yaml:"skills" validate:"required,min=1"`

	// Preferences fed into the filter stage; all optional.
	Keywords  []string `yaml:"keywords"`
	Locations []string `yaml:"locations"`
}

var validate = validator.New()

// Load reads and validates profile.yaml from dir.
func Load(dir string) (*Profile, error) {

	data, err := os.ReadFile(filepath.Join(dir, profileFilename))
	if err != nil {
		return nil, errors.Wrapf(ErrConfiguration, "read profile: %v", err)
	}

	var p Profile
	if err = yaml.Unmarshal(data, &p); err != nil {
		return nil, errors.Wrapf(ErrConfiguration, "parse profile: %v", err)
	}

	if err = validate.Struct(p); err != nil {
		return nil, errors.Wrapf(ErrConfiguration, "validate profile: %v", err)
	}

	return &p, nil
}

// SkillSet returns the declared skills as a set for the scorer.
func (p *Profile) SkillSet() map[string]struct{} {
	set := make(map[string]struct{}, len(p.Skills))
	for _, skill := range p.Skills {
		set[skill] = struct{}{}
	}
	return set
}
