package fixtures

import (
	"embed"
	"fmt"

	"resqall/internal/core/domain"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

var validate = validator.New()

// Identities returns the statically embedded identity list
func Identities() ([]domain.Identity, error) {
	var identities []domain.Identity
	if err := load("data/identities.yaml", &identities); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(identities))
	for i := range identities {
		if err := validate.Struct(&identities[i]); err != nil {
			return nil, fmt.Errorf("identities[%d]: %w", i, err)
		}
		if seen[identities[i].Email] {
			return nil, fmt.Errorf("identities[%d]: duplicate email %s", i, identities[i].Email)
		}
		seen[identities[i].Email] = true
	}
	return identities, nil
}

// Reports returns the mock field reports
func Reports() ([]domain.Report, error) {
	var reports []domain.Report
	if err := load("data/reports.yaml", &reports); err != nil {
		return nil, err
	}

	for i := range reports {
		if err := validate.Struct(&reports[i]); err != nil {
			return nil, fmt.Errorf("reports[%d]: %w", i, err)
		}
	}
	return reports, nil
}

func load(name string, out interface{}) error {
	data, err := dataFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read fixture %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse fixture %s: %w", name, err)
	}
	return nil
}
