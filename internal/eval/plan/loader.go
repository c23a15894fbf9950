package plan

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nghiaugust/ballot-processing-system/internal/apperr"
	"github.com/nghiaugust/ballot-processing-system/internal/ballot"
)

func LoadFromFile(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plan file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Plan, error) {
	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, apperr.NewValidationWrap("parse plan YAML", err)
	}
	if err := validate(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

var validStoreTypes = map[string]bool{
	"postgres": true,
}

func validate(p *Plan) error {
	if len(p.Roster) == 0 && p.RosterFile == "" {
		return apperr.NewValidation("plan has no roster or roster_file")
	}
	if len(p.Roster) > 0 && p.RosterFile != "" {
		return apperr.NewValidation("plan sets both roster and roster_file")
	}
	if len(p.Datasets) == 0 {
		return apperr.NewValidation("plan has no datasets")
	}

	seen := make(map[string]bool, len(p.Datasets))
	for i := range p.Datasets {
		d := &p.Datasets[i]
		if d.Name == "" {
			return apperr.NewValidation(fmt.Sprintf("dataset at index %d has no name", i))
		}
		if seen[d.Name] {
			return apperr.NewValidation(fmt.Sprintf("dataset %q is declared twice", d.Name))
		}
		seen[d.Name] = true

		if d.Results == "" {
			return apperr.NewValidation(fmt.Sprintf("dataset %q has no results directory", d.Name))
		}
		if d.LabelSource == "" {
			d.LabelSource = LabelSourceFile
		}
		switch d.LabelSource {
		case LabelSourceFile:
			if d.Labels == "" {
				return apperr.NewValidation(fmt.Sprintf("dataset %q has no labels file", d.Name))
			}
		case LabelSourcePostgres:
		default:
			return apperr.NewValidation(fmt.Sprintf("dataset %q has invalid label_source %q", d.Name, d.LabelSource))
		}
	}
	if len(p.EnabledDatasets()) == 0 {
		return apperr.NewValidation("plan has no enabled datasets")
	}

	if p.NeedsLabelStore() {
		if p.LabelStore == nil {
			return apperr.NewValidation("plan reads postgres labels but has no label_store")
		}
		if !validStoreTypes[p.LabelStore.Type] {
			return apperr.NewValidation(fmt.Sprintf("label_store has invalid type %q", p.LabelStore.Type))
		}
		if p.LabelStore.Connection == "" {
			return apperr.NewValidation("label_store has no connection")
		}
	}

	if p.Scoring.Workers <= 0 {
		p.Scoring.Workers = 1
	}
	return nil
}

// LoadRoster returns the inline roster or reads roster_file.
func (p *Plan) LoadRoster() (ballot.Roster, error) {
	if len(p.Roster) > 0 {
		return ballot.NewRoster(p.Roster), nil
	}
	return LoadRosterFile(p.RosterFile)
}

// LoadRosterFile reads a YAML sequence of canonical names.
func LoadRosterFile(path string) (ballot.Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ballot.Roster{}, fmt.Errorf("read roster file: %w", err)
	}
	return ParseRoster(data)
}

func ParseRoster(data []byte) (ballot.Roster, error) {
	var names []string
	if err := yaml.Unmarshal(data, &names); err != nil {
		return ballot.Roster{}, apperr.NewValidationWrap("parse roster YAML", err)
	}
	if len(names) == 0 {
		return ballot.Roster{}, apperr.NewValidation("roster is empty")
	}
	return ballot.NewRoster(names), nil
}
