package plan

// Plan describes one evaluation run over one or more datasets.
type Plan struct {
	Roster     []string    `yaml:"roster"`
	RosterFile string      `yaml:"roster_file"`
	Datasets   []Dataset   `yaml:"datasets"`
	LabelStore *LabelStore `yaml:"label_store,omitempty"`
	Scoring    Scoring     `yaml:"scoring"`
	Output     string      `yaml:"output,omitempty"`
}

type Dataset struct {
	Name        string `yaml:"name"`
	Results     string `yaml:"results"`
	Labels      string `yaml:"labels,omitempty"`
	LabelSource string `yaml:"label_source,omitempty"`
	Enabled     *bool  `yaml:"enabled,omitempty"`
}

// IsEnabled treats an omitted enabled key as true.
func (d Dataset) IsEnabled() bool {
	return d.Enabled == nil || *d.Enabled
}

type LabelStore struct {
	Type       string `yaml:"type"`
	Connection string `yaml:"connection"`
}

type Scoring struct {
	SeparateFlags bool `yaml:"separate_flags"`
	Workers       int  `yaml:"workers"`
}

const (
	LabelSourceFile     = "file"
	LabelSourcePostgres = "postgres"
)

// EnabledDatasets returns the datasets that take part in the run, in plan order.
func (p *Plan) EnabledDatasets() []Dataset {
	out := make([]Dataset, 0, len(p.Datasets))
	for _, d := range p.Datasets {
		if d.IsEnabled() {
			out = append(out, d)
		}
	}
	return out
}

// NeedsLabelStore reports whether any enabled dataset reads labels from Postgres.
func (p *Plan) NeedsLabelStore() bool {
	for _, d := range p.EnabledDatasets() {
		if d.LabelSource == LabelSourcePostgres {
			return true
		}
	}
	return false
}
