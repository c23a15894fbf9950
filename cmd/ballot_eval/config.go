package main

import (
	"flag"
)

type cliConfig struct {
	PlanPath      string
	Mode          string
	Output        string
	Workers       int
	SeparateFlags bool
	Dataset       string
	Verbose       bool
}

func parseFlags() cliConfig {
	cfg := cliConfig{}

	flag.StringVar(&cfg.PlanPath, "plan", "configs/eval/ballots.yaml", "Path to evaluation plan YAML")
	flag.StringVar(&cfg.Mode, "mode", "all", "Report mode: text, flags, lines, or all")
	flag.StringVar(&cfg.Output, "output", "", "Output path for the JSON report (overrides plan)")
	flag.IntVar(&cfg.Workers, "workers", 0, "Goroutines per dataset (0 keeps the plan value)")
	flag.BoolVar(&cfg.SeparateFlags, "separate-flags", false, "Report agree and disagree confusion matrices separately")
	flag.StringVar(&cfg.Dataset, "dataset", "", "Score only the named dataset")
	flag.BoolVar(&cfg.Verbose, "v", false, "Enable debug logging")

	flag.Parse()
	return cfg
}
