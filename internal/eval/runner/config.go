package runner

const DefaultWorkers = 1

type Config struct {
	// Workers bounds how many goroutines fold one dataset.
	Workers int
	// SeparateFlags reports per-flag confusion metrics next to the pooled matrix.
	SeparateFlags bool
}

func DefaultConfig() Config {
	return Config{Workers: DefaultWorkers}
}
