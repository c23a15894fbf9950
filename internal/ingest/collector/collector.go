package collector

import "context"

// Result carries one collected item or the error that prevented it. Source
// names the input the item came from so failures can be reported.
type Result[T any] struct {
	Result T
	Source string
	Err    error
}

type Collector[T any] interface {
	Collect(ctx context.Context) (<-chan Result[T], error)
}
