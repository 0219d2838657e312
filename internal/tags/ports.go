package tags

import "context"

// Source loads the raw tag vocabulary.
type Source interface {
	Load(ctx context.Context) ([]Option, error)
}

type LabelRepository interface {
	FindActiveLabels(ctx context.Context) ([]string, error)
}
