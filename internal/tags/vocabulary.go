package tags

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Vocabulary is the set of tags a draft may select from.
type Vocabulary struct {
	source  Source
	logger  *zap.Logger
	mu      sync.RWMutex
	options []Option
	index   map[string]Option
}

func NewVocabulary(source Source, logger *zap.Logger) *Vocabulary {
	v := &Vocabulary{
		source: source,
		logger: logger,
	}
	v.set(DefaultOptions)
	return v
}

// Load fetches the vocabulary from the source. Any failure, including an
// empty document, leaves DefaultOptions in place.
func (v *Vocabulary) Load(ctx context.Context) {
	options, err := v.source.Load(ctx)
	if err != nil {
		v.logger.Warn("loading tags failed, using defaults", zap.Error(err))
		v.set(DefaultOptions)
		return
	}
	if len(options) == 0 {
		v.logger.Warn("tag source returned no tags, using defaults")
		v.set(DefaultOptions)
		return
	}

	v.set(options)
	v.logger.Info("tags loaded", zap.Int("count", len(options)))
}

func (v *Vocabulary) set(options []Option) {
	index := make(map[string]Option, len(options))
	for _, o := range options {
		index[o.Value] = o
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.options = append([]Option(nil), options...)
	v.index = index
}

func (v *Vocabulary) Options() []Option {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return append([]Option(nil), v.options...)
}

func (v *Vocabulary) Contains(value string) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	_, ok := v.index[value]
	return ok
}
