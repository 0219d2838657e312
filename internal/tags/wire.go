package tags

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"tutorlink/internal/config"
	"tutorlink/internal/tags/repository"
)

// NewSource picks the vocabulary source named by the configuration. db is
// only used by the mysql source and may be nil otherwise.
func NewSource(cfg config.TagsConfig, db *sql.DB) (Source, error) {
	switch cfg.Source {
	case config.TagsSourceHTTP:
		if cfg.URL == "" {
			return nil, fmt.Errorf("tags source %q requires TAGS_URL", cfg.Source)
		}
		return NewHTTPSource(cfg.URL, cfg.Timeout), nil
	case config.TagsSourceFile:
		if cfg.File == "" {
			return nil, fmt.Errorf("tags source %q requires TAGS_FILE", cfg.Source)
		}
		return NewFileSource(cfg.File), nil
	case config.TagsSourceMySQL:
		if db == nil {
			return nil, fmt.Errorf("tags source %q requires a database connection", cfg.Source)
		}
		return NewRepositorySource(repository.NewMySQLTagRepository(db)), nil
	default:
		return nil, fmt.Errorf("unknown tags source %q", cfg.Source)
	}
}

func NewModule(source Source, logger *zap.Logger) (*Vocabulary, *Controller) {
	vocabulary := NewVocabulary(source, logger)
	return vocabulary, NewController(vocabulary, logger)
}
