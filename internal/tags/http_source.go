package tags

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

type HTTPSource struct {
	url    string
	client *http.Client
}

func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (s *HTTPSource) Load(ctx context.Context) ([]Option, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating tags request: %w", err)
	}
	req.Header.Set("Accept", "text/plain; charset=utf-8")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading tags: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading tags body: %w", err)
	}

	return Parse(string(body)), nil
}

type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Load(_ context.Context) ([]Option, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading tags file: %w", err)
	}
	return Parse(string(data)), nil
}

type RepositorySource struct {
	repo LabelRepository
}

func NewRepositorySource(repo LabelRepository) *RepositorySource {
	return &RepositorySource{repo: repo}
}

func (s *RepositorySource) Load(ctx context.Context) ([]Option, error) {
	labels, err := s.repo.FindActiveLabels(ctx)
	if err != nil {
		return nil, err
	}
	return FromLabels(labels), nil
}
