package tags

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockSource struct {
	LoadFunc func(ctx context.Context) ([]Option, error)
}

func (m *mockSource) Load(ctx context.Context) ([]Option, error) {
	return m.LoadFunc(ctx)
}

type mockLabelRepository struct {
	FindActiveLabelsFunc func(ctx context.Context) ([]string, error)
}

func (m *mockLabelRepository) FindActiveLabels(ctx context.Context) ([]string, error) {
	return m.FindActiveLabelsFunc(ctx)
}

func TestVocabulary_DefaultsBeforeLoad(t *testing.T) {
	v := NewVocabulary(&mockSource{}, zap.NewNop())

	assert.Equal(t, DefaultOptions, v.Options())
	assert.True(t, v.Contains("cpp"))
}

func TestVocabulary_Load_Success(t *testing.T) {
	source := &mockSource{
		LoadFunc: func(ctx context.Context) ([]Option, error) {
			return Parse("Математика\n\nФизика"), nil
		},
	}
	v := NewVocabulary(source, zap.NewNop())

	v.Load(context.Background())

	assert.Len(t, v.Options(), 2)
	assert.True(t, v.Contains("математика"))
	assert.False(t, v.Contains("cpp"))
}

func TestVocabulary_Load_FallbackOnError(t *testing.T) {
	source := &mockSource{
		LoadFunc: func(ctx context.Context) ([]Option, error) {
			return nil, errors.New("connection refused")
		},
	}
	v := NewVocabulary(source, zap.NewNop())

	v.Load(context.Background())

	assert.Equal(t, DefaultOptions, v.Options())
}

func TestVocabulary_Load_FallbackOnEmpty(t *testing.T) {
	source := &mockSource{
		LoadFunc: func(ctx context.Context) ([]Option, error) {
			return nil, nil
		},
	}
	v := NewVocabulary(source, zap.NewNop())

	v.Load(context.Background())

	assert.Equal(t, DefaultOptions, v.Options())
}

func TestVocabulary_OptionsIsCopy(t *testing.T) {
	v := NewVocabulary(&mockSource{}, zap.NewNop())

	options := v.Options()
	options[0].Value = "changed"

	assert.True(t, v.Contains("cpp"))
	assert.Equal(t, "cpp", v.Options()[0].Value)
}

func TestHTTPSource_Load(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "text/plain; charset=utf-8", r.Header.Get("Accept"))
		w.Write([]byte("Python\r\n\r\nJava Script\r\n"))
	}))
	defer srv.Close()

	source := NewHTTPSource(srv.URL, time.Second)

	options, err := source.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Option{
		{Value: "python", Label: "Python"},
		{Value: "java_script", Label: "Java Script"},
	}, options)
}

func TestHTTPSource_Load_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	source := NewHTTPSource(srv.URL, time.Second)

	_, err := source.Load(context.Background())
	assert.Error(t, err)
}

func TestFileSource_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tags.txt")
	require.NoError(t, os.WriteFile(path, []byte("Химия\n\nБиология\n"), 0o600))

	options, err := NewFileSource(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Option{
		{Value: "химия", Label: "Химия"},
		{Value: "биология", Label: "Биология"},
	}, options)
}

func TestFileSource_Load_Missing(t *testing.T) {
	_, err := NewFileSource(filepath.Join(t.TempDir(), "missing.txt")).Load(context.Background())
	assert.Error(t, err)
}

func TestRepositorySource_Load(t *testing.T) {
	repo := &mockLabelRepository{
		FindActiveLabelsFunc: func(ctx context.Context) ([]string, error) {
			return []string{"Английский язык"}, nil
		},
	}

	options, err := NewRepositorySource(repo).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Option{{Value: "английский_язык", Label: "Английский язык"}}, options)
}
