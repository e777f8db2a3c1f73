package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_CreatesDefaultsOnFirstRun(t *testing.T) {
	tmpDir := t.TempDir()

	cfg, err := Load(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), cfg.Path())
	assert.Equal(t, "text-embedding-ada-002", cfg.OpenAI.EmbeddingModel)
	assert.Equal(t, "Legislation", cfg.Weaviate.Class)
	assert.Equal(t, 1000, cfg.Pipeline.ChunkSize)
	assert.Equal(t, 100, cfg.Pipeline.ChunkOverlap)

	// Defaults are persisted for the user to edit
	_, err = os.Stat(cfg.Path())
	assert.NoError(t, err)
}

func TestLoad_ReadsExistingFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
[openai]
embedding_model = "text-embedding-3-small"
chat_model = "gpt-4o-mini"

[pipeline]
chunk_size = 500
chunk_overlap = 50
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	cfg, err := Load(tmpDir)

	require.NoError(t, err)
	assert.Equal(t, "text-embedding-3-small", cfg.OpenAI.EmbeddingModel)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.ChatModel)
	assert.Equal(t, 500, cfg.Pipeline.ChunkSize)
	assert.Equal(t, 50, cfg.Pipeline.ChunkOverlap)

	// Sections absent from the file keep their defaults
	assert.Equal(t, "Legislation", cfg.Weaviate.Class)
	assert.Equal(t, 2000, cfg.Pipeline.TokenLimit)
}

func TestLoad_ExplicitZeroDelayPreserved(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
[pipeline]
embed_delay_ms = 0
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	cfg, err := Load(tmpDir)

	require.NoError(t, err)
	assert.Zero(t, cfg.Pipeline.EmbedDelayMS, "an explicit zero must not be replaced with the default")
}

func TestLoad_InvalidTOML(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("not [valid"), 0600))

	_, err := Load(tmpDir)
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("WEAVIATE_URL", "http://weaviate.internal:8080")

	cfg, err := Load(t.TempDir())

	require.NoError(t, err)
	assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
	assert.Equal(t, "http://weaviate.internal:8080", cfg.Weaviate.URL)
}

func TestSave_DoesNotPersistSecrets(t *testing.T) {
	tmpDir := t.TempDir()
	cfg, err := Load(tmpDir)
	require.NoError(t, err)

	cfg.OpenAI.APIKey = "sk-secret"
	cfg.Weaviate.APIKey = "wv-secret"
	require.NoError(t, cfg.Save())

	data, err := os.ReadFile(cfg.Path())
	require.NoError(t, err)
	assert.NotContains(t, string(data), "sk-secret")
	assert.NotContains(t, string(data), "wv-secret")
}
