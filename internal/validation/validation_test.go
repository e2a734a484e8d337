package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateYAML(t *testing.T) {
	t.Run("valid config passes", func(t *testing.T) {
		content := []byte(`
project_name: billing
scanners:
  - maven
  - go-modules
exclude:
  - "**/target/**"
`)
		assert.NoError(t, ValidateYAML("doc-architect-config.json", content))
	})

	t.Run("unknown property fails with field message", func(t *testing.T) {
		err := ValidateYAML("doc-architect-config.json", []byte("scannerz: [maven]\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "validation failed")
	})

	t.Run("invalid scanner id pattern fails", func(t *testing.T) {
		err := ValidateYAML("doc-architect-config.json", []byte("scanners: [\"Bad Name\"]\n"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml fails", func(t *testing.T) {
		err := ValidateYAML("doc-architect-config.json", []byte(":\n  - ["))
		assert.Error(t, err)
	})

	t.Run("missing schema is an error", func(t *testing.T) {
		err := ValidateYAML("nope.json", []byte("a: 1\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load schema")
	})
}
