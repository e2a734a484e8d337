package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComponentID(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, ComponentID("maven-module", "svc/pom.xml"), ComponentID("maven-module", "svc/pom.xml"))
	})

	t.Run("distinct inputs yield distinct ids", func(t *testing.T) {
		assert.NotEqual(t, ComponentID("maven-module", "a/pom.xml"), ComponentID("maven-module", "b/pom.xml"))
		assert.NotEqual(t, ComponentID("maven-module", "a/pom.xml"), ComponentID("gradle-module", "a/pom.xml"))
	})

	t.Run("short hex form", func(t *testing.T) {
		id := ComponentID("svc", "x")
		assert.Len(t, id, 12)
		assert.Regexp(t, "^[0-9a-f]+$", id)
	})
}
