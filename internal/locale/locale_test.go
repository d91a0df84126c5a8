package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslate(t *testing.T) {
	c := Default()

	t.Run("fills placeholders", func(t *testing.T) {
		msg := c.For("en").T("addToilet.mapFeedback.locationUpdated", map[string]any{"address": "1 Main St"})
		assert.Equal(t, "Location updated: 1 Main St", msg)
	})

	t.Run("uses requested locale", func(t *testing.T) {
		msg := c.For("nl").T("addToilet.validation.nameMin", map[string]any{"min": 3})
		assert.Equal(t, "Naam moet minstens 3 tekens bevatten.", msg)
	})

	t.Run("falls back to default locale then key", func(t *testing.T) {
		assert.Equal(t, "en", c.For("fr").Locale())
		assert.Equal(t, "no.such.key", c.For("nl").T("no.such.key", nil))
	})
}

func TestNegotiate(t *testing.T) {
	c := Default()
	assert.Equal(t, "nl", c.Negotiate("nl-BE,nl;q=0.9,en;q=0.8"))
	assert.Equal(t, "en", c.Negotiate("en-GB"))
	assert.Equal(t, "en", c.Negotiate("ja"))
	assert.Equal(t, "en", c.Negotiate())
}

func TestNewCatalogRequiresFallback(t *testing.T) {
	_, err := NewCatalog("de", map[string]map[string]string{"en": {}})
	require.Error(t, err)
}

func TestEveryDutchKeyExistsInEnglish(t *testing.T) {
	for key := range dutch {
		_, ok := english[key]
		assert.True(t, ok, key)
	}
}

func TestBundledFallback(t *testing.T) {
	c, err := Bundled("nl")
	require.NoError(t, err)
	assert.Equal(t, "nl", c.Negotiate("fr-FR"))
	assert.Equal(t, "nl", c.For("de").Locale())

	_, err = Bundled("fr")
	assert.Error(t, err)
}
