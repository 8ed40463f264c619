package language

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByAbbrev(t *testing.T) {
	l, err := ByAbbrev("deu")
	require.NoError(t, err)
	assert.Equal(t, "German", l.Name)
	assert.Equal(t, "de", l.Tag)
	assert.False(t, l.RightToLeft)

	ara, err := ByAbbrev("ara")
	require.NoError(t, err)
	assert.True(t, ara.RightToLeft)
}

func TestByAbbrevUnknown(t *testing.T) {
	_, err := ByAbbrev("xxx")
	require.ErrorIs(t, err, ErrUnknownLanguage)
	assert.Contains(t, err.Error(), `"xxx"`)
}

func TestLanguagesSortedAndCopied(t *testing.T) {
	langs := Languages()
	require.NotEmpty(t, langs)
	assert.True(t, sort.SliceIsSorted(langs, func(i, j int) bool {
		return langs[i].Abbrev < langs[j].Abbrev
	}))

	langs[0].Name = "mutated"
	assert.NotEqual(t, "mutated", Languages()[0].Name)
}

func TestRegistryHasTags(t *testing.T) {
	for _, l := range Languages() {
		assert.Len(t, l.Abbrev, 3, l.Abbrev)
		assert.NotEmpty(t, l.Tag, l.Abbrev)
	}
}
