package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/texspell/texspell/internal/domain"
)

func TestPlainText_SliceUsesRunes(t *testing.T) {
	p := domain.NewPlainText("doc.tex", "je suis trè beau")
	assert.Equal(t, 16, p.Len())

	s, ok := p.Slice(8, 3)
	require.True(t, ok)
	assert.Equal(t, "trè", s)

	_, ok = p.Slice(14, 3)
	assert.False(t, ok)
	_, ok = p.Slice(-1, 1)
	assert.False(t, ok)
}

func TestNewOffsetMap_RejectsNonMonotonic(t *testing.T) {
	_, err := domain.NewOffsetMap([]domain.Anchor{{Plain: 0, Doc: 5}, {Plain: 1, Doc: 4}}, 10, 10)
	assert.Error(t, err)

	_, err = domain.NewOffsetMap([]domain.Anchor{{Plain: 2, Doc: 1}, {Plain: 2, Doc: 3}}, 10, 10)
	assert.Error(t, err)

	_, err = domain.NewOffsetMap([]domain.Anchor{{Plain: 0, Doc: 10}}, 10, 10)
	assert.Error(t, err, "document index must be within the document")
}

func TestOffsetMap_TranslateExact(t *testing.T) {
	m, err := domain.NewOffsetMap([]domain.Anchor{{Plain: 0, Doc: 8}, {Plain: 1, Doc: 9}, {Plain: 2, Doc: 14}}, 3, 20)
	require.NoError(t, err)

	d, exact := m.Translate(1)
	assert.True(t, exact)
	assert.Equal(t, 9, d)

	d, exact = m.Translate(2)
	assert.True(t, exact)
	assert.Equal(t, 14, d)
}

func TestOffsetMap_TranslateGapUsesPrecedingAnchor(t *testing.T) {
	anchors := make([]domain.Anchor, 0, 50)
	for i := 0; i < 50; i++ {
		anchors = append(anchors, domain.Anchor{Plain: i, Doc: i + 10})
	}
	m, err := domain.NewOffsetMap(anchors, 80, 120)
	require.NoError(t, err)

	d, exact := m.Translate(50)
	assert.False(t, exact)
	assert.Equal(t, 59, d, "index 50 resolves to the nearest preceding mapped index 49")
}

func TestOffsetMap_TranslateBeforeFirstAnchor(t *testing.T) {
	m, err := domain.NewOffsetMap([]domain.Anchor{{Plain: 3, Doc: 7}}, 5, 10)
	require.NoError(t, err)

	d, exact := m.Translate(1)
	assert.False(t, exact)
	assert.Zero(t, d)

	d, exact = m.Translate(-4)
	assert.False(t, exact)
	assert.Zero(t, d)
}

func TestOffsetMap_TranslateEnd(t *testing.T) {
	m := domain.IdentityMap(10)

	d, exact := m.TranslateEnd(4)
	assert.True(t, exact)
	assert.Equal(t, 4, d)

	d, exact = m.TranslateEnd(10)
	assert.True(t, exact)
	assert.Equal(t, 10, d)
}

func TestOffsetMap_IsMonotonic(t *testing.T) {
	m, err := domain.NewOffsetMap([]domain.Anchor{{Plain: 0, Doc: 0}, {Plain: 4, Doc: 12}, {Plain: 5, Doc: 13}}, 8, 20)
	require.NoError(t, err)

	prev := -1
	for i := 0; i < m.PlainLen(); i++ {
		d, _ := m.Translate(i)
		assert.GreaterOrEqual(t, d, prev)
		prev = d
	}
}
