package imagegen

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURL(t *testing.T) {
	r := NewRequestor("")

	got, err := r.URL("grilled chicken")
	require.NoError(t, err)
	assert.Equal(t, "https://image.pollinations.ai/prompt/grilled%20chicken", got)

	u, err := url.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, "/prompt/grilled chicken", u.Path)
}

func TestURLEscapesSlashesAndPunctuation(t *testing.T) {
	r := NewRequestor("http://images.test/p")

	got, err := r.URL("rice/beans & eggs?")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "http://images.test/p/"))

	segment := strings.TrimPrefix(got, "http://images.test/p/")
	assert.NotContains(t, segment, "/")
	assert.NotContains(t, segment, "?")
	unescaped, err := url.PathUnescape(segment)
	require.NoError(t, err)
	assert.Equal(t, "rice/beans & eggs?", unescaped)
}

func TestURLEmptyPrompt(t *testing.T) {
	r := NewRequestor("")
	for _, p := range []string{"", "   ", "\n\t"} {
		_, err := r.URL(p)
		assert.ErrorIs(t, err, ErrEmptyPrompt)
	}
}

func TestItemPrompts(t *testing.T) {
	assert.Contains(t, ExercisePrompt("Deadlift"), "person doing Deadlift")
	assert.Contains(t, FoodPrompt("quinoa salad"), "food photo of quinoa salad")
}
