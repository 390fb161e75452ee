package judge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePayload_EquivalentForms(t *testing.T) {
	clean := `{"km_score": 8, "acquisition_score": 7, "audience_precision_score": 9, "comment": "solid coverage"}`

	forms := map[string]string{
		"clean":  clean,
		"fenced": "```json\n" + clean + "\n```",
		"bare_fence": "```\n" + clean + "\n```",
		"prose":  "Here is my assessment of the article:\n" + clean + "\nHope this helps.",
	}

	for name, text := range forms {
		p, ok := decodePayload(text)
		require.True(t, ok, "form %s", name)
		assert.Equal(t, 8.0, p.km, "form %s", name)
		assert.Equal(t, 7.0, p.acquisition, "form %s", name)
		assert.Equal(t, 9.0, p.precision, "form %s", name)
		assert.Equal(t, "solid coverage", p.comment, "form %s", name)
	}
}

func TestDecodePayload_MissingFieldsDefaultZero(t *testing.T) {
	p, ok := decodePayload(`{"km_score": 5}`)
	require.True(t, ok)
	assert.Equal(t, 5.0, p.km)
	assert.Equal(t, 0.0, p.acquisition)
	assert.Equal(t, 0.0, p.precision)
	assert.Empty(t, p.comment)
}

func TestDecodePayload_StringNumbers(t *testing.T) {
	p, ok := decodePayload(`{"km_score": "7.5", "acquisition_score": "not a number"}`)
	require.True(t, ok)
	assert.Equal(t, 7.5, p.km)
	assert.Equal(t, 0.0, p.acquisition)
}

func TestDecodePayload_Garbage(t *testing.T) {
	for _, text := range []string{"", "no json here", "```\nstill none\n```", "{broken"} {
		_, ok := decodePayload(text)
		assert.False(t, ok, "text %q", text)
	}
}

func TestStripFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripFences("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripFences(`{"a":1}`))
}

func TestFirstObject(t *testing.T) {
	assert.Equal(t, `{"a":1}`, firstObject(`prefix {"a":1} suffix`))
	assert.Equal(t, "", firstObject("no braces"))
	assert.Equal(t, "", firstObject("} reversed {"))
}
