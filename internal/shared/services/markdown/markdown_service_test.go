package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_ToSafeHTML(t *testing.T) {
	r := NewRenderer()

	out, err := r.ToSafeHTML("**Stampante** guasta<script>alert(1)</script>")
	require.NoError(t, err)
	assert.Contains(t, out, "<strong>Stampante</strong>")
	assert.NotContains(t, out, "<script>")
}

func TestRenderer_StripTags(t *testing.T) {
	r := NewRenderer()
	assert.Equal(t, "Ticket creato", r.StripTags("<p>Ticket <b>creato</b></p>"))
}
