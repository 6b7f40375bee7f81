package confusion_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/openscilab/pycm-api/pkg/confusion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderHTML(t *testing.T) {
	m, err := confusion.New(
		[]string{"0", "1", "0", "1"},
		[]string{"0", "1", "1", "1"},
	)
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	require.NoError(t, m.RenderHTML(buf))

	html := buf.String()
	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "Accuracy")
	for _, class := range m.Classes {
		assert.Contains(t, html, "<th>"+class+"</th>")
	}
}

func TestRenderPNG(t *testing.T) {
	m, err := confusion.New(
		[]string{"0", "1", "0", "1"},
		[]string{"0", "1", "1", "1"},
	)
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	require.NoError(t, m.RenderPNG(buf))

	// PNG signature
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG\r\n\x1a\n")))
}
