package ingest

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDocumentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Press release draft.</w:t></w:r></w:p>
    <w:p>
      <w:r><w:t>Split </w:t></w:r>
      <w:r><w:rPr><w:b/></w:rPr><w:t>across runs</w:t></w:r>
      <w:r><w:t>.</w:t></w:r>
    </w:p>
  </w:body>
</w:document>`

func writeDocx(t *testing.T, parts map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "draft.docx")

	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for name, content := range parts {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	return path
}

func TestExtractDocx(t *testing.T) {
	path := writeDocx(t, map[string]string{
		"[Content_Types].xml": "<Types/>",
		"word/document.xml":   sampleDocumentXML,
	})

	text, err := ExtractDocx(path)
	require.NoError(t, err)

	assert.Equal(t, "Press release draft.\nSplit across runs.", text)
}

func TestExtractDocxMissingDocumentPart(t *testing.T) {
	path := writeDocx(t, map[string]string{"[Content_Types].xml": "<Types/>"})

	_, err := ExtractDocx(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "word/document.xml")
}

func TestExtractDocxNotAZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draft.docx")
	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0644))

	_, err := ExtractDocx(path)
	assert.Error(t, err)
}
