package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func buildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestPlainText(t *testing.T) {
	out, err := Text(context.Background(), "text/plain; charset=utf-8", []byte("  Mitochondria is the powerhouse.\n"))
	require.NoError(t, err)
	require.Equal(t, "Mitochondria is the powerhouse.", out)

	out, err = Text(context.Background(), MimeText, []byte("   "))
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestDOCX(t *testing.T) {
	data := buildZip(t, map[string]string{
		"word/document.xml": `<?xml version="1.0"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
			`<w:p><w:r><w:t>Cells</w:t></w:r></w:p><w:p><w:r><w:t>are small.</w:t></w:r></w:p></w:body></w:document>`,
		"docProps/core.xml": `<core><title>ignored</title></core>`,
	})
	out, err := Text(context.Background(), MimeDOCX, data)
	require.NoError(t, err)
	require.Equal(t, "Cells are small.", out)
}

func TestPPTXSlideOrder(t *testing.T) {
	slide := func(s string) string {
		return `<p:sld xmlns:p="p" xmlns:a="a"><a:t>` + s + `</a:t></p:sld>`
	}
	data := buildZip(t, map[string]string{
		"ppt/slides/slide10.xml": slide("ten"),
		"ppt/slides/slide2.xml":  slide("two"),
		"ppt/slides/slide1.xml":  slide("one"),
	})
	out, err := Text(context.Background(), MimePPTX, data)
	require.NoError(t, err)
	require.Equal(t, "one two ten", out)
}

func TestMalformedInputs(t *testing.T) {
	_, err := Text(context.Background(), MimeDOCX, []byte("not a zip"))
	require.Error(t, err)
	_, err = Text(context.Background(), MimePDF, []byte("not a pdf"))
	require.Error(t, err)
}

func TestNoExtractor(t *testing.T) {
	for _, mt := range []string{MimePNG, MimeJPEG, MimePPT} {
		_, err := Text(context.Background(), mt, []byte{1, 2, 3})
		require.ErrorIs(t, err, ErrNoExtractor, mt)
	}
}

func TestPlaceholder(t *testing.T) {
	require.Equal(t, "Extracted text from image/png file (placeholder implementation)", Placeholder(MimePNG))
}
