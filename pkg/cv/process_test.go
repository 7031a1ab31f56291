package cv

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessTxt(t *testing.T) {
	data := []byte("Python developer\n• Machine learning\n\n\tDjango, Flask\n")
	text, err := Process("cv.txt", data)
	require.NoError(t, err)
	assert.Equal(t, "Python developer Machine learning Django, Flask", text)
}

func TestProcessTxtLatin1Fallback(t *testing.T) {
	// "résumé" в latin-1, невалидный UTF-8
	data := []byte{0x72, 0xe9, 0x73, 0x75, 0x6d, 0xe9}
	text, err := Process("cv.txt", data)
	require.NoError(t, err)
	assert.Equal(t, "résumé", text)
}

func TestProcessEmptyFile(t *testing.T) {
	_, err := Process("cv.txt", []byte("   \n \t \n"))
	assert.ErrorIs(t, err, ErrNoTextExtracted)
}

func TestProcessUnsupportedFormat(t *testing.T) {
	_, err := Process("cv.exe", []byte("whatever"))
	assert.ErrorIs(t, err, ErrNoTextExtracted)
}

func TestExtractTextFromDocx(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<w:document><w:body>` +
		`<w:p><w:r><w:t>Python developer</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>Django and Flask</w:t></w:r></w:p>` +
		`</w:body></w:document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	text, err := ExtractText("cv.docx", buf.Bytes())
	require.NoError(t, err)
	assert.Contains(t, text, "Python developer")
	assert.Contains(t, text, "Django and Flask")
}

func TestExtractTextDocxWithoutDocument(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	_, err := zw.Create("word/other.xml")
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = ExtractText("cv.docx", buf.Bytes())
	assert.Error(t, err)
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "", CleanText(""))
	assert.Equal(t, "a b", CleanText(" a \n\n b "))
	assert.Equal(t, "point one", CleanText("● point\n• one"))
}
