package extraction

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccepts(t *testing.T) {
	assert.True(t, Accepts("resume.pdf"))
	assert.True(t, Accepts("RESUME.PDF"))
	assert.False(t, Accepts("resume.docx"))
	assert.False(t, Accepts("resume.txt"))
	assert.False(t, Accepts("resume"))
}

func TestExtractTextRejectsUnsupportedFormat(t *testing.T) {
	_, err := ExtractText("resume.docx", []byte("irrelevant"), 0)
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestExtractTextRejectsOversizedUpload(t *testing.T) {
	_, err := ExtractText("resume.pdf", make([]byte, MaxUploadBytes+1), 0)
	require.ErrorIs(t, err, ErrTooLarge)
}

func TestExtractTextHonorsCallerLimit(t *testing.T) {
	data := make([]byte, 2048)

	_, err := ExtractText("resume.pdf", data, 1024)
	require.ErrorIs(t, err, ErrTooLarge)

	// A limit above the default ceiling must take effect too. The payload
	// then fails PDF parsing, not the size check.
	big := make([]byte, MaxUploadBytes+1)
	_, err = ExtractText("resume.pdf", big, MaxUploadBytes*2)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrTooLarge)
}

func TestExtractTextRejectsCorruptPDF(t *testing.T) {
	_, err := ExtractText("resume.pdf", []byte("not a pdf at all"), 0)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnsupportedFormat)
}

func TestNormalizeWhitespace(t *testing.T) {
	in := "SKILLS\t\tPython   SQL\r\n\n\n\nEXPERIENCE five years"
	got := normalizeWhitespace(in)
	assert.Equal(t, "SKILLS Python SQL\n\nEXPERIENCE five years", got)

	assert.Equal(t, "", normalizeWhitespace("  \n \t "))
}

func TestNormalizeWhitespaceKeepsSectionBoundaries(t *testing.T) {
	got := normalizeWhitespace("A\n\nB")
	assert.Equal(t, 2, strings.Count(got, "\n"))
}
