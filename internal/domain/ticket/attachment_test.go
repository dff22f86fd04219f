package ticket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttachmentPolicy_Check(t *testing.T) {
	policy := AttachmentPolicy{
		MaxSizeBytes:      15 * 1024 * 1024,
		AllowedExtensions: []string{"pdf", "jpg", "jpeg", "png", "xlsx", "docx", "txt"},
	}

	assert.Empty(t, policy.Check("report.PDF", 1024))
	assert.Empty(t, policy.Check("photo.jpeg", 15*1024*1024))

	problems := policy.Check("setup.exe", 20*1024*1024)
	require.Len(t, problems, 2)
	assert.Contains(t, problems[0], "setup.exe (extension .exe)")
	assert.Contains(t, problems[1], "20MB exceeds the 15MB limit")

	assert.Len(t, policy.Check("README", 10), 1)
}

func TestNewAttachment(t *testing.T) {
	a, err := NewAttachment(NewAttachmentParams{
		TicketID:      3,
		FileReference: "attachments/abc/report.pdf",
		OriginalName:  "../../etc/report.pdf",
		MimeType:      "application/pdf",
		Size:          2048,
		UploadedBy:    9,
	}, testNow)
	require.NoError(t, err)
	assert.Equal(t, "report.pdf", a.OriginalName())
	assert.Equal(t, testNow, a.UploadedAt())

	_, err = NewAttachment(NewAttachmentParams{OriginalName: "x.pdf", UploadedBy: 9}, testNow)
	assert.ErrorIs(t, err, ErrInvalidFile)
}

func TestNewComment(t *testing.T) {
	c, err := NewComment(1, 2, "Riavviato il PC", true, testNow)
	require.NoError(t, err)
	assert.True(t, c.IsInternal())

	_, err = NewComment(1, 2, "   ", false, testNow)
	assert.ErrorIs(t, err, ErrInvalidComment)
}
