package mailer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMessage(t *testing.T) {
	msg := BuildMessage("no-reply@example.com", "operator@example.com", Email{
		Subject:  "Nuovo contatto",
		TextBody: "riga uno\nriga due",
		HTMLBody: "<p>riga uno</p>",
		ReplyTo:  "mittente@example.com",
	})

	assert.True(t, strings.HasPrefix(msg, "From: no-reply@example.com\r\n"))
	assert.Contains(t, msg, "To: operator@example.com\r\n")
	assert.Contains(t, msg, "Reply-To: mittente@example.com\r\n")
	assert.Contains(t, msg, "Content-Type: multipart/alternative")
	assert.Contains(t, msg, "riga uno\nriga due")
	assert.Contains(t, msg, "<p>riga uno</p>")
}

func TestBuildMessage_HTMLFallback(t *testing.T) {
	msg := BuildMessage("a@b.it", "c@d.it", Email{
		Subject:  "x",
		TextBody: "prima\nseconda",
	})

	assert.Contains(t, msg, "prima<br>seconda")
}

func TestBuildMessage_NoReplyTo(t *testing.T) {
	msg := BuildMessage("a@b.it", "c@d.it", Email{Subject: "x", TextBody: "y"})
	assert.NotContains(t, msg, "Reply-To:")
}

func TestBuildMessage_HeaderValuesCannotSplitLines(t *testing.T) {
	msg := BuildMessage("no-reply@example.com", "operator@example.com", Email{
		Subject:  "x",
		TextBody: "y",
		ReplyTo:  "a@b.com\r\nBcc: victim@example.com",
	})

	headers, _, found := strings.Cut(msg, "\r\n\r\n")
	require.True(t, found)
	for _, line := range strings.Split(headers, "\r\n") {
		assert.False(t, strings.HasPrefix(line, "Bcc:"), "injected header line %q", line)
	}
	// The CR/LF pair is dropped, leaving the rest of the value inert on
	// the Reply-To line itself.
	assert.Contains(t, msg, "Reply-To: a@b.comBcc: victim@example.com\r\n")
}

func TestBuildMessage_PerMessageBoundary(t *testing.T) {
	email := Email{Subject: "x", TextBody: "y"}
	first := extractBoundary(t, BuildMessage("a@b.it", "c@d.it", email))
	second := extractBoundary(t, BuildMessage("a@b.it", "c@d.it", email))

	assert.NotEqual(t, first, second)

	// A body that names one message's boundary cannot terminate the next.
	msg := BuildMessage("a@b.it", "c@d.it", Email{
		Subject:  "x",
		TextBody: "--" + first + "--",
	})
	boundary := extractBoundary(t, msg)
	assert.NotEqual(t, first, boundary)
	assert.True(t, strings.HasSuffix(strings.TrimRight(msg, "\r\n"), "--"+boundary+"--"))
}

func extractBoundary(t *testing.T, msg string) string {
	t.Helper()
	const marker = `boundary="`
	i := strings.Index(msg, marker)
	require.NotEqual(t, -1, i)
	rest := msg[i+len(marker):]
	j := strings.Index(rest, `"`)
	require.NotEqual(t, -1, j)
	return rest[:j]
}
