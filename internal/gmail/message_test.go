package gmail

import (
	"bytes"
	"encoding/base64"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, data []byte) *mail.Message {
	t.Helper()
	msg, err := mail.ReadMessage(bytes.NewReader(data))
	require.NoError(t, err)
	return msg
}

func TestEncodeRaw(t *testing.T) {
	// 0xfb 0xff encode to "+/8=" in standard base64.
	raw := EncodeRaw([]byte{0xfb, 0xff})
	assert.Equal(t, "-_8=", raw)
	assert.NotContains(t, raw, "+")
	assert.NotContains(t, raw, "/")

	decoded, err := DecodeRaw(raw)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xfb, 0xff}, decoded)
}

func TestDecodeRaw_Variants(t *testing.T) {
	want := []byte("hello?>")
	for _, enc := range []*base64.Encoding{base64.URLEncoding, base64.RawURLEncoding, base64.StdEncoding} {
		got, err := DecodeRaw(enc.EncodeToString(want))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := DecodeRaw("not base64 !!")
	assert.Error(t, err)
}

func TestRawMessage(t *testing.T) {
	raw, err := RawMessage("To: a@example.com\r\nSubject: hi\r\n\r\nbody").Raw()
	require.NoError(t, err)

	decoded, err := base64.URLEncoding.DecodeString(raw)
	require.NoError(t, err)
	assert.Equal(t, "To: a@example.com\r\nSubject: hi\r\n\r\nbody", string(decoded))

	_, err = RawMessage("  ").Raw()
	assert.EqualError(t, err, "message is empty")
}

func TestMessageBuild_PlainText(t *testing.T) {
	m := &Message{
		From:       "Me <me@example.com>",
		To:         []string{"a@example.com", "Bee <b@example.com>"},
		Cc:         []string{"c@example.com"},
		Subject:    "Status",
		Body:       "All good.",
		InReplyTo:  "<orig@example.com>",
		References: "<root@example.com> <orig@example.com>",
		Date:       time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
	}

	data, err := m.Build()
	require.NoError(t, err)

	msg := parse(t, data)
	assert.Equal(t, `"Me" <me@example.com>`, msg.Header.Get("From"))
	assert.Equal(t, `a@example.com, "Bee" <b@example.com>`, msg.Header.Get("To"))
	assert.Equal(t, "c@example.com", msg.Header.Get("Cc"))
	assert.Empty(t, msg.Header.Get("Bcc"))
	assert.Equal(t, "Status", msg.Header.Get("Subject"))
	assert.Equal(t, "<orig@example.com>", msg.Header.Get("In-Reply-To"))
	assert.Equal(t, "1.0", msg.Header.Get("MIME-Version"))
	assert.Equal(t, `text/plain; charset="UTF-8"`, msg.Header.Get("Content-Type"))
	assert.Equal(t, "7bit", msg.Header.Get("Content-Transfer-Encoding"))

	date, err := msg.Header.Date()
	require.NoError(t, err)
	assert.True(t, date.Equal(m.Date))

	body, err := io.ReadAll(msg.Body)
	require.NoError(t, err)
	assert.Equal(t, "All good.", string(body))
}

func TestMessageBuild_NonASCII(t *testing.T) {
	m := &Message{
		To:      []string{"a@example.com"},
		Subject: "Grüße aus München",
		Body:    "<p>Schöne Grüße</p>",
		IsHTML:  true,
	}

	data, err := m.Build()
	require.NoError(t, err)
	msg := parse(t, data)

	rawSubject := msg.Header.Get("Subject")
	assert.True(t, strings.HasPrefix(rawSubject, "=?UTF-8?b?"), rawSubject)
	subject, err := new(mime.WordDecoder).DecodeHeader(rawSubject)
	require.NoError(t, err)
	assert.Equal(t, "Grüße aus München", subject)

	assert.Equal(t, `text/html; charset="UTF-8"`, msg.Header.Get("Content-Type"))
	assert.Equal(t, "quoted-printable", msg.Header.Get("Content-Transfer-Encoding"))

	body, err := io.ReadAll(quotedprintable.NewReader(msg.Body))
	require.NoError(t, err)
	assert.Equal(t, "<p>Schöne Grüße</p>", string(body))
}

func TestMessageBuild_Attachments(t *testing.T) {
	pdf := append([]byte("%PDF-1.4\n"), bytes.Repeat([]byte("x"), 200)...)
	m := &Message{
		To:      []string{"a@example.com"},
		Subject: "Report",
		Body:    "See attached.",
		Attachments: []Attachment{
			{Filename: "report.pdf", Data: pdf},
			{Filename: "notes.txt", MimeType: "text/plain", Data: []byte("remember")},
		},
	}

	data, err := m.Build()
	require.NoError(t, err)
	msg := parse(t, data)

	mediaType, params, err := mime.ParseMediaType(msg.Header.Get("Content-Type"))
	require.NoError(t, err)
	assert.Equal(t, "multipart/mixed", mediaType)

	mr := multipart.NewReader(msg.Body, params["boundary"])

	part, err := mr.NextPart()
	require.NoError(t, err)
	assert.Equal(t, `text/plain; charset="UTF-8"`, part.Header.Get("Content-Type"))
	body, err := io.ReadAll(part)
	require.NoError(t, err)
	assert.Equal(t, "See attached.", string(body))

	part, err = mr.NextPart()
	require.NoError(t, err)
	ct, ctParams, err := mime.ParseMediaType(part.Header.Get("Content-Type"))
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", ct, "type is detected from content")
	assert.Equal(t, "report.pdf", ctParams["name"])
	assert.Equal(t, "report.pdf", part.FileName())
	assert.Equal(t, "base64", part.Header.Get("Content-Transfer-Encoding"))
	encoded, err := io.ReadAll(part)
	require.NoError(t, err)
	for _, line := range strings.Split(strings.TrimSpace(string(encoded)), "\r\n") {
		assert.LessOrEqual(t, len(line), 76)
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(string(encoded), "\r\n", ""))
	require.NoError(t, err)
	assert.Equal(t, pdf, decoded)

	part, err = mr.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "notes.txt", part.FileName())

	_, err = mr.NextPart()
	assert.Equal(t, io.EOF, err)
}

func TestMessageBuild_Errors(t *testing.T) {
	tests := []struct {
		name    string
		msg     *Message
		wantErr string
	}{
		{
			name:    "nil message",
			msg:     nil,
			wantErr: "message is required",
		},
		{
			name:    "invalid recipient",
			msg:     &Message{To: []string{"not an address"}},
			wantErr: `invalid To address "not an address"`,
		},
		{
			name:    "header injection",
			msg:     &Message{To: []string{"a@example.com"}, Subject: "hi\r\nBcc: evil@example.com"},
			wantErr: "Subject header must not contain line breaks",
		},
		{
			name: "attachment without filename",
			msg: &Message{
				To:          []string{"a@example.com"},
				Attachments: []Attachment{{Data: []byte("x")}},
			},
			wantErr: "attachment filename is required",
		},
		{
			name: "attachments too large",
			msg: &Message{
				To:          []string{"a@example.com"},
				Attachments: []Attachment{{Filename: "big.bin", Data: make([]byte, MaxAttachmentSize+1)}},
			},
			wantErr: "exceeds maximum size",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.msg.Build()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMessageRaw(t *testing.T) {
	m := &Message{To: []string{"a@example.com"}, Subject: "x", Body: "y"}

	raw, err := m.Raw()
	require.NoError(t, err)

	built, err := m.Build()
	require.NoError(t, err)
	assert.Equal(t, EncodeRaw(built), raw)
}

func TestEncodeRFC2047(t *testing.T) {
	assert.Equal(t, "Plain", encodeRFC2047("Plain"))
	assert.NotEqual(t, "Ärger", encodeRFC2047("Ärger"))
}
