package gmail

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"net/textproto"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

// Payload is anything that can be turned into the base64url "raw" field of a
// Gmail message.
type Payload interface {
	Raw() (string, error)
}

// RawMessage is a complete RFC 2822 message built elsewhere.
type RawMessage []byte

// Raw encodes the message unchanged.
func (r RawMessage) Raw() (string, error) {
	if len(bytes.TrimSpace(r)) == 0 {
		return "", fmt.Errorf("message is empty")
	}
	return EncodeRaw(r), nil
}

// Attachment is a file carried by a message.
type Attachment struct {
	Filename string `json:"filename"`
	MimeType string `json:"mime_type,omitempty"`
	Data     []byte `json:"data,omitempty"`
}

// Message describes an email to be sent, inserted or saved as a draft.
type Message struct {
	From    string
	To      []string
	Cc      []string
	Bcc     []string
	Subject string
	Body    string
	IsHTML  bool

	// InReplyTo and References hold Message-ID values for threading.
	InReplyTo  string
	References string

	// ThreadID places the message into an existing Gmail thread.
	ThreadID string

	// Date is omitted when zero; Gmail then stamps the message itself.
	Date time.Time

	Attachments []Attachment
}

// EncodeRaw encodes an RFC 2822 message for the Gmail "raw" field. The result
// is base64url with padding.
func EncodeRaw(message []byte) string {
	return base64.URLEncoding.EncodeToString(message)
}

// DecodeRaw decodes base64 data returned by Gmail. Padded and unpadded
// base64url are accepted, as is standard base64.
func DecodeRaw(data string) ([]byte, error) {
	for _, enc := range []*base64.Encoding{base64.URLEncoding, base64.RawURLEncoding, base64.StdEncoding} {
		if decoded, err := enc.DecodeString(data); err == nil {
			return decoded, nil
		}
	}
	return nil, fmt.Errorf("data is not valid base64")
}

// Raw builds and encodes the message.
func (m *Message) Raw() (string, error) {
	data, err := m.Build()
	if err != nil {
		return "", err
	}
	return EncodeRaw(data), nil
}

// Build renders the message in RFC 2822 format. A message with attachments
// becomes multipart/mixed with the body as its first part.
func (m *Message) Build() ([]byte, error) {
	if m == nil {
		return nil, fmt.Errorf("message is required")
	}

	var buf bytes.Buffer
	h := headerWriter{buf: &buf}

	if m.From != "" {
		h.address("From", []string{m.From})
	}
	h.address("To", m.To)
	h.address("Cc", m.Cc)
	h.address("Bcc", m.Bcc)
	h.text("Subject", encodeRFC2047(m.Subject))
	if !m.Date.IsZero() {
		h.text("Date", m.Date.Format(time.RFC1123Z))
	}
	h.text("In-Reply-To", m.InReplyTo)
	h.text("References", m.References)
	h.text("MIME-Version", "1.0")
	if h.err != nil {
		return nil, h.err
	}

	if len(m.Attachments) == 0 {
		header := bodyHeader(m.Body, m.IsHTML)
		for _, key := range []string{"Content-Type", "Content-Transfer-Encoding"} {
			fmt.Fprintf(&buf, "%s: %s\r\n", key, header.Get(key))
		}
		buf.WriteString("\r\n")
		if err := writeBody(&buf, m.Body); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	total := 0
	for _, a := range m.Attachments {
		total += len(a.Data)
	}
	if total > MaxAttachmentSize {
		return nil, fmt.Errorf("attachments size %d exceeds maximum size %d", total, MaxAttachmentSize)
	}

	mw := multipart.NewWriter(&buf)
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", mw.Boundary())

	part, err := mw.CreatePart(bodyHeader(m.Body, m.IsHTML))
	if err != nil {
		return nil, err
	}
	if err := writeBody(part, m.Body); err != nil {
		return nil, err
	}

	for _, a := range m.Attachments {
		if err := writeAttachment(mw, a); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func bodyHeader(body string, isHTML bool) textproto.MIMEHeader {
	contentType := `text/plain; charset="UTF-8"`
	if isHTML {
		contentType = `text/html; charset="UTF-8"`
	}
	header := textproto.MIMEHeader{}
	header.Set("Content-Type", contentType)
	if isASCII(body) {
		header.Set("Content-Transfer-Encoding", "7bit")
	} else {
		header.Set("Content-Transfer-Encoding", "quoted-printable")
	}
	return header
}

func writeBody(w io.Writer, body string) error {
	if isASCII(body) {
		_, err := io.WriteString(w, body)
		return err
	}
	qp := quotedprintable.NewWriter(w)
	if _, err := io.WriteString(qp, body); err != nil {
		return err
	}
	return qp.Close()
}

func writeAttachment(mw *multipart.Writer, a Attachment) error {
	if a.Filename == "" {
		return fmt.Errorf("attachment filename is required")
	}

	contentType := a.MimeType
	if contentType == "" {
		contentType = mimetype.Detect(a.Data).String()
	}
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType, params = "application/octet-stream", map[string]string{}
	}
	params["name"] = a.Filename

	header := textproto.MIMEHeader{}
	header.Set("Content-Type", mime.FormatMediaType(mediaType, params))
	header.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": a.Filename}))
	header.Set("Content-Transfer-Encoding", "base64")

	part, err := mw.CreatePart(header)
	if err != nil {
		return err
	}

	encoded := base64.StdEncoding.EncodeToString(a.Data)
	for len(encoded) > 76 {
		if _, err := fmt.Fprintf(part, "%s\r\n", encoded[:76]); err != nil {
			return err
		}
		encoded = encoded[76:]
	}
	_, err = fmt.Fprintf(part, "%s\r\n", encoded)
	return err
}

// headerWriter writes header lines and keeps the first error.
type headerWriter struct {
	buf *bytes.Buffer
	err error
}

func (h *headerWriter) text(name, value string) {
	if h.err != nil || value == "" {
		return
	}
	if strings.ContainsAny(value, "\r\n") {
		h.err = fmt.Errorf("%s header must not contain line breaks", name)
		return
	}
	fmt.Fprintf(h.buf, "%s: %s\r\n", name, value)
}

func (h *headerWriter) address(name string, values []string) {
	if h.err != nil || len(values) == 0 {
		return
	}
	formatted := make([]string, 0, len(values))
	for _, v := range values {
		addr, err := mail.ParseAddress(v)
		if err != nil {
			h.err = fmt.Errorf("invalid %s address %q: %w", name, v, err)
			return
		}
		formatted = append(formatted, formatAddress(addr))
	}
	h.text(name, strings.Join(formatted, ", "))
}

// formatAddress keeps bare addresses bare and encodes non-ASCII names.
func formatAddress(addr *mail.Address) string {
	if addr.Name == "" {
		return addr.Address
	}
	return addr.String()
}

// encodeRFC2047 encodes a header value according to RFC 2047 if it contains
// non-ASCII characters, e.g. German umlauts in a subject.
func encodeRFC2047(s string) string {
	if isASCII(s) {
		return s
	}
	return mime.BEncoding.Encode("UTF-8", s)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 127 {
			return false
		}
	}
	return true
}
