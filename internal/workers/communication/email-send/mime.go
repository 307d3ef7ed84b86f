package emailsend

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
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const base64LineLength = 76

// BuildMIME renders msg as an RFC 5322 message. With an attachment the body
// is multipart/mixed; otherwise a single quoted-printable text/html part.
func BuildMIME(msg *Message) ([]byte, error) {
	return buildMIME(msg, time.Now())
}

func buildMIME(msg *Message, now time.Time) ([]byte, error) {
	if msg.From == "" || msg.To == "" {
		return nil, fmt.Errorf("message needs both from and to addresses")
	}

	var buf bytes.Buffer
	header := func(k, v string) {
		fmt.Fprintf(&buf, "%s: %s\r\n", k, v)
	}

	from := mail.Address{Name: msg.FromName, Address: msg.From}
	header("From", from.String())
	header("To", (&mail.Address{Address: msg.To}).String())
	if msg.ReplyTo != "" {
		header("Reply-To", (&mail.Address{Address: msg.ReplyTo}).String())
	}
	header("Subject", mime.QEncoding.Encode("utf-8", msg.Subject))
	header("Date", now.Format(time.RFC1123Z))
	header("Message-ID", fmt.Sprintf("<%s@%s>", uuid.New().String(), domainOf(msg.From)))
	header("MIME-Version", "1.0")

	if msg.Attachment == nil {
		header("Content-Type", `text/html; charset="utf-8"`)
		header("Content-Transfer-Encoding", "quoted-printable")
		buf.WriteString("\r\n")
		if err := writeQuotedPrintable(&buf, msg.HTMLBody); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	content, err := os.ReadFile(msg.Attachment.Path)
	if err != nil {
		return nil, fmt.Errorf("read attachment: %w", err)
	}

	mw := multipart.NewWriter(&buf)
	header("Content-Type", fmt.Sprintf(`multipart/mixed; boundary="%s"`, mw.Boundary()))
	buf.WriteString("\r\n")

	htmlPart, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {`text/html; charset="utf-8"`},
		"Content-Transfer-Encoding": {"quoted-printable"},
	})
	if err != nil {
		return nil, err
	}
	if err := writeQuotedPrintable(htmlPart, msg.HTMLBody); err != nil {
		return nil, err
	}

	filename := msg.Attachment.Filename
	if filename == "" {
		filename = filepath.Base(msg.Attachment.Path)
	}
	contentType := msg.Attachment.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	filePart, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {mime.FormatMediaType(contentType, map[string]string{"name": filename})},
		"Content-Transfer-Encoding": {"base64"},
		"Content-Disposition":       {mime.FormatMediaType("attachment", map[string]string{"filename": filename})},
	})
	if err != nil {
		return nil, err
	}
	if err := writeBase64Lines(filePart, content); err != nil {
		return nil, err
	}

	if err := mw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeQuotedPrintable(w io.Writer, body string) error {
	qp := quotedprintable.NewWriter(w)
	if _, err := qp.Write([]byte(body)); err != nil {
		return err
	}
	return qp.Close()
}

func writeBase64Lines(w io.Writer, data []byte) error {
	encoded := base64.StdEncoding.EncodeToString(data)
	for len(encoded) > base64LineLength {
		if _, err := fmt.Fprintf(w, "%s\r\n", encoded[:base64LineLength]); err != nil {
			return err
		}
		encoded = encoded[base64LineLength:]
	}
	_, err := fmt.Fprintf(w, "%s\r\n", encoded)
	return err
}

func domainOf(addr string) string {
	if i := strings.LastIndex(addr, "@"); i >= 0 && i < len(addr)-1 {
		return addr[i+1:]
	}
	return "localhost"
}
