package handlers

import (
	"encoding/base64"
	"encoding/hex"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dmitrymomot/mailgate"
	"github.com/dmitrymomot/mailgate/pkg/mailer"
)

const maxSubjectLen = 255

// attachmentRequest carries file content inline, optionally base64 or hex encoded.
type attachmentRequest struct {
	Filename    string `json:"filename"    validate:"required,max=255"`
	Content     string `json:"content"     validate:"required"`
	Encoding    string `json:"encoding"    validate:"omitempty,oneof=base64 hex utf8 utf-8"`
	ContentType string `json:"contentType" validate:"omitempty,max=255"`
	CID         string `json:"cid"         validate:"omitempty,max=255"`
}

// sendRequest is the body of POST /send.
type sendRequest struct {
	To          string              `json:"to"          validate:"required,email"`
	Subject     string              `json:"subject"     validate:"required,max=255"`
	HTML        string              `json:"html"`
	Text        string              `json:"text"`
	Markdown    string              `json:"markdown"`
	Attachments []attachmentRequest `json:"attachments" validate:"omitempty,dive"`
}

// bulkRequest is the body of POST /send-bulk.
// Recipients are checked for presence separately so that a missing list gets
// its own message after the field rules pass.
type bulkRequest struct {
	Recipients  []string            `json:"recipients"  validate:"omitempty,dive,email"`
	Subject     string              `json:"subject"     validate:"required,max=255"`
	HTML        string              `json:"html"`
	Text        string              `json:"text"`
	Markdown    string              `json:"markdown"`
	Attachments []attachmentRequest `json:"attachments" validate:"omitempty,dive"`
}

func (r *sendRequest) content(errs *mailgate.ValidationErrors) mailer.Content {
	return buildContent(r.Subject, r.HTML, r.Text, r.Markdown, r.Attachments, errs)
}

func (r *bulkRequest) content(errs *mailgate.ValidationErrors) mailer.Content {
	return buildContent(r.Subject, r.HTML, r.Text, r.Markdown, r.Attachments, errs)
}

// buildContent applies the rules struct tags cannot express: the subject is
// trimmed before its length is checked, one body is required and attachment
// content is decoded. Failures are appended to errs.
func buildContent(subject, html, text, markdown string, atts []attachmentRequest, errs *mailgate.ValidationErrors) mailer.Content {
	subject = strings.TrimSpace(subject)
	switch {
	case subject == "" && !errs.Has("subject"):
		errs.Add("subject", "is required")
	case utf8.RuneCountInString(subject) > maxSubjectLen && !errs.Has("subject"):
		errs.Add("subject", "must be at most "+strconv.Itoa(maxSubjectLen)+" characters long")
	}

	if html == "" && text == "" && markdown == "" {
		errs.Add("content", "either html, markdown or text content is required")
	}

	c := mailer.Content{
		Subject:  subject,
		HTML:     html,
		Text:     text,
		Markdown: markdown,
	}
	for i, a := range atts {
		data, err := a.decode()
		if err != nil {
			errs.Add("attachments["+strconv.Itoa(i)+"].content", "must be valid "+a.Encoding)
			continue
		}
		c.Attachments = append(c.Attachments, mailer.Attachment{
			Filename:    a.Filename,
			ContentType: a.ContentType,
			ContentID:   a.CID,
			Content:     data,
		})
	}
	return c
}

func (a attachmentRequest) decode() ([]byte, error) {
	switch a.Encoding {
	case "base64":
		return base64.StdEncoding.DecodeString(a.Content)
	case "hex":
		return hex.DecodeString(a.Content)
	default:
		return []byte(a.Content), nil
	}
}
