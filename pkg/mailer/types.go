package mailer

import "strings"

// Email is a fully prepared message handed to a Sender.
type Email struct {
	From        string
	To          []string
	ReplyTo     string
	Subject     string
	HTML        string
	Text        string
	Headers     map[string]string
	Attachments []Attachment
}

// Attachment is a file carried inline in the message.
type Attachment struct {
	Filename    string
	ContentType string
	// ContentID marks an inline attachment referenced from the HTML body as cid:<ContentID>.
	ContentID string
	Content   []byte
}

// Content is the body shared by single and bulk sends.
// Exactly one of HTML, Markdown or Text is used, in that order of precedence.
type Content struct {
	Subject     string
	HTML        string
	Markdown    string
	Text        string
	Attachments []Attachment
}

// Message is a single-recipient send.
type Message struct {
	To string
	Content
}

// BulkMessage sends the same content to every recipient individually.
// Duplicate recipients are sent to and reported on once per occurrence.
type BulkMessage struct {
	Recipients []string
	Content
}

// Outcome is the result of one delivery attempt.
type Outcome struct {
	Recipient string `json:"recipient"`
	Success   bool   `json:"success"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"errorMessage,omitempty"`
}

// BulkResult partitions outcomes by success, each list in input order.
type BulkResult struct {
	Successful []Outcome `json:"successful"`
	Failed     []Outcome `json:"failed"`
}

// Total is the number of recipients processed.
func (r BulkResult) Total() int { return len(r.Successful) + len(r.Failed) }

func newBulkResult(outcomes []Outcome) BulkResult {
	res := BulkResult{
		Successful: make([]Outcome, 0, len(outcomes)),
		Failed:     make([]Outcome, 0),
	}
	for _, o := range outcomes {
		if o.Success {
			res.Successful = append(res.Successful, o)
		} else {
			res.Failed = append(res.Failed, o)
		}
	}
	return res
}

// FormatFrom builds the From header value: "Name" <address>.
// Double quotes and backslashes in name are escaped.
func FormatFrom(name, address string) string {
	if name == "" {
		return address
	}
	name = strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(name)
	return `"` + name + `" <` + address + `>`
}
