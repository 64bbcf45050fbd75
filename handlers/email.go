package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrymomot/mailgate"
	"github.com/dmitrymomot/mailgate/middlewares"
	"github.com/dmitrymomot/mailgate/pkg/mailer"
	"github.com/dmitrymomot/mailgate/pkg/senderconfig"
)

// Mailer sends messages. *mailer.Dispatcher satisfies it.
type Mailer interface {
	Send(ctx context.Context, msg mailer.Message) (string, error)
	SendBulk(ctx context.Context, msg mailer.BulkMessage) (mailer.BulkResult, error)
}

// StateReporter reports the sender configuration cache state.
// *senderconfig.Cache satisfies it.
type StateReporter interface {
	State() senderconfig.State
}

// Status is the descriptive transport metadata shown by GET /status.
// None of it is secret.
type Status struct {
	Transport  string
	SMTPHost   string
	SMTPPort   int
	SMTPSecure bool
	// SenderConfig is optional; when nil the state is omitted.
	SenderConfig StateReporter
}

// Email serves the send, bulk send and status endpoints.
// Every route requires an API key.
type Email struct {
	mailer Mailer
	auth   middlewares.Authenticator
	status  Status
	prefix  string
	timeout time.Duration
	now     func() time.Time
}

// EmailOption configures the Email handler.
type EmailOption func(*Email)

// WithPrefix mounts the routes under prefix, e.g. "/api/email".
func WithPrefix(prefix string) EmailOption {
	return func(h *Email) {
		h.prefix = prefix
	}
}

// WithTimeout bounds /send and /status. /send-bulk is never bounded: its
// batch runs to completion and the caller always gets the outcomes.
func WithTimeout(d time.Duration) EmailOption {
	return func(h *Email) {
		h.timeout = d
	}
}

// WithClock overrides the status timestamp source.
func WithClock(now func() time.Time) EmailOption {
	return func(h *Email) {
		h.now = now
	}
}

// NewEmail creates the email handler.
func NewEmail(m Mailer, auth middlewares.Authenticator, status Status, opts ...EmailOption) *Email {
	h := &Email{
		mailer: m,
		auth:   auth,
		status: status,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes declares the email routes.
func (h *Email) Routes(r mailgate.Router) {
	var bounded []mailgate.Middleware
	if h.timeout > 0 {
		bounded = append(bounded, middlewares.Timeout(h.timeout))
	}

	routes := func(r mailgate.Router) {
		r.Use(middlewares.APIKey(h.auth))
		r.POST("/send", h.send, bounded...)
		r.POST("/send-bulk", h.sendBulk)
		r.GET("/status", h.statusInfo, bounded...)
	}

	if h.prefix == "" || h.prefix == "/" {
		r.Group(routes)
		return
	}
	r.Route(h.prefix, routes)
}

type sendResponse struct {
	Message   string `json:"message"`
	MessageID string `json:"messageId"`
	Success   bool   `json:"success"`
}

type bulkResponse struct {
	Message string            `json:"message"`
	Results mailer.BulkResult `json:"results"`
	Success bool              `json:"success"`
}

type validationFailure struct {
	Message string                    `json:"message"`
	Errors  mailgate.ValidationErrors `json:"errors"`
	Success bool                      `json:"success"`
}

func (h *Email) send(c mailgate.Context) error {
	var req sendRequest
	errs, err := c.BindJSON(&req)
	if err != nil {
		return malformed(err)
	}
	content := req.content(&errs)
	if len(errs) > 0 {
		return invalid(c, errs)
	}

	c.LogInfo("email send request",
		"to", req.To,
		"subject", content.Subject,
		"has_attachments", len(content.Attachments) > 0,
		"ip", c.RealIP(),
		"api_key", middlewares.GetAPIKey(c),
	)

	id, err := h.mailer.Send(middlewares.GetTimeoutContext(c), mailer.Message{To: req.To, Content: content})
	if err != nil {
		return mailgate.ErrInternal("Failed to send email",
			mailgate.WithDetail(transportCause(err)),
			mailgate.WithError(err),
		)
	}

	c.LogInfo("email sent successfully", "message_id", id, "to", req.To, "subject", content.Subject)
	return c.JSON(http.StatusOK, sendResponse{
		Success:   true,
		Message:   "Email sent successfully",
		MessageID: id,
	})
}

func (h *Email) sendBulk(c mailgate.Context) error {
	var req bulkRequest
	errs, err := c.BindJSON(&req)
	if err != nil {
		return malformed(err)
	}
	content := req.content(&errs)
	if len(errs) > 0 {
		return invalid(c, errs)
	}
	if len(req.Recipients) == 0 {
		return mailgate.ErrBadRequest("Recipients array is required for bulk email")
	}

	c.LogInfo("bulk email send request",
		"recipient_count", len(req.Recipients),
		"subject", content.Subject,
		"has_attachments", len(content.Attachments) > 0,
		"ip", c.RealIP(),
		"api_key", middlewares.GetAPIKey(c),
	)

	res, err := h.mailer.SendBulk(middlewares.GetTimeoutContext(c), mailer.BulkMessage{Recipients: req.Recipients, Content: content})
	if err != nil {
		return mailgate.ErrInternal("Bulk email failed",
			mailgate.WithDetail(err.Error()),
			mailgate.WithError(err),
		)
	}

	return c.JSON(http.StatusOK, bulkResponse{
		Success: true,
		Message: fmt.Sprintf("Bulk email completed: %d sent, %d failed", len(res.Successful), len(res.Failed)),
		Results: res,
	})
}

type smtpStatus struct {
	Host   string `json:"host"`
	Port   int    `json:"port"`
	Secure bool   `json:"secure"`
}

type senderConfigStatus struct {
	State senderconfig.State `json:"state"`
}

type statusResponse struct {
	Timestamp    time.Time           `json:"timestamp"`
	SenderConfig *senderConfigStatus `json:"senderConfig,omitempty"`
	Service      string              `json:"service"`
	Status       string              `json:"status"`
	Transport    string              `json:"transport"`
	SMTP         smtpStatus          `json:"smtp"`
	Success      bool                `json:"success"`
}

func (h *Email) statusInfo(c mailgate.Context) error {
	resp := statusResponse{
		Success:   true,
		Service:   "Email Service",
		Status:    "operational",
		Timestamp: h.now().UTC(),
		Transport: h.status.Transport,
		SMTP: smtpStatus{
			Host:   h.status.SMTPHost,
			Port:   h.status.SMTPPort,
			Secure: h.status.SMTPSecure,
		},
	}
	if h.status.SenderConfig != nil {
		resp.SenderConfig = &senderConfigStatus{State: h.status.SenderConfig.State()}
	}
	return c.JSON(http.StatusOK, resp)
}

func malformed(err error) error {
	return mailgate.ErrBadRequest("Invalid JSON body", mailgate.WithError(err))
}

func invalid(c mailgate.Context, errs mailgate.ValidationErrors) error {
	c.LogWarn("validation failed", "errors", errs.Error())
	return c.JSON(http.StatusBadRequest, validationFailure{
		Message: "Validation failed",
		Errors:  errs,
	})
}

// transportCause returns the transport's own message without the recipient prefix.
func transportCause(err error) string {
	var te *mailer.TransportError
	if errors.As(err, &te) && te.Err != nil {
		return te.Err.Error()
	}
	return err.Error()
}
