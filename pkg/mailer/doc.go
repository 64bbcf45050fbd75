// Package mailer prepares and dispatches transactional email.
//
// [Dispatcher] is the entry point. It resolves the sender display name once
// per call, builds the HTML body once (see [BodyBuilder]), and hands an
// [Email] per recipient to a [Sender]:
//
//	d := mailer.NewDispatcher(smtpSender, senderCache, "noreply@example.com",
//	    mailer.WithConcurrency(4),
//	    mailer.WithLogger(log),
//	)
//	id, err := d.Send(ctx, mailer.Message{
//	    To:      "alice@example.com",
//	    Content: mailer.Content{Subject: "Hi", Text: "line1\nline2"},
//	})
//
// [Dispatcher.SendBulk] sends to each recipient separately and reports one
// [Outcome] per recipient, split into successful and failed lists in input
// order. A transport failure is reported, never retried.
//
// Markdown bodies support a call-to-action button:
//
//	[!button|Confirm email](https://example.com/confirm)
//
// Senders live in subpackages: smtp, resend and ses.
package mailer
