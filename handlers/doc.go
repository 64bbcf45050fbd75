// Package handlers exposes the HTTP endpoints of the mail gateway.
//
// Email mounts three API-key protected routes:
//
//	POST /send       send one message
//	POST /send-bulk  send one message to every recipient individually
//	GET  /status     transport metadata and sender configuration state
//
// Request bodies are validated before anything is sent. Field failures
// answer 400 with {"success": false, "message": "Validation failed",
// "errors": [{"field", "message"}]}. A bulk send answers 200 even when some
// or all recipients fail; per-recipient outcomes are in the body.
package handlers
