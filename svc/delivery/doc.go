// Package delivery provides messaging.Backend implementations.
//
// HTTPBackend talks to the Delivery Backend REST API:
//
//	POST /messaging/send                     individual and multiple payloads
//	POST /categories/{id}/send-message       category payloads {subject, content, sendEmail, sendSms}
//	POST /messaging/schedule                 payloads with a scheduled time
//	GET  /messages/{messageId}/status        MessageStatus
//
// PostmarkEmail sends immediate single-recipient emails through Postmark, and
// Router puts it in front of another backend. DevBackend writes each payload
// to a JSON file for local development. New picks one of them from Config.
package delivery
