// Package email defines the EmailSender abstraction used to deliver quiz
// results, plus a DevSender that writes messages to disk for local work.
//
//	sender := email.NewDevSender("./tmp/emails")
//	err := sender.SendEmail(ctx, email.SendEmailParams{
//		SendTo:   "owner@acme.com",
//		Subject:  "Your quiz results",
//		BodyHTML: html,
//		Tag:      "quiz_results",
//	})
//
// Production delivery lives in integration/email/postmark. Bodies are
// rendered from templ components with the templates subpackage.
//
// Errors wrap ErrInvalidParams, ErrInvalidConfig or ErrFailedToSendEmail.
package email
