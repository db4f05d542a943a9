// Package postmark implements email.EmailSender on top of the Postmark
// transactional API (github.com/mrz1836/postmark).
//
//	sender, err := postmark.New(postmark.Config{
//		PostmarkServerToken: token,
//		SenderEmail:         "quiz@nailted.com",
//		SupportEmail:        "support@nailted.com",
//	})
//
// Transport errors and Postmark error codes are both reported wrapped in
// email.ErrFailedToSendEmail.
package postmark
