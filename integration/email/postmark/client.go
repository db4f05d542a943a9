package postmark

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrz1836/postmark"

	"github.com/Arokeji/Nailted-Back/core/email"
)

// API is the subset of the Postmark client used for sending.
type API interface {
	SendEmail(ctx context.Context, e postmark.Email) (postmark.EmailResponse, error)
}

// Client sends email through Postmark's transactional API.
type Client struct {
	api    API
	config Config
}

// New validates cfg and creates a Postmark backed sender.
func New(cfg Config) (*Client, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return &Client{
		api:    postmark.NewClient(cfg.PostmarkServerToken, cfg.PostmarkAccountToken),
		config: cfg,
	}, nil
}

// NewWithAPI is New with an injected API, used in tests.
func NewWithAPI(cfg Config, api API) (*Client, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return &Client{api: api, config: cfg}, nil
}

func validate(cfg Config) error {
	switch {
	case cfg.PostmarkServerToken == "":
		return fmt.Errorf("%w: postmark server token is required", email.ErrInvalidConfig)
	case !email.IsValidAddress(cfg.SenderEmail):
		return fmt.Errorf("%w: sender email must be a valid address", email.ErrInvalidConfig)
	case cfg.SupportEmail != "" && !email.IsValidAddress(cfg.SupportEmail):
		return fmt.Errorf("%w: support email must be a valid address", email.ErrInvalidConfig)
	}
	return nil
}

// SendEmail implements email.EmailSender. Opens and HTML link clicks are
// tracked, and replies go to the support address when one is configured.
func (c *Client) SendEmail(ctx context.Context, params email.SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	resp, err := c.api.SendEmail(ctx, postmark.Email{
		From:       c.config.SenderEmail,
		ReplyTo:    c.config.SupportEmail,
		To:         params.SendTo,
		Subject:    params.Subject,
		Tag:        params.Tag,
		HTMLBody:   params.BodyHTML,
		TrackOpens: true,
		TrackLinks: "HtmlOnly",
	})
	if err != nil {
		return errors.Join(email.ErrFailedToSendEmail, err)
	}
	if resp.ErrorCode > 0 {
		return errors.Join(
			email.ErrFailedToSendEmail,
			fmt.Errorf("postmark error %d: %s", resp.ErrorCode, resp.Message),
		)
	}
	return nil
}
