// Package sendgrid delivers password-reset mail through the SendGrid v3 API.
package sendgrid

import (
	"context"
	"errors"
	"fmt"
	"html"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

const (
	DefaultBaseURL = "https://api.sendgrid.com"
	sendEndpoint   = "/v3/mail/send"
	resetSubject   = "New Password"
)

// ErrMissingAPIKey is returned by every send while no API key is configured.
var ErrMissingAPIKey = errors.New("sendgrid api key is empty")

// Client is a minimal SendGrid mail client.
type Client struct {
	APIKey   string
	BaseURL  string
	FromAddr string
	FromName string
}

func New(apiKey, baseURL, fromAddr, fromName string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		APIKey:   apiKey,
		BaseURL:  baseURL,
		FromAddr: fromAddr,
		FromName: fromName,
	}
}

// SendPasswordReset mails newPassword to the given address as both plain text and HTML.
func (c *Client) SendPasswordReset(ctx context.Context, to, newPassword string) error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	plain := "Your new password <b>" + newPassword + "</b>"
	htmlBody := "Your new password <b>" + html.EscapeString(newPassword) + "</b>"
	msg := mail.NewSingleEmail(
		mail.NewEmail(c.FromName, c.FromAddr),
		resetSubject,
		mail.NewEmail("", to),
		plain,
		htmlBody,
	)

	req := sendgrid.GetRequest(c.APIKey, sendEndpoint, c.BaseURL)
	req.Method = "POST"
	req.Body = mail.GetRequestBody(msg)

	resp, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("sendgrid request: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid http %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}
