// Package mailer sends transactional mail through an HTTP JSON mail API.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type Recipient struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sendRequest struct {
	From     Recipient   `json:"from"`
	To       []Recipient `json:"to"`
	Subject  string      `json:"subject"`
	Text     string      `json:"text"`
	Category string      `json:"category,omitempty"`
}

type Client struct {
	apiURL    string
	apiKey    string
	fromEmail string
	fromName  string
	http      *http.Client
}

func New(apiURL, apiKey, fromEmail, fromName string) *Client {
	return &Client{
		apiURL:    apiURL,
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
		http:      &http.Client{Timeout: 15 * time.Second},
	}
}

// SendPasswordReset delivers a password-reset mail carrying the one-time
// reset link. The token inside the link is usable for 10 minutes.
func (c *Client) SendPasswordReset(ctx context.Context, toEmail, toName, resetURL string) error {
	body := fmt.Sprintf(
		"Hello %s,\n\n"+
			"You are receiving this email because you (or someone else) has requested the reset of a password. "+
			"Please make a PUT request to:\n\n%s\n\n"+
			"If you did not request this, please ignore this email.\n",
		toName, resetURL,
	)

	return c.send(ctx, sendRequest{
		From:     Recipient{Email: c.fromEmail, Name: c.fromName},
		To:       []Recipient{{Email: toEmail, Name: toName}},
		Subject:  "Password reset token",
		Text:     body,
		Category: "password_reset",
	})
}

func (c *Client) send(ctx context.Context, req sendRequest) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("mailer: failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("mailer: failed to create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("mailer: failed to send mail: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("mailer: mail API returned status %d", resp.StatusCode)
	}
	return nil
}
