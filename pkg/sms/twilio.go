package sms

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var ErrNotConfigured = errors.New("sms sender not configured")

// Twilio sends messages through the Twilio Messages REST endpoint.
type Twilio struct {
	AccountSID string
	AuthToken  string
	From       string
	HTTPClient *http.Client
}

func NewTwilio(accountSID, authToken, from string) *Twilio {
	return &Twilio{
		AccountSID: accountSID,
		AuthToken:  authToken,
		From:       from,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (t *Twilio) Send(ctx context.Context, phone, body string) error {
	if t.AccountSID == "" || t.AuthToken == "" || t.From == "" {
		return ErrNotConfigured
	}
	endpoint := fmt.Sprintf("https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json", t.AccountSID)
	form := url.Values{}
	form.Set("To", phone)
	form.Set("From", t.From)
	form.Set("Body", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(t.AccountSID, t.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := t.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.StatusCode >= 300 {
		return fmt.Errorf("twilio: unexpected status %s", res.Status)
	}
	return nil
}

var _ Sender = (*Twilio)(nil)
