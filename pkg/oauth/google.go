package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

var ErrExchangeFailed = errors.New("oauth exchange failed")

// Profile is the identity assertion an external provider hands back
// after a successful handshake.
type Profile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Provider abstracts the third-party identity handshake so the
// federation flow stays a plain function over a Profile.
type Provider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (Profile, error)
}

const userinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// Google implements Provider on top of golang.org/x/oauth2.
type Google struct {
	cfg *oauth2.Config
}

func NewGoogle(clientID, clientSecret, redirectURL string) *Google {
	return &Google{
		cfg: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"profile", "email"},
			Endpoint:     google.Endpoint,
		},
	}
}

func (g *Google) AuthCodeURL(state string) string {
	return g.cfg.AuthCodeURL(state)
}

// Exchange trades the callback code for a token and fetches the
// userinfo document with it.
func (g *Google) Exchange(ctx context.Context, code string) (Profile, error) {
	tok, err := g.cfg.Exchange(ctx, code)
	if err != nil {
		return Profile{}, fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}
	client := g.cfg.Client(ctx, tok)
	res, err := client.Get(userinfoURL)
	if err != nil {
		return Profile{}, fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.StatusCode >= 300 {
		return Profile{}, fmt.Errorf("%w: userinfo status %s", ErrExchangeFailed, res.Status)
	}
	var p Profile
	if err := json.NewDecoder(res.Body).Decode(&p); err != nil {
		return Profile{}, fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}
	if p.ID == "" {
		return Profile{}, fmt.Errorf("%w: empty profile id", ErrExchangeFailed)
	}
	return p, nil
}

var _ Provider = (*Google)(nil)
