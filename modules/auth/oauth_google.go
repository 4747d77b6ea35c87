package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/smartcafe/cafehub/modules/users"
	"github.com/smartcafe/cafehub/pkg/access"
	"github.com/smartcafe/cafehub/pkg/session"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// ErrOAuthExchange is returned when the provider rejects the callback code.
var ErrOAuthExchange = errors.New("auth: oauth code exchange failed")

// GoogleConfig holds the Google sign-in settings loaded from the
// environment. Leaving the client id empty disables the flow.
type GoogleConfig struct {
	ClientID     string `env:"GOOGLE_CLIENT_ID"`
	ClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	RedirectURL  string `env:"GOOGLE_REDIRECT_URL" envDefault:"http://localhost:8080/auth/google/callback"`
}

// Enabled reports whether Google sign-in is configured.
func (c GoogleConfig) Enabled() bool { return c.ClientID != "" }

// GoogleProvider runs the OAuth code flow and maps Google accounts onto
// local profiles, creating an unapproved staff profile on first sign-in.
type GoogleProvider struct {
	oauth *oauth2.Config
	store AccountStore
	svc   *Service
}

// NewGoogleProvider wires the OAuth config for Google sign-in.
func NewGoogleProvider(cfg GoogleConfig, store AccountStore, svc *Service) *GoogleProvider {
	return &GoogleProvider{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		store: store,
		svc:   svc,
	}
}

// AuthURL returns the Google consent page URL for the given state token.
func (p *GoogleProvider) AuthURL(state string) string {
	return p.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// NewState returns an unguessable state token for CSRF protection.
func NewState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

type googleUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Callback exchanges the code, fetches the Google profile and establishes
// a session for the matching local account, creating one if needed.
func (p *GoogleProvider) Callback(ctx context.Context, code string) (*session.Session, error) {
	tok, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, errors.Join(ErrOAuthExchange, err)
	}

	gu, err := p.fetchUser(ctx, tok)
	if err != nil {
		return nil, err
	}

	id, err := p.store.FindByGoogleID(ctx, gu.ID)
	switch {
	case err == nil:
		return p.svc.establish(ctx, id.ID)
	case errors.Is(err, users.ErrNotFound):
	default:
		return nil, err
	}

	profile := users.Profile{
		ID:            uuid.NewString(),
		Email:         gu.Email,
		Name:          gu.Name,
		Role:          string(access.RoleStaff),
		ApprovalState: string(access.ApprovalPending),
		GoogleID:      gu.ID,
	}
	if err := p.store.Create(ctx, profile); err != nil {
		if errors.Is(err, users.ErrEmailTaken) {
			return nil, ErrEmailInUse
		}
		return nil, err
	}
	return p.svc.establish(ctx, profile.ID)
}

func (p *GoogleProvider) fetchUser(ctx context.Context, tok *oauth2.Token) (googleUser, error) {
	resp, err := p.oauth.Client(ctx, tok).Get(googleUserInfoURL)
	if err != nil {
		return googleUser{}, fmt.Errorf("fetch google profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return googleUser{}, fmt.Errorf("fetch google profile: status %d", resp.StatusCode)
	}

	var gu googleUser
	if err := json.NewDecoder(resp.Body).Decode(&gu); err != nil {
		return googleUser{}, fmt.Errorf("decode google profile: %w", err)
	}
	if gu.ID == "" || gu.Email == "" {
		return googleUser{}, fmt.Errorf("decode google profile: missing id or email")
	}
	return gu, nil
}
