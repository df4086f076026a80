package gmailer

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// Mailer wraps the Gmail API for sending plain-text notification emails.
type Mailer struct {
	service *gmail.Service
}

// NewMailerFromCredentialsFile creates a Mailer from a credentials JSON file path.
func NewMailerFromCredentialsFile(ctx context.Context, credentialsPath string) (*Mailer, error) {
	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}
	return NewMailerFromCredentialsJSON(ctx, data)
}

// NewMailerFromCredentialsJSON creates a Mailer from raw credentials JSON bytes.
// Accepts a Service Account key or OAuth Desktop credentials plus token.json,
// same formats the calendar client supports.
func NewMailerFromCredentialsJSON(ctx context.Context, credentialsJSON []byte) (*Mailer, error) {
	config, err := google.JWTConfigFromJSON(credentialsJSON, gmail.GmailSendScope, gmail.GmailReadonlyScope)
	if err == nil {
		svc, svcErr := gmail.NewService(ctx, option.WithTokenSource(config.TokenSource(ctx)))
		if svcErr != nil {
			return nil, fmt.Errorf("failed to create gmail service: %w", svcErr)
		}
		return &Mailer{service: svc}, nil
	}

	var oauthCreds struct {
		Installed struct {
			ClientID     string `json:"client_id"`
			ClientSecret string `json:"client_secret"`
		} `json:"installed"`
	}
	if jsonErr := json.Unmarshal(credentialsJSON, &oauthCreds); jsonErr != nil {
		return nil, fmt.Errorf("unsupported credentials format: %w", err)
	}

	oauthConfig := &oauth2.Config{
		ClientID:     oauthCreds.Installed.ClientID,
		ClientSecret: oauthCreds.Installed.ClientSecret,
		Scopes:       []string{gmail.GmailSendScope, gmail.GmailReadonlyScope},
		Endpoint:     google.Endpoint,
	}

	tokenData, tokenErr := os.ReadFile("token.json")
	if tokenErr != nil {
		return nil, fmt.Errorf("google credentials are OAuth Desktop type but no token.json found: run scripts/gcal-auth first")
	}

	var tok oauth2.Token
	if jsonErr := json.Unmarshal(tokenData, &tok); jsonErr != nil {
		return nil, fmt.Errorf("failed to parse token.json: %w", jsonErr)
	}

	svc, svcErr := gmail.NewService(ctx, option.WithTokenSource(oauthConfig.TokenSource(ctx, &tok)))
	if svcErr != nil {
		return nil, fmt.Errorf("failed to create gmail service from OAuth token: %w", svcErr)
	}

	return &Mailer{service: svc}, nil
}

// NewMailerFromHTTP creates a Mailer from a pre-configured HTTP client.
func NewMailerFromHTTP(ctx context.Context, httpClient *http.Client) (*Mailer, error) {
	svc, err := gmail.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail service: %w", err)
	}
	return &Mailer{service: svc}, nil
}

// Send delivers a plain-text email from the authorized account.
func (m *Mailer) Send(ctx context.Context, req SendRequest) error {
	raw := fmt.Sprintf("To: %s\r\nFrom: me\r\nSubject: %s\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n%s",
		req.To, req.Subject, req.Body)

	msg := &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString([]byte(raw)),
	}

	if _, err := m.service.Users.Messages.Send("me", msg).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to send notification email: %w", err)
	}
	return nil
}

// Profile returns the email address of the authorized account.
func (m *Mailer) Profile(ctx context.Context) (string, error) {
	profile, err := m.service.Users.GetProfile("me").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to load gmail profile: %w", err)
	}
	return profile.EmailAddress, nil
}
