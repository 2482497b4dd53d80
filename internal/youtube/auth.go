// Package youtube authenticates to the YouTube Data API and uploads rendered
// compilations.
package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"sync"

	"clipcomp/internal/store"
	"clipcomp/internal/utils/logging"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	ytapi "google.golang.org/api/youtube/v3"
)

// ErrAuthFailed indicates credentials could not be obtained or refreshed.
var ErrAuthFailed = errors.New("youtube authentication failed")

// Authenticator produces an authorized HTTP client for the upload API. The
// interactive browser flow hides behind this so tests can substitute a fake.
type Authenticator interface {
	Authenticate(ctx context.Context) (*http.Client, error)
}

// OAuthAuthenticator implements the authorization-code flow. The first run
// requires interactive user consent through a local redirect listener; the
// resulting refresh token is persisted and silently refreshed afterwards.
type OAuthAuthenticator struct {
	ClientSecretFile string
	TokenFile        string
}

// Authenticate returns an HTTP client carrying valid credentials, running the
// interactive consent flow only when no usable persisted token exists.
func (o *OAuthAuthenticator) Authenticate(ctx context.Context) (*http.Client, error) {
	data, err := os.ReadFile(o.ClientSecretFile)
	if err != nil {
		return nil, fmt.Errorf("%w: reading client secret file: %v", ErrAuthFailed, err)
	}

	conf, err := google.ConfigFromJSON(data, ytapi.YoutubeUploadScope)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing client secret file: %v", ErrAuthFailed, err)
	}

	tok, err := o.loadToken()
	if err != nil {
		logging.I("No cached YouTube credentials, starting interactive consent flow")
		tok, err = o.consentFlow(ctx, conf)
		if err != nil {
			return nil, err
		}
		if err := o.saveToken(tok); err != nil {
			return nil, fmt.Errorf("%w: persisting token: %v", ErrAuthFailed, err)
		}
	}

	ts := conf.TokenSource(ctx, tok)

	// Force a fetch now so an expired refresh token fails the run up front
	// rather than mid-upload.
	fresh, err := ts.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: refreshing token: %v", ErrAuthFailed, err)
	}
	if fresh.AccessToken != tok.AccessToken {
		logging.D(1, "Refreshed YouTube access token")
		if err := o.saveToken(fresh); err != nil {
			logging.W("Failed to persist refreshed YouTube token: %v", err)
		}
	}

	return oauth2.NewClient(ctx, oauth2.ReuseTokenSource(fresh, ts)), nil
}

// consentFlow serves a one-shot local redirect endpoint, prints the consent
// URL for the operator's browser and exchanges the returned code.
func (o *OAuthAuthenticator) consentFlow(ctx context.Context, conf *oauth2.Config) (*oauth2.Token, error) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("%w: starting redirect listener: %v", ErrAuthFailed, err)
	}
	defer lis.Close()

	conf.RedirectURL = fmt.Sprintf("http://%s/", lis.Addr().String())
	state := uuid.NewString()

	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)

	srv := &http.Server{Handler: redirectHandler(state, codeCh, errCh)}
	go srv.Serve(lis)
	defer srv.Close()

	authURL := conf.AuthCodeURL(state, oauth2.AccessTypeOffline)
	logging.P("\nOpen the following URL in your browser to authorize YouTube uploads:\n\n  %s\n", authURL)

	var code string
	select {
	case code = <-codeCh:
	case err := <-errCh:
		return nil, fmt.Errorf("%w: %v", ErrAuthFailed, err)
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", ErrAuthFailed, ctx.Err())
	}

	tok, err := conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: code exchange: %v", ErrAuthFailed, err)
	}
	return tok, nil
}

// redirectHandler serves the one-shot OAuth redirect. Requests carrying
// neither state nor code (browser favicon fetches, port scans) are ignored so
// they cannot use up the single consume before the real redirect arrives.
func redirectHandler(state string, codeCh chan<- string, errCh chan<- error) http.HandlerFunc {
	var once sync.Once
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("state") == "" && q.Get("code") == "" {
			http.NotFound(w, r)
			return
		}
		once.Do(func() {
			if q.Get("state") != state {
				errCh <- fmt.Errorf("state mismatch in OAuth redirect")
				http.Error(w, "state mismatch", http.StatusBadRequest)
				return
			}
			code := q.Get("code")
			if code == "" {
				errCh <- fmt.Errorf("no code in OAuth redirect")
				http.Error(w, "missing code", http.StatusBadRequest)
				return
			}
			fmt.Fprintln(w, "Authorization received. You can close this tab and return to clipcomp.")
			codeCh <- code
		})
	}
}

// loadToken reads the persisted token JSON.
func (o *OAuthAuthenticator) loadToken() (*oauth2.Token, error) {
	data, err := os.ReadFile(o.TokenFile)
	if err != nil {
		return nil, err
	}
	tok := &oauth2.Token{}
	if err := json.Unmarshal(data, tok); err != nil {
		return nil, fmt.Errorf("invalid token file %q: %w", o.TokenFile, err)
	}
	if tok.RefreshToken == "" && tok.AccessToken == "" {
		return nil, fmt.Errorf("token file %q holds no credentials", o.TokenFile)
	}
	return tok, nil
}

// saveToken persists the token JSON atomically.
func (o *OAuthAuthenticator) saveToken(tok *oauth2.Token) error {
	data, err := json.Marshal(tok)
	if err != nil {
		return err
	}

	w, err := store.NewAtomicWriter(o.TokenFile)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		w.Abort()
		return err
	}
	return w.Commit()
}
