package publish

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"

	draugrerrors "github.com/Mahdiglm/draugr-deploy/errors"
)

// Verifier checks that a token is accepted by the GitHub API and belongs to
// the given user.
type Verifier struct {
	// BaseURL overrides the API endpoint (GitHub Enterprise, tests).
	BaseURL string
}

func (v *Verifier) Verify(ctx context.Context, username, token string) error {
	client, err := v.client(ctx, token)
	if err != nil {
		return err
	}

	user, resp, err := client.Users.Get(ctx, "")
	if err != nil {
		if resp != nil && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
			return draugrerrors.AuthFailed(username, "token rejected by GitHub")
		}
		return draugrerrors.Wrap(redact(err), draugrerrors.ErrCodeAuthFailed, "could not verify GitHub credentials").
			WithDetail("user", username)
	}

	if login := user.GetLogin(); !strings.EqualFold(login, username) {
		return draugrerrors.AuthFailed(username, fmt.Sprintf("token belongs to '%s'", login))
	}
	return nil
}

func (v *Verifier) client(ctx context.Context, token string) (*github.Client, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	client := github.NewClient(oauth2.NewClient(ctx, ts))

	if v.BaseURL != "" {
		base := v.BaseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, draugrerrors.Wrap(err, draugrerrors.ErrCodeInvalidInput, "invalid GitHub API URL")
		}
		client.BaseURL = u
	}
	return client, nil
}
