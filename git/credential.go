package git

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/Mahdiglm/draugr-deploy/command"
)

// credentialTimeout bounds a helper that hangs instead of answering.
const credentialTimeout = 10 * time.Second

// helperCredentials asks the git credential helpers configured on the
// machine (store, osxkeychain, gh, ...) for the credentials of u. Nothing
// is prompted for; a missing git binary or an empty answer gives ok=false.
func helperCredentials(ctx context.Context, u *url.URL) (username, password string, ok bool) {
	cmd, err := command.NewSafeBuilder().
		WithTimeout(credentialTimeout).
		Build(ctx, "git", "credential", "fill")
	if err != nil {
		return "", "", false
	}
	cmd.WithEnv("GIT_TERMINAL_PROMPT=0", "GIT_ASKPASS=")

	var out bytes.Buffer
	if err := cmd.Run(credentialRequest(u), &out, io.Discard); err != nil {
		return "", "", false
	}

	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		key, value, found := strings.Cut(scanner.Text(), "=")
		if !found {
			continue
		}
		switch key {
		case "username":
			username = value
		case "password":
			password = value
		}
	}
	if password == "" {
		return "", "", false
	}
	return username, password, true
}

// credentialRequest is the `git credential` description of u. The path is
// only used by helpers when credential.useHttpPath is set.
func credentialRequest(u *url.URL) io.Reader {
	var b strings.Builder
	fmt.Fprintf(&b, "protocol=%s\n", u.Scheme)
	fmt.Fprintf(&b, "host=%s\n", u.Host)
	if path := strings.TrimPrefix(u.Path, "/"); path != "" {
		fmt.Fprintf(&b, "path=%s\n", path)
	}
	b.WriteString("\n")
	return strings.NewReader(b.String())
}
