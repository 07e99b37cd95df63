package publish

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	draugrerrors "github.com/Mahdiglm/draugr-deploy/errors"
	"github.com/Mahdiglm/draugr-deploy/logging"
)

const (
	UsernamePrompt = "GitHub Username: "
	TokenPrompt    = "GitHub Personal Access Token: "

	interactiveHost = "github.com"
	interactivePath = "/Mahdiglm/DRAUGR-FrontEnd.git"
)

// PromptState is the position of an interactive deploy.
type PromptState int

const (
	AwaitingUsername PromptState = iota
	AwaitingToken
	Publishing
	Done
)

func (s PromptState) String() string {
	switch s {
	case AwaitingUsername:
		return "awaiting-username"
	case AwaitingToken:
		return "awaiting-token"
	case Publishing:
		return "publishing"
	case Done:
		return "done"
	}
	return fmt.Sprintf("PromptState(%d)", int(s))
}

// InteractiveConfig is UnattendedConfig pushed with the given credentials
// embedded in the URL and without the dotfiles override.
func InteractiveConfig(username, token string) Config {
	u := url.URL{
		Scheme: "https",
		User:   url.UserPassword(username, token),
		Host:   interactiveHost,
		Path:   interactivePath,
	}

	cfg := UnattendedConfig()
	cfg.RepoURL = u.String()
	cfg.Dotfiles = false
	cfg.Silent = false
	return cfg
}

// Prompter asks for a GitHub username and token, one line each, then
// publishes with them. The credentials only live in memory.
type Prompter struct {
	In        io.Reader
	Out       io.Writer
	Publisher Publisher
	Logger    *logrus.Entry

	// ReadSecret, if set, reads the token instead of In (e.g. without echo).
	ReadSecret func() (string, error)
	// Verify, if set, checks the credentials before anything is pushed.
	Verify func(ctx context.Context, username, token string) error
	// Configure, if set, adjusts the config built from the answers.
	Configure func(Config) Config

	state PromptState
}

func NewPrompter(in io.Reader, out io.Writer, p Publisher) *Prompter {
	return &Prompter{
		In:        in,
		Out:       out,
		Publisher: p,
		Logger:    logging.NewLogger("publish"),
	}
}

func (p *Prompter) State() PromptState {
	return p.state
}

// Run walks the prompt states to Done. The input is closed, if it is an
// io.Closer, once both answers are read and before the publish starts.
func (p *Prompter) Run(ctx context.Context) error {
	if p.state != AwaitingUsername {
		return draugrerrors.New(draugrerrors.ErrCodeInternal, fmt.Sprintf("prompt is %s", p.state))
	}
	defer func() { p.state = Done }()

	reader := bufio.NewReader(p.In)
	var username, token string

	for p.state < Publishing {
		switch p.state {
		case AwaitingUsername:
			answer, err := p.ask(reader, UsernamePrompt, nil)
			if err != nil {
				return err
			}
			username = answer
			p.state = AwaitingToken

		case AwaitingToken:
			answer, err := p.ask(reader, TokenPrompt, p.ReadSecret)
			if err != nil {
				return err
			}
			token = answer
			p.state = Publishing
		}
	}

	if closer, ok := p.In.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			p.Logger.WithError(err).Debug("Failed to close prompt input")
		}
	}

	if p.Verify != nil {
		if err := p.Verify(ctx, username, token); err != nil {
			p.Logger.WithError(err).Error("Deployment error")
			return err
		}
	}

	cfg := InteractiveConfig(username, token)
	if p.Configure != nil {
		cfg = p.Configure(cfg)
	}
	return Deploy(ctx, p.Publisher, cfg, p.Logger)
}

func (p *Prompter) ask(reader *bufio.Reader, prompt string, readSecret func() (string, error)) (string, error) {
	if _, err := io.WriteString(p.Out, prompt); err != nil {
		return "", draugrerrors.Wrap(err, draugrerrors.ErrCodeInternal, "failed to write prompt")
	}

	var (
		answer string
		err    error
	)
	if readSecret != nil {
		answer, err = readSecret()
		// The terminal swallowed the newline along with the echo.
		_, _ = io.WriteString(p.Out, "\n")
	} else {
		answer, err = readLine(reader)
	}
	if err != nil {
		return "", draugrerrors.PromptAborted(strings.TrimSuffix(prompt, ": "), err)
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", draugrerrors.New(draugrerrors.ErrCodeInvalidInput,
			fmt.Sprintf("%s cannot be empty", strings.TrimSuffix(prompt, ": ")))
	}
	return answer, nil
}

// readLine returns one line without its terminator. A final line without a
// newline still counts; EOF with nothing read is an error.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
