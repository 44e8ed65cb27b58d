package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/signal"
	"strings"

	"github.com/chorus-tre/authui/internal/authapi"
	"github.com/chorus-tre/authui/internal/banner"
	"github.com/chorus-tre/authui/internal/config"
	"github.com/chorus-tre/authui/internal/logging"
	"github.com/chorus-tre/authui/internal/login"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const (
	exitCodeLoginError = 1
	exitCodeNoResult   = 2
)

type loginOptions struct {
	apiURL        string
	username      string
	passwordStdin bool
	callbackURL   string
	verbose       bool
}

// loginIO holds the terminal the login command talks to.
type loginIO struct {
	stdin        io.Reader
	stdout       io.Writer
	stderr       io.Writer
	isTerminal   bool
	readPassword func() ([]byte, error)
}

var loginOpts loginOptions

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in against the authentication API from the terminal.",
	Long: "Sign in against the authentication API from the terminal.\n\n" +
		"On success the destination URL is printed to stdout. A rejected login prints " +
		"the reason to stderr and exits 1. A reply with neither token nor message exits 2.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		fd := int(os.Stdin.Fd())
		return runLogin(ctx, loginOpts, loginIO{
			stdin:      os.Stdin,
			stdout:     cmd.OutOrStdout(),
			stderr:     cmd.ErrOrStderr(),
			isTerminal: term.IsTerminal(fd),
			readPassword: func() ([]byte, error) {
				return term.ReadPassword(fd)
			},
		})
	},
}

func init() {
	flags := loginCmd.Flags()
	flags.StringVar(&loginOpts.apiURL, "api-url", "", "Authentication API base URL (default $AUTH_API_URL)")
	flags.StringVar(&loginOpts.username, "username", "", "Username (prompted when omitted)")
	flags.BoolVar(&loginOpts.passwordStdin, "password-stdin", false, "Read the password from stdin")
	flags.StringVar(&loginOpts.callbackURL, "callback-url", "", "Destination after a successful login")
	flags.BoolVarP(&loginOpts.verbose, "verbose", "v", false, "Log request details to stderr")
}

// stdoutNavigator prints the destination instead of following it.
type stdoutNavigator struct {
	w io.Writer
}

func (n stdoutNavigator) Navigate(destination string) {
	fmt.Fprintln(n.w, destination)
}

func runLogin(ctx context.Context, opts loginOptions, tio loginIO) error {
	cfg, err := config.LoadOptionalAPI()
	if err != nil {
		return err
	}

	apiURL := strings.TrimSpace(opts.apiURL)
	if apiURL == "" {
		apiURL = cfg.AuthAPIURL
	}
	if apiURL == "" {
		return errors.New("--api-url or AUTH_API_URL is required")
	}

	client, err := authapi.NewClient(apiURL,
		authapi.WithTimeout(cfg.AuthAPITimeout),
		authapi.WithUserAgent(userAgent()),
	)
	if err != nil {
		return err
	}

	creds, err := resolveLoginCredentials(opts, tio)
	if err != nil {
		return err
	}

	logger := logging.Discard()
	if opts.verbose {
		logger = logging.NewLogger(logging.Config{Format: "text", Level: logging.DefaultConfig().Level}, tio.stderr, "authui login")
	}

	query := url.Values{}
	if opts.callbackURL != "" {
		query.Set(login.CallbackParam, opts.callbackURL)
	}

	errorBanner := banner.New()
	outcome := login.NewSubmitter(client, logger).Submit(ctx, login.Page{
		Banner:    errorBanner,
		Navigator: stdoutNavigator{w: tio.stdout},
		Query:     query,
	}, creds)

	if err := ctx.Err(); err != nil {
		return err
	}

	switch outcome {
	case login.OutcomeNavigated:
		return nil
	case login.OutcomeRejected, login.OutcomeFailed:
		return &exitError{code: exitCodeLoginError, err: errors.New(errorBanner.State().Message)}
	default:
		return &exitError{code: exitCodeNoResult, silent: true}
	}
}

func resolveLoginCredentials(opts loginOptions, tio loginIO) (login.Credentials, error) {
	reader := bufio.NewReader(tio.stdin)

	username := opts.username
	if username == "" {
		if opts.passwordStdin {
			return login.Credentials{}, errors.New("--username is required with --password-stdin")
		}
		if !tio.isTerminal {
			return login.Credentials{}, errors.New("no username provided (use --username)")
		}
		fmt.Fprint(tio.stderr, "Username: ")
		line, err := readLine(reader)
		if err != nil {
			return login.Credentials{}, err
		}
		username = line
	}

	if opts.passwordStdin {
		password, err := readLine(reader)
		if err != nil {
			return login.Credentials{}, err
		}
		return login.Credentials{Username: username, Password: password}, nil
	}

	if !tio.isTerminal {
		return login.Credentials{}, errors.New("no password provided (use --password-stdin)")
	}
	fmt.Fprint(tio.stderr, "Password: ")
	password, err := tio.readPassword()
	fmt.Fprintln(tio.stderr)
	if err != nil {
		return login.Credentials{}, err
	}
	return login.Credentials{Username: username, Password: string(password)}, nil
}

// readLine returns one line without its line ending. A final line without a
// newline is accepted.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
