package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/cloudshare/cloudshare-cli/internal/client/api"
	"github.com/cloudshare/cloudshare-cli/internal/client/auth"
	"github.com/cloudshare/cloudshare-cli/internal/client/config"
	"github.com/cloudshare/cloudshare-cli/internal/client/models"
	"github.com/cloudshare/cloudshare-cli/internal/client/services"
	"github.com/cloudshare/cloudshare-cli/internal/common"
	"github.com/cloudshare/cloudshare-cli/internal/logging"
)

// sessionSource is the mutable token source behind the API client. Signing in
// swaps in a fresh expiry-aware source; signing out clears it.
type sessionSource struct {
	mu  sync.Mutex
	src auth.TokenSource
}

func (s *sessionSource) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	src := s.src
	s.mu.Unlock()
	if src == nil {
		return "", common.ErrNoToken
	}
	return src.Token(ctx)
}

func (s *sessionSource) set(src auth.TokenSource) {
	s.mu.Lock()
	s.src = src
	s.mu.Unlock()
}

// App holds the signed-in session and the services behind the REPL commands.
type App struct {
	config  *config.Config
	logger  logging.Logger
	client  api.Client
	session *sessionSource

	credits  *services.CreditStore
	files    *services.FileCache
	upload   *services.UploadSession
	payment  *services.PaymentSession
	profiles *services.ProfileSync

	profile  models.Profile
	signedIn bool

	reader *bufio.Reader
	out    io.Writer
}

func NewApp(c *config.Config, logger logging.Logger) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	session := &sessionSource{}
	client := api.NewHTTPClient(c.APIBaseURL, session, logger)

	reader := bufio.NewReader(os.Stdin)
	out := os.Stdout

	credits := services.NewCreditStore(client, logger)
	files := services.NewFileCache(client, logger)
	upload := services.NewUploadSession(client, credits, files, logger)
	gateway := newPromptGateway(c.GatewayKeyID, reader, out)
	payment := services.NewPaymentSession(client, credits, gateway, c.Currency, logger)
	profiles := services.NewProfileSync(client, logger)

	return &App{
		config:   c,
		logger:   logger,
		client:   client,
		session:  session,
		credits:  credits,
		files:    files,
		upload:   upload,
		payment:  payment,
		profiles: profiles,
		reader:   reader,
		out:      out,
	}, nil
}

func (a *App) isSignedIn() bool {
	return a.signedIn
}

func (a *App) getStatus() string {
	if !a.signedIn {
		return ""
	}
	s := a.profile.Email
	if s == "" {
		s = a.profile.SubjectID
	}
	if c := a.credits.Current(); c.Known {
		s = fmt.Sprintf("%s %d cr", s, c.Remaining)
	}
	return fmt.Sprintf("(%s)", s)
}

func (a *App) Run(ctx context.Context) {
	defer a.client.Close()
	a.Root(ctx)
}

func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to CloudShare CLI (type 'help' for commands)")

	// The scanner shares the app's buffered reader so interactive prompts
	// issued by commands read from the same stream.
	scanner := bufio.NewScanner(a.reader)
	runREPL(ctx, a, a.getStatus, scanner)
}
