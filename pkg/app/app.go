package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"tableflip.dev/dreamlog/pkg/account"
	"tableflip.dev/dreamlog/pkg/api"
	"tableflip.dev/dreamlog/pkg/backup"
	"tableflip.dev/dreamlog/pkg/calendar"
	"tableflip.dev/dreamlog/pkg/capture"
	"tableflip.dev/dreamlog/pkg/confirm"
	"tableflip.dev/dreamlog/pkg/dream"
	"tableflip.dev/dreamlog/pkg/journal"
	"tableflip.dev/dreamlog/pkg/logging"
	"tableflip.dev/dreamlog/pkg/session"
	"tableflip.dev/dreamlog/pkg/stats"
	"tableflip.dev/dreamlog/pkg/store"
	"tableflip.dev/dreamlog/pkg/theme"
)

// AccountTarget is the confirm target for deleting the account.
const AccountTarget = "account"

// DreamTarget is the confirm target for deleting dream id.
func DreamTarget(id int64) string {
	return fmt.Sprintf("dream:%d", id)
}

// Watcher streams storage changes made by other processes.
type Watcher interface {
	Watch(ctx context.Context) (<-chan store.Event, error)
}

// Service composes the API client with the session and theme stores so the
// CLI and the TUI share one set of operations.
type Service struct {
	Client  *api.Client
	Session *session.Store
	Theme   *theme.Store
	Guard   *confirm.Guard
	Log     *slog.Logger

	watcher Watcher
	closer  io.Closer
}

// Open builds a Service from configuration: diskv storage under the base
// path, a file logger, and a client wired to the session.
func Open(cfg store.Config) (*Service, error) {
	storage, err := store.Load(cfg)
	if err != nil {
		return nil, err
	}
	log, closer, err := logging.Open(cfg.LogFile(), cfg.LogLevel())
	if err != nil {
		return nil, err
	}
	s := New(storage, cfg.APIURL(), log, api.WithTimeout(cfg.Timeout()))
	s.watcher = storage
	s.closer = closer
	return s, nil
}

// New wires a Service over storage. The client's token source and 401 hook
// both point at the session store.
func New(storage store.Sessions, baseURL string, log *slog.Logger, opts ...api.Option) *Service {
	if log == nil {
		log = logging.Discard()
	}
	sess := session.New(storage, session.WithLogger(log))
	opts = append([]api.Option{
		api.WithLogger(log),
		api.WithTokenSource(sess.Token),
		api.WithUnauthorizedHandler(sess.HandleUnauthorized),
	}, opts...)
	return &Service{
		Client:  api.New(baseURL, opts...),
		Session: sess,
		Theme:   theme.NewStore(storage),
		Guard:   &confirm.Guard{},
		Log:     log,
	}
}

// Close releases the log file.
func (s *Service) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// Init restores the theme and the persisted session.
func (s *Service) Init(ctx context.Context) error {
	s.Theme.Load()
	return s.Session.Init(ctx, s.Client)
}

// Watch subscribes to storage changes; nil channel when not disk backed.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.watcher == nil {
		return nil, errors.New("app: storage cannot be watched")
	}
	return s.watcher.Watch(ctx)
}

// Apply reacts to a storage change from another process.
func (s *Service) Apply(ev store.Event) {
	switch ev.Type {
	case store.EventSessionChanged:
		s.Session.Reload()
	case store.EventThemeChanged:
		s.Theme.Load()
	}
}

func (s *Service) requireAuth() error {
	if !s.Session.Authenticated() {
		return session.ErrNoSession
	}
	return nil
}

// Login validates the credentials locally before signing in.
func (s *Service) Login(ctx context.Context, email, password string) error {
	if err := account.ValidateLogin(email, password).Err(); err != nil {
		return err
	}
	return s.Session.Login(ctx, s.Client, strings.TrimSpace(email), password)
}

// Register validates the form locally before creating the account.
func (s *Service) Register(ctx context.Context, email, username, password, confirmPassword string) error {
	if err := account.ValidateRegistration(email, username, password, confirmPassword).Err(); err != nil {
		return err
	}
	return s.Session.Register(ctx, s.Client, strings.TrimSpace(email), strings.TrimSpace(username), password)
}

func (s *Service) Logout() error {
	return s.Session.Logout()
}

// Whoami asks the server who the token belongs to.
func (s *Service) Whoami(ctx context.Context) (*account.User, error) {
	if err := s.requireAuth(); err != nil {
		return nil, err
	}
	return s.Client.Me(ctx)
}

func (s *Service) Dreams(ctx context.Context, p api.ListParams) ([]dream.Dream, error) {
	if err := s.requireAuth(); err != nil {
		return nil, err
	}
	return s.Client.ListDreams(ctx, p)
}

func (s *Service) Dream(ctx context.Context, id int64) (*dream.Dream, error) {
	if err := s.requireAuth(); err != nil {
		return nil, err
	}
	return s.Client.GetDream(ctx, id)
}

// Save submits a capture form.
func (s *Service) Save(ctx context.Context, f *capture.Form) (*dream.Dream, error) {
	if err := s.requireAuth(); err != nil {
		return nil, err
	}
	return f.Submit(ctx, s.Client)
}

// DeleteDream removes dream id once DreamTarget(id) was armed on the guard.
func (s *Service) DeleteDream(ctx context.Context, id int64) error {
	if err := s.requireAuth(); err != nil {
		return err
	}
	if err := s.Guard.Commit(DreamTarget(id)); err != nil {
		return err
	}
	return s.Client.DeleteDream(ctx, id)
}

func (s *Service) Tags(ctx context.Context) ([]string, error) {
	if err := s.requireAuth(); err != nil {
		return nil, err
	}
	return s.Client.ListTags(ctx)
}

func (s *Service) Stats(ctx context.Context) (*stats.Stats, error) {
	if err := s.requireAuth(); err != nil {
		return nil, err
	}
	return s.Client.Stats(ctx)
}

func (s *Service) DetailedStats(ctx context.Context) (*stats.Detailed, error) {
	if err := s.requireAuth(); err != nil {
		return nil, err
	}
	return s.Client.DetailedStats(ctx)
}

// Calendar fetches every dream once and buckets them by day.
func (s *Service) Calendar(ctx context.Context) (calendar.Index, error) {
	dreams, err := s.Dreams(ctx, api.ListParams{Limit: calendar.FetchLimit})
	if err != nil {
		return nil, err
	}
	return calendar.Build(dreams), nil
}

// Journal returns a list engine bound to the client.
func (s *Service) Journal(opts ...journal.Option) *journal.Engine {
	return journal.New(s.Client, opts...)
}

// ChangePassword validates locally, then asks the server.
func (s *Service) ChangePassword(ctx context.Context, current, next, confirmPassword string) (*account.Message, error) {
	if err := s.requireAuth(); err != nil {
		return nil, err
	}
	if err := account.ValidatePasswordChange(current, next, confirmPassword).Err(); err != nil {
		return nil, err
	}
	return s.Client.ChangePassword(ctx, current, next)
}

// ChangeUsername renames the account and stores the updated user.
func (s *Service) ChangeUsername(ctx context.Context, next string) (*account.User, error) {
	if err := s.requireAuth(); err != nil {
		return nil, err
	}
	current := ""
	if u := s.Session.User(); u != nil {
		current = u.Username
	}
	next = strings.TrimSpace(next)
	if err := account.ValidateUsernameChange(current, next).Err(); err != nil {
		return nil, err
	}
	u, err := s.Client.ChangeUsername(ctx, next)
	if err != nil {
		return nil, err
	}
	if err := s.Session.SetUser(*u); err != nil {
		return nil, err
	}
	return u, nil
}

// DeleteAccount deletes the account once AccountTarget was armed, then
// signs out.
func (s *Service) DeleteAccount(ctx context.Context) (*account.Message, error) {
	if err := s.requireAuth(); err != nil {
		return nil, err
	}
	if err := s.Guard.Commit(AccountTarget); err != nil {
		return nil, err
	}
	msg, err := s.Client.DeleteAccount(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.Session.Logout(); err != nil {
		return msg, err
	}
	return msg, nil
}

// Export writes a backup file into dir.
func (s *Service) Export(ctx context.Context, dir string) (string, error) {
	if err := s.requireAuth(); err != nil {
		return "", err
	}
	return backup.Export(ctx, s.Client, dir)
}

// Import uploads a backup file.
func (s *Service) Import(ctx context.Context, path string) (*api.ImportResult, error) {
	if err := s.requireAuth(); err != nil {
		return nil, err
	}
	return backup.Import(ctx, s.Client, path)
}
