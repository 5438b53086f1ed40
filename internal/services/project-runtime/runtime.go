// Package projectruntime bootstraps a project: it logs into the analytics and
// broker services with the project credentials, hosts the single endpoint of
// the project and pushes the configuration to the deployment secret store.
package projectruntime

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/thejimmylin/f5project/internal/clients/fugle"
	"github.com/thejimmylin/f5project/internal/keyring"
	"github.com/thejimmylin/f5project/internal/project"
)

//go:generate mockgen -source=$GOFILE -destination=mocks/runtime_generated.go -package projectruntimemocks

const (
	analyticsStorageDir = "finlab_db"
	keyringFileName     = "fugle-keyring.age"
)

type Analytics interface {
	SetDataDirectory(path string) error
	Login(ctx context.Context, token string) error
}

type Broker interface {
	Login(ctx context.Context, configPath, marketAPIKey string, creds fugle.CredentialSource) (*fugle.Account, error)
}

type Syncer interface {
	Sync(ctx context.Context, dotenvPath string, params map[string]string, deleteMissing bool) error
}

// CredentialStoreFactory opens the broker credential store in dataDir. key is
// derived from the broker account, so switching accounts opens a new store.
type CredentialStoreFactory func(dataDir, key string) (keyring.Store, error)

// FileCredentialStore is the default CredentialStoreFactory: an encrypted
// file, dropped and recreated on every open.
func FileCredentialStore(dataDir, key string) (keyring.Store, error) {
	store, err := keyring.OpenFile(filepath.Join(dataDir, keyringFileName), key, true)
	if err != nil {
		return nil, err
	}
	return store, nil
}

type State int

const (
	StateUnconfigured State = iota
	StateConfigured
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateUnconfigured:
		return "unconfigured"
	case StateConfigured:
		return "configured"
	case StateAuthenticated:
		return "authenticated"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

type Input struct {
	Config    project.Config
	Analytics Analytics
	Broker    Broker

	// Optional.
	Syncer                 Syncer
	CredentialStoreFactory CredentialStoreFactory
	TempDir                string // os.TempDir() if empty.
}

type Runtime struct {
	cfg       project.Config
	analytics Analytics
	broker    Broker
	syncer    Syncer
	newStore  CredentialStoreFactory
	tempDir   string
	logger    zerolog.Logger

	state      State
	configPath string
	session    *fugle.Account
	endpoint   *Endpoint
}

func New(in Input) *Runtime {
	if in.CredentialStoreFactory == nil {
		in.CredentialStoreFactory = FileCredentialStore
	}
	if in.TempDir == "" {
		in.TempDir = os.TempDir()
	}
	return &Runtime{
		cfg:       in.Config,
		analytics: in.Analytics,
		broker:    in.Broker,
		syncer:    in.Syncer,
		newStore:  in.CredentialStoreFactory,
		tempDir:   in.TempDir,
		logger:    log.With().Str("service", "project-runtime").Logger(),
	}
}

func (r *Runtime) Config() project.Config {
	return r.cfg
}

func (r *Runtime) State() State {
	return r.state
}

// ConfigPath is the broker config file written by the last SetupBroker.
func (r *Runtime) ConfigPath() string {
	return r.configPath
}

// Session returns the broker session of the last successful SetupBroker.
func (r *Runtime) Session() (*fugle.Account, error) {
	if r.session == nil {
		return nil, fmt.Errorf("%w: broker is not authenticated", ErrPrecondition)
	}
	return r.session, nil
}

func (r *Runtime) dataDir(dir string) (string, error) {
	if dir == "" {
		dir = r.tempDir
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}
	return dir, nil
}

// Setup runs SetupAnalytics and then SetupBroker.
func (r *Runtime) Setup(ctx context.Context, dataDir string) error {
	if _, err := r.SetupAnalytics(ctx, dataDir); err != nil {
		return err
	}
	return r.SetupBroker(ctx, dataDir)
}

// SetupAnalytics logs into the analytics service with its storage under
// dataDir and returns the storage path.
func (r *Runtime) SetupAnalytics(ctx context.Context, dataDir string) (string, error) {
	if r.analytics == nil {
		return "", fmt.Errorf("%w: no analytics service", ErrPrecondition)
	}
	if err := r.cfg.Validate(project.AnalyticsFields...); err != nil {
		return "", fmt.Errorf("%w: %w", ErrPrecondition, err)
	}

	dataDir, err := r.dataDir(dataDir)
	if err != nil {
		return "", err
	}

	storage := filepath.Join(dataDir, analyticsStorageDir)
	if err := r.analytics.SetDataDirectory(storage); err != nil {
		return "", fmt.Errorf("set analytics data directory: %w", err)
	}

	err = r.analytics.Login(ctx, r.cfg.FinlabAPIToken)
	logins.With(l{"service": "analytics", "status": status(err)}).Inc()
	if err != nil {
		return "", fmt.Errorf("analytics login: %w", err)
	}

	r.logger.Info().Str("storage", storage).Msg("analytics ready")
	return storage, nil
}

// SetupBroker stores the broker secrets, writes the broker config file into
// dataDir and logs in. The runtime is configured once the file is written and
// authenticated once the login succeeds.
func (r *Runtime) SetupBroker(ctx context.Context, dataDir string) error {
	if r.broker == nil {
		return fmt.Errorf("%w: no broker service", ErrPrecondition)
	}
	if err := r.cfg.Validate(project.BrokerFields...); err != nil {
		return fmt.Errorf("%w: %w", ErrPrecondition, err)
	}

	dataDir, err := r.dataDir(dataDir)
	if err != nil {
		return err
	}

	account := r.cfg.FugleAccount
	store, err := r.newStore(dataDir, keyring.Digest(account))
	if err != nil {
		return fmt.Errorf("open credential store: %w", err)
	}
	if err := store.Put(fugle.NamespaceAccount, account, r.cfg.FuglePassword); err != nil {
		return fmt.Errorf("store account password: %w", err)
	}
	if err := store.Put(fugle.NamespaceCert, account, r.cfg.FugleCertPassword); err != nil {
		return fmt.Errorf("store cert password: %w", err)
	}

	configPath, err := r.cfg.ToBrokerConfig().WriteFiles(dataDir)
	if err != nil {
		return fmt.Errorf("write broker config: %w", err)
	}
	r.configPath = configPath
	if r.state < StateConfigured {
		r.state = StateConfigured
	}

	session, err := r.broker.Login(ctx, configPath, r.cfg.FugleMarketAPIKey, store)
	logins.With(l{"service": "broker", "status": status(err)}).Inc()
	if err != nil {
		return fmt.Errorf("broker login: %w", err)
	}
	r.session = session
	r.state = StateAuthenticated

	r.logger.Info().Str("config", configPath).Msg("broker authenticated")
	return nil
}
