// Package app provides the dependency injection container for the application.
package app

import (
	"io"

	"github.com/runoshun/braindump/internal/domain"
	"github.com/runoshun/braindump/internal/infra/auth"
	"github.com/runoshun/braindump/internal/infra/config"
	"github.com/runoshun/braindump/internal/infra/kvstore"
	"github.com/runoshun/braindump/internal/infra/logging"
	"github.com/runoshun/braindump/internal/infra/remote"
	"github.com/runoshun/braindump/internal/statestore"
	"github.com/runoshun/braindump/internal/usecase"
)

// Config holds the resolved application paths.
type Config struct {
	ConfigDir string // Directory holding config.toml
	DataDir   string // Directory holding state, token and logs
	StatePath string // Local cache file
	TokenPath string // Bearer token file
}

// newConfig resolves paths from the loaded configuration.
func newConfig(appConfig *domain.Config) Config {
	dataDir := config.DefaultDataDir()
	statePath := appConfig.Store.Path
	if statePath == "" {
		statePath = domain.StatePath(dataDir)
	}
	return Config{
		ConfigDir: config.DefaultGlobalConfigDir(),
		DataDir:   dataDir,
		StatePath: statePath,
		TokenPath: domain.TokenPath(dataDir),
	}
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Store         domain.StateStore
	Credentials   domain.CredentialStore
	ConfigManager domain.ConfigManager
	Clock         domain.Clock
	Logger        domain.Logger

	// Pointer fields
	AppConfig *domain.Config
	closer    io.Closer

	// Configuration
	Config Config
}

// New creates a Container from the user's configuration and data directories.
// A broken config file is reported as a warning and defaults are used.
func New() (*Container, error) {
	loader := config.NewLoader()
	appConfig, err := loader.Load()
	if err != nil {
		appConfig = domain.NewDefaultConfig()
		appConfig.Warnings = append(appConfig.Warnings, err.Error())
	}
	cfg := newConfig(appConfig)

	logger := logging.New(cfg.DataDir, logging.ParseLevel(appConfig.Log.Level))
	clock := domain.RealClock{}
	tokens := auth.NewTokenFile(cfg.TokenPath, clock)

	// Only bind the remote port when a URL is configured.
	var remoteStore domain.RemoteStore
	if appConfig.Remote.URL != "" {
		remoteStore = remote.New(appConfig.Remote.URL, tokens, appConfig.Remote.Timeout)
	}

	store := statestore.New(
		kvstore.NewFileStore(cfg.StatePath),
		remoteStore,
		tokens,
		appConfig.Owners,
		statestore.WithClock(clock),
		statestore.WithLogger(logger),
	)
	store.Load()

	return &Container{
		Store:         store,
		Credentials:   tokens,
		ConfigManager: config.NewManager(),
		Clock:         clock,
		Logger:        logger,
		AppConfig:     appConfig,
		closer:        logger,
		Config:        cfg,
	}, nil
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(cfg Config, store domain.StateStore, creds domain.CredentialStore, configManager domain.ConfigManager, clock domain.Clock, logger domain.Logger) *Container {
	return &Container{
		Store:         store,
		Credentials:   creds,
		ConfigManager: configManager,
		Clock:         clock,
		Logger:        logger,
		AppConfig:     domain.NewDefaultConfig(),
		Config:        cfg,
	}
}

// Close releases the log file.
func (c *Container) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}

// UseCase factory methods

// QuickCaptureUseCase returns a new QuickCapture use case.
func (c *Container) QuickCaptureUseCase(surface domain.InputSurface) *usecase.QuickCapture {
	return usecase.NewQuickCapture(c.Store, surface, c.Clock, c.Logger)
}

// BulkCaptureUseCase returns a new BulkCapture use case.
func (c *Container) BulkCaptureUseCase(surface domain.InputSurface) *usecase.BulkCapture {
	return usecase.NewBulkCapture(c.Store, surface, c.Clock, c.Logger)
}

// ListTasksUseCase returns a new ListTasks use case.
func (c *Container) ListTasksUseCase() *usecase.ListTasks {
	return usecase.NewListTasks(c.Store, c.Clock)
}

// CompleteTaskUseCase returns a new CompleteTask use case.
func (c *Container) CompleteTaskUseCase() *usecase.CompleteTask {
	return usecase.NewCompleteTask(c.Store, c.Logger)
}

// RescheduleTaskUseCase returns a new RescheduleTask use case.
func (c *Container) RescheduleTaskUseCase() *usecase.RescheduleTask {
	return usecase.NewRescheduleTask(c.Store, c.Clock, c.Logger)
}

// ToggleUrgentUseCase returns a new ToggleUrgent use case.
func (c *Container) ToggleUrgentUseCase() *usecase.ToggleUrgent {
	return usecase.NewToggleUrgent(c.Store, c.Logger)
}

// ShareTaskUseCase returns a new ShareTask use case.
func (c *Container) ShareTaskUseCase() *usecase.ShareTask {
	return usecase.NewShareTask(c.Store, c.Logger)
}

// DeleteTaskUseCase returns a new DeleteTask use case.
func (c *Container) DeleteTaskUseCase() *usecase.DeleteTask {
	return usecase.NewDeleteTask(c.Store, c.Logger)
}

// CarryOverUseCase returns a new CarryOver use case.
func (c *Container) CarryOverUseCase() *usecase.CarryOver {
	return usecase.NewCarryOver(c.Store, c.Clock, c.Logger)
}

// SyncRemoteUseCase returns a new SyncRemote use case.
func (c *Container) SyncRemoteUseCase() *usecase.SyncRemote {
	return usecase.NewSyncRemote(c.Store)
}

// SetOwnersUseCase returns a new SetOwners use case.
func (c *Container) SetOwnersUseCase() *usecase.SetOwners {
	return usecase.NewSetOwners(c.Store, c.Logger)
}

// ExportUseCase returns a new Export use case writing to w.
func (c *Container) ExportUseCase(w io.Writer) *usecase.Export {
	return usecase.NewExport(c.Store, w)
}

// LoginUseCase returns a new Login use case.
func (c *Container) LoginUseCase() *usecase.Login {
	return usecase.NewLogin(c.Credentials, c.Store, c.Logger)
}

// LogoutUseCase returns a new Logout use case.
func (c *Container) LogoutUseCase() *usecase.Logout {
	return usecase.NewLogout(c.Credentials, c.Logger)
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager)
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager, c.Store)
}
