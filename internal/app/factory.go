package app

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/footprint-tools/brig/internal/actions"
	"github.com/footprint-tools/brig/internal/cli"
	"github.com/footprint-tools/brig/internal/config"
	"github.com/footprint-tools/brig/internal/dispatchers"
	"github.com/footprint-tools/brig/internal/domain"
	"github.com/footprint-tools/brig/internal/log"
	"github.com/footprint-tools/brig/internal/paths"
	"github.com/footprint-tools/brig/internal/store"
	"github.com/footprint-tools/brig/internal/ui"
	"github.com/footprint-tools/brig/internal/ui/style"
)

const (
	defaultSuggestionLimit   = 8
	defaultSuggestionTimeout = 250 * time.Millisecond
	fallbackUser             = "user"
)

// Options configures the application factory.
type Options struct {
	// ConfigPath overrides paths.ConfigFilePath.
	ConfigPath string

	// Pager options
	PagerDisabled bool

	// Color overrides the "color" setting when non-empty.
	Color string

	Version string

	Out    io.Writer
	ErrOut io.Writer
}

// DefaultOptions returns the default application options.
func DefaultOptions() Options {
	return Options{
		Version: "dev",
		Out:     os.Stdout,
		ErrOut:  os.Stderr,
	}
}

// Application holds the wired components of one brig process.
type Application struct {
	Config  *config.Provider
	Store   *store.Store
	Logger  domain.Logger
	Shell   *cli.Shell
	Sources *cli.Sources
	Output  *ui.Writer
	ErrOut  io.Writer

	opts     Options
	logger   *log.Logger // nil when the log file could not be opened
	sourceID uuid.UUID
}

// New creates a new Application with all dependencies wired up.
func New(opts Options) (*Application, error) {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.ErrOut == nil {
		opts.ErrOut = os.Stderr
	}

	configPath := opts.ConfigPath
	if configPath == "" {
		p, err := paths.ConfigFilePath()
		if err != nil {
			return nil, err
		}
		configPath = p
	}
	cfg, err := config.NewProvider(configPath)
	if err != nil {
		return nil, err
	}

	a := &Application{
		Config:   cfg,
		ErrOut:   opts.ErrOut,
		opts:     opts,
		sourceID: uuid.New(),
	}
	a.initLogger()

	historyPath, _ := cfg.Get("history_path")
	history, err := store.New(historyPath)
	if err != nil {
		a.closeLogger()
		return nil, err
	}
	a.Store = history

	var writerOpts []ui.WriterOption
	if opts.PagerDisabled {
		writerOpts = append(writerOpts, ui.WithPagerDisabled())
	}
	writerOpts = append(writerOpts, ui.WithConfigGetter(cfg.Get))
	a.Output = ui.NewWriter(opts.Out, writerOpts...)

	d := dispatchers.New[domain.Source](dispatchers.Options{
		Logger:          a.Logger,
		SuggestionLimit: cfg.GetInt("suggestion_limit", defaultSuggestionLimit),
	})
	src := a.source()
	a.Shell = cli.NewShell(d, src,
		cli.WithHistory(history),
		cli.WithLogger(a.Logger),
		cli.WithOutput(opts.Out),
		cli.WithSuggestionTimeout(cfg.GetMillis("suggestion_timeout_ms", defaultSuggestionTimeout)),
	)
	a.Sources = cli.NewSources(src)

	deps := actions.DefaultDeps()
	deps.Config = cfg
	deps.History = history
	deps.Printf = a.Shell.Printf
	deps.Println = a.Shell.Println
	deps.Version = func() string { return opts.Version }
	if err := cli.BuildTree(d, deps, a.Sources); err != nil {
		_ = a.Close()
		return nil, err
	}

	a.applyStyle()
	return a, nil
}

// Prompt returns the configured interactive prompt.
func (a *Application) Prompt() string {
	p, _ := a.Config.Get("prompt")
	return p
}

// Watch reloads settings whenever the config file changes, until ctx ends.
func (a *Application) Watch(ctx context.Context) error {
	return a.Config.Watch(ctx, a.Reload)
}

// Reload applies the current config to the running components: style,
// log level, source identity and the suggestion timeout.
func (a *Application) Reload() {
	a.applyStyle()
	a.applyLogLevel()

	src := a.source()
	a.Shell.SetSource(src)
	a.Sources.Replace(src)
	a.Shell.SetSuggestionTimeout(a.Config.GetMillis("suggestion_timeout_ms", defaultSuggestionTimeout))
	a.Logger.Debug("app: settings reloaded, running as %s level %d", src.Name, src.Level)
}

// source builds the session's source from config. The ID is fixed for the
// lifetime of the process.
func (a *Application) source() domain.Source {
	name, _ := a.Config.Get("user")
	if name == "" {
		name = os.Getenv("USER")
	}
	if name == "" {
		name = fallbackUser
	}
	return domain.Source{
		ID:    a.sourceID,
		Name:  name,
		Level: a.Config.GetInt("access_level", domain.LevelUser),
	}
}

func (a *Application) applyStyle() {
	mode := a.opts.Color
	if mode == "" {
		mode, _ = a.Config.Get("color")
	}
	all, _ := a.Config.GetAll()
	style.Init(style.ShouldEnable(mode, ui.IsTerminal(a.opts.Out)), all)
}

func (a *Application) initLogger() {
	a.Logger = log.NopLogger{}
	if !a.Config.GetBool("log_enabled", true) {
		return
	}
	level, _ := a.Config.Get("log_level")
	l, err := log.New(paths.LogFilePath(), log.ParseLevel(level))
	if err != nil {
		return
	}
	a.logger = l
	a.Logger = l
	log.SetDefault(l)
}

func (a *Application) applyLogLevel() {
	if a.logger == nil {
		return
	}
	level, _ := a.Config.Get("log_level")
	a.logger.SetLevel(log.ParseLevel(level))
	a.logger.SetEnabled(a.Config.GetBool("log_enabled", true))
}

func (a *Application) closeLogger() {
	if a.logger != nil {
		log.SetDefault(nil)
		_ = a.logger.Close()
		a.logger = nil
	}
}

// Close cleans up application resources.
func (a *Application) Close() error {
	var err error
	if a.Store != nil {
		err = a.Store.Close()
	}
	a.closeLogger()
	return err
}
