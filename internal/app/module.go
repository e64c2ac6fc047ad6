package app

import (
	"context"

	"github.com/matheus3301/cmdc/internal/bus"
	"github.com/matheus3301/cmdc/internal/catalog"
	"github.com/matheus3301/cmdc/internal/config"
	"github.com/matheus3301/cmdc/internal/dispatch"
	"github.com/matheus3301/cmdc/internal/history"
	"github.com/matheus3301/cmdc/internal/lock"
	"github.com/matheus3301/cmdc/internal/logging"
	"github.com/matheus3301/cmdc/internal/metrics"
	"github.com/matheus3301/cmdc/internal/profile"
	"github.com/matheus3301/cmdc/internal/store"
	"github.com/matheus3301/cmdc/internal/tui/ui"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Params holds the resolved profile configuration passed to the fx module.
type Params struct {
	Profile     string
	ConfigPath  string // optional override; empty = profile.ConfigPath()
	CatalogPath string // optional override of catalog.path
	Console     bool   // mirror logs to stderr
}

// Services are the components front-ends drive once the module has started.
type Services struct {
	fx.In

	Config     *config.Config
	Logger     *zap.Logger
	DB         *store.DB
	Bus        *bus.Bus
	Catalog    *catalog.Catalog
	Dispatcher *dispatch.Dispatcher
	Metrics    *metrics.Metrics
	Keys       *ui.KeyText
	NATS       *dispatch.NATSRequester
}

// Transport names the request transport, "none" when request actions cannot run.
func Transport(svc Services) string {
	if svc.NATS == nil {
		return "none"
	}
	return "nats " + svc.Config.Request.NATSURL
}

// Module returns the fx module for a palette profile, composing all providers
// and lifecycle hooks.
func Module(p Params) fx.Option {
	return fx.Module("cmdc",
		fx.Supply(p),
		fx.Provide(
			provideConfig,
			provideLogger,
			provideLock,
			provideStore,
			provideBus,
			metrics.New,
			provideMetricsServer,
			provideRequester,
			provideDispatcher,
			provideCatalog,
			provideRecorder,
			provideKeyText,
		),
		fx.Invoke(registerLifecycle),
	)
}

func provideConfig(p Params) (*config.Config, error) {
	path := p.ConfigPath
	if path == "" {
		path = profile.ConfigPath()
	}
	return config.LoadOrDefault(path)
}

func provideLogger(p Params, cfg *config.Config) (*zap.Logger, error) {
	return logging.New(logging.Options{
		Path:    profile.LogPath(p.Profile),
		Profile: p.Profile,
		Level:   cfg.LogLevel(),
		Console: p.Console || cfg.Log.Console,
	})
}

func provideLock(p Params, logger *zap.Logger) (*lock.Lock, error) {
	if err := profile.EnsureDir(p.Profile); err != nil {
		return nil, err
	}
	logger.Info("acquiring profile lock", zap.String("profile", p.Profile))
	l, err := lock.Acquire(profile.Dir(p.Profile))
	if err != nil {
		return nil, err
	}
	logger.Info("profile lock acquired")
	return l, nil
}

// provideStore depends on the lock so the database is only opened by its holder.
func provideStore(p Params, _ *lock.Lock, logger *zap.Logger) (*store.DB, error) {
	dbPath := profile.DBPath(p.Profile)
	db, result, err := store.OpenMigrated(dbPath)
	if err != nil {
		return nil, err
	}
	if result.Changed {
		logger.Info("migrations applied", zap.Uint("version", result.Version))
	} else {
		logger.Info("migrations up to date", zap.Uint("version", result.Version))
	}
	logger.Info("store initialized", zap.String("path", dbPath))
	return db, nil
}

func provideBus() *bus.Bus {
	return bus.New()
}

func provideMetricsServer(cfg *config.Config, m *metrics.Metrics, logger *zap.Logger) (*metrics.Server, error) {
	return metrics.NewServer(cfg.Metrics.ListenAddr, m, logger.Named("metrics"))
}

// provideRequester connects to NATS when configured. A failed connection is
// logged and leaves request actions disabled rather than blocking startup.
func provideRequester(cfg *config.Config, logger *zap.Logger) *dispatch.NATSRequester {
	if cfg.Request.NATSURL == "" {
		return nil
	}
	r, err := dispatch.ConnectNATS(cfg.Request.NATSURL, logger.Named("nats"))
	if err != nil {
		logger.Warn("request transport unavailable", zap.Error(err))
		return nil
	}
	return r
}

func provideDispatcher(b *bus.Bus, nc *dispatch.NATSRequester, m *metrics.Metrics, cfg *config.Config, logger *zap.Logger) *dispatch.Dispatcher {
	var requester dispatch.Requester
	if nc != nil {
		requester = nc
	}
	return dispatch.New(b, requester, m, cfg.RequestTimeout(), logger.Named("dispatch"))
}

func provideCatalog(p Params, cfg *config.Config, db *store.DB, logger *zap.Logger) (*catalog.Catalog, error) {
	path := p.CatalogPath
	if path == "" {
		path = cfg.Catalog.Path
	}
	if path == "" {
		path = profile.CatalogPath()
	}
	return catalog.New(path, catalog.NewFeatures(cfg.Catalog.DisabledFeatures), db, cfg.Catalog.HistoryLimit, logger.Named("catalog"))
}

func provideRecorder(db *store.DB, b *bus.Bus, logger *zap.Logger) *history.Recorder {
	return history.NewRecorder(db, b, logger.Named("history"))
}

func provideKeyText(cfg *config.Config) (*ui.KeyText, error) {
	table, err := cfg.SymbolTable()
	if err != nil {
		return nil, err
	}
	return ui.NewKeyText(table, cfg.Keys.Separator, cfg.Keys.SequenceSeparator), nil
}

func registerLifecycle(lc fx.Lifecycle, lk *lock.Lock, db *store.DB, d *dispatch.Dispatcher, rec *history.Recorder, srv *metrics.Server, nc *dispatch.NATSRequester, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			rec.Start(context.Background())
			d.Start(context.Background())

			if srv != nil {
				go func() {
					if err := srv.Start(); err != nil {
						logger.Error("metrics server error", zap.Error(err))
					}
				}()
			}
			logger.Info("palette started")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			d.Stop()
			rec.Stop()
			srv.Stop(ctx)
			nc.Close()
			if err := db.Close(); err != nil {
				logger.Warn("error closing store", zap.Error(err))
			}
			if err := lk.Release(); err != nil {
				logger.Warn("error releasing lock", zap.Error(err))
			}
			logger.Info("palette stopped")
			_ = logger.Sync()
			return nil
		},
	})
}
