package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/napolitain/idle-tycoon/internal/clock"
	"github.com/napolitain/idle-tycoon/internal/config"
	"github.com/napolitain/idle-tycoon/internal/economy"
	"github.com/napolitain/idle-tycoon/internal/game"
	"github.com/napolitain/idle-tycoon/internal/loader"
	"github.com/napolitain/idle-tycoon/internal/save"
)

const remoteTimeout = 10 * time.Second

// env is everything a command needs: config, logger, catalog and saves
type env struct {
	cfg     *config.Config
	log     *slog.Logger
	catalog *economy.Catalog
	store   *save.SQLiteStore
	saves   *save.Manager
}

func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if configFile != "" {
		var err error
		if cfg, err = config.Load(configFile); err != nil {
			return nil, err
		}
	}
	if catalogPath != "" {
		cfg.CatalogPath = catalogPath
	}
	if dbPath != "" {
		cfg.DatabasePath = dbPath
	}
	if profileKey != "" {
		cfg.ProfileKey = profileKey
	}
	if remoteURL != "" {
		cfg.RemoteURL = remoteURL
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, cfg.Validate()
}

func loadCatalog(cfg *config.Config) (*economy.Catalog, error) {
	if cfg.CatalogPath == "" {
		return loader.DefaultCatalog()
	}
	return loader.LoadCatalog(cfg.CatalogPath)
}

// openEnv loads config and catalog and opens the save store. Logs go to w.
func openEnv(w io.Writer) (*env, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log := cfg.NewLogger(w)
	slog.SetDefault(log)

	catalog, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}

	store, err := save.OpenSQLite(cfg.DatabasePath, cfg.ProfileKey, log)
	if err != nil {
		return nil, err
	}

	opts := []save.ManagerOption{save.WithManagerLogger(log)}
	if cfg.RemoteURL != "" {
		opts = append(opts, save.WithRemote(save.NewHTTPRemote(cfg.RemoteURL, remoteTimeout), cfg.RemotePushInterval))
	}

	return &env{
		cfg:     cfg,
		log:     log,
		catalog: catalog,
		store:   store,
		saves:   save.NewManager(store, cfg.ProfileKey, opts...),
	}, nil
}

func (e *env) Close() {
	e.saves.Wait()
	e.store.Close()
}

func (e *env) newGame(clk clock.Clock) *game.Game {
	return game.New(e.catalog, game.WithClock(clk), game.WithLogger(e.log))
}

// loadGame restores the newest save into a game on clk
func (e *env) loadGame(ctx context.Context, clk clock.Clock) (*game.Game, save.Source) {
	g := e.newGame(clk)
	snap, src := e.saves.Load(ctx)
	g.Restore(snap)
	return g, src
}

// simulationGame is a new game, or with fromSave the stored one with the
// absence since its last save already settled
func (e *env) simulationGame(ctx context.Context, clk clock.Clock, fromSave bool) (*game.Game, save.Source, economy.OfflineReport) {
	if !fromSave {
		return e.newGame(clk), save.SourceNone, economy.OfflineReport{}
	}
	g, src := e.loadGame(ctx, clk)
	return g, src, g.Resume()
}
