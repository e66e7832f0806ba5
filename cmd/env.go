package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/abhisek/wordiz/internal/config"
	"github.com/abhisek/wordiz/internal/content"
	"github.com/abhisek/wordiz/internal/logging"
	"github.com/abhisek/wordiz/internal/progress"
	"github.com/abhisek/wordiz/internal/store"
)

// catalogVersionKey is the blob holding the catalog version progress was
// last reconciled against.
const catalogVersionKey = "catalogVersion"

// envOptions selects what a command needs from the environment.
type envOptions struct {
	// lock takes the single-writer lock; commands that change progress set it.
	lock bool
	// catalog makes a missing or broken content directory an error.
	catalog bool
	// logToFile sends logs to the data directory when no log file is set.
	logToFile bool
	// durable refuses to run when progress could only be kept in memory.
	durable bool
}

// env is the opened runtime shared by commands.
type env struct {
	cfg      *config.Config
	log      *logrus.Logger
	store    *store.Store
	progress *progress.Store
	catalog  *content.Catalog
	closers  []func() error
}

// openEnv loads configuration, the logger, the database, the progress
// store and the content catalog, in that order.
func openEnv(cmd *cobra.Command, opts envOptions) (*env, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, err
	}
	if opts.logToFile && cfg.Log.File == "" {
		cfg.Log.File = filepath.Join(filepath.Dir(cfg.Data.DB), "wordiz.log")
	}

	logger, closer, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	e := &env{cfg: cfg, log: logger}
	e.closers = append(e.closers, closer.Close)

	if opts.lock {
		release, err := store.Lock(cfg.Data.DB)
		switch {
		case errors.Is(err, store.ErrLocked):
			e.Close()
			return nil, fmt.Errorf("another wordiz is running against %s; close it first", cfg.Data.DB)
		case err != nil:
			logger.WithError(err).Warn("cannot take the database lock")
		default:
			e.closers = append(e.closers, release)
		}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	e.store, e.progress = openProgress(ctx, cfg.Data.DB, logger)
	if e.store != nil {
		e.closers = append(e.closers, e.store.Close)
	} else if opts.durable {
		e.Close()
		return nil, fmt.Errorf("database %s is unavailable; changes would be lost", cfg.Data.DB)
	}

	catalog, err := content.LoadDir(cfg.Data.ContentDir)
	if err != nil {
		if opts.catalog {
			e.Close()
			return nil, fmt.Errorf("load content from %s: %w", cfg.Data.ContentDir, err)
		}
		logger.WithError(err).WithField("dir", cfg.Data.ContentDir).Warn("content not loaded")
		return e, nil
	}
	e.catalog = catalog
	e.reconcile(ctx)
	return e, nil
}

// openProgress opens the database and loads progress from it. A database
// that cannot be opened leaves progress in memory, marked degraded, and a
// nil store.
func openProgress(ctx context.Context, dbPath string, log logrus.FieldLogger) (*store.Store, *progress.Store) {
	st, err := store.Open(dbPath)
	if err != nil {
		log.WithError(err).WithField("db", dbPath).Warn("database unavailable, progress will not be saved")
		p := progress.Open(ctx, nil, progress.WithLogger(log))
		p.MarkDegraded(err)
		return nil, p
	}
	return st, progress.Open(ctx, st.BlobRepo(), progress.WithLogger(log))
}

func (e *env) reconcile(ctx context.Context) {
	var blobs store.BlobRepo
	if e.store != nil {
		blobs = e.store.BlobRepo()
	}
	reconcile(ctx, blobs, e.progress, e.catalog, e.log)
}

// reconcile drops progress for words that left the catalog. Versioned
// content is reconciled when its version differs from the one recorded in
// blobs; unversioned content, or a missing blob store, is reconciled on
// every run.
func reconcile(ctx context.Context, blobs store.BlobRepo, p *progress.Store, c *content.Catalog, log logrus.FieldLogger) int {
	if c.Version == "" || blobs == nil {
		return p.PruneInvalid(c.AllWordIDs())
	}
	stored, _, err := blobs.Get(ctx, catalogVersionKey)
	if err != nil {
		log.WithError(err).Warn("read catalog version")
		return p.PruneInvalid(c.AllWordIDs())
	}
	if !content.VersionChanged(string(stored), c.Version) {
		return 0
	}
	removed := p.PruneInvalid(c.AllWordIDs())
	log.WithField("from", string(stored)).
		WithField("to", c.Version).
		WithField("removed", removed).
		Info("catalog version changed, pruned progress")
	if err := blobs.Put(ctx, catalogVersionKey, []byte(c.Version)); err != nil {
		log.WithError(err).Warn("save catalog version")
	}
	return removed
}

// events returns the event repository, or nil when the database is not open.
func (e *env) events() store.EventRepo {
	if e.store == nil {
		return nil
	}
	return e.store.EventRepo()
}

// requireStore returns the database or an error when it could not be opened.
func (e *env) requireStore() (*store.Store, error) {
	if e.store == nil {
		return nil, fmt.Errorf("database %s is unavailable (see the log for the cause)", e.cfg.Data.DB)
	}
	return e.store, nil
}

// requireCatalog returns the catalog or an error naming the content dir.
func (e *env) requireCatalog() (*content.Catalog, error) {
	if e.catalog == nil {
		return nil, fmt.Errorf("no content loaded from %s (see wordiz import)", e.cfg.Data.ContentDir)
	}
	return e.catalog, nil
}

// Close releases everything in reverse order of opening.
func (e *env) Close() error {
	var errs []error
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	e.closers = nil
	return errors.Join(errs...)
}

var _ io.Closer = (*env)(nil)
