// Package cli implements the templatedesigner command-line interface.
package cli

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/Pratikmalviya12/template-designer/pkg/buildinfo"
	"github.com/Pratikmalviya12/template-designer/pkg/cache"
	"github.com/Pratikmalviya12/template-designer/pkg/config"
	"github.com/Pratikmalviya12/template-designer/pkg/editor"
	"github.com/Pratikmalviya12/template-designer/pkg/errors"
	"github.com/Pratikmalviya12/template-designer/pkg/ident"
	"github.com/Pratikmalviya12/template-designer/pkg/pipeline"
	"github.com/Pratikmalviya12/template-designer/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
	LogFatal = log.FatalLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string // --config
	backend    string // --store, overrides the config file
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Templatedesigner builds email and page templates from sections and components",
		Long: `Templatedesigner edits templates made of sections, columns and content
components, and exports them as standalone HTML pages.

Templates are kept in a store (files, SQLite, Redis or MongoDB) selected in
the config file or with --store.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+config.Path()+")")
	root.PersistentFlags().StringVar(&c.backend, "store", "", "store backend: file, sqlite, redis, mongo")

	root.AddCommand(c.newCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.deleteCommand())
	root.AddCommand(c.renameCommand())
	root.AddCommand(c.canvasCommand())
	root.AddCommand(c.sectionCommand())
	root.AddCommand(c.componentCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.outlineCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())
	c.registerCompletions(root)

	return root
}

// =============================================================================
// Config & Store
// =============================================================================

// config loads the settings once per process.
func (c *CLI) config() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	if c.backend != "" {
		cfg.Store.Backend = c.backend
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	c.cfg = &cfg
	return c.cfg, nil
}

// openStore opens the configured template store. Callers close it.
func (c *CLI) openStore(ctx context.Context) (store.Store, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("opening store", "backend", cfg.Store.Backend)
	return store.Open(ctx, cfg.Store)
}

// idGenerator returns the configured identifier strategy.
func (c *CLI) idGenerator() (ident.Generator, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	return ident.ByName(cfg.IDs.Strategy)
}

// loadEditor wraps a stored template in an editor using ids and the CLI logger.
func (c *CLI) loadEditor(ctx context.Context, st store.Store, ids ident.Generator, id string) (*editor.Editor, error) {
	doc, err := st.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return editor.New(doc, editor.WithIDGenerator(ids), editor.WithLogger(c.Logger)), nil
}

// withTemplate loads template id, runs fn against its editor and saves the
// result. fn resolves its own addressing so callers see SECTION_NOT_FOUND
// and friends instead of a silent no-op.
func (c *CLI) withTemplate(ctx context.Context, id string, fn func(ed *editor.Editor) error) (*editor.Editor, error) {
	ids, err := c.idGenerator()
	if err != nil {
		return nil, err
	}
	st, err := c.openStore(ctx)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	ed, err := c.loadEditor(ctx, st, ids, id)
	if err != nil {
		return nil, err
	}
	if err := fn(ed); err != nil {
		return nil, err
	}
	if err := st.Put(ctx, ed.Document()); err != nil {
		return nil, err
	}
	return ed, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	ch, err := newCache(cfg, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(ch, exportKeyer(), c.Logger), nil
}

// exportKeyer scopes cache keys by release so artifacts rendered by an
// older serializer are not served after an upgrade.
func exportKeyer() cache.Keyer {
	return cache.NewScopedKeyer(nil, buildinfo.Version+":")
}

func newCache(cfg *config.Config, noCache bool) (cache.Cache, error) {
	if noCache || !cfg.Cache.Enabled {
		return cache.NewNullCache(), nil
	}
	if cfg.Cache.Backend == config.BackendRedis {
		r := cfg.Store.Redis
		client := redis.NewClient(&redis.Options{Addr: r.Addr, Password: r.Password, DB: r.DB})
		return cache.NewRedisCache(client, r.Prefix+"cache:"), nil
	}
	return cache.NewFileCache(cacheDirFor(cfg))
}

// =============================================================================
// Paths
// =============================================================================

// cacheDirFor returns the file cache directory: the configured one, or
// ~/.cache/templatedesigner/ following XDG.
func cacheDirFor(cfg *config.Config) string {
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir
	}
	return config.CacheDir()
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
// An empty string yields fallback.
func parseFormats(s string, fallback []string) []string {
	if s == "" {
		return fallback
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, strings.ToLower(f))
		}
	}
	return out
}

// usageError reports a bad argument with the INVALID_INPUT code.
func usageError(format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidInput, format, args...)
}
