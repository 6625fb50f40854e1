package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/Pratikmalviya12/template-designer/pkg/config"
	"github.com/Pratikmalviya12/template-designer/pkg/document"
	"github.com/Pratikmalviya12/template-designer/pkg/errors"
	pkgio "github.com/Pratikmalviya12/template-designer/pkg/io"
	"github.com/Pratikmalviya12/template-designer/pkg/pipeline"
	"github.com/Pratikmalviya12/template-designer/pkg/render/outline"
	"github.com/Pratikmalviya12/template-designer/pkg/render/sink"
	"github.com/Pratikmalviya12/template-designer/pkg/store"
)

// watchDebounce coalesces the burst of events a single save produces.
const watchDebounce = 150 * time.Millisecond

// exportOpts holds the command-line flags for the export command.
type exportOpts struct {
	formats string // comma-separated formats
	outDir  string // output directory
	file    string // read the document from a file instead of the store
	noCache bool   // bypass the artifact cache
	refresh bool   // re-render and overwrite cached artifacts
	watch   bool   // re-export whenever the source changes
}

// source is where an export reads its document from.
type source struct {
	label string
	path  string // file watched by --watch; empty when not watchable
	load  func(ctx context.Context) (*document.Document, error)
}

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	var opts exportOpts

	cmd := &cobra.Command{
		Use:   "export [id]",
		Short: "Export a template as HTML and other formats",
		Long: `Export a template as a standalone HTML page, or as json, yaml, dot or svg.

The template is read from the store by id, or from a JSON/YAML file with
--file. Artifacts are written to --out as <name>.<format> and cached by
document content, so unchanged templates export instantly.

With --watch the command keeps running and re-exports whenever the template
is saved. Watching needs the file store or --file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			formats := parseFormats(opts.formats, cfg.Export.Formats)
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}
			outDir := opts.outDir
			if outDir == "" {
				outDir = cfg.Export.OutDir
			}
			if outDir == "" {
				outDir = "."
			}
			if err := errors.ValidatePath(outDir); err != nil {
				return err
			}

			src, err := c.exportSource(cmd.Context(), args, opts)
			if err != nil {
				return err
			}
			runner, err := c.newRunner(opts.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			po := pipeline.Options{Formats: formats, Refresh: opts.refresh}
			if err := c.runExport(cmd.Context(), runner, src, po, outDir); err != nil {
				return err
			}
			if !opts.watch {
				return nil
			}
			return c.watchExport(cmd.Context(), runner, src, po, outDir)
		},
	}

	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): html (default), json, yaml, dot, svg (comma-separated)")
	cmd.Flags().StringVarP(&opts.outDir, "out", "o", "", "output directory (default from config, else .)")
	cmd.Flags().StringVar(&opts.file, "file", "", "export a .json or .yaml document instead of a stored template")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when cached")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "re-export on every save")

	return cmd
}

// exportSource resolves the document to export from args and flags.
func (c *CLI) exportSource(ctx context.Context, args []string, opts exportOpts) (*source, error) {
	switch {
	case opts.file != "" && len(args) == 1:
		return nil, usageError("give a template id or --file, not both")
	case opts.file != "":
		path, err := filepath.Abs(opts.file)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve %s", opts.file)
		}
		return &source{
			label: opts.file,
			path:  path,
			load:  func(context.Context) (*document.Document, error) { return pkgio.ImportFile(path) },
		}, nil
	case len(args) == 0:
		return nil, usageError("give a template id or --file")
	}

	id := args[0]
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	src := &source{
		label: id,
		load: func(ctx context.Context) (*document.Document, error) {
			st, err := c.openStore(ctx)
			if err != nil {
				return nil, err
			}
			defer st.Close()
			return st.Get(ctx, id)
		},
	}
	if opts.watch {
		if cfg.Store.Backend != config.BackendFile && cfg.Store.Backend != "" {
			return nil, errors.New(errors.ErrCodeUnsupported,
				"--watch needs the file store or --file, not %s", cfg.Store.Backend)
		}
		fs, err := store.NewFileStore(cfg.Store.Dir)
		if err != nil {
			return nil, err
		}
		if src.path, err = filepath.Abs(fs.TemplatePath(id)); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve template path")
		}
	}
	return src, nil
}

// runExport renders src once and writes every artifact to outDir.
func (c *CLI) runExport(ctx context.Context, runner *pipeline.Runner, src *source, opts pipeline.Options, outDir string) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	doc, err := src.load(ctx)
	if err != nil {
		return err
	}
	prog.step("loaded", "source", src.label, "sections", len(doc.Template.Sections))

	spinner := newSpinnerWithContext(ctx, "Exporting "+src.label+"...")
	spinner.Start()
	res, err := runner.Export(ctx, doc, opts)
	spinner.Stop()
	if err != nil {
		return err
	}
	prog.step("rendered", "formats", len(opts.Formats), "hash", res.Hash[:12])

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "create %s", outDir)
	}
	base := strings.TrimSuffix(sink.Filename(doc.Template.Name), ".html")
	printSuccess("Exported %s", StyleHighlight.Render(doc.Template.Name))
	for _, format := range opts.Formats {
		path := filepath.Join(outDir, base+pipeline.Extension(format))
		if err := os.WriteFile(path, res.Artifacts[format], 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeStorage, err, "write %s", path)
		}
		printFile(path)
	}
	printStats(res.Stats.SectionCount, res.Stats.ComponentCount, res.CacheInfo.AllHit())
	prog.done(fmt.Sprintf("Exported %d artifacts", len(opts.Formats)))
	return nil
}

// watchExport re-runs the export whenever src's file changes, until ctx is
// cancelled. The directory is watched rather than the file so editors that
// save by renaming a temporary file are picked up.
func (c *CLI) watchExport(ctx context.Context, runner *pipeline.Runner, src *source, opts pipeline.Options, outDir string) error {
	if src.path == "" {
		return errors.New(errors.ErrCodeUnsupported, "%s cannot be watched", src.label)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(src.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(src.path), err)
	}

	printInfo("Watching %s (ctrl+c to stop)", src.path)
	logger := loggerFromContext(ctx)

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !isSave(ev, src.path) {
				continue
			}
			logger.Debug("source changed", "path", ev.Name, "op", ev.Op.String())
			pending = time.After(watchDebounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			printWarning("watcher: %v", err)
		case <-pending:
			pending = nil
			if err := c.runExport(ctx, runner, src, opts, outDir); err != nil {
				printWarning("export failed: %s", errors.UserMessage(err))
			}
		}
	}
}

// isSave reports whether ev writes or replaces the file at path.
func isSave(ev fsnotify.Event, path string) bool {
	if filepath.Clean(ev.Name) != path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}

// outlineCommand creates the outline command.
func (c *CLI) outlineCommand() *cobra.Command {
	var (
		output   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "outline <id>",
		Short: "Draw a template's structure as a Graphviz graph",
		Long: `Print the section/column/component structure of a template in DOT
format. With --output ending in .svg the graph is laid out and rendered.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			doc, err := st.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			dot := outline.ToDOT(doc, outline.Options{Detailed: detailed})

			switch {
			case output == "":
				fmt.Print(dot)
				return nil
			case strings.EqualFold(filepath.Ext(output), ".svg"):
				svg, err := outline.RenderSVG(cmd.Context(), dot)
				if err != nil {
					return err
				}
				return writeOutput(output, svg)
			default:
				return writeOutput(output, []byte(dot))
			}
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a .dot or .svg file instead of stdout")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "label components with content excerpts")

	return cmd
}

func writeOutput(path string, data []byte) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "write %s", path)
	}
	printSuccess("Wrote outline")
	printFile(path)
	return nil
}
