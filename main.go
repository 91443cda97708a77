package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"asciisketch/diagram"
	"asciisketch/export"
	"asciisketch/importer"
	"asciisketch/markdown"
	"asciisketch/preview"
	"asciisketch/render"
	"asciisketch/textio"
	"asciisketch/validation"
	"asciisketch/watch"
)

// errValidation marks a run whose input or output failed validation.
var errValidation = errors.New("validation failed")

// options are the effective settings after the config file and flags are merged.
type options struct {
	file        string
	cellSize    int // explicit -cell; 0 when not given
	format      export.Format
	inputFormat string
	output      string
	clipboard   bool
	preview     bool
	watch       bool
	validate    bool
	strict      bool
	markdown    bool
	block       int
	replace     bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("asciisketch", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		cellSize    = fs.Int("cell", 0, "Grid cell size in coordinate units, below 1 means 1 (default from config, else 10)")
		format      = fs.String("format", "ascii", "Export format: ascii, json, yaml")
		inputFormat = fs.String("input-format", "", "Input format: json, yaml (auto-detect if not specified)")
		outputFile  = fs.String("o", "", "Output file (default: stdout)")
		clipboard   = fs.Bool("clipboard", false, "Also copy the output to the system clipboard")
		showPreview = fs.Bool("preview", false, "Show the rendered sketch in a terminal viewer")
		watchFile   = fs.Bool("watch", false, "Re-render whenever the input file changes")
		validate    = fs.Bool("validate", false, "Validate the input shapes and the rendered output")
		strict      = fs.Bool("strict", false, "With -validate, treat shape warnings as errors")
		mdMode      = fs.Bool("markdown", false, "Render ```sketch blocks from a markdown file")
		blockIndex  = fs.Int("block", 0, "Which sketch block to render (1-based index, 0 = all)")
		replace     = fs.Bool("replace", false, "With -markdown, replace sketch blocks with their drawings")
		configPath  = fs.String("config", defaultConfigPath, "Configuration file")
		verbose     = fs.Bool("v", false, "Verbose (debug) logging")
	)

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: asciisketch [options] shapes.json\n\n")
		fmt.Fprintf(stderr, "Rasterizes box, line, arrow and text shapes into an ASCII character grid.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  asciisketch shapes.json                     # Render to stdout\n")
		fmt.Fprintf(stderr, "  asciisketch -cell 20 shapes.yaml            # Coarser grid\n")
		fmt.Fprintf(stderr, "  asciisketch -o sketch.txt -clipboard shapes.json\n")
		fmt.Fprintf(stderr, "  asciisketch -watch -o sketch.txt shapes.json\n")
		fmt.Fprintf(stderr, "  asciisketch -markdown -block 2 README.md    # Render the 2nd sketch block\n")
		fmt.Fprintf(stderr, "  asciisketch -markdown -replace README.md    # Swap sketch blocks for drawings\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	cfg, err := LoadConfig(*configPath, set["config"])
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if fs.NArg() != 1 {
		fmt.Fprintf(stderr, "Error: Please provide exactly one shapes file\n\n")
		fs.Usage()
		return 1
	}

	opts := options{
		file:        fs.Arg(0),
		inputFormat: *inputFormat,
		output:      *outputFile,
		clipboard:   *clipboard,
		preview:     *showPreview,
		watch:       *watchFile,
		validate:    *validate,
		strict:      *strict,
		markdown:    *mdMode,
		block:       *blockIndex,
		replace:     *replace,
	}
	if set["cell"] {
		opts.cellSize = render.ClampCellSize(*cellSize)
	}

	// Flags override the config file.
	formatName := *format
	if !set["format"] {
		formatName = cfg.Format
	}
	if !set["o"] {
		opts.output = cfg.Output
	}
	if !set["clipboard"] {
		opts.clipboard = cfg.Clipboard
	}

	opts.format, err = export.ParseFormat(formatName)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fmt.Fprintf(stderr, "Available formats: %s\n", strings.Join(formatNames(), ", "))
		return 1
	}

	if err := opts.check(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	renderer := render.NewRenderer()
	renderer.SetGridCellSize(cfg.GridCellSize)
	renderer.SetMaxCells(cfg.MaxCells)
	renderer.SetLogger(logger)

	exporter, err := export.NewExporter(opts.format, renderer)
	if err != nil {
		fmt.Fprintf(stderr, "Error creating exporter: %v\n", err)
		return 1
	}

	a := &app{
		opts:     opts,
		logger:   logger,
		stdout:   stdout,
		stderr:   stderr,
		registry: importer.NewImporterRegistry(),
		exporter: exporter,
	}

	err = a.renderOnce()
	if opts.watch {
		if err != nil {
			logger.Error("render failed", slog.Any("error", err))
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		logger.Info("watching for changes", slog.String("file", opts.file))
		err = watch.New(logger).Run(ctx, opts.file, func() {
			if err := a.renderOnce(); err != nil {
				logger.Error("render failed", slog.Any("error", err))
			}
		})
	}

	switch {
	case errors.Is(err, errValidation):
		return 2
	case err != nil:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// check rejects flag combinations that cannot work together.
func (o options) check() error {
	switch {
	case o.block < 0:
		return fmt.Errorf("-block must not be negative")
	case o.strict && !o.validate:
		return fmt.Errorf("-strict requires -validate")
	case o.block > 0 && !o.markdown:
		return fmt.Errorf("-block requires -markdown")
	case o.replace && !o.markdown:
		return fmt.Errorf("-replace requires -markdown")
	case o.replace && o.format != export.FormatASCII:
		return fmt.Errorf("-replace only writes ascii drawings, not %s", o.format)
	case o.watch && o.preview:
		return fmt.Errorf("-watch and -preview cannot be combined")
	case o.watch && o.replace:
		return fmt.Errorf("-watch and -replace cannot be combined")
	}
	return nil
}

func formatNames() []string {
	formats := export.GetAvailableFormats()
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return names
}

// app carries what one render of the input file needs.
type app struct {
	opts     options
	logger   *slog.Logger
	stdout   io.Writer
	stderr   io.Writer
	registry *importer.ImporterRegistry
	exporter export.Exporter
}

// renderOnce reads the input file, exports it and delivers the result.
func (a *app) renderOnce() error {
	if a.opts.markdown {
		return a.runMarkdown()
	}

	content, err := textio.ReadTextFile(a.opts.file)
	if err != nil {
		return err
	}

	doc, err := a.loadDocument(content)
	if err != nil {
		return fmt.Errorf("loading shapes: %w", err)
	}

	out, findings, err := a.export(doc)
	if err != nil {
		return err
	}
	if err := a.deliver(out); err != nil {
		return err
	}
	return a.report(findings)
}

// loadDocument decodes content with the requested importer, the one
// claiming the file extension, or whichever recognises the content.
func (a *app) loadDocument(content string) (*diagram.Document, error) {
	if a.opts.inputFormat != "" {
		return a.registry.ImportWithFormat(content, a.opts.inputFormat)
	}
	if imp := a.registry.ForExtension(a.opts.file); imp != nil {
		return imp.Import(content)
	}
	return a.registry.Import(content)
}

// export validates doc when requested, normalizes its ids and runs the exporter.
func (a *app) export(doc *diagram.Document) (string, []validation.ValidationError, error) {
	var findings []validation.ValidationError
	if a.opts.validate {
		v := validation.NewShapeValidator()
		v.SetStrictMode(a.opts.strict)
		findings = v.Validate(doc.Shapes)
	}

	if n := diagram.EnsureUniqueIDs(doc); n > 0 {
		a.logger.Debug("assigned shape ids", slog.Int("count", n))
	}
	if a.opts.cellSize > 0 {
		doc.GridCellSize = a.opts.cellSize
	}

	out, err := a.exporter.Export(doc)
	if err != nil {
		return "", nil, fmt.Errorf("exporting sketch: %w", err)
	}

	if a.opts.validate && a.opts.format == export.FormatASCII {
		findings = append(findings, validation.NewOutputValidator().Validate(out)...)
	}
	return out, findings, nil
}

// runMarkdown renders the sketch blocks of a markdown file, either to the
// output or back into the file itself.
func (a *app) runMarkdown() error {
	content, err := textio.ReadTextFile(a.opts.file)
	if err != nil {
		return err
	}

	scanner := markdown.NewScanner(content)
	blocks := scanner.FindSketchBlocks()
	if len(blocks) == 0 {
		return fmt.Errorf("no sketch blocks found in %s", a.opts.file)
	}

	indexes := make([]int, 0, len(blocks))
	if a.opts.block > 0 {
		if a.opts.block > len(blocks) {
			return fmt.Errorf("block index %d is out of range (found %d blocks)", a.opts.block, len(blocks))
		}
		indexes = append(indexes, a.opts.block-1)
	} else {
		for i := range blocks {
			indexes = append(indexes, i)
		}
	}

	outputs := make([]string, len(indexes))
	var findings []validation.ValidationError
	for n, i := range indexes {
		block := blocks[i]
		a.logger.Debug("rendering block", slog.String("block", markdown.FormatBlockInfo(block, i)))

		doc, err := a.registry.ImportWithFormat(block.Content, block.Format())
		if err != nil {
			return fmt.Errorf("importing block at line %d: %w", block.StartLine+1, err)
		}
		out, f, err := a.export(doc)
		if err != nil {
			return fmt.Errorf("block at line %d: %w", block.StartLine+1, err)
		}
		outputs[n] = out
		findings = append(findings, f...)
	}

	if a.opts.replace {
		// Last block first so earlier line numbers stay valid.
		for n := len(indexes) - 1; n >= 0; n-- {
			updated, err := scanner.ReplaceBlock(blocks[indexes[n]], markdown.RenderedBlock(outputs[n]))
			if err != nil {
				return fmt.Errorf("replacing block: %w", err)
			}
			scanner.UpdateContent(updated)
		}

		target := a.opts.output
		if target == "" {
			target = a.opts.file
		}
		if err := textio.WriteTextFile(target, scanner.GetContent()); err != nil {
			return err
		}
		a.logger.Info("replaced sketch blocks", slog.String("file", target), slog.Int("blocks", len(indexes)))
		return a.report(findings)
	}

	text := outputs[0]
	if len(indexes) > 1 {
		parts := make([]string, len(indexes))
		for n, i := range indexes {
			parts[n] = markdown.FormatBlockInfo(blocks[i], i) + "\n" + outputs[n]
		}
		text = strings.Join(parts, "\n")
	}

	if err := a.deliver(text); err != nil {
		return err
	}
	return a.report(findings)
}

// deliver writes out plus a newline to the output file or stdout, then out
// alone to the clipboard and the viewer when requested.
func (a *app) deliver(out string) error {
	if a.opts.output != "" {
		if err := textio.WriteTextFile(a.opts.output, out+"\n"); err != nil {
			return err
		}
		a.logger.Info("exported", slog.String("file", a.opts.output))
	} else {
		fmt.Fprintln(a.stdout, out)
	}

	if a.opts.clipboard {
		if err := textio.CopyToClipboard(out); err != nil {
			return err
		}
		a.logger.Debug("copied output to clipboard")
	}

	if a.opts.preview {
		return preview.Run(out)
	}
	return nil
}

// report prints validation findings and returns errValidation when any is an error.
func (a *app) report(findings []validation.ValidationError) error {
	for _, f := range findings {
		fmt.Fprintln(a.stderr, f.String())
	}
	if validation.HasErrors(findings) {
		return errValidation
	}
	if a.opts.validate {
		a.logger.Debug("validation passed", slog.Int("warnings", len(findings)))
	}
	return nil
}
