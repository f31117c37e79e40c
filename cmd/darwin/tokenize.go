package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fortio.org/safecast"
	"github.com/spf13/cobra"

	"darwin/internal/diag"
	"darwin/internal/diagfmt"
	"darwin/internal/driver"
	"darwin/internal/observ"
	"darwin/internal/project"
	"darwin/internal/source"
	"darwin/internal/token"
	"darwin/internal/trace"
)

func newTokenizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] <file.dw|dir>",
		Short: "Tokenize a darwin source file or directory",
		Long: `Tokenize breaks source text into tokens. For a directory every file with a
matching extension is tokenized in parallel; settings come from the nearest
darwin.toml and are overridden by explicit flags.`,
		Args: cobra.ExactArgs(1),
		RunE: runTokenize,
	}
	flags := cmd.Flags()
	flags.String("format", "pretty", "output format (pretty|json|stats)")
	flags.Bool("skip-trivia", false, "omit whitespace, line terminators and comments")
	flags.Int("jobs", 0, "parallel workers for directories (0 = GOMAXPROCS)")
	flags.Bool("no-cache", false, "do not read or write the token cache")
	flags.String("ui", "auto", "progress view for directories (auto|on|off)")
	flags.String("normalize", "", "unicode normalization on load (none|nfc)")
	flags.StringSlice("ext", nil, "source file extensions for directories")
	flags.String("path-mode", "auto", "how paths are printed (auto|absolute|relative|basename)")
	flags.Int("max-text-width", 40, "truncate token text in listings (0 = no limit)")
	return cmd
}

type tokenizeOutput struct {
	format     string
	tokenOpts  diagfmt.TokenOpts
	prettyOpts diagfmt.PrettyOpts
	jsonOpts   diagfmt.JSONOpts
}

func runTokenize(cmd *cobra.Command, args []string) error {
	target := args[0]
	info, err := os.Stat(target)
	if err != nil {
		return err
	}

	out, err := readTokenizeOutput(cmd)
	if err != nil {
		return err
	}

	manifestDir := target
	if !info.IsDir() {
		manifestDir = filepath.Dir(target)
	}
	manifest, err := project.Load(manifestDir)
	if err != nil {
		var cfgErr *project.ConfigError
		if errors.As(err, &cfgErr) {
			return reportConfigError(cmd, out, cfgErr)
		}
		return err
	}
	cfg, noCache, err := applyTokenizeFlags(cmd, manifest.Config.Tokenize)
	if err != nil {
		return err
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	timings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	opts := driver.Options{
		MaxDiagnostics: maxDiagnostics,
		SkipTrivia:     cfg.SkipTrivia,
		NormalizeNFC:   cfg.NormalizeNFC(),
		Jobs:           cfg.Jobs,
		Extensions:     cfg.Extensions,
	}
	if cfg.Cache && !noCache {
		cache, cacheErr := driver.OpenDiskCache("darwin")
		if cacheErr != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: token cache disabled: %v\n", cacheErr)
		} else {
			opts.Cache = cache
		}
	}

	ctx := cmd.Context()
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeDriver, "darwin tokenize", 0).
		WithExtra("target", target)
	ctx = trace.WithSpan(ctx, span)
	defer span.End("")

	timer := observ.NewTimer()
	if timings {
		defer func() {
			fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
		}()
	}

	if !info.IsDir() {
		done := timer.Track("tokenize")
		result, err := driver.Tokenize(ctx, target, opts)
		if err != nil {
			done("failed")
			return fmt.Errorf("tokenization failed: %w", err)
		}
		done(fmt.Sprintf("%d tokens", len(result.Tokens)))

		defer timer.Track("output")("")
		files := []tokenizedFile{{
			file:   result.File,
			tokens: result.Tokens,
			bag:    result.Bag,
			cached: result.Cached,
		}}
		return writeTokenized(cmd, out, result.FileSet, files)
	}

	mode, err := readUIModeFlag(cmd)
	if err != nil {
		return err
	}

	done := timer.Track("tokenize-dir")
	var (
		fileSet *source.FileSet
		results []driver.TokenizeDirResult
	)
	errOut := cmd.ErrOrStderr()
	if shouldUseTUI(mode, errOut) {
		files, listErr := driver.ListSourceFiles(target, cfg.Extensions)
		if listErr != nil {
			done("failed")
			return listErr
		}
		fileSet, results, err = runTokenizeDirWithUI(ctx, errOut, "tokenizing "+target, target, files, opts)
	} else {
		fileSet, results, err = driver.TokenizeDir(ctx, target, opts)
	}
	if err != nil {
		done("failed")
		return err
	}
	done(fmt.Sprintf("%d files", len(results)))

	defer timer.Track("output")("")
	files := make([]tokenizedFile, 0, len(results))
	for _, res := range results {
		files = append(files, tokenizedFile{
			file:   fileSet.Get(res.FileID),
			tokens: res.Tokens,
			bag:    res.Bag,
			cached: res.Cached,
			failed: res.Failed,
		})
	}
	return writeTokenized(cmd, out, fileSet, files)
}

// reportConfigError prints a broken darwin.toml as a PRJ5001 diagnostic
// pointing into the manifest itself.
func reportConfigError(cmd *cobra.Command, out tokenizeOutput, cfgErr *project.ConfigError) error {
	fs := source.NewFileSet()
	fileID, err := fs.Load(cfgErr.Path)
	if err != nil {
		fileID = fs.AddVirtual(cfgErr.Path, nil)
	}
	span := source.Span{File: fileID}
	if start, length, ok := cfgErr.Position(); ok {
		s, startErr := safecast.Conv[uint32](start)
		n, lenErr := safecast.Conv[uint32](length)
		size, sizeErr := safecast.Conv[uint32](len(fs.Get(fileID).Content))
		if startErr == nil && lenErr == nil && sizeErr == nil && s <= size {
			span.Start = s
			span.End = min(s+n, size)
		}
	}

	bag := diag.NewBag(1)
	diag.ReportError(diag.BagReporter{Bag: bag}, diag.ProjInvalidConfig, span, cfgErr.Err.Error()).Emit()
	if err := diagfmt.Pretty(cmd.ErrOrStderr(), bag, fs, out.prettyOpts); err != nil {
		return err
	}
	return errDiagnostics
}

type tokenizedFile struct {
	file   *source.File
	tokens []token.Token
	bag    *diag.Bag
	cached bool
	failed bool
}

func readTokenizeOutput(cmd *cobra.Command) (tokenizeOutput, error) {
	flags := cmd.Flags()
	format, err := flags.GetString("format")
	if err != nil {
		return tokenizeOutput{}, fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "json", "stats":
	default:
		return tokenizeOutput{}, fmt.Errorf("unknown format: %s", format)
	}

	pathModeStr, err := flags.GetString("path-mode")
	if err != nil {
		return tokenizeOutput{}, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	pathMode, err := diagfmt.ParsePathMode(pathModeStr)
	if err != nil {
		return tokenizeOutput{}, err
	}
	width, err := flags.GetInt("max-text-width")
	if err != nil {
		return tokenizeOutput{}, fmt.Errorf("failed to get max-text-width flag: %w", err)
	}

	outColor, err := useColor(cmd, cmd.OutOrStdout())
	if err != nil {
		return tokenizeOutput{}, err
	}
	errColor, err := useColor(cmd, cmd.ErrOrStderr())
	if err != nil {
		return tokenizeOutput{}, err
	}

	return tokenizeOutput{
		format: format,
		tokenOpts: diagfmt.TokenOpts{
			Color:        outColor,
			PathMode:     pathMode,
			MaxTextWidth: width,
		},
		prettyOpts: diagfmt.PrettyOpts{
			Color:     errColor,
			PathMode:  pathMode,
			ShowLine:  true,
			ShowNotes: true,
		},
		jsonOpts: diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     true,
		},
	}, nil
}

// applyTokenizeFlags накладывает явно заданные флаги поверх [tokenize].
func applyTokenizeFlags(cmd *cobra.Command, cfg project.TokenizeConfig) (project.TokenizeConfig, bool, error) {
	flags := cmd.Flags()
	if flags.Changed("skip-trivia") {
		v, err := flags.GetBool("skip-trivia")
		if err != nil {
			return cfg, false, err
		}
		cfg.SkipTrivia = v
	}
	if flags.Changed("jobs") {
		v, err := flags.GetInt("jobs")
		if err != nil {
			return cfg, false, err
		}
		cfg.Jobs = v
	}
	if flags.Changed("normalize") {
		v, err := flags.GetString("normalize")
		if err != nil {
			return cfg, false, err
		}
		cfg.Normalize = v
	}
	if flags.Changed("ext") {
		v, err := flags.GetStringSlice("ext")
		if err != nil {
			return cfg, false, err
		}
		cfg.Extensions = v
	}
	noCache, err := flags.GetBool("no-cache")
	if err != nil {
		return cfg, false, err
	}

	// флаги проверяются теми же правилами, что и манифест
	checked := project.Config{Tokenize: cfg}
	if err := checked.Validate(); err != nil {
		return cfg, false, err
	}
	return checked.Tokenize, noCache, nil
}

func readUIModeFlag(cmd *cobra.Command) (uiMode, error) {
	value, err := cmd.Flags().GetString("ui")
	if err != nil {
		return "", fmt.Errorf("failed to get ui flag: %w", err)
	}
	return readUIMode(value)
}

// writeTokenized prints listings to stdout and diagnostics to stderr
// (JSON output carries diagnostics inline instead).
func writeTokenized(cmd *cobra.Command, out tokenizeOutput, fs *source.FileSet, files []tokenizedFile) error {
	stdout := cmd.OutOrStdout()
	all := diag.NewBag(0)
	for _, f := range files {
		all.Merge(f.bag)
	}

	var err error
	switch out.format {
	case "json":
		err = writeTokensJSON(stdout, out, fs, files)
	case "stats":
		stats := &diagfmt.TokenStats{}
		for _, f := range files {
			if !f.failed {
				stats.CountTokens(f.tokens)
			}
		}
		err = diagfmt.FormatStats(stdout, stats, out.tokenOpts)
	default:
		err = writeTokensPretty(stdout, out, fs, files)
	}
	if err != nil {
		return err
	}

	if out.format != "json" && all.Len() > 0 {
		all.Sort()
		if err := diagfmt.Pretty(cmd.ErrOrStderr(), all, fs, out.prettyOpts); err != nil {
			return err
		}
	}
	if all.HasErrors() {
		return errDiagnostics
	}
	return nil
}

func writeTokensPretty(w io.Writer, out tokenizeOutput, fs *source.FileSet, files []tokenizedFile) error {
	for i, f := range files {
		if f.failed {
			continue
		}
		if len(files) > 1 {
			if i > 0 {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(w, "==> %s <==\n", f.file.FormatPath(out.tokenOpts.PathMode.String(), fs.BaseDir())); err != nil {
				return err
			}
		}
		if err := diagfmt.FormatTokensPretty(w, f.file, fs, f.tokens, out.tokenOpts); err != nil {
			return err
		}
	}
	return nil
}

func writeTokensJSON(w io.Writer, out tokenizeOutput, fs *source.FileSet, files []tokenizedFile) error {
	listing := diagfmt.TokensOutput{Files: make([]diagfmt.FileTokensJSON, 0, len(files))}
	for _, f := range files {
		entry := diagfmt.FileTokens(f.file, fs, f.tokens, out.tokenOpts)
		entry.Cached = f.cached
		if f.bag != nil && f.bag.Len() > 0 {
			f.bag.Sort()
			entry.Diagnostics = diagfmt.BuildDiagnostics(f.bag, fs, out.jsonOpts)
		}
		listing.Files = append(listing.Files, entry)
	}
	return diagfmt.FormatTokensJSON(w, listing)
}
