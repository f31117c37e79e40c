package driver

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"darwin/internal/diag"
	"darwin/internal/lexer"
	"darwin/internal/source"
	"darwin/internal/token"
	"darwin/internal/trace"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
	Cached  bool // поток взят из DiskCache
}

// Tokenize loads one file and returns its token stream with diagnostics.
// A missing or unreadable file is an error; lexical errors are diagnostics.
func Tokenize(ctx context.Context, path string, opts Options) (*TokenizeResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "tokenize", trace.ParentSpan(ctx))
	defer span.End("")
	ctx = trace.WithSpan(ctx, span)

	fs := source.NewFileSet()
	fileID, err := fs.LoadWith(path, opts.loadOptions())
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(opts.MaxDiagnostics)
	tokens, cached := tokenizeFile(ctx, file, bag, opts)
	span.WithExtra("tokens", strconv.Itoa(len(tokens)))

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
		Cached:  cached,
	}, nil
}

// tokenizeFile scans file, or restores its stream from opts.Cache, and
// reports lexical errors into bag.
func tokenizeFile(ctx context.Context, file *source.File, bag *diag.Bag, opts Options) ([]token.Token, bool) {
	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopeFile, "file:"+file.Path, trace.ParentSpan(ctx))
	defer span.End("")

	reporter := diag.BagReporter{Bag: bag}
	tokens, cached := lookupCache(file, bag, opts.Cache)

	if cached {
		span.WithExtra("cache", "hit")
		lexer.ReportErrors(file, tokens, reporter)
	} else {
		lx := lexer.New(file, lexer.Options{Reporter: reporter})
		for {
			tok := lx.Next()
			tokens = append(tokens, tok)
			if tok.Kind == token.Error {
				trace.Point(tr, trace.ScopeToken, "error-token", tok.String(), span.ID())
			}
			if tok.Kind.IsEOF() {
				break
			}
		}
		if opts.Cache != nil {
			span.WithExtra("cache", "miss")
			if err := opts.Cache.Put(file.Hash, tokens); err != nil {
				reportCacheError(bag, file, err)
			}
		}
	}

	if opts.SkipTrivia {
		tokens = slices.DeleteFunc(tokens, token.Token.IsTrivia)
	}
	return tokens, cached
}

func lookupCache(file *source.File, bag *diag.Bag, cache *DiskCache) ([]token.Token, bool) {
	if cache == nil {
		return nil, false
	}
	tokens, ok, err := cache.Get(file.Hash, textLen(file.Content))
	if err != nil {
		reportCacheError(bag, file, err)
		return nil, false
	}
	return tokens, ok
}

func reportCacheError(bag *diag.Bag, file *source.File, err error) {
	diag.ReportWarning(diag.BagReporter{Bag: bag}, diag.IOCacheError,
		source.Span{File: file.ID},
		fmt.Sprintf("token cache: %v", err)).Emit()
}
