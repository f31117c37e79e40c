package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"darwin/internal/diag"
	"darwin/internal/source"
	"darwin/internal/token"
	"darwin/internal/trace"
)

// TokenizeDirResult содержит результат токенизации одного файла
type TokenizeDirResult struct {
	Path   string        // путь к файлу
	FileID source.FileID // при ошибке загрузки указывает на пустой виртуальный файл
	Tokens []token.Token
	Bag    *diag.Bag
	Cached bool
	Failed bool // файл не загрузился
}

// ListSourceFiles returns every file under dir whose name ends with one of
// exts, sorted. Hidden directories are skipped.
func ListSourceFiles(dir string, exts []string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if slices.ContainsFunc(exts, func(ext string) bool { return strings.HasSuffix(path, ext) }) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	slices.Sort(files)
	return files, nil
}

// TokenizeDir tokenizes every source file under dir in parallel. Results
// follow the sorted file order whatever order the workers finish in. A file
// that fails to load gets an IOLoadFileError diagnostic instead of tokens.
func TokenizeDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []TokenizeDirResult, error) {
	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopePass, "tokenize-dir", trace.ParentSpan(ctx))
	defer span.End("")
	ctx = trace.WithSpan(ctx, span)

	files, err := ListSourceFiles(dir, opts.extensions())
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// FileSet не потокобезопасен: загружаем всё заранее
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error)
	for _, path := range files {
		emit(opts.Progress, Event{File: path, Status: StatusQueued})
		fileID, err := fileSet.LoadWith(path, opts.loadOptions())
		if err != nil {
			// пустой виртуальный файл, чтобы диагностике было куда указывать
			fileID = fileSet.AddVirtual(path, nil)
			loadErrors[path] = err
		}
		fileIDs[path] = fileID
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]TokenizeDirResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers(len(files)))

	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			started := time.Now()
			bag := diag.NewBag(opts.MaxDiagnostics)
			emit(opts.Progress, Event{File: path, Status: StatusWorking})

			fileID := fileIDs[path]
			if loadErr, failed := loadErrors[path]; failed {
				diag.ReportError(diag.BagReporter{Bag: bag}, diag.IOLoadFileError, source.Span{File: fileID},
					"failed to load file: "+loadErr.Error()).Emit()
				results[i] = TokenizeDirResult{Path: path, FileID: fileID, Bag: bag, Failed: true}
				emit(opts.Progress, Event{File: path, Status: StatusError, Err: loadErr, Elapsed: time.Since(started)})
				return nil
			}

			tokens, cached := tokenizeFile(gctx, fileSet.Get(fileID), bag, opts)
			results[i] = TokenizeDirResult{
				Path:   path,
				FileID: fileID,
				Tokens: tokens,
				Bag:    bag,
				Cached: cached,
			}

			status := StatusDone
			if cached {
				status = StatusCached
			}
			emit(opts.Progress, Event{File: path, Status: status, Elapsed: time.Since(started), Tokens: len(tokens)})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}
