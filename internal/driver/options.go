package driver

import (
	"runtime"

	"darwin/internal/source"
)

// DefaultExtensions are the file suffixes TokenizeDir picks up when
// Options.Extensions is empty.
var DefaultExtensions = []string{".dw"}

// Options configures Tokenize and TokenizeDir.
type Options struct {
	MaxDiagnostics int
	SkipTrivia     bool
	NormalizeNFC   bool
	Jobs           int      // <= 0 means GOMAXPROCS
	Extensions     []string // TokenizeDir only
	Cache          *DiskCache
	Progress       ProgressSink
}

func (o Options) loadOptions() source.LoadOptions {
	return source.LoadOptions{NormalizeNFC: o.NormalizeNFC}
}

func (o Options) extensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions
	}
	return o.Extensions
}

// workers ограничивает параллелизм числом файлов
func (o Options) workers(files int) int {
	jobs := o.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return max(1, min(jobs, files))
}
