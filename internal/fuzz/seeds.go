package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
)

// builtinSeeds cover every token family and the known edge cases of numbers.
var builtinSeeds = []string{
	"",
	"a",
	"x = 1\n",
	"a\r\nb\rc\n",
	"# comment\r\nnext",
	"0x1F 0X 0x 0xZ",
	"1.5e10 1e 1.e5 1. .5 1e+ 2E-3",
	"007 12abc 3.14.15",
	"(a, b): [c; d] { e }",
	"<<= >>> != ~! @$%^&*-+=\\|<>.?/",
	"café naïve Ωmega _x1 x٣",
	"\u00a0\u2003\u3000 \t\v\f",
	"`'\"",
	"\xff\xfe\xc0",
	"a\x00b",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range builtinSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.dw файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".dw" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
