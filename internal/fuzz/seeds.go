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

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	addLanguageSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.viv файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".viv" {
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

func addLanguageSeeds(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte("$ { print 1; }"))
	f.Add([]byte("$ { let x = 1; set x = x * 2; print x; }"))
	f.Add([]byte("$ { print 1 < 2 <= 3 != 4; }"))
	f.Add([]byte("$ { let c = 0; print false && 1 / c == 1 || true; }"))
	f.Add([]byte("$ { print !!true; print --1; }"))
	f.Add([]byte("$ { assert 1 == 2, \"x\"; } $ { print 2; }"))
	f.Add([]byte("# comment only\n"))
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
