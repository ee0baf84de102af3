package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB — ограничение для тестового корпуса
)

// languageSeeds покрывают все ветки грамматики и типовые ошибки восстановления.
var languageSeeds = []string{
	"room hall { name: \"Hall\"; when entered { say \"hi\"; } }",
	"room r { item lamp { lit: false; } }",
	"function f(a, b) { return a + b * 2; }",
	"var x = 1; x = x - 1; say x;",
	"if (a) say 1; else { say 2; }",
	"while (n > 0) n = n - 1;",
	"goto(\"kitchen\");",
	"say obj.field(1)(2);",
	"a = b = c or d and not e == f;",
	"var ;  var x = 1;",
	"1 = 2;",
	"say \"abc",
	"room { when { } }",
	"function (",
	"@#$ ~ ` é",
	"// only a comment",
}

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	addLanguageSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.story файлы
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Ext(path) != ".story" {
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
	if err != nil {
		return
	}
	// добавляем хотя бы один минимальный пример на случай пустого testdata
	f.Add([]byte{})
}

func addLanguageSeeds(f *testing.F) {
	for _, s := range languageSeeds {
		f.Add(clampSeed([]byte(s)))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
