package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxFuzzInput = 1 << 16 // 64 KiB
	maxSeedBytes = 64 << 10
)

var outlineSeeds = []string{
	"",
	"x = 1\n",
	"import os\n\ndef a():\n    pass\ndef b():\n    pass\nx = 1\n",
	"class A:\n    def f(self):\n        pass\n    # about g\n    def g(self):\n        pass\n",
	"@dec\n# between\n@other\ndef f():\n    pass\n",
	"# lead\n\n# block\nclass A:\n    x = 1\n",
	"async def f():\n    pass\nclass B:\n    @property\n    async def g(self):\n        pass\n",
	"if x:\n    def f():\n        pass\nelse:\n    y = 2\n",
	"def outer():\n    def inner():\n        pass\n    return inner\n",
}

// addOutlineSeeds adds the built-in outlines plus any *.py file under
// testdata.
func addOutlineSeeds(f *testing.F) {
	for _, s := range outlineSeeds {
		f.Add([]byte(s))
	}
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".py" {
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

func clamp(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
