package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourtionguo/codegraf/internal/model"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDiscoverViaWalk_SkipsVendoredDirsAndSelectsByExtension(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/Main.kt", "fun main() {}")
	writeFile(t, root, "src/Helper.java", "class Helper {}")
	writeFile(t, root, "web/index.ts", "export const x = 1")
	writeFile(t, root, "README.md", "not a source file")
	writeFile(t, root, "node_modules/pkg/index.js", "module.exports = {}")
	writeFile(t, root, "build/generated/Gen.kt", "fun gen() {}")

	files, err := Discover(root, DefaultDiscoveryConfig())
	require.NoError(t, err)

	var rels []string
	for _, f := range files {
		rels = append(rels, f.RelPath)
	}
	assert.ElementsMatch(t, []string{"src/Main.kt", "src/Helper.java", "web/index.ts"}, rels)
}

func TestDiscoverViaWalk_SkipsTestFilePatterns(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/Main.kt", "fun main() {}")
	writeFile(t, root, "src/Main_test.kt", "fun test() {}")
	writeFile(t, root, "src/util.test.ts", "export const x = 1")

	files, err := Discover(root, DefaultDiscoveryConfig())
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "src/Main.kt", files[0].RelPath)
}

func TestDiscover_FallsBackToWalkWhenNotAGitRepo(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/Main.kt", "fun main() {}")

	cfg := DefaultDiscoveryConfig()
	cfg.UseGit = true
	files, err := Discover(root, cfg)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, model.LanguageKotlin, files[0].Language)
}

func TestLanguageForExt(t *testing.T) {
	lang, ok := LanguageForExt(".kt")
	assert.True(t, ok)
	assert.Equal(t, model.LanguageKotlin, lang)

	_, ok = LanguageForExt(".md")
	assert.False(t, ok)
}
