package pipeline

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/yourtionguo/codegraf/internal/model"
)

// DiscoveryConfig configures which files a discovery pass considers,
// extending spec §4.8.1's skip-list into something callers can override
// rather than hard-coding it (SPEC_FULL.md §4).
type DiscoveryConfig struct {
	SkipDirs     []string
	SkipPatterns []string // glob, matched against the file's path relative to root
	UseGit       bool     // enumerate only git-tracked files when root is a git checkout
}

// DefaultDiscoveryConfig mirrors the teacher's default skip-list
// (node_modules, .git, vendor, target, dist, build, __pycache__),
// extended with Kotlin/Java and TypeScript build-output directories.
func DefaultDiscoveryConfig() DiscoveryConfig {
	return DiscoveryConfig{
		SkipDirs: []string{
			"node_modules", ".git", "vendor", "target", "dist", "build",
			"__pycache__", ".gradle", "out", ".next", "coverage",
		},
		SkipPatterns: []string{"**/*_test.*", "**/*.test.*", "**/*.spec.*"},
	}
}

var extensionLanguage = map[string]model.Language{
	".kt":  model.LanguageKotlin,
	".kts": model.LanguageKotlin,
	".java": model.LanguageJava,
	".ts":  model.LanguageTypeScript,
	".tsx": model.LanguageTypeScript,
	".js":  model.LanguageJavaScript,
	".jsx": model.LanguageJavaScript,
}

// LanguageForExt reports the language extension selects, per spec §6's
// "extensions select the extractor" rule.
func LanguageForExt(ext string) (model.Language, bool) {
	lang, ok := extensionLanguage[ext]
	return lang, ok
}

// DiscoveredFile is one file discovery selected for parsing.
type DiscoveredFile struct {
	Path     string // absolute path on disk
	RelPath  string // path relative to root, slash-separated
	Language model.Language
}

// Discover walks root (or enumerates git-tracked files if cfg.UseGit and
// root is a git checkout), selecting files by supported extension and
// excluding vendored directories / skip patterns.
func Discover(root string, cfg DiscoveryConfig) ([]DiscoveredFile, error) {
	if cfg.UseGit {
		if files, err := discoverViaGit(root, cfg); err == nil {
			return files, nil
		}
		// Fall through to plain filesystem walk for non-git roots or any
		// git-metadata error — discovery must still succeed on an
		// ordinary directory.
	}
	return discoverViaWalk(root, cfg)
}

func discoverViaWalk(root string, cfg DiscoveryConfig) ([]DiscoveredFile, error) {
	var out []DiscoveredFile
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		if info.IsDir() {
			if rel != "." && isSkippedDir(info.Name(), cfg.SkipDirs) {
				return filepath.SkipDir
			}
			return nil
		}

		if df, ok := selectFile(path, rel, cfg); ok {
			out = append(out, df)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// discoverViaGit enumerates every file tracked in HEAD's tree, honoring
// .gitignore through the repository's actual metadata rather than a
// hand-rolled ignore matcher (spec §4.8.1, extended per SPEC_FULL.md §4).
func discoverViaGit(root string, cfg DiscoveryConfig) ([]DiscoveredFile, error) {
	repo, err := git.PlainOpen(root)
	if err != nil {
		return nil, err
	}
	head, err := repo.Head()
	if err != nil {
		return nil, err
	}
	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return nil, err
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, err
	}

	var out []DiscoveredFile
	walkErr := tree.Files().ForEach(func(f *object.File) error {
		rel := filepath.ToSlash(f.Name)
		for _, dir := range strings.Split(rel, "/") {
			if isSkippedDir(dir, cfg.SkipDirs) {
				return nil
			}
		}
		abs := filepath.Join(root, rel)
		if df, ok := selectFile(abs, rel, cfg); ok {
			out = append(out, df)
		}
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return out, nil
}

func isSkippedDir(name string, skipDirs []string) bool {
	for _, d := range skipDirs {
		if name == d {
			return true
		}
	}
	return false
}

func selectFile(absPath, relPath string, cfg DiscoveryConfig) (DiscoveredFile, bool) {
	ext := strings.ToLower(filepath.Ext(relPath))
	lang, ok := extensionLanguage[ext]
	if !ok {
		return DiscoveredFile{}, false
	}
	for _, pattern := range cfg.SkipPatterns {
		if matched, _ := doublestar.Match(pattern, relPath); matched {
			return DiscoveredFile{}, false
		}
	}
	return DiscoveredFile{Path: absPath, RelPath: relPath, Language: lang}, true
}
