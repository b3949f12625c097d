package extract

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/yourtionguo/codegraf/internal/model"
)

// extractionSummary is a stable, extractor-agnostic projection of a
// model.ParsedFile used only to pin down extraction shape across changes
// to the underlying tree-sitter grammars or field plumbing.
type extractionSummary struct {
	Package   string   `json:"package"`
	Classes   []string `json:"classes"`
	Functions []string `json:"functions"`
	Imports   []string `json:"imports"`
}

func summarize(pf *model.ParsedFile) extractionSummary {
	s := extractionSummary{
		Package:   pf.PackageName,
		Classes:   []string{},
		Functions: []string{},
		Imports:   []string{},
	}
	for _, c := range pf.Classes {
		s.Classes = append(s.Classes, c.Name)
	}
	for _, f := range pf.TopLevelFunctions {
		s.Functions = append(s.Functions, f.Name)
	}
	for _, im := range pf.Imports {
		s.Imports = append(s.Imports, im.Path)
	}
	return s
}

func assertGolden(t *testing.T, name string, pf *model.ParsedFile) {
	t.Helper()
	g := goldie.New(t)
	actual, err := json.MarshalIndent(summarize(pf), "", "  ")
	require.NoError(t, err)
	g.Assert(t, name, actual)
}

func TestKotlin_Extract_GoldenSummary(t *testing.T) {
	pf := parseKotlin(t, `package com.example

fun greet(name: String): String {
    return "hello"
}
`)
	assertGolden(t, "kotlin_extract_summary", pf)
}

func TestJava_Extract_GoldenSummary(t *testing.T) {
	pf := parseJava(t, `package com.example;

public class Demo {
    public void run() {
        Logger logger = new Logger();
        logger.info("starting");
    }
}
`)
	assertGolden(t, "java_extract_summary", pf)
}

func TestTypeScript_Extract_GoldenSummary(t *testing.T) {
	pf := parseTS(t, `import { Logger } from "./logger";

function main() {}
`)
	assertGolden(t, "typescript_extract_summary", pf)
}
