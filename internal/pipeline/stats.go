package pipeline

import "github.com/yourtionguo/codegraf/internal/model"

// Stats is the statistics record emitted after a full run (spec §6),
// extended with a per-language breakdown (SPEC_FULL.md §4) since a
// multi-language corpus's single aggregate numbers hide which language is
// failing to parse.
type Stats struct {
	FilesFound      int
	FilesParsed     int
	ParseErrors     int
	SymbolsResolved int
	ResolvedCalls   int
	UnresolvedCalls int
	ResolutionRate  float64
	NodesCreated    int
	RelationshipsCreated int

	FilesByLanguage      map[string]int
	ParseErrorsByLanguage map[string]int

	// DomainWeights is the cross-domain dependency graph's edge weights,
	// keyed "FromDomain->ToDomain", snapshotted from a counterVec once
	// domain inference completes.
	DomainWeights map[string]int
}

func newStats() *Stats {
	return &Stats{
		FilesByLanguage:       make(map[string]int),
		ParseErrorsByLanguage: make(map[string]int),
	}
}

func (s *Stats) recordFileFound(lang model.Language) {
	s.FilesFound++
	s.FilesByLanguage[string(lang)]++
}

func (s *Stats) recordParseError(lang model.Language) {
	s.ParseErrors++
	s.ParseErrorsByLanguage[string(lang)]++
}

func (s *Stats) finalize() {
	total := s.ResolvedCalls + s.UnresolvedCalls
	if total > 0 {
		s.ResolutionRate = float64(s.ResolvedCalls) / float64(total)
	}
}
