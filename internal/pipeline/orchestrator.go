// Package pipeline is the batch orchestrator (spec §4.8): discover files,
// extract each independently (optionally in parallel), build the
// corpus-wide symbol table and resolve calls serially, infer domains, and
// write the result through a sink. One batch pass, single-directional,
// no component calls back into an earlier stage.
package pipeline

import (
	"context"
	"os"
	"sync"

	"github.com/yourtionguo/codegraf/internal/cst"
	"github.com/yourtionguo/codegraf/internal/domain"
	"github.com/yourtionguo/codegraf/internal/extract"
	"github.com/yourtionguo/codegraf/internal/ids"
	"github.com/yourtionguo/codegraf/internal/logging"
	"github.com/yourtionguo/codegraf/internal/model"
	"github.com/yourtionguo/codegraf/internal/perrors"
	"github.com/yourtionguo/codegraf/internal/resolve"
	"github.com/yourtionguo/codegraf/internal/sink"
	"github.com/yourtionguo/codegraf/internal/symtab"
)

// Config configures one orchestrator run.
type Config struct {
	RootPath         string
	Discovery        DiscoveryConfig
	DomainConfigPath string
	WorkerCount      int // extract-phase fan-out; 0 means sequential
	SinkBatchSize    int
}

// DefaultConfig mirrors the teacher's indexer defaults for worker count
// and batch size.
func DefaultConfig(rootPath string) Config {
	return Config{
		RootPath:      rootPath,
		Discovery:     DefaultDiscoveryConfig(),
		WorkerCount:   4,
		SinkBatchSize: sink.DefaultBatchSize,
	}
}

// Orchestrator runs one batch pass over a project root and writes the
// result through a GraphSink.
type Orchestrator struct {
	cfg    Config
	sink   sink.GraphSink
	logger *logging.Logger
}

func New(cfg Config, s sink.GraphSink, logger *logging.Logger) *Orchestrator {
	if logger == nil {
		logger = logging.NewSilent()
	}
	return &Orchestrator{cfg: cfg, sink: s, logger: logger}
}

// Run executes one full batch pass: discovery, parallel extraction,
// serial symbol-table build and resolution, domain inference, and a
// batched write through the sink. Cancellation is observed between files
// and between phases; in-flight file extraction always runs to
// completion (spec §5).
func (o *Orchestrator) Run(ctx context.Context) (*Stats, error) {
	stats := newStats()

	domainCfg, err := domain.LoadConfig(o.cfg.DomainConfigPath)
	if err != nil {
		o.logger.WarnWithFields("malformed domain config, falling back to pure inference",
			logging.Field{Key: "error", Value: err.Error()})
		domainCfg = &domain.Config{}
	}

	discovered, err := Discover(o.cfg.RootPath, o.cfg.Discovery)
	if err != nil {
		return stats, perrors.ParseFailure(o.cfg.RootPath, "discovery failed", err)
	}
	for _, d := range discovered {
		stats.recordFileFound(d.Language)
	}
	o.logger.InfoWithFields("discovery complete", logging.Field{Key: "files_found", Value: len(discovered)})

	files, errCollector := o.extractAll(ctx, discovered, stats)
	o.logger.InfoWithFields("extraction complete",
		logging.Field{Key: "files_parsed", Value: stats.FilesParsed},
		logging.Field{Key: "parse_errors", Value: stats.ParseErrors},
	)

	if err := ctx.Err(); err != nil {
		return stats, err
	}

	o.logger.Info("building symbol table")
	table := symtab.Build(files)
	stats.SymbolsResolved = len(table.All())

	fileDomains := make(map[string]string, len(files))
	fqnDomain := make(map[string]string, len(files))
	for _, pf := range files {
		d := domain.Resolve(domainCfg, pf)
		fileDomains[pf.FilePath] = d
		fqnDomain[symtab.NamespacePrefix(pf)] = d
	}

	var allCalls []model.ResolvedCall
	for _, pf := range files {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		rctx := resolve.NewContext(pf, table)
		calls := resolve.ResolveFile(rctx, symtab.NamespacePrefix(pf))
		allCalls = append(allCalls, calls...)

		totalCalls := countCalls(pf)
		stats.ResolvedCalls += len(calls)
		stats.UnresolvedCalls += totalCalls - len(calls)
	}
	stats.finalize()

	graphEdges := domain.BuildGraph(allCalls, fqnDomain)
	o.logger.InfoWithFields("domain inference complete", logging.Field{Key: "domain_edges", Value: len(graphEdges)})

	domainWeights := newCounterVec()
	for _, e := range graphEdges {
		domainWeights.Add(e.From+"->"+e.To, e.Weight)
	}
	stats.DomainWeights = domainWeights.Snapshot()

	nodes := buildNodes(table, fileDomains, files)
	edges := buildEdges(allCalls)

	if err := o.writeNodes(ctx, nodes, stats); err != nil {
		return stats, err
	}
	if err := o.writeEdges(ctx, edges, stats); err != nil {
		return stats, err
	}

	if errCollector.HasErrors() {
		o.logger.WarnWithFields("run completed with errors",
			logging.Field{Key: "error_count", Value: errCollector.Count()})
	}
	return stats, nil
}

// extractAll parses and extracts every discovered file, independently and
// optionally in parallel (spec §5's "data-parallel fan-out over
// independent files during the extract phase only"). Each worker
// constructs its own cst.Adapter, since a *sitter.Parser is not safe to
// share across goroutines.
func (o *Orchestrator) extractAll(ctx context.Context, discovered []DiscoveredFile, stats *Stats) ([]*model.ParsedFile, *perrors.Collector) {
	collector := perrors.NewCollector()
	results := make([]*model.ParsedFile, len(discovered))

	workers := o.cfg.WorkerCount
	if workers <= 0 {
		workers = 1
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)

	for i, d := range discovered {
		if ctx.Err() != nil {
			// Stop dispatching new work; files already in flight still
			// run to completion via wg.Wait() below.
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, d DiscoveredFile) {
			defer wg.Done()
			defer func() { <-sem }()

			pf, err := o.extractOne(d)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				stats.recordParseError(d.Language)
				collector.Add(err)
				return
			}
			stats.FilesParsed++
			results[i] = pf
		}(i, d)
	}
	wg.Wait()

	out := make([]*model.ParsedFile, 0, len(results))
	for _, pf := range results {
		if pf != nil {
			out = append(out, pf)
		}
	}
	return out, collector
}

func (o *Orchestrator) extractOne(d DiscoveredFile) (*model.ParsedFile, error) {
	content, err := os.ReadFile(d.Path)
	if err != nil {
		return nil, perrors.ParseFailure(d.RelPath, "reading file", err)
	}

	adapter := cst.NewAdapter()
	cstLang, err := cstLanguageFor(d.Language)
	if err != nil {
		return nil, perrors.ParseFailure(d.RelPath, "unsupported language", err)
	}

	tree, parseErr := adapter.Parse(content, cstLang)
	if parseErr != nil && tree.Root.IsZero() {
		return nil, perrors.ParseFailure(d.RelPath, "parse failed", parseErr)
	}

	extractor := extractorFor(d.Language)
	pf := extractor.Extract(tree, d.RelPath, content)
	pf.Language = d.Language
	pf.Checksum = ids.Checksum(content)
	return pf, nil
}

func cstLanguageFor(lang model.Language) (cst.Language, error) {
	switch lang {
	case model.LanguageKotlin:
		return cst.Kotlin, nil
	case model.LanguageJava:
		return cst.Java, nil
	case model.LanguageTypeScript:
		return cst.TypeScript, nil
	case model.LanguageJavaScript:
		return cst.JavaScript, nil
	default:
		return "", perrors.ExtractorInvariantViolation("", "", "unsupported language "+string(lang))
	}
}

func extractorFor(lang model.Language) extract.Extractor {
	switch lang {
	case model.LanguageKotlin:
		return extract.NewKotlin()
	case model.LanguageJava:
		return extract.NewJava()
	default:
		return extract.NewTypeScript()
	}
}

func countCalls(pf *model.ParsedFile) int {
	total := 0
	for _, fn := range pf.TopLevelFunctions {
		total += len(fn.Calls)
	}
	var walkClass func(cls *model.ParsedClass)
	walkClass = func(cls *model.ParsedClass) {
		for _, fn := range cls.Functions {
			total += len(fn.Calls)
		}
		for _, nested := range cls.NestedClasses {
			walkClass(nested)
		}
		if cls.CompanionObject != nil {
			walkClass(cls.CompanionObject)
		}
	}
	for _, cls := range pf.Classes {
		walkClass(cls)
	}
	return total
}

func buildNodes(table *symtab.Table, fileDomains map[string]string, files []*model.ParsedFile) []model.GraphNode {
	nodes := make([]model.GraphNode, 0, len(table.All()))
	for _, sym := range table.All() {
		nodes = append(nodes, model.GraphNode{
			Fqn:      sym.Fqn,
			Name:     sym.Name,
			Kind:     sym.Kind,
			FilePath: sym.FilePath,
			Location: sym.Location,
			Domain:   fileDomains[sym.FilePath],
		})
	}
	return nodes
}

func buildEdges(calls []model.ResolvedCall) []model.GraphEdge {
	edges := make([]model.GraphEdge, 0, len(calls))
	for _, c := range calls {
		edges = append(edges, model.GraphEdge{
			SourceFqn: c.FromFqn,
			TargetFqn: c.ToFqn,
			Kind:      model.EdgeKindCalls,
			Location:  c.Location,
		})
	}
	return edges
}

func (o *Orchestrator) writeNodes(ctx context.Context, nodes []model.GraphNode, stats *Stats) error {
	for _, batch := range sink.BatchNodes(nodes, o.cfg.SinkBatchSize) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := o.writeNodeBatchWithRetry(ctx, batch); err != nil {
			return err
		}
		stats.NodesCreated += len(batch)
	}
	return nil
}

func (o *Orchestrator) writeNodeBatchWithRetry(ctx context.Context, batch []model.GraphNode) error {
	err := o.sink.UpsertNodes(ctx, batch)
	if err == nil {
		return nil
	}
	o.logger.WarnWithFields("node batch write failed, retrying once",
		logging.Field{Key: "error", Value: err.Error()})
	if err := o.sink.UpsertNodes(ctx, batch); err != nil {
		return perrors.SinkFailure("node batch failed after retry", err)
	}
	return nil
}

func (o *Orchestrator) writeEdges(ctx context.Context, edges []model.GraphEdge, stats *Stats) error {
	for _, batch := range sink.BatchEdges(edges, o.cfg.SinkBatchSize) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := o.writeEdgeBatchWithRetry(ctx, batch); err != nil {
			return err
		}
		stats.RelationshipsCreated += len(batch)
	}
	return nil
}

func (o *Orchestrator) writeEdgeBatchWithRetry(ctx context.Context, batch []model.GraphEdge) error {
	err := o.sink.UpsertEdges(ctx, batch)
	if err == nil {
		return nil
	}
	o.logger.WarnWithFields("edge batch write failed, retrying once",
		logging.Field{Key: "error", Value: err.Error()})
	if err := o.sink.UpsertEdges(ctx, batch); err != nil {
		return perrors.SinkFailure("edge batch failed after retry", err)
	}
	return nil
}
