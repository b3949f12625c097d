package domain

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yourtionguo/codegraf/internal/model"
)

func TestMatch(t *testing.T) {
	cases := []struct {
		pattern, candidate string
		sep                byte
		want               bool
	}{
		{"com.example.billing.*", "com.example.billing.Invoice", '.', true},
		{"com.example.billing.*", "com.example.billing.sub.Invoice", '.', false},
		{"com.example.**", "com.example.billing.sub.Invoice", '.', true},
		{"src/billing/*", "src/billing/invoice.ts", '/', true},
		{"src/billing/**", "src/billing/sub/invoice.ts", '/', true},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Match(c.pattern, c.candidate, c.sep), "%s vs %s", c.pattern, c.candidate)
	}
}

func TestLoadConfig_MissingPathIsEmpty(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.NoError(t, err)
	assert.Empty(t, cfg.Domains)

	cfg, err = LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.json"))
	assert.NoError(t, err)
	assert.Empty(t, cfg.Domains)
}

func TestLoadConfig_Malformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "domains.json")
	assert.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_Valid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "domains.json")
	content := `{"domains":[{"name":"Billing","patterns":["com.example.billing.**"]}]}`
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	assert.NoError(t, err)
	assert.Len(t, cfg.Domains, 1)
	assert.Equal(t, "Billing", cfg.Domains[0].Name)
}

func TestInferFromPackage(t *testing.T) {
	assert.Equal(t, "Billing", InferFromPackage("com.example.billing.service"))
	assert.Equal(t, "Service", InferFromPackage("com.example.domain.service"))
	assert.Equal(t, "", InferFromPackage("com.example"))
}

func TestInferFromModulePath(t *testing.T) {
	assert.Equal(t, "Billing", InferFromModulePath("src/billing/invoice.ts"))
	assert.Equal(t, "Invoice", InferFromModulePath("src/application/invoice.ts"))
}

func TestResolve_ConfiguredWinsOverInference(t *testing.T) {
	cfg := &Config{Domains: []ConfiguredDomain{
		{Name: "Payments", Patterns: []string{"com.example.billing.**"}},
	}}
	pf := &model.ParsedFile{PackageName: "com.example.billing.invoice", Language: model.LanguageKotlin}
	assert.Equal(t, "Payments", Resolve(cfg, pf))

	unconfigured := &model.ParsedFile{PackageName: "com.example.shipping.tracker", Language: model.LanguageKotlin}
	assert.Equal(t, "Shipping", Resolve(cfg, unconfigured))
}

func TestResolve_TypeScriptUsesFilePath(t *testing.T) {
	cfg := &Config{}
	pf := &model.ParsedFile{FilePath: "src/billing/invoice.ts", Language: model.LanguageTypeScript}
	assert.Equal(t, "Billing", Resolve(cfg, pf))
}

func TestMerge(t *testing.T) {
	cfg := &Config{Domains: []ConfiguredDomain{{Name: "Billing"}}}
	inferred := map[string]bool{"billing": true, "Shipping": true, "": true}
	merged := Merge(cfg, inferred)

	assert.Len(t, merged, 2)
	assert.Equal(t, "Billing", merged[0].Name)
	assert.Equal(t, "Shipping", merged[1].Name)
}

func TestBuildGraph(t *testing.T) {
	calls := []model.ResolvedCall{
		{FromFqn: "com.example.billing.Invoice.pay", ToFqn: "com.example.shipping.Tracker.notify"},
		{FromFqn: "com.example.billing.Invoice.pay", ToFqn: "com.example.shipping.Tracker.notify"},
		{FromFqn: "com.example.billing.Invoice.pay", ToFqn: "com.example.billing.Ledger.record"},
		{FromFqn: "com.example.shipping.Tracker.notify", ToFqn: "com.example.billing.Invoice.close"},
	}
	fqnDomain := map[string]string{
		"com.example.billing":   "Billing",
		"com.example.shipping":  "Shipping",
	}

	edges := BuildGraph(calls, fqnDomain)

	assert.Len(t, edges, 2)
	assert.Equal(t, model.DomainDependency{From: "Billing", To: "Shipping", Weight: 2}, edges[0])
	assert.Equal(t, model.DomainDependency{From: "Shipping", To: "Billing", Weight: 1}, edges[1])
}
