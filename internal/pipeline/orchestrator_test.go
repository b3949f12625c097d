package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourtionguo/codegraf/internal/logging"
	"github.com/yourtionguo/codegraf/internal/sink/memory"
)

func TestOrchestrator_Run_EndToEnd(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "service/Greeter.kt", `package com.example.service

class Greeter {
    fun greet(name: String): String {
        val formatter = Formatter()
        return formatter.format(name)
    }
}
`)
	writeFile(t, root, "service/Formatter.kt", `package com.example.service

class Formatter {
    fun format(name: String): String {
        return "Hello, " + name
    }
}
`)

	s := memory.New()
	defer s.Close()

	cfg := DefaultConfig(root)
	cfg.WorkerCount = 2
	orch := New(cfg, s, logging.NewSilent())

	stats, err := orch.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, stats.FilesFound)
	assert.Equal(t, 2, stats.FilesParsed)
	assert.Equal(t, 0, stats.ParseErrors)
	assert.Greater(t, stats.SymbolsResolved, 0)
	assert.Greater(t, stats.NodesCreated, 0)
	assert.Equal(t, stats.NodesCreated, s.NodeCount())
	assert.Equal(t, stats.RelationshipsCreated, s.EdgeCount())
	assert.NotNil(t, stats.DomainWeights)
}

func TestOrchestrator_Run_HonorsCancellation(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "service/Greeter.kt", `package com.example.service

class Greeter {
    fun greet(): String = "hi"
}
`)

	s := memory.New()
	defer s.Close()

	cfg := DefaultConfig(root)
	orch := New(cfg, s, logging.NewSilent())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := orch.Run(ctx)
	assert.Error(t, err)
}

func TestOrchestrator_Run_ContinuesPastUnknownExtensionFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "README.md", "not source")
	writeFile(t, root, "service/Greeter.kt", `package com.example.service

class Greeter {
    fun greet(): String = "hi"
}
`)

	s := memory.New()
	defer s.Close()

	cfg := DefaultConfig(root)
	orch := New(cfg, s, logging.NewSilent())

	stats, err := orch.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.FilesFound)
	assert.Equal(t, 1, stats.FilesParsed)
}

func TestOrchestrator_Run_PopulatesDomainWeightsForCrossDomainCalls(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "billing/Invoice.kt", `package com.example.billing

class Invoice {
    fun charge(): String {
        val shipper = Shipper()
        return shipper.dispatch()
    }
}
`)
	writeFile(t, root, "shipping/Shipper.kt", `package com.example.shipping

class Shipper {
    fun dispatch(): String {
        return "shipped"
    }
}
`)

	s := memory.New()
	defer s.Close()

	cfg := DefaultConfig(root)
	orch := New(cfg, s, logging.NewSilent())

	stats, err := orch.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, stats.DomainWeights["Billing->Shipping"])
}
