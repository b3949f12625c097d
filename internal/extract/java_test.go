package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourtionguo/codegraf/internal/cst"
	"github.com/yourtionguo/codegraf/internal/model"
)

func parseJava(t *testing.T, source string) *model.ParsedFile {
	t.Helper()
	adapter := cst.NewAdapter()
	tree, err := adapter.Parse([]byte(source), cst.Java)
	require.False(t, tree.Root.IsZero(), "parser must return a root node even on error: %v", err)
	return NewJava().Extract(tree, "Greeter.java", []byte(source))
}

func TestJava_Extract_PackageAndClass(t *testing.T) {
	pf := parseJava(t, `package com.example;

public class Greeter {
    public String greet() {
        return "hello";
    }
}
`)

	assert.Equal(t, "com.example", pf.PackageName)
	require.Len(t, pf.Classes, 1)
	cls := pf.Classes[0]
	assert.Equal(t, "Greeter", cls.Name)
	assert.Equal(t, model.VisibilityPublic, cls.Visibility)
	require.Len(t, cls.Functions, 1)
	assert.Equal(t, "greet", cls.Functions[0].Name)
}

func TestJava_Extract_InterfaceAndImplementingClass(t *testing.T) {
	pf := parseJava(t, `package com.example;

public interface Greeter {
    String greet();
}

public class EnglishGreeter implements Greeter {
    public String greet() {
        return "hello";
    }
}
`)

	require.Len(t, pf.Classes, 2)
	assert.Equal(t, model.ClassKindInterface, pf.Classes[0].Kind)
	assert.Equal(t, []string{"Greeter"}, pf.Classes[1].Interfaces)
}

func TestJava_Extract_StaticImportIsPrefixEncoded(t *testing.T) {
	pf := parseJava(t, `package com.example;

import static com.example.Constants.MAX;

public class Demo {
}
`)

	require.Len(t, pf.Imports, 1)
	assert.Equal(t, "static:com.example.Constants.MAX", pf.Imports[0].Path)
}

func TestJava_Extract_EnumWithConstants(t *testing.T) {
	pf := parseJava(t, `package com.example;

public enum Color {
    RED, GREEN, BLUE
}
`)

	require.Len(t, pf.Classes, 1)
	assert.Equal(t, model.ClassKindEnum, pf.Classes[0].Kind)
	require.Len(t, pf.Classes[0].Properties, 3)
	assert.Equal(t, "RED", pf.Classes[0].Properties[0].Name)
}

func TestJava_Extract_RecordComponentsBecomeProperties(t *testing.T) {
	pf := parseJava(t, `package com.example;

public record Point(int x, int y) {
}
`)

	require.Len(t, pf.Classes, 1)
	cls := pf.Classes[0]
	assert.True(t, cls.IsData)
	require.Len(t, cls.Properties, 2)
	assert.Equal(t, "x", cls.Properties[0].Name)
	assert.Equal(t, "y", cls.Properties[1].Name)
}

func TestJava_Extract_MethodInvocationAndObjectCreationAreCollectedAsCalls(t *testing.T) {
	pf := parseJava(t, `package com.example;

public class Demo {
    public void run() {
        Logger logger = new Logger();
        logger.info("starting");
    }
}
`)

	require.Len(t, pf.Classes, 1)
	require.Len(t, pf.Classes[0].Functions, 1)
	calls := pf.Classes[0].Functions[0].Calls
	require.Len(t, calls, 2)
	assert.Equal(t, "Logger", calls[0].Name)
	assert.Equal(t, "info", calls[1].Name)
	assert.Equal(t, "logger", calls[1].Receiver)
}
