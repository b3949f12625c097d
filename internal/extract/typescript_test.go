package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourtionguo/codegraf/internal/cst"
	"github.com/yourtionguo/codegraf/internal/model"
)

func parseTS(t *testing.T, source string) *model.ParsedFile {
	t.Helper()
	adapter := cst.NewAdapter()
	tree, err := adapter.Parse([]byte(source), cst.TypeScript)
	require.False(t, tree.Root.IsZero(), "parser must return a root node even on error: %v", err)
	return NewTypeScript().Extract(tree, "src/services/greeter.ts", []byte(source))
}

func TestTypeScript_Extract_TopLevelFunction(t *testing.T) {
	pf := parseTS(t, `function greet(name: string): string {
    return "hello " + name;
}
`)

	require.Len(t, pf.TopLevelFunctions, 1)
	fn := pf.TopLevelFunctions[0]
	assert.Equal(t, "greet", fn.Name)
	require.Len(t, fn.Parameters, 1)
	assert.Equal(t, "name", fn.Parameters[0].Name)
	assert.Equal(t, "string", fn.Parameters[0].Type)
}

func TestTypeScript_Extract_ClassImplementingInterface(t *testing.T) {
	pf := parseTS(t, `interface Greeter {
    greet(): string;
}

class EnglishGreeter implements Greeter {
    greet(): string {
        return "hello";
    }
}
`)

	require.Len(t, pf.Classes, 2)
	assert.Equal(t, "Greeter", pf.Classes[0].Name)
	assert.Equal(t, "EnglishGreeter", pf.Classes[1].Name)
	assert.Equal(t, []string{"Greeter"}, pf.Classes[1].Interfaces)
}

func TestTypeScript_Extract_NamedImport(t *testing.T) {
	pf := parseTS(t, `import { Logger } from "./logger";

function main() {}
`)

	require.Len(t, pf.Imports, 1)
	assert.Equal(t, "./logger", pf.Imports[0].Path)
}

func TestTypeScript_Extract_ExportedClassIsStillRecorded(t *testing.T) {
	pf := parseTS(t, `export class Greeter {
    greet(): string {
        return "hello";
    }
}
`)

	require.Len(t, pf.Classes, 1)
	assert.Equal(t, "Greeter", pf.Classes[0].Name)
}

func TestTypeScript_Extract_ArrowFunctionAssignedToConstBecomesTopLevelFunction(t *testing.T) {
	pf := parseTS(t, `const greet = (name: string) => {
    return "hello " + name;
};
`)

	require.Len(t, pf.TopLevelFunctions, 1)
	assert.Equal(t, "greet", pf.TopLevelFunctions[0].Name)
}

func TestTypeScript_Extract_MethodCallsInsideFunctionBodyAreCollected(t *testing.T) {
	pf := parseTS(t, `function main() {
    const logger = new Logger();
    logger.info("starting");
}
`)

	require.Len(t, pf.TopLevelFunctions, 1)
	calls := pf.TopLevelFunctions[0].Calls
	require.NotEmpty(t, calls)
	var names []string
	for _, c := range calls {
		names = append(names, c.Name)
	}
	assert.Contains(t, names, "info")
}

func TestTypeScript_Extract_MappedTypeSplitsKeyofFromConstraintAndFindsValueType(t *testing.T) {
	pf := parseTS(t, `type Partial<T> = { -readonly [K in keyof T]?: T[K] };
`)

	require.Len(t, pf.TypeAliases, 1)
	mt := pf.TypeAliases[0].MappedType
	require.NotNil(t, mt)
	assert.Equal(t, "K", mt.KeyName)
	assert.True(t, mt.HasKeyof)
	assert.Equal(t, "T", mt.Constraint)
	assert.Equal(t, "T[K]", mt.ValueType)
}
