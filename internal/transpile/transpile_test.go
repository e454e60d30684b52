package transpile

import (
	"strings"
	"testing"

	"github.com/borolgs/js-runtime/internal/jsxruntime"
)

// TestTranspilePlainJSIsIdentity verifies §8 property 5: transpiling
// already-plain JS through the TypeScript loader changes nothing but
// trailing whitespace (esbuild appends a trailing newline).
func TestTranspilePlainJSIsIdentity(t *testing.T) {
	src := "function add(a, b) {\n  return a + b;\n}\n"

	got, err := Transpile(src, KindTypeScript)
	if err != nil {
		t.Fatalf("Transpile() error = %v", err)
	}
	if strings.TrimRight(got, "\n") != strings.TrimRight(src, "\n") {
		t.Errorf("Transpile(plain JS) = %q, want identity modulo trailing whitespace: %q", got, src)
	}
}

func TestTranspileStripsTypeAnnotations(t *testing.T) {
	src := `declare var args: {a: number; b: number};
function sum(a: number, b: number): number {
  const r: number = a + b;
  return r;
}
sum(args.a, args.b);
`
	got, err := Transpile(src, KindTypeScript)
	if err != nil {
		t.Fatalf("Transpile() error = %v", err)
	}
	if strings.Contains(got, ": number") {
		t.Errorf("Transpile() left a type annotation in: %q", got)
	}
	if strings.Contains(got, "declare var") {
		t.Errorf("Transpile() left a declare statement in: %q", got)
	}
}

func TestTranspileRewritesJSXToFactoryCalls(t *testing.T) {
	src := `export default (props) => <div><span>{props.name}</span></div>;`

	got, err := Transpile(src, KindJSX)
	if err != nil {
		t.Fatalf("Transpile() error = %v", err)
	}
	if !strings.Contains(got, "jsx(") {
		t.Errorf("Transpile(JSX) did not rewrite elements into jsx() calls: %q", got)
	}
	// esbuild appends "/jsx-runtime" to JSXImportSource itself (the same way
	// it turns "preact" into "preact/jsx-runtime"), so the emitted import
	// must match jsxruntime.Specifier exactly, not just jsxruntime.ImportSource.
	if !strings.Contains(got, jsxruntime.Specifier) {
		t.Errorf("Transpile(JSX) did not import from %q (the path the Module Loader special-cases): %q", jsxruntime.Specifier, got)
	}
	if strings.Contains(got, `"`+jsxruntime.ImportSource+`"`) {
		t.Errorf("Transpile(JSX) imported from bare %q instead of esbuild's actual %q: %q", jsxruntime.ImportSource, jsxruntime.Specifier, got)
	}
	if strings.Contains(got, "<div>") {
		t.Errorf("Transpile(JSX) left raw JSX syntax in the output: %q", got)
	}
}

func TestTranspileTSXStripsTypesAndRewritesJSX(t *testing.T) {
	src := `const Greeting = (props: {name: string}) => <p>Hello, {props.name}</p>;`

	got, err := Transpile(src, KindTSX)
	if err != nil {
		t.Fatalf("Transpile() error = %v", err)
	}
	if strings.Contains(got, ": string") {
		t.Errorf("Transpile(TSX) left a type annotation in: %q", got)
	}
	if strings.Contains(got, "<p>") {
		t.Errorf("Transpile(TSX) left raw JSX syntax in the output: %q", got)
	}
}

func TestTranspileSyntaxErrorSurfacesAsTranspileError(t *testing.T) {
	_, err := Transpile("function( { this is not valid", KindTypeScript)
	if err == nil {
		t.Fatal("Transpile() error = nil, want an error for invalid syntax")
	}
}

func TestKindFromExtension(t *testing.T) {
	tests := []struct {
		name            string
		wantKind        Kind
		wantTranspile   bool
	}{
		{"component.jsx", KindJSX, true},
		{"component.tsx", KindTSX, true},
		{"util.ts", KindTypeScript, true},
		{"plain.js", 0, false},
		{"styles.css", 0, false},
		{"no-extension", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, needs := KindFromExtension(tt.name)
			if needs != tt.wantTranspile {
				t.Errorf("KindFromExtension(%q) needsTranspile = %v, want %v", tt.name, needs, tt.wantTranspile)
			}
			if needs && kind != tt.wantKind {
				t.Errorf("KindFromExtension(%q) kind = %v, want %v", tt.name, kind, tt.wantKind)
			}
		})
	}
}
