// Command show_jsx_transpilation prints the plain-JS text esbuild produces
// for a JSX page source, the same transform internal/transpile applies to
// every ".jsx" module the Module Loader serves.
package main

import (
	"fmt"

	"github.com/borolgs/js-runtime/internal/transpile"
)

func main() {
	source := `export default (props) => (
  <div>
    <ul>
      {props.items.map(({ name }) => <li>{name}</li>)}
    </ul>
  </div>
);
`

	out, err := transpile.Transpile(source, transpile.KindJSX)
	if err != nil {
		fmt.Println("transpile error:", err)
		return
	}

	fmt.Println("╔════════════════════════════════════════════════════════════════════╗")
	fmt.Println("║                    ORIGINAL JSX PAGE SOURCE                        ║")
	fmt.Println("╚════════════════════════════════════════════════════════════════════╝")
	fmt.Println()
	fmt.Println(source)

	fmt.Println("╔════════════════════════════════════════════════════════════════════╗")
	fmt.Println("║      TRANSPILED TO jsx()/jsxs() CALLS (automatic JSX runtime)      ║")
	fmt.Println("╚════════════════════════════════════════════════════════════════════╝")
	fmt.Println()
	fmt.Println(out)

	fmt.Println("╔════════════════════════════════════════════════════════════════════╗")
	fmt.Println("║                        KEY CHANGES                                 ║")
	fmt.Println("╚════════════════════════════════════════════════════════════════════╝")
	fmt.Println()
	fmt.Println("✓ JSX elements        -> jsx(type, props) / jsxs(type, props) calls")
	fmt.Println("✓ Import added        -> automatic import from \"runtime-jsx/jsx-runtime\"")
	fmt.Println("✓ No type annotations -> nothing to strip, this source is plain JSX")
}
