// Command jsrund is the CLI entrypoint for the embedded scripting runtime.
//
// It wires internal/config's TOML loader into the root runtime package and
// offers two modes of operation:
//
//  1. REPL Mode (-repl): interactive shell, one Execute call per line.
//  2. Script Mode (a trailing file argument): read the file, execute it as
//     an Inline script, print its Output and ConsoleOutput.
//
// Usage:
//
//	jsrund [-config path.toml] [-repl] [script.js]
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/borolgs/js-runtime"
	"github.com/borolgs/js-runtime/internal/config"
	"github.com/borolgs/js-runtime/internal/repl"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML runtime config file")
	replMode := flag.Bool("repl", false, "start the interactive REPL instead of running a script")
	argsJSON := flag.String("args", "", "JSON value bound as the script's args global")
	flag.Parse()

	cfg := runtime.Config{}
	if *configPath != "" {
		loaded, warnings, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		for _, w := range warnings {
			logrus.Warn(w)
		}
		cfg = loaded
	}

	rt, err := runtime.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting runtime: %v\n", err)
		os.Exit(1)
	}
	defer rt.Close()

	if *replMode || flag.NArg() == 0 {
		r := repl.New(rt, os.Stdin, os.Stdout)
		if err := r.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "REPL Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	scriptPath := flag.Arg(0)
	code, err := os.ReadFile(scriptPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", scriptPath, err)
		os.Exit(1)
	}

	var args any
	if *argsJSON != "" {
		if err := json.Unmarshal([]byte(*argsJSON), &args); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing -args: %v\n", err)
			os.Exit(1)
		}
	}

	resp, err := rt.Execute(runtime.Inline{Args: args, Code: string(code)}).Get()
	if err != nil {
		logrus.WithError(err).Error("script execution failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if resp.ConsoleOutput != "" {
		fmt.Fprint(os.Stderr, resp.ConsoleOutput)
	}
	fmt.Println(resp.Output)
}
