// Package main is the entrypoint for the functioneer command, which runs the
// built-in sample functions from the command line.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/fatih/color"

	"github.com/morezero/functioneer/internal/config"
	"github.com/morezero/functioneer/pkg/codec"
	"github.com/morezero/functioneer/pkg/dispatcher"
)

const usage = `Usage: functioneer [command]
       functioneer run <function> [args...]   Call a function with positional arguments.
       functioneer call '<json object>'        Call a function with {"functionName": ..., "<field>": ...}.
       functioneer help [function]            Show all functions, or the fields of one.

Commands:
  run     Validate the arguments against the function's fields and call it.
  call    Map the keys of a JSON object onto the function's fields by name.
  help    Print the function registry.

Environment: FUNCTIONEER_RETURN_STRUCTURED_JSON (default true), FUNCTIONEER_ATTACH_HELP_ON_ERROR (default true),
FUNCTIONEER_VERBOSE_LOGGING (default false), LOG_LEVEL (default info).
`

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("functioneer: load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("functioneer: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	d := dispatcher.New(cfg.DispatcherOptions(logger))
	registerFunctions(d)

	os.Exit(run(context.Background(), d, os.Args, os.Stdout, os.Stderr))
}

// run executes one command and returns the process exit code.
func run(ctx context.Context, d *dispatcher.Dispatcher, argv []string, stdout, stderr io.Writer) int {
	cmd := ""
	if len(argv) > 1 {
		cmd = argv[1]
	}

	switch cmd {
	case "run":
		return report(d, d.DispatchFromArgv(ctx, argv), stdout, stderr)
	case "call":
		if len(argv) < 3 {
			fmt.Fprintf(stderr, "functioneer call: require a JSON object argument\n%s", usage)
			return 1
		}
		var call dispatcher.ObjectCall
		if err := codec.DecodePayload([]byte(argv[2]), &call); err != nil {
			fmt.Fprintf(stderr, "functioneer call: invalid JSON object: %v\n", err)
			return 1
		}
		return report(d, d.DispatchFromObject(ctx, call), stdout, stderr)
	case "help", "-h", "--help":
		if len(argv) > 2 {
			fmt.Fprint(stdout, d.FunctionHelp(argv[2]))
			return 0
		}
		fmt.Fprint(stdout, usage+"\n"+d.Help())
		return 0
	case "":
		fmt.Fprint(stderr, usage)
		return 1
	default:
		fmt.Fprintf(stderr, "Unknown command %q.\n%s", cmd, usage)
		return 1
	}
}

func report(d *dispatcher.Dispatcher, env *dispatcher.ResultEnvelope, stdout, stderr io.Writer) int {
	text := d.Render(env)
	if env.Success {
		color.New(color.FgGreen).Fprintln(stdout, text)
		return 0
	}
	color.New(color.FgRed).Fprintln(stderr, text)
	return 1
}
