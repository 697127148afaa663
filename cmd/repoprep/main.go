package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/repoprep/cmd/repoprep/commands"
	ferrors "git.home.luguber.info/inful/repoprep/internal/foundation/errors"
)

// kongExit carries an exit status requested by kong (help, version) out of parsing.
type kongExit int

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) (code int) {
	cli := &commands.CLI{}
	global := commands.NewGlobal(ctx)
	global.Stdout, global.Stderr = stdout, stderr

	defer func() {
		if rec := recover(); rec != nil {
			exit, ok := rec.(kongExit)
			if !ok {
				panic(rec)
			}
			code = int(exit)
		}
	}()

	parser, err := kong.New(cli,
		kong.Name("repoprep"),
		kong.Description("Provision a writable, checkpointed working directory for a repository."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(c int) { panic(kongExit(c)) }),
		kong.Bind(global),
		commands.Vars(),
	)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 10
	}

	adapter := ferrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).WithOutput(stderr)

	kctx, err := parser.Parse(args)
	if err != nil {
		if _, ok := ferrors.AsClassified(err); !ok {
			err = ferrors.ValidationError(err.Error()).WithCause(err).Build()
		}
		return adapter.Report(err)
	}

	adapter = ferrors.NewCLIErrorAdapter(cli.Verbose, global.Logger).WithOutput(stderr)
	runErr := kctx.Run()
	if err := global.FlushMetrics(); err != nil && runErr == nil {
		runErr = err
	}
	if runErr != nil {
		return adapter.Report(runErr)
	}
	return global.ExitCode
}
