package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"

	"github.com/bibliaolvaso/reference/internal/logging"
)

type Globals struct {
	CatalogPath string `name:"catalog" type:"path" env:"REFERENCE_CATALOG" help:"Catalog file (.json, .yaml, .db, with optional .xz); the bundled catalog when empty"`
	LogLevel    string `default:"warn" env:"REFERENCE_LOG_LEVEL" enum:"debug,info,warn,error" help:"Log level"`
	LogFormat   string `default:"text" env:"REFERENCE_LOG_FORMAT" enum:"text,json" help:"Log format"`
	Quiet       bool   `short:"q" help:"Do not show progress"`
}

type CLI struct {
	Globals

	Catalog CatalogCmd `cmd:"" help:"Check catalog invariants, abbreviation round trips and the stored fingerprint"`
	Osis    OsisCmd    `cmd:"" help:"Check that every translation maps onto an OSIS book table"`
}

func newParser(ctx context.Context, cli *CLI, options ...kong.Option) (*kong.Kong, error) {
	return kong.New(cli, append([]kong.Option{
		kong.Name("reference-verify"),
		kong.Description("Scripture catalog verification tool"),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Bind(&cli.Globals),
		kong.BindTo(ctx, (*context.Context)(nil)),
	}, options...)...)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cli := &CLI{}
	parser, err := newParser(ctx, cli)
	if err != nil {
		panic(err)
	}
	kongCtx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	if err := logging.Setup(cli.LogLevel, cli.LogFormat); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if err := kongCtx.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
