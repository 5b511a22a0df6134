package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"

	"github.com/bibliaolvaso/reference/internal/logging"
	"github.com/bibliaolvaso/reference/pkg/catalog"
	"github.com/bibliaolvaso/reference/pkg/linkify"
	"github.com/bibliaolvaso/reference/tools/util"
)

type CLI struct {
	In          string `required:"" type:"existingdir" help:"Directory of HTML files to scan"`
	Out         string `required:"" type:"path" help:"Directory for rewritten files"`
	Bible       string `default:"karoli" env:"REFERENCE_BIBLE" help:"Translation citations are resolved against"`
	BaseURL     string `name:"base-url" env:"REFERENCE_BASE_URL" help:"Prefix for generated links"`
	CatalogPath string `name:"catalog" type:"path" env:"REFERENCE_CATALOG" help:"Catalog file; the bundled catalog when empty"`
	Watch       bool   `help:"Keep running and rewrite files as they change"`
	Quiet       bool   `short:"q" help:"Do not show progress"`
	LogLevel    string `default:"warn" env:"REFERENCE_LOG_LEVEL" enum:"debug,info,warn,error" help:"Log level"`
	LogFormat   string `default:"text" env:"REFERENCE_LOG_FORMAT" enum:"text,json" help:"Log format"`
}

func (c *CLI) Run(ctx context.Context) error {
	cat, err := catalog.Open(c.CatalogPath)
	if err != nil {
		return err
	}

	proc, err := linkify.NewProcessor(cat, c.Bible, c.BaseURL, c.In, c.Out)
	if err != nil {
		return fmt.Errorf("failed to initialize processor: %w", err)
	}

	stop := func() {}
	if !c.Quiet {
		stop = util.StartSpinner(ctx, os.Stdout, "Linking citations")
	}
	result, err := proc.Process()
	stop()
	if err != nil {
		return err
	}
	linkify.PrintResult(os.Stdout, result)

	if c.Watch {
		return proc.Watch(ctx, func(fr *linkify.FileResult, err error) {
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			fmt.Printf("%s: %d links, %d problems\n", fr.File, len(fr.Links), len(fr.Problems))
			for _, p := range fr.Problems {
				fmt.Printf("  [%s] %s: %v\n", p.Type, p.Message, p.Actual)
			}
		})
	}

	if len(result.Problems) > 0 {
		return fmt.Errorf("%d citations could not be linked", len(result.Problems))
	}
	return nil
}

func newParser(ctx context.Context, cli *CLI, options ...kong.Option) (*kong.Kong, error) {
	return kong.New(cli, append([]kong.Option{
		kong.Name("reference-linkify"),
		kong.Description("Turn scripture citations in HTML files into links"),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
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
