package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/bibliaolvaso/reference/internal/logging"
	"github.com/bibliaolvaso/reference/pkg/catalog"
)

type CLI struct {
	In        string   `type:"path" env:"REFERENCE_CATALOG" help:"Source catalog; the bundled catalog when empty"`
	Out       []string `required:"" type:"path" help:"Output files; the format follows the extension (.json, .yaml, .yml, .db, .sqlite, optional .xz)"`
	Force     bool     `help:"Write even if the source catalog has problems"`
	LogLevel  string   `default:"warn" env:"REFERENCE_LOG_LEVEL" enum:"debug,info,warn,error" help:"Log level"`
	LogFormat string   `default:"text" env:"REFERENCE_LOG_FORMAT" enum:"text,json" help:"Log format"`
}

func (c *CLI) Run() error {
	doc, err := catalog.OpenDocument(c.In)
	if err != nil {
		return err
	}

	if problems := catalog.Verify(doc); len(problems) > 0 {
		for _, p := range problems {
			fmt.Printf("Catalog problem: %s\n", p)
		}
		if !c.Force {
			return fmt.Errorf("source catalog has %d problems; use --force to write anyway", len(problems))
		}
	}

	fingerprint, err := catalog.Fingerprint(doc)
	if err != nil {
		return err
	}

	for _, out := range c.Out {
		if err := catalog.WriteFile(out, doc); err != nil {
			return err
		}
		fmt.Printf("Wrote %s (%d translations, %d books)\n", out, len(doc.Bibles), len(doc.Books))
	}
	fmt.Printf("Fingerprint: %s\n", fingerprint)
	return nil
}

func newParser(cli *CLI, options ...kong.Option) (*kong.Kong, error) {
	return kong.New(cli, append([]kong.Option{
		kong.Name("reference-extract"),
		kong.Description("Convert a scripture catalog between storage formats"),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	}, options...)...)
}

func main() {
	cli := &CLI{}
	parser, err := newParser(cli)
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
