package main

import (
	"context"
	"fmt"
	"os"

	"github.com/bibliaolvaso/reference/pkg/catalog"
	"github.com/bibliaolvaso/reference/tools/util"
)

type CatalogCmd struct{}

func (c *CatalogCmd) Run(ctx context.Context, g *Globals) error {
	doc, err := catalog.OpenDocument(g.CatalogPath)
	if err != nil {
		return err
	}

	stop := func() {}
	if !g.Quiet {
		stop = util.StartSpinner(ctx, os.Stdout, "Verifying catalog")
	}

	problems := catalog.Verify(doc)
	problems = append(problems, catalog.VerifyRoundTrip(doc.Catalog())...)

	fingerprint, err := catalog.Fingerprint(doc)
	if err != nil {
		stop()
		return err
	}

	// SQLite catalogs record the fingerprint they were written with.
	if g.CatalogPath != "" {
		if format, _, err := catalog.DetectFormat(g.CatalogPath); err == nil && format == catalog.FormatSQLite {
			stored, err := catalog.StoredFingerprint(g.CatalogPath)
			switch {
			case err != nil:
				problems = append(problems, catalog.Problem{Type: "fingerprint", Message: err.Error()})
			case stored != fingerprint:
				problems = append(problems, catalog.Problem{
					Type:     "fingerprint",
					Message:  "stored fingerprint does not match content",
					Expected: stored,
					Actual:   fingerprint,
				})
			}
		}
	}
	stop()

	source := g.CatalogPath
	if source == "" {
		source = "(bundled)"
	}

	fmt.Println("========================================")
	fmt.Printf("Catalog: %s\n", source)
	fmt.Printf("Fingerprint: %s\n", fingerprint)
	fmt.Printf("Translations: %d\n", len(doc.Bibles))
	fmt.Printf("Books: %d\n", len(doc.Books))
	for i, p := range problems {
		fmt.Printf("  %d. %s\n", i+1, p)
		if p.Expected != nil {
			fmt.Printf("     Expected: %v\n", p.Expected)
		}
		if p.Actual != nil {
			fmt.Printf("     Actual: %v\n", p.Actual)
		}
	}
	fmt.Printf("Total Errors Found: %d\n", len(problems))
	fmt.Println("========================================")

	if len(problems) > 0 {
		return fmt.Errorf("validation completed with errors. Please review the output above for details")
	}
	fmt.Println("Validation completed successfully with no errors")
	return nil
}
