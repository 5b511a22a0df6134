package main

import (
	"fmt"

	"github.com/bibliaolvaso/reference/pkg/catalog"
	"github.com/bibliaolvaso/reference/pkg/osis"
)

type OsisCmd struct {
	Bible []string `short:"b" help:"Translations to check; all when empty"`
}

func (o *OsisCmd) Run(g *Globals) error {
	cat, err := catalog.Open(g.CatalogPath)
	if err != nil {
		return err
	}

	bibles := o.Bible
	if len(bibles) == 0 {
		for _, t := range cat.Translations() {
			bibles = append(bibles, t.ID)
		}
	}

	var totalErrors int
	for _, id := range bibles {
		tbl, err := osis.Table(cat, id)
		if err != nil {
			fmt.Printf("OSIS error: %v\n", err)
			totalErrors++
			continue
		}

		// Every book's last chapter must also map to an OSIS id.
		for _, b := range cat.Books(id) {
			ref, ok := cat.Resolve(id, fmt.Sprintf("%d/%d", b.Index, b.Chapters))
			if !ok {
				fmt.Printf("OSIS error: %s chapter %d does not resolve\n", b.ID, b.Chapters)
				totalErrors++
				continue
			}
			if _, err := osis.IDs(tbl, ref); err != nil {
				fmt.Printf("OSIS error: %s: %v\n", ref.ID(), err)
				totalErrors++
			}
		}
		fmt.Printf("%s: %d books mapped\n", id, len(cat.Books(id)))
	}

	fmt.Println("========================================")
	fmt.Printf("Translations Checked: %d\n", len(bibles))
	fmt.Printf("Total Errors Found: %d\n", totalErrors)
	fmt.Println("========================================")

	if totalErrors > 0 {
		return fmt.Errorf("validation completed with errors. Please review the output above for details")
	}
	return nil
}
