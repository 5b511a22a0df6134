package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/julianstephens/canonref/bibleref"
	"github.com/spf13/cobra"

	"github.com/bibliaolvaso/reference/internal/logging"
	"github.com/bibliaolvaso/reference/pkg/catalog"
	"github.com/bibliaolvaso/reference/pkg/osis"
	"github.com/bibliaolvaso/reference/pkg/reference"
)

var version = "0.1.0"

// errNoMatch makes the process exit with status 1 without another message;
// the unresolved inputs are already part of the output.
var errNoMatch = errors.New("one or more citations did not resolve")

func main() {
	if err := rootCmd().Execute(); err != nil {
		if !errors.Is(err, errNoMatch) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "reference",
		Short: "Resolve scripture citations",
		Long: `Resolve free-text scripture citations such as "1Móz 1", "Zsolt 119:1-6"
or "62/004" into canonical references, and step between chapters.

Examples:
  reference resolve "Zsolt 119:1-6"
  reference resolve --bible ujforditas "Ésa 1" "Jel 22"
  reference next "Mal 4"
  reference books --bible karoli`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, _ := cmd.Flags().GetString("log-level")
			format, _ := cmd.Flags().GetString("log-format")
			return logging.Setup(level, format)
		},
	}

	root.PersistentFlags().String("catalog", os.Getenv("REFERENCE_CATALOG"), "Catalog file (.json, .yaml, .db, optional .xz); the bundled catalog when empty")
	root.PersistentFlags().StringP("bible", "b", envOr("REFERENCE_BIBLE", "karoli"), "Translation to resolve against")
	root.PersistentFlags().String("log-level", envOr("REFERENCE_LOG_LEVEL", "warn"), "Log level (debug, info, warn, error)")
	root.PersistentFlags().String("log-format", envOr("REFERENCE_LOG_FORMAT", "text"), "Log format (text, json)")

	root.AddCommand(resolveCmd())
	root.AddCommand(stepCmd("next", "Show the chapter after a citation", (*reference.Catalog).NextChapter))
	root.AddCommand(stepCmd("prev", "Show the chapter before a citation", (*reference.Catalog).PreviousChapter))
	root.AddCommand(booksCmd())
	root.AddCommand(biblesCmd())
	return root
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func loadCatalog(cmd *cobra.Command) (*reference.Catalog, string, error) {
	path, _ := cmd.Flags().GetString("catalog")
	bible, _ := cmd.Flags().GetString("bible")

	cat, err := catalog.Open(path)
	if err != nil {
		return nil, "", err
	}
	if _, ok := cat.Translation(bible); !ok {
		return nil, "", fmt.Errorf("%w: %s", catalog.ErrUnknownTranslation, bible)
	}
	return cat, bible, nil
}

type result struct {
	Input     string               `json:"input"`
	Reference *reference.Reference `json:"reference"`
	OSIS      []string             `json:"osis,omitempty"`
}

// osisTable returns the canonref table of bible when --osis is set, or nil.
func osisTable(cmd *cobra.Command, cat *reference.Catalog, bible string) (*bibleref.Table, error) {
	if withOSIS, _ := cmd.Flags().GetBool("osis"); !withOSIS {
		return nil, nil
	}
	return osis.Table(cat, bible)
}

// writeResult prints one JSON line. OSIS ids are added when tbl is non-nil.
func writeResult(w io.Writer, input string, ref *reference.Reference, tbl *bibleref.Table) error {
	res := result{Input: input, Reference: ref}
	if ref != nil && tbl != nil {
		ids, err := osis.IDs(tbl, ref)
		if err != nil {
			logging.Warn("no OSIS ids for reference", "id", ref.ID(), "error", err)
		}
		res.OSIS = ids
	}
	data, err := json.Marshal(res)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func resolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve CITATION...",
		Short: "Resolve citations into references",
		Long: `Resolve each argument and print one JSON object per line. Unresolved
citations are printed with a null reference and make the command exit with
status 1.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, bible, err := loadCatalog(cmd)
			if err != nil {
				return err
			}
			tbl, err := osisTable(cmd, cat, bible)
			if err != nil {
				return err
			}

			failed := false
			for _, text := range args {
				ref, ok := cat.Resolve(bible, text)
				if !ok {
					logging.Debug("citation did not resolve", "bible", bible, "input", text)
					failed = true
				}
				if err := writeResult(cmd.OutOrStdout(), text, ref, tbl); err != nil {
					return err
				}
			}
			if failed {
				return errNoMatch
			}
			return nil
		},
	}
	cmd.Flags().Bool("osis", false, "Add OSIS ids to the output")
	return cmd
}

func stepCmd(use, short string, step func(*reference.Catalog, *reference.Reference) (*reference.Reference, bool)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " CITATION",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, bible, err := loadCatalog(cmd)
			if err != nil {
				return err
			}
			tbl, err := osisTable(cmd, cat, bible)
			if err != nil {
				return err
			}

			text := strings.Join(args, " ")
			ref, ok := cat.Resolve(bible, text)
			if !ok {
				if err := writeResult(cmd.OutOrStdout(), text, nil, nil); err != nil {
					return err
				}
				return errNoMatch
			}
			target, ok := step(cat, ref)
			if err := writeResult(cmd.OutOrStdout(), text, target, tbl); err != nil {
				return err
			}
			if !ok {
				return errNoMatch
			}
			return nil
		},
	}
	cmd.Flags().Bool("osis", false, "Add OSIS ids to the output")
	return cmd
}

func booksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "books",
		Short: "List the books of a translation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, bible, err := loadCatalog(cmd)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "INDEX\tABBR\tSLUG\tCHAPTERS\tOSIS\tTITLE")
			for _, b := range cat.Books(bible) {
				code, _ := osis.Code(b.Index)
				fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\t%s\n", b.Index, b.Abbr, b.Slug(), b.Chapters, code, b.Title)
			}
			return w.Flush()
		},
	}
}

func biblesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bibles",
		Short: "List the translations of the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("catalog")
			cat, err := catalog.Open(path)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tLANG\tNAME\tSINCE\tBOOKS")
			for _, t := range cat.Translations() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n", t.ID, t.Lang, t.Name, t.FirstPublishedIn, len(cat.Books(t.ID)))
			}
			return w.Flush()
		},
	}
}
