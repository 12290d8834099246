package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mintmark/mintmark"
	"github.com/mintmark/mintmark/pkg/importer"
)

var importFlags struct {
	user       string
	replaceAll bool
	ignoreAll  bool
}

var importCmd = &cobra.Command{
	Use:   "import [catalog-id...]",
	Short: "Import items from the external catalog",
	Long: `Import catalog types by id, or a whole user collection with --user.
Requires a catalog API key (NUMISTA_API_KEY); user collections additionally
need OAuth client credentials.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 && importFlags.user == "" {
			return fmt.Errorf("give catalog ids or --user")
		}
		if importFlags.replaceAll && importFlags.ignoreAll {
			return fmt.Errorf("--replace-all and --ignore-all are mutually exclusive")
		}

		ids := make([]int, 0, len(args))
		for _, arg := range args {
			id, err := strconv.Atoi(arg)
			if err != nil {
				return fmt.Errorf("invalid catalog id %q", arg)
			}
			ids = append(ids, id)
		}

		prompt := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
		opts := []mintmark.Option{mintmark.WithConfirmer(prompt)}
		switch {
		case importFlags.replaceAll:
			opts = append(opts, mintmark.WithDecider(importer.AlwaysReplace))
		case importFlags.ignoreAll:
			opts = append(opts, mintmark.WithDecider(importer.AlwaysIgnore))
		default:
			opts = append(opts, mintmark.WithDecider(prompt))
		}

		m, err := newMintmark(opts...)
		if err != nil {
			return err
		}
		defer closeAndFlush(m)

		var report *importer.Report
		if importFlags.user != "" {
			report, err = m.ImportCollection(cmd.Context(), importFlags.user)
		} else {
			report, err = m.Import(cmd.Context(), ids)
		}
		if err != nil {
			return err
		}

		cmd.Println(report.Summary())
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importFlags.user, "user", "", "import a catalog user's collection")
	importCmd.Flags().BoolVar(&importFlags.replaceAll, "replace-all", false, "replace duplicates without asking")
	importCmd.Flags().BoolVar(&importFlags.ignoreAll, "ignore-all", false, "skip duplicates without asking")
	rootCmd.AddCommand(importCmd)
}
