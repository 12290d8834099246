package cmd

import (
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Reconcile the local collection with the remote store",
	RunE: func(cmd *cobra.Command, _ []string) error {
		m, err := newMintmark()
		if err != nil {
			return err
		}
		defer closeAndFlush(m)

		count := m.Sync(cmd.Context())
		cmd.Printf("Collection has %d items\n", count)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
