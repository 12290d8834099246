package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove an item from the collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := newMintmark()
		if err != nil {
			return err
		}
		defer closeAndFlush(m)

		if !m.Collection().Remove(cmd.Context(), args[0]) {
			return fmt.Errorf("no item with id %s", args[0])
		}
		cmd.Printf("Removed %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
