package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mintmark/mintmark/pkg/errors"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <issuer-name>",
	Short: "Resolve an external issuer name to a country code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := newMintmark()
		if err != nil {
			return err
		}
		defer closeAndFlush(m)

		code, err := m.Resolve("", args[0])
		if err != nil {
			var unresolved *errors.UnresolvedCountryError
			if errors.As(err, &unresolved) {
				cmd.Printf("No match for %q (best score %.2f)\n", args[0], unresolved.BestScore)
				return nil
			}
			return err
		}

		country, lookupErr := m.Registry().Get(code)
		if lookupErr != nil {
			cmd.Println(code)
			return nil
		}
		cmd.Printf("%s %s (%s, %s)\n", country.Flag, country.Name, country.Code, country.Continent)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}
