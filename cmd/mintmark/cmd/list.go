package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var listGroupBy string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the collection",
	RunE: func(cmd *cobra.Command, _ []string) error {
		m, err := newMintmark()
		if err != nil {
			return err
		}
		defer closeAndFlush(m)

		switch listGroupBy {
		case "country":
			byCountry := m.Collection().GroupByCountry()
			for _, code := range sortedKeys(byCountry) {
				cmd.Printf("%-4s %-26s %d\n", code, m.Registry().Name(code), byCountry[code])
			}
			return nil
		case "continent":
			byCountry := m.Collection().GroupByCountry()
			byContinent := m.Collection().GroupByContinent()
			for _, continent := range sortedKeys(byContinent) {
				codes := byContinent[continent]
				total := 0
				for _, code := range codes {
					total += byCountry[code]
				}
				cmd.Printf("%-30s %d items across %d countries\n", continent, total, len(codes))
			}
			return nil
		case "":
		default:
			return fmt.Errorf("unknown grouping %q: use country or continent", listGroupBy)
		}

		items := m.Collection().List()
		if len(items) == 0 {
			cmd.Println("Collection is empty")
			return nil
		}
		for _, item := range items {
			year := ""
			if item.Year > 0 {
				year = fmt.Sprintf(" (%d)", item.Year)
			}
			cmd.Printf("%s  %-8s  %s %s%s  [%s]\n",
				item.ID, item.Category, item.CountryName, item.Denomination, year, item.Condition)
		}
		cmd.Printf("%d items\n", len(items))
		return nil
	},
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func init() {
	listCmd.Flags().StringVar(&listGroupBy, "group-by", "", "group counts by country or continent")
	rootCmd.AddCommand(listCmd)
}
