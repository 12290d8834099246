package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mintmark/mintmark/pkg/collection"
)

var addFlags struct {
	category     string
	country      string
	denomination string
	year         int
	condition    string
	value        float64
	notes        string
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an item to the collection",
	RunE: func(cmd *cobra.Command, _ []string) error {
		m, err := newMintmark()
		if err != nil {
			return err
		}
		defer closeAndFlush(m)

		item := &collection.Item{
			Category:     collection.ParseCategory(addFlags.category),
			CountryCode:  addFlags.country,
			Denomination: addFlags.denomination,
			Year:         addFlags.year,
			Condition:    collection.ParseGrade(addFlags.condition),
			Notes:        addFlags.notes,
		}
		if cmd.Flags().Changed("value") {
			item.EstimatedValue = &addFlags.value
		}

		stored, err := m.Collection().Add(cmd.Context(), item)
		if err != nil {
			return err
		}
		cmd.Printf("Added %s: %s %s [%s]\n", stored.ID, stored.CountryName, stored.Denomination, stored.Condition)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&addFlags.category, "type", "coin", "item type: coin or banknote")
	addCmd.Flags().StringVar(&addFlags.country, "country", "", "country code")
	addCmd.Flags().StringVar(&addFlags.denomination, "denomination", "", "denomination")
	addCmd.Flags().IntVar(&addFlags.year, "year", 0, "year of issue")
	addCmd.Flags().StringVar(&addFlags.condition, "condition", "F", "condition grade")
	addCmd.Flags().Float64Var(&addFlags.value, "value", 0, "estimated value")
	addCmd.Flags().StringVar(&addFlags.notes, "notes", "", "free-form notes")
	cobra.CheckErr(addCmd.MarkFlagRequired("country"))
	cobra.CheckErr(addCmd.MarkFlagRequired("denomination"))
	rootCmd.AddCommand(addCmd)
}
