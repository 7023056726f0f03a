package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/V1Zak/postman-helper-sub000/packages/collection"
)

var validateCmd = &cobra.Command{
	Use:   "validate <collection>",
	Short: "Validate a collection file without running it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading collection file: %w", err)
		}

		if collection.IsPostman(data) {
			if _, err := collection.FromPostman(data); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: valid Postman v2.1 collection\n", args[0])
			return nil
		}

		if errs := collection.Validate(data); len(errs) > 0 {
			for _, e := range errs {
				fmt.Fprintf(os.Stderr, "  %v\n", e)
			}
			return fmt.Errorf("%s: %d validation error(s)", args[0], len(errs))
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s: valid collection\n", args[0])
		return nil
	},
}
