package main

import (
	"fmt"

	mcobra "github.com/muesli/mango-cobra"
	"github.com/muesli/roff"
	"github.com/spf13/cobra"
)

func manCommand(root *cobra.Command) *cobra.Command {
	return &cobra.Command{
		Use:    "man",
		Short:  "Generate man pages",
		Args:   cobra.NoArgs,
		Hidden: true,
		RunE: func(co *cobra.Command, _ []string) error {
			manPage, err := mcobra.NewManPage(1, root)
			if err != nil {
				return err
			}

			manPage = manPage.WithSection("Copyright", "(C) 2024 Charmbracelet, Inc.\n"+
				"Released under MIT license.")
			fmt.Fprintln(co.OutOrStdout(), manPage.Build(roff.NewDocument()))
			return nil
		},
	}
}
