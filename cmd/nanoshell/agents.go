package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newAgentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "agents",
		Short: "List the agents this shell can host",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadFile()
			if err != nil {
				return err
			}
			reg, err := buildRegistry(f)
			if err != nil {
				return err
			}

			bold := color.New(color.Bold)
			faint := color.New(color.Faint)
			for _, cfg := range reg.List() {
				bold.Printf("%s", cfg.ID)
				fmt.Printf("  %s\n", cfg.Name)
				faint.Printf("  %s\n", cfg.InstallInstructions)
			}
			return nil
		},
	}
}
