package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/nanoshell/nanoshell/pkg/mcpclient"
)

func newMcpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Inspect the MCP servers configured for an agent",
	}
	cmd.AddCommand(newMcpCheckCmd())
	return cmd
}

func newMcpCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [agent]",
		Short: "Connect to each configured MCP server and list its tools",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadFile()
			if err != nil {
				return err
			}

			id := "nanocode"
			if len(args) == 1 {
				id = args[0]
			}

			settings, ok := f.Agents[id]
			if !ok || len(settings.McpServers) == 0 {
				fmt.Printf("no MCP servers configured for agent %q\n", id)
				return nil
			}

			results := mcpclient.Check(cmd.Context(), settings.McpServers)

			ok = true
			green := color.New(color.FgGreen)
			red := color.New(color.FgRed)
			for _, r := range results {
				if r.Err != nil {
					ok = false
					red.Printf("✗ %s", r.Server)
					fmt.Printf(": %v\n", r.Err)
					continue
				}
				green.Printf("✓ %s", r.Server)
				fmt.Printf(": %d tools [%s]\n", len(r.Tools), strings.Join(r.Tools, ", "))
			}

			if !ok {
				return fmt.Errorf("some MCP servers are unreachable")
			}
			return nil
		},
	}
}
