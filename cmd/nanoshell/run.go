package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/nanoshell/nanoshell/pkg/agents"
	"github.com/nanoshell/nanoshell/pkg/shell"
)

func newRunCmd() *cobra.Command {
	var (
		autoApprove bool
		oneShot     string
	)

	cmd := &cobra.Command{
		Use:   "run [agent]",
		Short: "Start a shell session with an agent",
		Long: `Start a shell session with an agent. Without an argument the NanoGPT
nanocode agent is used; "local" runs the built-in in-process echo agent.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			f, err := loadFile()
			if err != nil {
				return err
			}
			reg, err := buildRegistry(f)
			if err != nil {
				return err
			}

			id := "nanocode"
			if len(args) == 1 {
				id = args[0]
			}
			agentCfg, ok := reg.Get(id)
			if !ok {
				return fmt.Errorf("unknown agent %q, run `nanoshell agents` to see what is available", id)
			}

			cwd, err := os.Getwd()
			if err != nil {
				return err
			}

			session := shell.NewSession(shell.Options{
				Root:        cwd,
				AutoApprove: autoApprove,
				Output:      os.Stdout,
			})

			fmt.Println(agents.WelcomeMessage(agentCfg))

			client, err := agentCfg.NewClient(ctx, session)
			if err != nil {
				return err
			}

			sh := shell.New(session, client, cwd)
			defer func() { _ = sh.Close(ctx) }()

			if err := sh.Start(ctx); err != nil {
				return err
			}

			if oneShot != "" {
				_, err := sh.Prompt(ctx, oneShot)
				fmt.Println()
				return err
			}

			promptColor := color.New(color.FgGreen, color.Bold)
			scanner := bufio.NewScanner(os.Stdin)
			for {
				promptColor.Fprint(os.Stdout, agentCfg.Prompt)
				if !scanner.Scan() {
					break
				}
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}
				if line == "/quit" || line == "/exit" {
					break
				}
				if _, err := sh.Prompt(ctx, line); err != nil {
					return err
				}
				fmt.Printf("\n\n")
			}
			if err := scanner.Err(); err != nil {
				return err
			}

			fmt.Printf("~%d tokens this session\n", session.TokenEstimate())
			return nil
		},
	}

	cmd.Flags().BoolVar(&autoApprove, "auto-approve", false,
		"allow mutating tool calls and file writes without asking")
	cmd.Flags().StringVarP(&oneShot, "prompt", "p", "",
		"send a single prompt and exit instead of starting the interactive loop")

	return cmd
}
