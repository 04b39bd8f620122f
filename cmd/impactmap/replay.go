package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/application/replay"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/di"
)

func replayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "replay <script.yaml>",
		Short: "Replay a gesture script and summarize the canvas",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			script, err := replay.Parse(f)
			if err != nil {
				return err
			}

			_, cfg, err := loadConfig()
			if err != nil {
				return err
			}
			cfg.Seed.LoadTutorial = script.Tutorial()
			cfg.Seed.IDStrategy = "sequential"

			ctx := context.Background()
			container, err := di.InitializeContainer(ctx, cfg)
			if err != nil {
				return err
			}
			defer container.Shutdown()

			sum, err := replay.NewRunner(container.Mediator, container.Logger.Logger).Run(ctx, script)
			if err != nil {
				return err
			}
			printSummary(script, sum)
			if sum.Failed() > 0 {
				return fmt.Errorf("%d of %d steps failed", sum.Failed(), len(sum.Steps))
			}
			return nil
		},
	}
}

func printSummary(script replay.Script, sum replay.Summary) {
	fmt.Printf("%s %s as %s (%s)\n\n", brand.Sprint("replay"), script.Canvas, script.User, script.Role)

	rows := make([][]string, 0, len(sum.Steps))
	for _, st := range sum.Steps {
		status := good.Sprint("ok")
		if st.Err != nil {
			status = bad.Sprint(st.Err.Error())
		}
		rows = append(rows, []string{strconv.Itoa(st.Index + 1), st.Gesture, status})
	}
	table([]string{"#", "GESTURE", "RESULT"}, rows)
	fmt.Println()

	fmt.Printf("  nodes %d  lanes %d  edges %d\n", sum.Nodes, sum.Lanes, sum.Edges)
	if sum.Ghosts > 0 {
		warn.Printf("  ghosts %d  provisional edges %d\n", sum.Ghosts, sum.Provisional)
	}
	if sum.Selected != "" {
		fmt.Printf("  selected %s\n", brand.Sprint(sum.Selected))
	}
	fmt.Printf("  notifications %d  %s\n", sum.Notifications, subtle.Sprintf("(%d unread)", sum.Unread))
}
