package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/application/queries"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/di"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/domain/shared"
)

func suggestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <node-id>",
		Short: "Print next-step suggestions for a tutorial node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cfg, err := loadConfig()
			if err != nil {
				return err
			}
			cfg.Seed.LoadTutorial = true

			container, err := di.InitializeContainer(context.Background(), cfg)
			if err != nil {
				return err
			}
			defer container.Shutdown()

			ctx := shared.WithIdentity(context.Background(), shared.Identity{UserID: "cli", Role: shared.RoleView})
			res, err := container.Mediator.Query(ctx, queries.GetSuggestionsQuery{NodeID: args[0]})
			if err != nil {
				return err
			}
			view := res.(queries.SuggestionsView)

			hint, err := container.Mediator.Query(ctx, queries.GetHintQuery{NodeID: args[0]})
			if err != nil {
				return err
			}

			brand.Printf("%s\n\n", args[0])
			if len(view.Suggestions) == 0 {
				subtle.Println("  no suggestions")
				return nil
			}
			rows := make([][]string, 0, len(view.Suggestions))
			for _, s := range view.Suggestions {
				ai := ""
				if s.IsAI {
					ai = "ai"
				}
				rows = append(rows, []string{string(s.State), s.Title, string(s.LaneShift), ai})
			}
			table([]string{"STATE", "TITLE", "LANE", ""}, rows)
			if hint.(queries.HintView).Show {
				warn.Println("\n  hint shown: no active path ahead of this node")
			}
			return nil
		},
	}
}
