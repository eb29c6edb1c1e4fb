package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/fredcamaral/deckgen/internal/adapters/secondary/export"
	"github.com/fredcamaral/deckgen/internal/adapters/secondary/pptx"
	"github.com/fredcamaral/deckgen/internal/domain/entities"
)

func newInspectCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "inspect <file.pptx>",
		Short: "Print the slides of a generated deck",
		Long: `Read a .pptx written by deckgen and print each slide's kind, title and
subtitle or bullets.

Example:
  deckgen inspect SpaceX_Data_Science_Projects_Presentation.pptx
  deckgen inspect deck.pptx --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deck, err := pptx.NewReader().Read(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if asJSON {
				return export.NewJSONWriter().Write(cmd.Context(), deck, cmd.OutOrStdout())
			}
			printDeck(cmd.OutOrStdout(), deck)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the deck outline as JSON")

	return cmd
}

func printDeck(w io.Writer, deck *entities.Deck) {
	fmt.Fprintf(w, "%d slides, %gin x %gin\n", deck.SlideCount(), deck.Page.WidthInches(), deck.Page.HeightInches())

	for _, slide := range deck.Slides {
		fmt.Fprintf(w, "\n%2d. [%s] %s\n", slide.Index+1, slide.Kind, slide.Title)

		if slide.IsTitle() {
			for _, line := range slide.SubtitleLines() {
				fmt.Fprintf(w, "      %s\n", line)
			}
			continue
		}

		for _, bullet := range slide.Bullets {
			fmt.Fprintf(w, "      %*s%s %s\n", bullet.Level*2, "", pptx.BulletChar(bullet.Level), bullet.Text)
		}
	}
}
