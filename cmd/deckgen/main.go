package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	// Version is set during build
	Version = "dev"

	// BuildDate is set during build
	BuildDate = "unknown"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newRootCmd assembles the command tree. Running the root command with no
// subcommand builds the deck.
func newRootCmd() *cobra.Command {
	opts := &buildOptions{}

	rootCmd := &cobra.Command{
		Use:   "deckgen",
		Short: "Generate the SpaceX Falcon 9 capstone slide deck",
		Long: `deckgen builds a PowerPoint deck from a slide content table.

With no arguments it writes the built-in SpaceX Falcon 9 landing prediction
capstone deck to SpaceX_Data_Science_Projects_Presentation.pptx. Content can
also come from a YAML, TOML or Markdown file, and the deck can be written as
pptx, markdown, json or a pdf handout.`,
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, opts)
		},
	}

	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
Build Date: ` + BuildDate + `
`)

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Config file (default: ./deckgen.toml)")

	rootCmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file (overrides config)")
	rootCmd.Flags().StringVarP(&opts.format, "format", "f", "", "Output format: pptx, markdown, json or pdf (default: from output extension)")
	rootCmd.Flags().StringVar(&opts.content, "content", "", "Slide content file (.yaml, .toml or .md); empty uses the built-in deck")
	rootCmd.Flags().Float64Var(&opts.width, "width", 0, "Slide width in inches (overrides config)")
	rootCmd.Flags().Float64Var(&opts.height, "height", 0, "Slide height in inches (overrides config)")

	rootCmd.AddCommand(newInspectCmd(), newServeCmd(), newConfigCmd())

	return rootCmd
}
