package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jordanro2/rotable/internal/adapters/factory"
	"github.com/jordanro2/rotable/internal/adapters/progress"
	"github.com/jordanro2/rotable/internal/application"

	// Blank imports for every codec adapter package: their init()
	// functions self-register with the factory (spec.md §4.6, §9).
	_ "github.com/jordanro2/rotable/internal/adapters/ctfile"
	_ "github.com/jordanro2/rotable/internal/adapters/xlsxfile"
)

func main() {
	// --- Composition Root ---
	codecFactory := factory.NewCodecFactory()
	sink := progress.NewConsoleSink()
	convertService := application.NewConversionService(codecFactory, sink)
	// --- End Composition Root ---

	// ranConversion distinguishes a usage error (bad args, exit 2) from a
	// conversion failure (exit 1), per spec.md §6's exit code contract —
	// Cobra's own error path doesn't carry that distinction.
	ranConversion := false

	var rootCmd = &cobra.Command{
		Use:   "rotable",
		Short: "Converts between the CT compiled-table format and XLSX.",
		Long: `rotable is a bidirectional codec between the CT ("Compiled Table")
binary format and an XLSX spreadsheet workbook. Run it against a single
.ct/.xlsx file or a directory of them; it infers the direction of the
conversion from each input's extension.`,
	}

	var convertCmd = &cobra.Command{
		Use:   "convert <path>",
		Short: "Convert a .ct/.xlsx file or every such file in a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ranConversion = true
			path := args[0]
			info, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("stat %q: %w", path, err)
			}

			if info.IsDir() {
				results, err := convertService.ConvertBatch(path)
				sink.Stop()
				if err != nil {
					return err
				}
				failed := 0
				for _, r := range results {
					if r.Err != nil {
						failed++
					}
				}
				progress.PrintSummary(len(results), failed)
				if failed > 0 {
					return fmt.Errorf("%d of %d file(s) failed to convert", failed, len(results))
				}
				return nil
			}

			outPath, err := convertService.ConvertPath(path)
			sink.Stop()
			if err != nil {
				return err
			}
			fmt.Printf("Converted %s -> %s\n", path, outPath)
			return nil
		},
	}

	rootCmd.AddCommand(convertCmd)

	if err := rootCmd.Execute(); err != nil {
		sink.Stop()
		fmt.Fprintln(os.Stderr, "Error:", err)
		if !ranConversion {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
