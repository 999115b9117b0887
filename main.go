package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var sugar = zap.Must(zap.NewProduction()).Sugar()

var (
	settingsPath string
	debug        bool
	blocksInput  bool
)

func main() {
	root := &cobra.Command{
		Use:   "spinescan",
		Short: "Turn bookshelf OCR text into book records",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if debug {
				sugar = zap.Must(zap.NewDevelopment()).Sugar()
			}
		},
	}

	root.PersistentFlags().StringVar(&settingsPath, "settings", "", "path to YAML settings file")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "debug logging")

	scanCmd := &cobra.Command{
		Use:   "scan [file...]",
		Short: "Scan OCR output (plain text, or block JSON with --blocks) into book records",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runScan,
	}
	scanCmd.Flags().BoolVar(&blocksInput, "blocks", false, "inputs are structured block-annotation JSON")
	root.AddCommand(scanCmd)

	root.AddCommand(&cobra.Command{
		Use:   "isbn [code...]",
		Short: "Look up scanned ISBN barcodes",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runISBN,
	})

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newScanner() (*Scanner, *Resolver, Settings, error) {
	settings, err := LoadSettings(settingsPath)
	if err != nil {
		return nil, nil, settings, err
	}

	resolver := NewResolver(settings.BuildSources())
	resolver.Cache.Load(settings.CachePath)

	return NewScanner(resolver), resolver, settings, nil
}

func runScan(cmd *cobra.Command, args []string) error {
	scanner, resolver, settings, err := newScanner()
	if err != nil {
		return err
	}
	defer resolver.Cache.Save(settings.CachePath)

	ctx := context.Background()

	if blocksInput {
		// Structured mode bypasses the marker convention entirely.  Block
		// JSON gets its own loop so decoding errors stay per-file.
		results := make([]BatchResult, 0, len(args))

		for _, name := range args {
			data, err := readInput(name)
			if err != nil {
				sugar.Warnf("Batch item %s failed: %v", name, err)
				results = append(results, BatchResult{Name: name, Error: err.Error()})
				continue
			}

			blocks, err := GetBlocks(string(data))
			if err != nil {
				sugar.Warnf("Batch item %s failed: %v", name, err)
				results = append(results, BatchResult{Name: name, Error: err.Error()})
				continue
			}

			results = append(results, BatchResult{Name: name, Books: scanner.ScanBlocks(ctx, blocks)})
		}

		return emit(results)
	}

	results := scanner.ScanBatch(ctx, args, func(name string) (string, error) {
		data, err := readInput(name)
		return string(data), err
	})

	if len(args) == 1 && results[0].Error == "" {
		return emit(results[0].Books)
	}

	return emit(results)
}

func runISBN(cmd *cobra.Command, args []string) error {
	_, resolver, settings, err := newScanner()
	if err != nil {
		return err
	}
	defer resolver.Cache.Save(settings.CachePath)

	return emit(resolver.LookupISBNs(context.Background(), args))
}

func readInput(name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(os.Stdin)
	}

	return os.ReadFile(name)
}

func emit(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(out))

	return nil
}
