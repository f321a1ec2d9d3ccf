// Package main is the entry point for sf2sfz CLI
package main

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/james-see/sf2sfz/pkg/api"
	"github.com/james-see/sf2sfz/pkg/converter"
	"github.com/james-see/sf2sfz/pkg/soundfont"
	"github.com/james-see/sf2sfz/pkg/tui"
	"github.com/spf13/cobra"
	"golang.org/x/tools/godoc/vfs"
	"golang.org/x/tools/godoc/vfs/zipfs"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	outputPath string
	baseName   string
	preview    bool
	asZip      bool
	asJSON     bool
	verify     bool
	verbose    bool
	serverPort int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sf2sfz",
	Short: "Convert SoundFont banks into SFZ instruments",
	Long: `sf2sfz converts SoundFont 2 (.sf2) and SoundFont 3 (.sf3) banks into
SFZ instruments: one .sfz document per preset plus the WAV samples it plays.

Examples:
  sf2sfz convert piano.sf2
  sf2sfz convert piano.sf2 -o piano.zip --name "Grand"
  sf2sfz inspect piano.sf2 --verify
  sf2sfz batch ./banks -o ./sfz --zip
  sf2sfz tui
  sf2sfz serve --port 8080`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
}

var convertCmd = &cobra.Command{
	Use:   "convert <bank.sf2>",
	Short: "Convert one bank to SFZ",
	Long: `Converts every preset of the bank. The output is written as a directory,
or as a zip archive when the output path ends in .zip. Without -o the output
is a directory named after the bank.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <bank.sf2>",
	Short: "List the presets, instruments and samples of a bank",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

var batchCmd = &cobra.Command{
	Use:   "batch <folder|archive.zip>",
	Short: "Convert every bank in a folder or zip archive",
	Args:  cobra.ExactArgs(1),
	RunE:  runBatch,
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive terminal UI",
	RunE:  runTUI,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	RunE:  runServe,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log skipped zones and samples")

	// convert command
	convertCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output directory or .zip file")
	convertCmd.Flags().StringVarP(&baseName, "name", "n", "", "Base name for documents and sample folders")
	convertCmd.Flags().BoolVar(&preview, "preview", false, "Write a MIDI audition file per preset")

	// inspect command
	inspectCmd.Flags().BoolVar(&asJSON, "json", false, "Print the summary as JSON")
	inspectCmd.Flags().BoolVar(&verify, "verify", false, "Encode and decode every sample as WAV")

	// batch command
	batchCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output directory (required)")
	batchCmd.Flags().StringVarP(&baseName, "name", "n", "", "Prefix for every bank's base name")
	batchCmd.Flags().BoolVar(&asZip, "zip", false, "Write one zip archive per bank")
	batchCmd.Flags().BoolVar(&preview, "preview", false, "Write a MIDI audition file per preset")
	_ = batchCmd.MarkFlagRequired("output")

	// serve command
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 8080, "Server port")

	// Add commands
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(serveCmd)
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func newConverter() *converter.Converter {
	return converter.New(converter.Options{
		BaseName: baseName,
		Logger:   newLogger(),
		Preview:  preview,
	})
}

func runConvert(cmd *cobra.Command, args []string) error {
	input := args[0]
	output := outputPath
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + "_sfz"
	}

	fmt.Printf("Converting %s -> %s\n", input, output)
	result, err := newConverter().ConvertFile(input, output)
	if err != nil {
		return err
	}
	for _, doc := range result.Documents {
		fmt.Printf("  %s (%d regions)\n", doc.Filename, doc.Regions)
	}
	fmt.Printf("Conversion complete! %d presets, %d samples\n", len(result.Documents), len(result.Samples))
	return nil
}

func runInspect(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	sf, err := soundfont.Decode(data, soundfont.WithLogger(newLogger()))
	if err != nil {
		return err
	}
	summary := converter.Inspect(sf)

	if asJSON {
		out, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	} else {
		printSummary(summary)
	}

	if !verify {
		return nil
	}
	failed := 0
	for _, check := range converter.VerifySamples(sf) {
		if check.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "sample %s: %v\n", check.Name, check.Err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d samples failed verification", failed, len(summary.Samples))
	}
	fmt.Printf("All %d samples verified\n", len(summary.Samples))
	return nil
}

func printSummary(s converter.BankSummary) {
	fmt.Printf("%s (SoundFont %s", s.Name, s.Version)
	if s.Engine != "" {
		fmt.Printf(", %s", s.Engine)
	}
	fmt.Println(")")
	if s.Copyright != "" {
		fmt.Printf("Copyright: %s\n", s.Copyright)
	}

	fmt.Printf("\nPresets (%d):\n", len(s.Presets))
	for _, p := range s.Presets {
		fmt.Printf("  %03d:%03d  %-20s %d regions\n", p.Bank, p.Program, p.Name, p.Regions)
	}
	fmt.Printf("\nInstruments (%d):\n", len(s.Instruments))
	for _, inst := range s.Instruments {
		fmt.Printf("  %-20s %d zones\n", inst.Name, inst.Zones)
	}
	fmt.Printf("\nSamples (%d):\n", len(s.Samples))
	for _, smp := range s.Samples {
		note := ""
		switch {
		case smp.Compressed && !smp.HasData:
			note = " (undecodable)"
		case smp.Compressed:
			note = " (vorbis)"
		case !smp.HasData:
			note = " (no data)"
		}
		fmt.Printf("  %-20s %6d Hz %8d frames  key %3d%s\n", smp.Name, smp.SampleRate, smp.Frames, smp.OriginalPitch, note)
	}
}

func runBatch(cmd *cobra.Command, args []string) error {
	input := args[0]

	var fs vfs.FileSystem
	if converter.DetectFormat(input) == converter.FormatZip {
		rc, err := zip.OpenReader(input)
		if err != nil {
			return fmt.Errorf("failed to open archive: %w", err)
		}
		defer func() { _ = rc.Close() }()
		fs = zipfs.New(rc, filepath.Base(input))
	} else {
		fs = vfs.OS(input)
	}

	items, err := newConverter().ConvertFolder(fs, outputPath, asZip)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return fmt.Errorf("no .sf2 or .sf3 files found in %s", input)
	}

	failed := 0
	for _, item := range items {
		if item.Err != nil {
			failed++
			fmt.Printf("✗ %s: %v\n", item.Input, item.Err)
			continue
		}
		fmt.Printf("✓ %s -> %s (%d presets, %d samples)\n", item.Input, item.Output, item.Presets, item.Samples)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d banks failed", failed, len(items))
	}
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	return tui.Run()
}

func runServe(cmd *cobra.Command, args []string) error {
	fmt.Printf("Starting API server on port %d...\n", serverPort)
	return api.StartServer(serverPort, newLogger())
}
