// gpaint replays brush traces over stroke documents and reports point
// colors and deform weights.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/gpaint/internal/config"
	"github.com/Faultbox/gpaint/internal/logger"
	"github.com/Faultbox/gpaint/pkg/gpdata"
)

func main() {
	flag.Usage = printUsage
	config.ParseFlags()

	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}
	command, args := args[0], args[1:]

	if command == "help" || command == "-h" || command == "--help" {
		printUsage()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	switch command {
	case "info":
		cmdInfo(args)
	case "apply":
		cmdApply(cfg, args)
	case "report":
		cmdReport(args)
	case "config":
		cmdConfig(cfg)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`gpaint - stroke color and weight painting

Usage:
  gpaint [global flags] <command> [options]

Commands:
  info <doc.yaml>                         Show layers, frames, strokes and groups
  apply <doc.yaml> <trace.yaml> [-o out]  Replay a brush trace as one session
  report <doc.yaml> [-o out.csv]          Dump point colors and weights as CSV
  config                                  Print the effective configuration

Global flags:
  -config, -debug, -tool, -size, -strength, -weight, -group,
  -multiframe, -mask, -no-normalize

Examples:
  gpaint info sketch.yaml
  gpaint -tool tint -size 30 apply sketch.yaml trace.yaml -o painted.yaml
  gpaint -tool weight_draw -group arm apply rig.yaml trace.yaml
  gpaint report painted.yaml -o points.csv`)
}

func fail(err error) {
	logger.Error("command failed", zap.Error(err))
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: gpaint info <doc.yaml>")
		os.Exit(1)
	}
	doc, err := gpdata.Load(args[0])
	if err != nil {
		fail(err)
	}
	printInfo(os.Stdout, args[0], doc)
}

func cmdApply(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("apply", flag.ExitOnError)
	out := fs.String("o", "", "Output document (default: overwrite input)")
	fs.Parse(reorder(args))

	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: gpaint apply <doc.yaml> <trace.yaml> [-o out.yaml]")
		os.Exit(1)
	}
	docPath, tracePath := fs.Arg(0), fs.Arg(1)
	if *out == "" {
		*out = docPath
	}

	doc, err := gpdata.Load(docPath)
	if err != nil {
		fail(err)
	}
	trace, err := loadTrace(tracePath)
	if err != nil {
		fail(err)
	}
	stats, err := replay(cfg, doc, trace, logger.Named("cli"))
	if err != nil {
		fail(err)
	}
	if err := doc.SaveTo(*out); err != nil {
		fail(err)
	}
	if err := writeStats(os.Stdout, stats); err != nil {
		fail(err)
	}
}

func cmdReport(args []string) {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	out := fs.String("o", "", "Output CSV file (default: stdout)")
	fs.Parse(reorder(args))

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: gpaint report <doc.yaml> [-o out.csv]")
		os.Exit(1)
	}
	doc, err := gpdata.Load(fs.Arg(0))
	if err != nil {
		fail(err)
	}

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			fail(err)
		}
		defer f.Close()
		w = f
	}
	if err := writeReport(w, doc); err != nil {
		fail(err)
	}
}

func cmdConfig(cfg *config.Config) {
	data, err := cfg.Marshal()
	if err != nil {
		fail(err)
	}
	os.Stdout.Write(data)
}

// reorder moves flags ahead of positional arguments so "-o" may follow the
// file names.
func reorder(args []string) []string {
	var flags, pos []string
	for i := 0; i < len(args); i++ {
		a := args[i]
		if len(a) > 1 && a[0] == '-' {
			flags = append(flags, a)
			if i+1 < len(args) && !hasValue(a) {
				flags = append(flags, args[i+1])
				i++
			}
			continue
		}
		pos = append(pos, a)
	}
	return append(flags, pos...)
}

func hasValue(flagArg string) bool {
	for _, c := range flagArg {
		if c == '=' {
			return true
		}
	}
	return false
}
