// Program pdfa11y analyzes and remediates the logical structure tree of a
// tagged document (spec §6): reporting accessibility issues, or rewriting
// the tree in place to fix as many as its checks know how to.
//
// Usage: pdfa11y [flags] <input> [<output>]
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pborman/getopt"

	"github.com/boyechko/pdf-autoa11y-sub001/internal/config"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/doccontainer"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/logging"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/reportutil"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/service"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/structtree"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/tagschema"
)

var stop = os.Exit

func main() {
	var (
		analyze      bool
		quiet        bool
		verbose      bool
		debug        bool
		force        bool
		password     string
		reportPath   string
		dumpTree     bool
		dumpDetailed bool
		skipChecks   string
		strict       bool
		configPath   string
		help         bool
	)

	getopt.BoolVarLong(&analyze, "analyze", 'a', "analyze only; never write output")
	getopt.BoolVarLong(&quiet, "quiet", 'q', "print only the output path and failures")
	getopt.BoolVarLong(&verbose, "verbose", 'v', "log info-level progress")
	getopt.BoolVarLong(&debug, "debug", 0, "log debug-level progress (-vv)")
	getopt.BoolVarLong(&force, "force", 'f', "overwrite an existing output file")
	getopt.StringVarLong(&password, "password", 'p', "password for an encrypted input", "PASSWORD")
	getopt.StringVarLong(&reportPath, "report", 'r', "write a text report to PATH (default: <input>.report.txt)", "PATH")
	getopt.BoolVarLong(&dumpTree, "dump-tree", 0, "print the structure tree and exit")
	getopt.BoolVarLong(&dumpDetailed, "dump-tree-detailed", 0, "print the structure tree with decoder hints and exit")
	getopt.StringVarLong(&skipChecks, "skip-checks", 0, "comma-separated check names to skip", "NAME,...")
	getopt.BoolVarLong(&strict, "strict", 0, "reject schema consistency warnings instead of logging them")
	getopt.StringVarLong(&configPath, "config", 0, "EngineConfig YAML file (default: built-in tunables)", "PATH")
	getopt.BoolVarLong(&help, "help", '?', "display help")
	getopt.SetParameters("<input> [<output>]")

	if err := getopt.Getopt(func(getopt.Option) bool { return true }); err != nil {
		fmt.Fprintln(os.Stderr, err)
		getopt.PrintUsage(os.Stderr)
		stop(2)
		return
	}
	if help {
		getopt.PrintUsage(os.Stderr)
		stop(0)
		return
	}

	args := getopt.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "pdfa11y: missing <input>")
		getopt.PrintUsage(os.Stderr)
		stop(2)
		return
	}
	input := args[0]
	output := input
	if len(args) > 1 {
		output = args[1]
	}

	level := logging.LevelNormal
	switch {
	case debug:
		level = logging.LevelDebug
	case verbose:
		level = logging.LevelVerbose
	case quiet:
		level = logging.LevelQuiet
	}
	log, err := logging.New(level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop(1)
		return
	}
	defer log.Sync()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop(1)
		return
	}
	cfg.Strict = cfg.Strict || strict

	schema, warnings, err := tagschema.Load(cfg.SchemaPath, cfg.Strict)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop(1)
		return
	}
	for _, w := range warnings {
		log.Warn(w.String())
	}

	skip := map[string]bool{}
	if skipChecks != "" {
		for _, name := range strings.Split(skipChecks, ",") {
			skip[strings.TrimSpace(name)] = true
		}
	}
	structFactories := service.FilterStructFactories(service.DefaultStructFactories(cfg), skip)
	docChecks := service.FilterDocumentChecks(service.DefaultDocumentChecks(), skip)

	svc, err := service.NewWithChecks(schema, log, unwiredOpener, docChecks, structFactories)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop(1)
		return
	}

	if dumpTree || dumpDetailed {
		doc, err := svc.Open(input, password, true)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			stop(exitCodeFor(err))
			return
		}
		defer doc.Close()
		var tree *structtree.StructTree
		if src, ok := doc.(doccontainer.StructTreeSource); ok {
			tree, _ = src.StructTree()
		}
		reportutil.DumpTree(os.Stdout, tree, dumpDetailed)
		stop(0)
		return
	}

	if analyze {
		result, err := svc.Report(input, password, reportWriter(reportPath, input))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			stop(exitCodeFor(err))
			return
		}
		printSummary(quiet, result.RunID)
		stop(0)
		return
	}

	if _, err := os.Stat(output); err == nil && output != input && !force {
		fmt.Fprintf(os.Stderr, "pdfa11y: %s exists; use -f/--force to overwrite\n", output)
		stop(2)
		return
	}

	result, err := svc.Remediate(input, output, password, false)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop(exitCodeFor(err))
		return
	}
	if reportPath != "" {
		w := &service.TextReportWriter{Path: reportPath}
		if err := w.WriteReport(result); err != nil {
			fmt.Fprintln(os.Stderr, err)
			stop(1)
			return
		}
	}
	printSummary(quiet, result.RunID)
	fmt.Println(result.TempOutputPath)
	stop(0)
}

func reportWriter(path, input string) *service.TextReportWriter {
	if path == "" {
		path = input + ".report.txt"
	}
	return &service.TextReportWriter{Path: path}
}

func printSummary(quiet bool, runID string) {
	if !quiet {
		fmt.Printf("run %s\n", runID)
	}
}

func exitCodeFor(err error) int {
	switch {
	case errors.Is(err, service.ErrEncryptedInput):
		return 3
	case errors.Is(err, service.ErrInputNotFound), errors.Is(err, service.ErrInputUnreadable):
		return 4
	case errors.Is(err, service.ErrOutputUnwritable):
		return 5
	default:
		return 1
	}
}

// unwiredOpener stands in for the external container library named in
// spec §6: the real binary parser/writer is out of scope (spec §1), so
// this reports a clear error rather than fabricating one. Production
// wiring replaces this with a real doccontainer.Document opener.
func unwiredOpener(path, password string, readOnly bool) (doccontainer.Document, error) {
	return nil, fmt.Errorf("%w: no container library wired (see DESIGN.md)", service.ErrInputUnreadable)
}
