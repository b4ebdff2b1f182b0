package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/luminovang/novaroute/internal/compiler"
	"github.com/luminovang/novaroute/internal/diagnostics"
)

func main() {
	var (
		baseGroupFlag = flag.String("base-group", "", "Base group prefixed to every resolved HTTP pattern")
		prefixFlag    = flag.String("prefix", "", "Only admit routes under this context prefix (e.g. api)")
		cliFlag       = flag.Bool("cli", false, "Compile CLI command groups instead of HTTP routes")
		exportFlag    = flag.Bool("export", false, "Classify all declarations into http/api/cli buckets and print the report")
		verboseFlag   = flag.Bool("verbose", false, "Enable verbose output")
		quietFlag     = flag.Bool("quiet", false, "Only show errors and final results")
		helpFlag      = flag.Bool("help", false, "Show help information")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <directory-paths...>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Novaroute Route Compiler\n")
		fmt.Fprintf(os.Stderr, "Scans directories for Go types with nova:: annotations and compiles a routing table.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s ./internal/controllers                 # Compile HTTP routes\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -prefix api ./internal/controllers     # Only API-prefixed routes\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -base-group v1 ./internal/controllers  # Prefix every pattern with v1\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -cli ./internal/commands               # Compile CLI command groups\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -export ./internal                     # Print route classification report\n", os.Args[0])
	}

	flag.Parse()

	if *helpFlag {
		flag.Usage()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "Error: At least one directory path is required\n\n")
		flag.Usage()
		os.Exit(1)
	}

	var diag *diagnostics.System
	switch {
	case *quietFlag:
		diag = diagnostics.NewQuiet()
	case *verboseFlag:
		diag = diagnostics.NewVerbose()
	default:
		diag = diagnostics.New(diagnostics.LevelInfo)
	}

	diag.Section("Novaroute Route Compiler")

	comp := compiler.New(*baseGroupFlag, *cliFlag)
	comp.OnSkip = func(path string, err error) {
		diag.Warn("skipped %s: %v", path, err)
	}
	diag.Verbose("compile pass %s", comp.PassID())

	if *verboseFlag {
		diag.Subsection("Configuration")
		diag.List("Target directories: %s", strings.Join(args, ", "))
		if *baseGroupFlag != "" {
			diag.List("Base group: %s", *baseGroupFlag)
		}
		if *prefixFlag != "" {
			diag.List("Prefix filter: %s", *prefixFlag)
		}
		diag.List("CLI mode: %v", *cliFlag)
	}

	if *exportFlag {
		runExport(comp, diag, args)
		return
	}
	if *cliFlag {
		runCLI(comp, diag, args)
		return
	}
	runHTTP(comp, diag, *prefixFlag, args)
}

func runHTTP(comp *compiler.Compiler, diag *diagnostics.System, prefix string, dirs []string) {
	var routes, errorRoutes int
	failed := false

	for _, dir := range dirs {
		table, err := comp.InstallHTTP(dir, prefix)
		if err != nil {
			diag.Error("compilation failed for %s: %v", dir, err)
			failed = true
			if table == nil {
				continue
			}
		}
		routes += table.RouteCount()
		errorRoutes += len(table.ErrorHandlers())

		for _, method := range table.Methods() {
			for _, route := range table.Sequence(method) {
				diag.Verbose("%-7s %-40s -> %s", method, route.Pattern, route.Callback)
			}
		}
	}

	diag.Summary("Compilation Complete!", []diagnostics.Stat{
		{Name: "Routes compiled", Value: routes},
		{Name: "Error handlers", Value: errorRoutes},
	})
	if failed {
		os.Exit(1)
	}
	diag.Success("Routing table is ready to serve!")
}

func runCLI(comp *compiler.Compiler, diag *diagnostics.System, dirs []string) {
	var bindings, middleware int
	failed := false

	for _, dir := range dirs {
		table, err := comp.InstallCLI(dir)
		if err != nil {
			diag.Error("compilation failed for %s: %v", dir, err)
			failed = true
			if table == nil {
				continue
			}
		}
		bindings += table.BindingCount()
		for _, group := range table.CLIGroups() {
			diag.Verbose("group %s: %d command(s)", group, len(table.Bindings(group)))
		}
		middleware += len(table.CLIMiddleware("any"))
	}

	diag.Summary("Compilation Complete!", []diagnostics.Stat{
		{Name: "Command bindings", Value: bindings},
		{Name: "Global middleware", Value: middleware},
	})
	if failed {
		os.Exit(1)
	}
	diag.Success("Command table is ready to serve!")
}

func runExport(comp *compiler.Compiler, diag *diagnostics.System, dirs []string) {
	failed := false

	for _, dir := range dirs {
		report, err := comp.Export(dir)
		if err != nil {
			diag.Error("export failed for %s: %v", dir, err)
			failed = true
			if report == nil {
				continue
			}
		}

		diag.Subsection(dir)
		printBucket(diag, "http", report.HTTP)
		printBucket(diag, "api", report.API)
		printBucket(diag, "cli", report.CLI)
	}

	if failed {
		os.Exit(1)
	}
}

func printBucket(diag *diagnostics.System, name string, entries []compiler.ExportEntry) {
	if len(entries) == 0 {
		return
	}
	diag.Info("[%s] %d declaration(s)", name, len(entries))
	for _, entry := range entries {
		if entry.Group != "" {
			diag.List("%s %s -> %s (bind %s)", entry.Group, entry.Pattern, entry.Callback, entry.Bind)
			continue
		}
		diag.List("%s %s -> %s (bind %s)", strings.Join(entry.Methods, ","), entry.Pattern, entry.Callback, entry.Bind)
	}
}
