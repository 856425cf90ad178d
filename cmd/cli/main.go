package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"bsx-tools/internal/bsx"
	"bsx-tools/internal/export"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "info":
		cmdInfo(os.Args[2:])
	case "runs":
		cmdRuns(os.Args[2:])
	case "dynamics":
		cmdDynamics(os.Args[2:])
	case "export":
		cmdExport(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  bsx info --archive export.bsx")
	fmt.Println("  bsx runs --archive export.bsx [--named]")
	fmt.Println("  bsx dynamics --archive export.bsx --run RUN:<uuid>")
	fmt.Println("  bsx export --archive export.bsx --run RUN:<uuid> --dynamic <NAME>:<uuid> --out out.csv")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - runs lists every run in the archive; --named keeps only runs with a description")
	fmt.Println("  - export writes the dynamic's timeseries as CSV with time/timestep columns")
}

func openArchive(path string) *bsx.Archive {
	a, err := bsx.Open(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return a
}

func cmdInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	archivePath := fs.String("archive", "", "Path to a .bsx archive")
	_ = fs.Parse(args)
	requireFlag(*archivePath, "--archive")

	a := openArchive(*archivePath)
	defer a.Close()

	settlementID, err := a.SettlementID()
	if err != nil {
		fatal(err)
	}
	runs, err := a.Runs(false)
	if err != nil {
		fatal(err)
	}
	named := 0
	for _, r := range runs {
		if r.Named() {
			named++
		}
	}

	fmt.Printf("settlement: %s\n", settlementID)
	fmt.Printf("runs:       %d (%d named)\n", len(runs), named)
}

func cmdRuns(args []string) {
	fs := flag.NewFlagSet("runs", flag.ExitOnError)
	archivePath := fs.String("archive", "", "Path to a .bsx archive")
	namedOnly := fs.Bool("named", false, "Only list runs with a description")
	_ = fs.Parse(args)
	requireFlag(*archivePath, "--archive")

	a := openArchive(*archivePath)
	defer a.Close()

	runs, err := a.Runs(*namedOnly)
	if err != nil {
		fatal(err)
	}

	fmt.Printf("%-42s %-20s %-10s %-10s %-8s %s\n", "run", "description", "start", "horizon", "complete", "tags")
	for _, r := range runs {
		created := time.Unix(r.Timestamp, 0).UTC().Format("2006-01-02")
		desc := r.Description
		if desc == "" {
			desc = "-"
		}
		fmt.Printf("%-42s %-20s %-10d %-10d %-8v %s  (created %s)\n",
			r.ID, desc, r.StartTime, r.TimeHorizon, r.Complete, strings.Join(r.Tags, ","), created)
	}
}

func cmdDynamics(args []string) {
	fs := flag.NewFlagSet("dynamics", flag.ExitOnError)
	archivePath := fs.String("archive", "", "Path to a .bsx archive")
	runID := fs.String("run", "", "Run id (RUN:<uuid>)")
	_ = fs.Parse(args)
	requireFlag(*archivePath, "--archive")
	requireFlag(*runID, "--run")

	a := openArchive(*archivePath)
	defer a.Close()

	dynamics, err := a.Dynamics(*runID)
	if err != nil {
		fatal(err)
	}

	fmt.Printf("%-50s %-12s %-8s %s\n", "dynamic", "cardinality", "type", "timeseries")
	for _, d := range dynamics {
		exists, err := a.TimeseriesExists(*runID, d.ID)
		if err != nil {
			fatal(err)
		}
		persisted := "absent"
		if exists {
			persisted = "present"
		}
		fmt.Printf("%-50s %-12d %-8s %s\n", d.ID, d.Cardinality, d.Type, persisted)
	}
}

func cmdExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	archivePath := fs.String("archive", "", "Path to a .bsx archive")
	runID := fs.String("run", "", "Run id (RUN:<uuid>)")
	dynamicID := fs.String("dynamic", "", "Dynamic id (<NAME>:<uuid>)")
	outPath := fs.String("out", "timeseries.csv", "Output CSV path")
	_ = fs.Parse(args)
	requireFlag(*archivePath, "--archive")
	requireFlag(*runID, "--run")
	requireFlag(*dynamicID, "--dynamic")

	a := openArchive(*archivePath)
	defer a.Close()

	table, err := a.Timeseries(*runID, *dynamicID)
	if err != nil {
		fatal(err)
	}

	if dir := filepath.Dir(*outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fatal(err)
		}
	}
	if err := export.WriteTableCSV(*outPath, table); err != nil {
		fatal(err)
	}

	fmt.Printf("Wrote %d rows to %s\n", table.Len(), *outPath)
}

func requireFlag(value, name string) {
	if value == "" {
		fmt.Printf("%s is required\n", name)
		os.Exit(2)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
