// Command resdata generates, inspects and validates the profile CSV
// files the model variants are built from.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/chrwm/OSEMF-Comparison/internal/catalog"
	"github.com/chrwm/OSEMF-Comparison/internal/series"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "resdata: %v\n", err)
		os.Exit(2)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		return usageError()
	}

	switch args[0] {
	case "gen":
		return runGen(args[1:])
	case "stat":
		return runStat(args[1:])
	case "check":
		return runCheck(args[1:])
	default:
		return usageError()
	}
}

func usageError() error {
	return errors.New("usage: resdata <gen|stat|check> [flags]")
}

func runGen(args []string) error {
	fs := flag.NewFlagSet("gen", flag.ContinueOnError)
	variantName := fs.String("variant", "", "model variant to generate profiles for")
	out := fs.String("out", "", "output CSV path")
	seed := fs.Int64("seed", 1, "random seed")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *variantName == "" || *out == "" {
		return errors.New("gen requires -variant and -out")
	}

	v, err := catalog.Parse(*variantName)
	if err != nil {
		return err
	}
	if !v.NeedsDataset() {
		return fmt.Errorf("variant %s uses built-in constants, nothing to generate", v)
	}

	data := Generate(v, *seed)
	if err := data.WriteCSV(*out); err != nil {
		return err
	}

	fmt.Printf("wrote %s: %d columns, %d rows\n", *out, len(data.Columns()), data.Len())
	return nil
}

func runStat(args []string) error {
	fs := flag.NewFlagSet("stat", flag.ContinueOnError)
	in := fs.String("in", "", "profile CSV path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return errors.New("stat requires -in")
	}

	data, err := series.LoadCSV(*in)
	if err != nil {
		return err
	}

	fmt.Printf("%-24s %10s %10s %10s %10s %8s\n", "column", "mean", "std", "min", "max", "lf")
	for _, name := range data.Columns() {
		col, _ := data.Column(name)
		st := series.Summary(col)
		fmt.Printf("%-24s %10.4f %10.4f %10.4f %10.4f %7.1f%%\n",
			name, st.Mean, st.Std, st.Min, st.Max, series.LoadFactor(col)*100)
	}
	return nil
}

func runCheck(args []string) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	in := fs.String("in", "", "profile CSV path")
	variantName := fs.String("variant", "", "model variant the file is meant for")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" || *variantName == "" {
		return errors.New("check requires -in and -variant")
	}

	v, err := catalog.Parse(*variantName)
	if err != nil {
		return err
	}

	data, err := series.LoadCSV(*in)
	if err != nil {
		return err
	}

	var problems []string
	if data.Len() != v.Timesteps() {
		problems = append(problems, fmt.Sprintf("row count %d, want %d", data.Len(), v.Timesteps()))
	}
	for _, col := range v.ProfileColumns() {
		if _, ok := data.Column(col); !ok {
			problems = append(problems, fmt.Sprintf("missing column %q", col))
		}
	}

	if len(problems) > 0 {
		for _, p := range problems {
			fmt.Fprintf(os.Stderr, "%s: %s\n", *in, p)
		}
		return fmt.Errorf("%s does not fit variant %s", *in, v)
	}

	fmt.Printf("%s: ok for %s\n", *in, v)
	return nil
}
