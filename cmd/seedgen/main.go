// Command seedgen writes a seed dataset to a YAML file that the mock backend
// can load with SEED_SOURCE=file.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rentloop/rentloop/internal/seed"
)

type options struct {
	source      string
	databaseURL string
	driver      string
	users       int
	items       int
	fakeSeed    int64
	password    string
	format      string
	out         string
}

func main() {
	var opts options
	flag.StringVar(&opts.source, "source", string(seed.SourceFake), "Dataset source: builtin, fake or postgres")
	flag.StringVar(&opts.databaseURL, "database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string for -source=postgres")
	flag.StringVar(&opts.driver, "driver", "pgx", "database/sql driver: pgx or postgres")
	flag.IntVar(&opts.users, "users", 10, "Number of generated users")
	flag.IntVar(&opts.items, "items", 50, "Number of generated items")
	flag.Int64Var(&opts.fakeSeed, "seed", time.Now().UnixNano(), "Generator seed for -source=fake")
	flag.StringVar(&opts.password, "password", "", "Hash this password onto users without one (enables VERIFY_CREDENTIALS)")
	flag.StringVar(&opts.format, "format", "yaml", "Output format: yaml, or json for inspection (omits password hashes)")
	flag.StringVar(&opts.out, "out", "-", "Output file, - for stdout")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := run(ctx, opts, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, stdout io.Writer) error {
	src := seed.Source(opts.source)
	if src == seed.SourceFile {
		return fmt.Errorf("source %q is not supported; seedgen produces seed files", src)
	}

	ds, err := seed.Load(ctx, seed.Options{
		Source:         src,
		FakeUsers:      opts.users,
		FakeItems:      opts.items,
		FakeSeed:       opts.fakeSeed,
		DatabaseURL:    opts.databaseURL,
		DatabaseDriver: opts.driver,
	})
	if err != nil {
		return err
	}

	if opts.password != "" {
		if err := ds.HashMissingPasswords(opts.password); err != nil {
			return err
		}
	}

	w := stdout
	if opts.out != "" && opts.out != "-" {
		f, err := os.OpenFile(opts.out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
		if err != nil {
			return fmt.Errorf("open output: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch strings.ToLower(opts.format) {
	case "yaml":
		return ds.WriteYAML(w)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(ds)
	default:
		return fmt.Errorf("invalid format %q; use yaml or json", opts.format)
	}
}
