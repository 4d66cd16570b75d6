// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/mdhender/grpsum"
	"github.com/mdhender/grpsum/groups"
	"github.com/mdhender/grpsum/inputs"
	"github.com/mdhender/grpsum/pipelines/stages"
	"github.com/mdhender/grpsum/renderer"
	store "github.com/mdhender/grpsum/stores/sqlite"
	"github.com/mdhender/grpsum/web/handlers"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func main() {
	if err := cmdRoot(afero.NewOsFs()).Execute(); err != nil {
		os.Exit(1)
	}
}

// ingestFlags are the flags shared by every command that reads the input.
type ingestFlags struct {
	autoEOL         bool
	stripCR         bool
	skipMalformed   bool
	blankWhitespace bool
}

func (f *ingestFlags) add(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.autoEOL, "auto-eol", true, "automatically convert line endings")
	cmd.Flags().BoolVar(&f.stripCR, "strip-cr", false, "strip CR from end-of-lines")
	cmd.Flags().BoolVar(&f.skipMalformed, "skip-malformed", false, "skip lines that are not integers")
	cmd.Flags().BoolVar(&f.blankWhitespace, "blank-whitespace", false, "treat whitespace-only lines as group separators")
}

func cmdRoot(fs afero.Fs) *cobra.Command {
	var dbPath string
	var flags ingestFlags
	showDBStats := false
	showGroups := false
	showTiming := false
	addFlags := func(cmd *cobra.Command) error {
		cmd.PersistentFlags().Bool("debug", false, "log debugging information")
		cmd.PersistentFlags().Bool("log-with-default-flags", false, "log with default flags")
		cmd.PersistentFlags().Bool("log-with-shortfile", false, "log with short file name")
		cmd.PersistentFlags().Bool("log-with-timestamp", false, "log with timestamp")
		cmd.PersistentFlags().Bool("quiet", false, "log less information")
		cmd.PersistentFlags().Bool("show-version", false, "show version")
		cmd.PersistentFlags().Bool("verbose", false, "log more information")
		cmd.Flags().StringVar(&dbPath, "db", dbPath, "record the run in this database (see init-db)")
		cmd.Flags().BoolVar(&showDBStats, "show-db-stats", showDBStats, "dump row counts from each table")
		cmd.Flags().BoolVar(&showGroups, "show-groups", showGroups, "log every group and its sum")
		cmd.Flags().BoolVar(&showTiming, "show-timing", showTiming, "show timing for the run")
		flags.add(cmd)
		return nil
	}
	var cmd = &cobra.Command{
		Use:          "grpsum",
		Short:        "Report on groups of integers",
		Long:         fmt.Sprintf("Sum the blank-line separated groups of integers in %s and report the largest sum and the sum of the three largest.", inputs.DefaultPath),
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logWithDefaultFlags, _ := cmd.Flags().GetBool("log-with-default-flags")
			logWithShortFileName, _ := cmd.Flags().GetBool("log-with-shortfile")
			logWithTimestamp, _ := cmd.Flags().GetBool("log-with-timestamp")
			logFlags := 0
			if logWithShortFileName {
				logFlags |= log.Lshortfile
			}
			if logWithTimestamp {
				logFlags |= log.Ltime
			}
			if logWithDefaultFlags {
				logFlags = log.LstdFlags
			}
			log.SetFlags(logFlags)
			log.SetOutput(cmd.ErrOrStderr())

			if showVersion, _ := cmd.Flags().GetBool("show-version"); showVersion {
				fmt.Fprintf(cmd.ErrOrStderr(), "grpsum: version %q\n", grpsum.Version().Core())
			}

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			quiet, _ := cmd.Flags().GetBool("quiet")
			verbose, _ := cmd.Flags().GetBool("verbose")
			debug, _ := cmd.Flags().GetBool("debug")
			if quiet {
				verbose = false
			}

			started := time.Now()
			sqlStore, err := openStore(dbPath)
			if err != nil {
				return err
			}
			defer sqlStore.Close()

			res, err := ingest(ctx, cmd, fs, sqlStore, flags, debug)
			if err != nil {
				return err
			}
			if verbose && res.Duplicate {
				log.Printf("%s: already recorded as input %d\n", inputs.DefaultPath, res.InputID)
			}
			if showGroups {
				for _, g := range res.Groups {
					log.Printf("group %4d: lines %5d-%-5d sum %d\n", g.Seq, g.FirstLine, g.LastLine, g.Sum)
				}
			}

			if err := groups.Print(cmd.OutOrStdout(), res.Result); err != nil {
				return err
			}

			if showDBStats {
				stats, err := sqlStore.TableStats(ctx)
				if err != nil {
					return fmt.Errorf("get table stats: %w", err)
				}
				log.Println("database stats:")
				tables := make([]string, 0, len(stats))
				for table := range stats {
					tables = append(tables, table)
				}
				sort.Strings(tables)
				for _, table := range tables {
					log.Printf("  %-20s %d rows\n", table, stats[table])
				}
			}
			if showTiming {
				log.Printf("%s: completed in %v\n", inputs.DefaultPath, time.Since(started))
			}

			return nil
		},
	}
	if err := addFlags(cmd); err != nil {
		log.Fatal(err)
	}
	cmd.AddCommand(cmdHTML(fs))
	cmd.AddCommand(cmdInitDB())
	cmd.AddCommand(cmdServe(fs))
	cmd.AddCommand(cmdVersion())
	return cmd
}

// openStore opens the run history database, or an in-memory one when
// path is empty.
func openStore(path string) (*store.SQLiteStore, error) {
	if path == "" {
		s, err := store.NewSQLiteStore()
		if err != nil {
			return nil, fmt.Errorf("create store: %w", err)
		}
		return s, nil
	}
	s, err := store.NewSQLiteStoreWithConfig(store.StoreConfig{Path: path})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return s, nil
}

// ingest runs the default input through the pipeline. Malformed lines
// are reported as diagnostics on stderr.
func ingest(ctx context.Context, cmd *cobra.Command, fs afero.Fs, s stages.IngestStore, flags ingestFlags, debug bool) (*stages.IngestResult, error) {
	svc := stages.NewIngestService(s)
	svc.SetFS(fs)
	res, err := svc.IngestFile(ctx, stages.IngestRequest{
		Path:            inputs.DefaultPath,
		AutoEOL:         flags.autoEOL,
		StripCR:         flags.stripCR,
		SkipMalformed:   flags.skipMalformed,
		BlankWhitespace: flags.blankWhitespace,
		Debug:           debug,
	})
	if err == nil {
		return res, nil
	}
	if debug {
		log.Printf("ingest: %s: %v\n", stages.ErrorCode(err), err)
	}
	if src, loadErr := inputs.Load(fs, inputs.DefaultPath, inputs.WithAutoEOL(flags.autoEOL), inputs.WithStripCR(flags.stripCR)); loadErr == nil {
		if diag, ok := grpsum.DiagnosticFromError(err, src.Data); ok {
			grpsum.PrintDiagnostic(cmd.ErrOrStderr(), diag, inputs.DefaultPath, src.Data)
		}
	}
	return nil, err
}

func cmdHTML(fs afero.Fs) *cobra.Command {
	var flags ingestFlags
	var title string
	highlight := 3
	showValues := false
	addFlags := func(cmd *cobra.Command) error {
		cmd.Flags().StringVar(&title, "title", "Group Sums", "page title")
		cmd.Flags().IntVar(&highlight, "highlight", highlight, "highlight the groups with the largest sums")
		cmd.Flags().BoolVar(&showValues, "show-values", showValues, "list the values in each group")
		flags.add(cmd)
		return nil
	}
	var cmd = &cobra.Command{
		Use:          "html <output-file>",
		Short:        fmt.Sprintf("render an HTML summary of %s", inputs.DefaultPath),
		SilenceUsage: true,
		Args:         cobra.ExactArgs(1), // require path to output file
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			debug, _ := cmd.Flags().GetBool("debug")

			r, err := renderer.New(
				renderer.WithTitle(title),
				renderer.WithHighlightTop(highlight),
				renderer.WithShowValues(showValues),
				renderer.WithVersion(grpsum.Version().Core()),
			)
			if err != nil {
				return err
			}

			sqlStore, err := openStore("")
			if err != nil {
				return err
			}
			defer sqlStore.Close()

			res, err := ingest(ctx, cmd, fs, sqlStore, flags, debug)
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			if err := r.Render(ctx, &buf, res.Result, res.Groups); err != nil {
				return err
			}
			if err := afero.WriteFile(fs, args[0], buf.Bytes(), 0o644); err != nil {
				return err
			}
			log.Printf("%s: wrote %d bytes\n", args[0], buf.Len())
			return nil
		},
	}
	if err := addFlags(cmd); err != nil {
		log.Fatal(err)
	}
	return cmd
}

func cmdInitDB() *cobra.Command {
	var cmd = &cobra.Command{
		Use:          "init-db <database-file>",
		Short:        "create a database for recording runs",
		SilenceUsage: true,
		Args:         cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := store.InitDatabase(args[0]); err != nil {
				return err
			}
			log.Printf("%s: created\n", args[0])
			return nil
		},
	}
	return cmd
}

func cmdServe(fs afero.Fs) *cobra.Command {
	var flags ingestFlags
	var dbPath string
	serveAddr := ":8787"
	addFlags := func(cmd *cobra.Command) error {
		cmd.Flags().StringVar(&dbPath, "db", dbPath, "serve runs from this database (see init-db)")
		cmd.Flags().StringVar(&serveAddr, "serve-addr", serveAddr, "HTTP server listen address")
		flags.add(cmd)
		return nil
	}
	var cmd = &cobra.Command{
		Use:          "serve",
		Short:        fmt.Sprintf("record %s and serve the summary over HTTP", inputs.DefaultPath),
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			debug, _ := cmd.Flags().GetBool("debug")

			sqlStore, err := openStore(dbPath)
			if err != nil {
				return err
			}
			defer sqlStore.Close()

			res, err := ingest(ctx, cmd, fs, sqlStore, flags, debug)
			if err != nil {
				return err
			}
			log.Printf("%s: recorded as input %d\n", inputs.DefaultPath, res.InputID)

			r, err := renderer.New(renderer.WithShowValues(true), renderer.WithVersion(grpsum.Version().Core()))
			if err != nil {
				return err
			}

			server := &http.Server{
				Addr:         serveAddr,
				Handler:      routes(handlers.New(sqlStore, r)),
				ReadTimeout:  15 * time.Second,
				WriteTimeout: 15 * time.Second,
				IdleTimeout:  60 * time.Second,
			}

			shutdown := make(chan os.Signal, 1)
			signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

			go func() {
				log.Printf("server: listening on %s", serveAddr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatalf("server: %v", err)
				}
			}()

			<-shutdown
			log.Printf("server: shutting down gracefully")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("server shutdown: %w", err)
			}
			log.Printf("server: stopped")
			return nil
		},
	}
	if err := addFlags(cmd); err != nil {
		log.Fatal(err)
	}
	return cmd
}

func routes(h *handlers.Handlers) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", h.Index)
	mux.HandleFunc("/top", h.TopGroups)
	return mux
}

func cmdVersion() *cobra.Command {
	showBuildInfo := false
	addFlags := func(cmd *cobra.Command) error {
		cmd.Flags().BoolVar(&showBuildInfo, "build-info", showBuildInfo, "show build information")
		return nil
	}
	var cmd = &cobra.Command{
		Use:   "version",
		Short: "display the application's version number",
		RunE: func(cmd *cobra.Command, args []string) error {
			if showBuildInfo {
				fmt.Fprintln(cmd.OutOrStdout(), grpsum.Version().String())
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), grpsum.Version().Core())
			return nil
		},
	}
	if err := addFlags(cmd); err != nil {
		log.Fatal(err)
	}
	return cmd
}
