// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"google.golang.org/api/option"

	"github.com/steinwurf/benchplot/benchagg"
	"github.com/steinwurf/benchplot/benchchart"
	"github.com/steinwurf/benchplot/internal/blob"
	"github.com/steinwurf/benchplot/report"
)

// A usageError reports a malformed command line.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func usagef(format string, args ...interface{}) error {
	return &usageError{fmt.Errorf(format, args...)}
}

// env is the state shared by the commands of one benchplot run.
type env struct {
	stdout io.Writer
	cfg    *viper.Viper
	log    *logrus.Logger

	store  *blob.Store
	format string
	report *report.Report

	// warnings collects the data warnings of the figure being built.
	warnings []string
}

// benchplot runs the command line args, writing tables to stdout and
// logs to stderr.
func benchplot(stdout, stderr io.Writer, args []string) error {
	log := logrus.New()
	log.SetOutput(stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	e := &env{stdout: stdout, cfg: viper.New(), log: log}
	root := e.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(context.Background())
	if err != nil && strings.HasPrefix(err.Error(), "unknown command") {
		err = &usageError{err}
	}
	if e.store != nil {
		if cerr := e.store.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func (e *env) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "benchplot",
		Short:         "Aggregate and plot erasure code benchmark results",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.setup(cmd)
		},
		// Plotting commands add figures to the report as they
		// run; it is written once they finish.
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return e.writeReport(cmd.Context())
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err}
	})

	fs := root.PersistentFlags()
	fs.String("csv_file", "out.csv", "read results from `file` (- for standard input, gs://bucket/object for Cloud Storage)")
	fs.String("saveas", "png", "write figures in `format`: "+strings.Join(benchchart.Formats, ", "))
	fs.String("out_dir", ".", "write figures to `dir` (local or gs://bucket/prefix)")
	fs.String("html", "", "also write an HTML report named `file` to --out_dir")
	fs.String("db", "", "read results from the archive `driver:dsn` instead of --csv_file")
	fs.Int64("upload", 0, "archive upload `id` to read (default latest)")
	fs.StringArray("where", nil, "only read archive rows with column `key=value` (repeatable)")
	fs.String("credentials", "", "Cloud Storage credentials `file`")
	fs.Bool("quiet", false, "do not print aggregated tables")
	fs.BoolP("verbose", "v", false, "log progress")
	fs.String("config", "", "read flag defaults from config `file` (YAML, TOML or JSON)")

	root.AddCommand(
		e.throughputCmd(),
		e.probabilityCmd(),
		e.rankCmd(),
		e.symbolsCmd(),
		e.overheadCmd(),
		e.importCmd(),
		e.uploadsCmd(),
	)
	return root
}

// noArgs rejects positional arguments as a usage error.
func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return usagef("%s takes no arguments, got %q", cmd.CommandPath(), args)
	}
	return nil
}

// setup binds the flags of cmd into the configuration and prepares
// logging and output.
func (e *env) setup(cmd *cobra.Command) error {
	v := e.cfg
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	v.SetEnvPrefix("BENCHPLOT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config: %w", err)
		}
	}

	if v.GetBool("verbose") {
		e.log.SetLevel(logrus.DebugLevel)
	}

	format, err := benchchart.Format(v.GetString("saveas"))
	if err != nil {
		return &usageError{fmt.Errorf("--saveas: %w", err)}
	}
	e.format = format

	var opts []option.ClientOption
	if cred := v.GetString("credentials"); cred != "" {
		opts = append(opts, option.WithCredentialsFile(cred))
	}
	e.store = blob.New(opts...)

	if v.GetString("html") != "" {
		e.report = &report.Report{Title: "benchplot " + cmd.Name()}
	}
	e.log.WithFields(logrus.Fields{"command": cmd.Name(), "flags": changedFlags(cmd.Flags())}).Debug("starting")
	return nil
}

func changedFlags(fs *pflag.FlagSet) string {
	var set []string
	fs.Visit(func(f *pflag.Flag) {
		set = append(set, f.Name+"="+f.Value.String())
	})
	return strings.Join(set, " ")
}

// warn logs a data warning and records it for the report.
func (e *env) warn(err error) {
	entry := e.log.WithFields(logrus.Fields{})
	msg := err.Error()
	var derr *benchagg.DataError
	if errors.As(err, &derr) {
		entry = entry.WithField("column", derr.Column)
		if derr.Group != "" {
			entry = entry.WithField("group", derr.Group)
		}
		msg = derr.Msg
	}
	entry.Warn(msg)
	e.warnings = append(e.warnings, err.Error())
}

func (e *env) writeReport(ctx context.Context) error {
	if e.report == nil {
		return nil
	}
	name := blob.Join(e.cfg.GetString("out_dir"), e.cfg.GetString("html"))
	w, err := e.store.Create(ctx, name)
	if err != nil {
		return err
	}
	if err := e.report.Write(w); err != nil {
		w.Close()
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	e.log.WithField("file", name).Debug("wrote report")
	return nil
}
