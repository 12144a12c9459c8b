// Copyright 2025 go-vector Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/ajroetker/go-vector/internal/selfcheck"
	"github.com/ajroetker/go-vector/vector"
)

// errChecksFailed is returned when a suite ran to completion but found
// mismatches. The reports have already been printed.
var errChecksFailed = errors.New("checks failed")

type cli struct {
	seed     uint64
	workers  int
	logLevel string
	json     bool

	logger *zap.Logger
}

func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	level, err := zapcore.ParseLevel(c.logLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	config.OutputPaths = []string{"stderr"}
	c.logger, err = config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	c.logger.Debug("starting", zap.String("command", cmd.Name()), zap.Uint64("seed", c.seed))
	return nil
}

func (c *cli) options() selfcheck.Options {
	return selfcheck.Options{Seed: c.seed, Workers: c.workers, Logger: c.logger}
}

func (c *cli) speciesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "species",
		Short: "List every standard species and the platform's maximum shape",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.printSpecies(cmd.OutOrStdout())
		},
	}
}

type speciesRow struct {
	Name    string `json:"name"`
	Element string `json:"element"`
	Bits    int    `json:"bits"`
	Lanes   int    `json:"lanes"`
}

func (c *cli) printSpecies(w io.Writer) error {
	var rows []speciesRow
	for _, s := range vector.AllSpecies() {
		rows = append(rows, speciesRow{
			Name:    s.String(),
			Element: s.ElementType().String(),
			Bits:    s.TotalBits(),
			Lanes:   s.LaneCount(),
		})
	}
	if c.json {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}
	fmt.Fprintf(w, "platform: %s, max shape: %d bits\n", vector.PlatformName(), vector.MaxBits())
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SPECIES\tELEMENT\tBITS\tLANES")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n", r.Name, r.Element, r.Bits, r.Lanes)
	}
	return tw.Flush()
}

func (c *cli) suiteCmd(suite selfcheck.Suite) *cobra.Command {
	return &cobra.Command{
		Use:   suite.Name,
		Short: fmt.Sprintf("Run the %s self-check", suite.Name),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rep, err := suite.Run(cmd.Context(), c.options())
			if err != nil {
				return err
			}
			return c.report(cmd.OutOrStdout(), []selfcheck.Report{rep})
		},
	}
}

func (c *cli) allCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Run every self-check concurrently",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			suites := selfcheck.Suites()
			reports := make([]selfcheck.Report, len(suites))
			g, ctx := errgroup.WithContext(cmd.Context())
			for i, suite := range suites {
				g.Go(func() error {
					rep, err := suite.Run(ctx, c.options())
					if err != nil {
						return fmt.Errorf("%s: %w", suite.Name, err)
					}
					reports[i] = rep
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}
			return c.report(cmd.OutOrStdout(), reports)
		},
	}
}

func (c *cli) report(w io.Writer, reports []selfcheck.Report) error {
	failed := false
	for _, r := range reports {
		failed = failed || !r.Passed()
	}
	if c.json {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(reports); err != nil {
			return err
		}
	} else {
		for _, r := range reports {
			status := "ok"
			if !r.Passed() {
				status = "FAIL"
			}
			fmt.Fprintf(w, "%-4s  %-10s  %d checked, %d failed\n", status, r.Name, r.Checked, r.Failed)
			for _, f := range r.Failures {
				fmt.Fprintf(w, "      %s\n", f)
			}
		}
	}
	if failed {
		return errChecksFailed
	}
	return nil
}
