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

// Command vectorcheck runs the vector package's differential self-checks
// and prints the species table of the running platform.
//
//	vectorcheck species
//	vectorcheck all --seed 7 --workers 8 --json
//
// It exits with status 1 when any check fails.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ajroetker/go-vector/internal/selfcheck"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, errChecksFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "vectorcheck",
		Short: "Self-checks for the portable vector package",
		Long: `vectorcheck compares the vector package against independent scalar
reference code: every conversion between species, masked expression
evaluation and fusion, population counts and reinterpret round trips.

Inputs are random but reproducible from --seed.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}
	flags := root.PersistentFlags()
	flags.Uint64Var(&c.seed, "seed", 1, "Seed for the random inputs")
	flags.IntVar(&c.workers, "workers", 0, "Worker pool size (default: GOMAXPROCS)")
	flags.StringVar(&c.logLevel, "log-level", "warn", "Log level: debug, info, warn or error")
	flags.BoolVar(&c.json, "json", false, "Print results as JSON")

	root.AddCommand(c.speciesCmd(), c.allCmd())
	for _, suite := range selfcheck.Suites() {
		root.AddCommand(c.suiteCmd(suite))
	}
	return root
}
