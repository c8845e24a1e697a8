// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"fmt"
	"os"

	"github.com/consensys/go-crab/pkg/domain"
	"github.com/consensys/go-crab/pkg/util/termio"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [flags] program_file",
	Short: "Analyse a program along a single path.",
	Long: `Analyse a program along a single path through its control-flow graph,
	reporting the invariant holding after each block.  By default, the path
	starts at the entry block and follows the first successor of each block.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		config, err := getConfig(cmd)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		applyVerbosity(config)
		//
		opts := RunOptions{config, GetStringArray(cmd, "path"), GetFlag(cmd, "print-cfg")}
		opts.Colour = resolveColour(config)
		//
		if err := Analyse(os.Stdout, args[0], opts); err != nil {
			fmt.Println(err)
			os.Exit(3)
		}
	},
}

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [flags] program_file...",
	Short: "Check one or more programs are well-formed.",
	Long:  `Check one or more programs are well-formed, printing their control-flow graphs.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		config, err := getConfig(cmd)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		applyVerbosity(config)
		//
		config.Colour = resolveColour(config)
		failed := false
		//
		for _, filename := range args {
			if err := Check(os.Stdout, filename, config); err != nil {
				fmt.Println(err)
				//
				failed = true
			}
		}
		//
		if failed {
			os.Exit(3)
		}
	},
}

// Enable debug logging when the configuration file asks for it, since the
// root command only sees the flag.
func applyVerbosity(config Config) {
	if config.Verbose {
		log.SetLevel(log.DebugLevel)
	}
}

// Resolve the colour mode for standard output to either "always" or "never".
func resolveColour(config Config) string {
	if termio.ColourEnabled(config.Colour, os.Stdout) {
		return termio.ColourAlways
	}
	//
	return termio.ColourNever
}

func init() {
	runCmd.Flags().StringP("domain", "d", "", fmt.Sprintf("abstract domain to use (%v)", domain.Names()))
	runCmd.Flags().StringSlice("path", nil, "comma-separated labels of the blocks to execute")
	runCmd.Flags().Bool("print-cfg", false, "print the control-flow graph before analysing it")
	runCmd.Flags().Bool("stats", false, "report transformer statistics")
	runCmd.Flags().Uint("max-steps", 0, "maximum number of blocks to execute (0 for no limit)")
	runCmd.Flags().Bool("rationals", false, "interpret numbers as rationals")
	checkCmd.Flags().Bool("rationals", false, "interpret numbers as rationals")
	//
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(checkCmd)
}
