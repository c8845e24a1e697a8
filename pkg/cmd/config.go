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
	"bytes"
	"os"

	"github.com/consensys/go-crab/pkg/util/termio"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Config holds the settings which control an analysis run.  These can be
// given in a YAML configuration file, and overridden on the command line.
type Config struct {
	// Name of the abstract domain to use.  When empty, the domain named by the
	// program file (if any) is used, otherwise intervals.
	Domain string `yaml:"domain"`
	// Enables debug logging.
	Verbose bool `yaml:"verbose"`
	// Report transformer statistics after an analysis.
	Stats bool `yaml:"stats"`
	// Maximum number of blocks to execute (0 for no limit).
	MaxSteps uint `yaml:"max-steps"`
	// Colour mode, one of "auto", "always" or "never".
	Colour string `yaml:"colour"`
	// Interpret numbers as rationals rather than integers.
	Rationals bool `yaml:"rationals"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{Colour: termio.ColourAuto}
}

// LoadConfig reads a YAML configuration file.  Settings absent from the file
// keep their default values, whilst unknown settings are rejected.
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()
	//
	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "reading configuration %s", filename)
	}
	//
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	// An empty file is a valid (default) configuration
	if err := decoder.Decode(&config); err != nil && len(bytes.TrimSpace(data)) != 0 {
		return config, errors.Wrapf(err, "parsing configuration %s", filename)
	}
	//
	if err := checkColour(config.Colour); err != nil {
		return config, errors.Wrapf(err, "in %s", filename)
	}
	//
	return config, nil
}

func checkColour(mode string) error {
	switch mode {
	case termio.ColourAuto, termio.ColourAlways, termio.ColourNever:
		return nil
	default:
		return errors.Errorf("invalid colour mode %q", mode)
	}
}

// Determine the configuration for a given command.  This reads the
// configuration file (if given), and then applies any flags explicitly set on
// the command line.
func getConfig(cmd *cobra.Command) (Config, error) {
	var (
		config   = DefaultConfig()
		filename = GetString(cmd, "config")
		err      error
	)
	//
	if filename != "" {
		if config, err = LoadConfig(filename); err != nil {
			return config, err
		}
	}
	//
	flags := cmd.Flags()
	//
	if flags.Changed("verbose") {
		config.Verbose = GetFlag(cmd, "verbose")
	}
	//
	if flags.Lookup("domain") != nil && flags.Changed("domain") {
		config.Domain = GetString(cmd, "domain")
	}
	//
	if flags.Lookup("stats") != nil && flags.Changed("stats") {
		config.Stats = GetFlag(cmd, "stats")
	}
	//
	if flags.Lookup("max-steps") != nil && flags.Changed("max-steps") {
		config.MaxSteps = GetUint(cmd, "max-steps")
	}
	//
	if flags.Changed("colour") {
		config.Colour = GetString(cmd, "colour")
		//
		if err := checkColour(config.Colour); err != nil {
			return config, err
		}
	}
	//
	if flags.Lookup("rationals") != nil && flags.Changed("rationals") {
		config.Rationals = GetFlag(cmd, "rationals")
	}
	//
	return config, nil
}
