// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config holds the gimme settings that are unmarshalled
// from Viper. Settings may come from command line flags, a YAML
// settings file or GIMME_ prefixed environment variables.
package config

import (
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/spf13/viper"

	"github.com/kortschak/gimme/splice"
)

// EnvPrefix is the prefix of environment variables holding settings.
// A setting named max-intron is read from GIMME_MAX_INTRON.
const EnvPrefix = "GIMME"

// Config is the root-level settings struct.
type Config struct {
	// assembly parameters
	GapSize       int  `mapstructure:"gap-size"`
	MinExon       int  `mapstructure:"min-exon"`
	MaxIntron     int  `mapstructure:"max-intron"`
	MinUTR        int  `mapstructure:"min-utr"`
	MinTranscript int  `mapstructure:"min-transcript"`
	Min           bool `mapstructure:"min"`
	MaxPaths      int  `mapstructure:"max-paths"`

	// Out is the BED12 output path. Output is
	// written to stdout if Out is empty.
	Out string `mapstructure:"out"`
	// Err is the log output path. Logs are
	// written to stderr if Err is empty.
	Err string `mapstructure:"err"`
}

// NewViper returns a Viper holding the default settings and reading
// from the environment.
func NewViper() *viper.Viper {
	v := viper.New()
	p := splice.DefaultParams
	v.SetDefault("gap-size", p.GapSize)
	v.SetDefault("min-exon", p.MinExon)
	v.SetDefault("max-intron", p.MaxIntron)
	v.SetDefault("min-utr", p.MinUTR)
	v.SetDefault("min-transcript", p.MinTranscript)
	v.SetDefault("min", p.Min)
	v.SetDefault("max-paths", p.MaxPaths)
	v.SetDefault("out", "")
	v.SetDefault("err", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// New returns the Config held by v, reading the settings file at path
// first if it is not empty.
func New(v *viper.Viper, path string) (Config, error) {
	var c Config
	if path != "" {
		v.SetConfigFile(path)
		err := v.ReadInConfig()
		if err != nil {
			return c, errors.E(err, "config: failed to read settings:", path)
		}
	}
	err := v.Unmarshal(&c)
	if err != nil {
		return c, errors.E(errors.Invalid, err, "config: unable to decode settings")
	}
	return c, nil
}

// Params returns the validated assembly parameters of the Config.
func (c Config) Params() (splice.Params, error) {
	p := splice.Params{
		GapSize:       c.GapSize,
		MinExon:       c.MinExon,
		MaxIntron:     c.MaxIntron,
		MinUTR:        c.MinUTR,
		MinTranscript: c.MinTranscript,
		Min:           c.Min,
		MaxPaths:      c.MaxPaths,
	}
	return p, p.Validate()
}
