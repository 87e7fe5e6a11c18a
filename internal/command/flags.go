// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/wbctl/internal/config"
)

func newSchemaFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "schema",
		Usage:       "dump the row attributes and exit",
		HideDefault: true,
	}
}

func newPassphraseFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "passphrase",
		Aliases: []string{"p"},
		Usage:   "encrypted snapshot passphrase",
	}
}

// NewGlobalFlags returns the listing flags shared by commands that emit rows.
func NewGlobalFlags(params ...string) (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "attrs",
			Aliases: []string{"a"},
			Usage:   "comma-separated list of attributes to include in results",
		},
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Value:   false,
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
		},
		newOutputFlag(params...),
		&cli.IntFlag{
			Name:  "padding",
			Usage: "spaces between text columns",
			Value: 2,
			Validator: func(value int) error {
				return FlagValidators(value, PaddingValidator)
			},
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of attributes to sort the results by",
		},
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Value:   false,
		},
	}

	return
}

// newOutputFlag returns --output, sourced from <ns>.output or output in the
// config file when params[0] names the namespace.
func newOutputFlag(params ...string) *cli.StringFlag {
	flag := &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output format (text, json, yaml, raw)",
		Value:   "text",
		Sources: cli.NewValueSourceChain(cli.EnvVar("WBCTL_OUTPUT")),
		Validator: func(value string) error {
			return FlagValidators(value, OutputValidator)
		},
	}

	if len(params) > 0 && params[0] != "" {
		if path, err := config.File(); err == nil {
			flag = NameSpacedValueChainFlagFromConfigFile(params[0], path, flag)
		}
	}
	return flag
}

// NewStoreFlags returns the flags locating the snapshot store: --store plus
// the S3 connection flags. Values fall back to <ns>.<flag> and <flag> in the
// config file.
func NewStoreFlags(ns string) []cli.Flag {
	path, _ := config.File()

	withConfig := func(flag *cli.StringFlag) *cli.StringFlag {
		if path == "" {
			return flag
		}
		return NameSpacedValueChainFlagFromConfigFile(ns, path, flag)
	}

	return []cli.Flag{
		withConfig(&cli.StringFlag{
			Name:    "store",
			Aliases: []string{"S"},
			Usage:   "snapshot store: a directory, a snapshot file, dir::book or s3://bucket/key",
			Sources: cli.NewValueSourceChain(cli.EnvVar("WBCTL_STORE")),
		}),
		withConfig(&cli.StringFlag{
			Name:    "region",
			Usage:   "AWS region of an s3 store",
			Sources: cli.NewValueSourceChain(cli.EnvVar("AWS_REGION")),
		}),
		withConfig(&cli.StringFlag{
			Name:    "profile",
			Usage:   "AWS shared config profile of an s3 store",
			Sources: cli.NewValueSourceChain(cli.EnvVar("AWS_PROFILE")),
		}),
		withConfig(&cli.StringFlag{
			Name:    "endpoint",
			Usage:   "custom S3 endpoint",
			Sources: cli.NewValueSourceChain(),
		}),
		&cli.IntFlag{
			Name:    "limit",
			Aliases: []string{"l"},
			Usage:   "limit the number of versions listed",
			Value:   0,
		},
		newPassphraseFlag(),
	}
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	src := yaml.YAML(ns+"."+flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	src = yaml.YAML(flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}
