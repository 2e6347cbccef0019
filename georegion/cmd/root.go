/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package cmd

import (
	goflag "flag"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/hypermodeinc/georegion/georegion/cmd/grid"
	"github.com/hypermodeinc/georegion/georegion/cmd/lookup"
	"github.com/hypermodeinc/georegion/georegion/cmd/version"
	"github.com/hypermodeinc/georegion/x"
)

// RootCmd is the georegion command. It does nothing without a sub-command.
var RootCmd = &cobra.Command{
	Use:   "georegion",
	Short: "georegion: geographic regions and grids",
	Long: `
georegion builds polygonal regions on the earth's surface from rectangles,
borders, circles, buffered lines or GeoJSON, samples them on a regular lat/lon
grid and maps arbitrary locations to grid nodes.
` + x.BuildDetails(),
	PersistentPreRunE: cobra.NoArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

// Execute runs RootCmd and exits with status 1 on error.
func Execute() {
	goflag.Parse()
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

var rootConf = viper.New()

var subcommands = []*x.SubCommand{
	&grid.Grid, &lookup.Lookup, &version.Version,
}

func init() {
	RootCmd.PersistentFlags().String("config", "",
		"Configuration file. Takes precedence over default values, but is "+
			"overridden to values set with environment variables and flags.")
	x.Check(rootConf.BindPFlags(RootCmd.PersistentFlags()))

	flag.CommandLine.AddGoFlagSet(goflag.CommandLine)
	// glog writes everything to stderr; the threshold is not configurable.
	x.Check(flag.Set("stderrthreshold", "0"))
	x.Check(flag.CommandLine.MarkDeprecated("stderrthreshold",
		"georegion always sets this flag to 0. It can't be overwritten."))

	for _, sc := range subcommands {
		RootCmd.AddCommand(sc.Cmd)
		sc.Conf = viper.New()
		x.Checkf(sc.Conf.BindPFlags(sc.Cmd.Flags()), "binding flags of %s", sc.Cmd.Name())
		x.Checkf(sc.Conf.BindPFlags(RootCmd.PersistentFlags()), "binding global flags of %s", sc.Cmd.Name())
		sc.Conf.AutomaticEnv()
		sc.Conf.SetEnvPrefix(sc.EnvPrefix)
	}
	cobra.OnInitialize(func() {
		cfg := rootConf.GetString("config")
		if cfg == "" {
			return
		}
		for _, sc := range subcommands {
			sc.Conf.SetConfigFile(cfg)
			x.Check(x.Wrapf(sc.Conf.ReadInConfig(), "reading config"))
		}
	})
}
