/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package grid

import (
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/hypermodeinc/georegion/export"
	"github.com/hypermodeinc/georegion/geo"
	"github.com/hypermodeinc/georegion/x"
)

// Grid is the sub-command invoked when running "georegion grid".
var Grid x.SubCommand

func init() {
	Grid.Cmd = &cobra.Command{
		Use:   "grid",
		Short: "Build a gridded region and write it out",
		Long: `
Grid builds a region from exactly one of --rect, --border, --circle, --line or
--geojson, samples it at --spacing degrees and writes the result as GeoJSON,
XML or WKB.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd)
		},
		Annotations: map[string]string{"group": "default"},
	}
	Grid.EnvPrefix = "GEOREGION_GRID"
	Grid.Cmd.SetHelpTemplate(x.NonRootTemplate)

	flags := Grid.Cmd.Flags()
	AddRegionFlags(flags)
	flags.StringP("format", "f", string(export.GeoJSON), "Output format: geojson, xml or wkb.")
	flags.StringP("out", "o", "", "Output file. Defaults to stdout.")
}

// AddRegionFlags registers the flags read by Build.
func AddRegionFlags(flags *flag.FlagSet) {
	flags.String("rect", "", "Rectangle with opposite corners lat1,lon1,lat2,lon2.")
	flags.String("border", "", `Border vertices as "lat,lon;lat,lon;...".`)
	flags.String("circle", "", "Circle as lat,lon,radius_km.")
	flags.String("line", "", `Polyline to buffer as "lat,lon;lat,lon;...".`)
	flags.Float64("buffer", 0, "Buffer distance in km around --line.")
	flags.String("geojson", "", "File holding a GeoJSON polygon, feature or feature collection.")
	flags.String("border_type", geo.MercatorLinear.String(),
		"How border vertices are joined: mercator_linear or great_circle.")
	flags.String("name", "", "Region name.")
	flags.Float64("spacing", 0.1, "Grid spacing in degrees.")
	flags.String("anchor", "", "Grid anchor as lat,lon. Defaults to the region's minimum corner.")
}

func run(cmd *cobra.Command) error {
	format, err := export.ParseFormat(Grid.GetStringP("format", "f", string(export.GeoJSON)))
	if err != nil {
		return err
	}
	g, err := Build(Grid.Conf)
	if err != nil {
		return err
	}
	data, err := export.Encode(g, format)
	if err != nil {
		return err
	}
	out := Grid.GetStringP("out", "o", "")
	if out == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		return errors.Wrapf(err, "while writing %s", out)
	}
	glog.Infof("Wrote %s nodes of %q to %s as %s (%s)", humanize.Comma(int64(g.NodeCount())),
		g.Name(), out, format, humanize.Bytes(uint64(len(data))))
	return nil
}

// Build constructs the gridded region described by conf.
func Build(conf *viper.Viper) (*geo.GriddedRegion, error) {
	region, err := buildRegion(conf)
	if err != nil {
		return nil, err
	}
	var anchor *geo.Location
	if s := conf.GetString("anchor"); s != "" {
		loc, err := geo.ParseLocation(s)
		if err != nil {
			return nil, errors.Wrapf(err, "--anchor")
		}
		anchor = &loc
	}
	g, err := geo.NewGriddedRegion(region, conf.GetFloat64("spacing"), anchor)
	if err != nil {
		return nil, err
	}
	if name := conf.GetString("name"); name != "" {
		g = g.Named(name)
	}
	glog.V(1).Infof("Region %q covers %s km² with %s nodes", g.Name(),
		humanize.Commaf(math.Round(g.SphericalArea())), humanize.Comma(int64(g.NodeCount())))
	if g.IsEmpty() {
		glog.Warningf("Region %q has no nodes at spacing %v", g.Name(), g.Spacing())
	}
	return g, nil
}

var shapeFlags = []string{"rect", "border", "circle", "line", "geojson"}

func buildRegion(conf *viper.Viper) (*geo.Region, error) {
	var shape string
	for _, f := range shapeFlags {
		if conf.GetString(f) == "" {
			continue
		}
		if shape != "" {
			return nil, errors.Errorf("--%s and --%s may not be used together", shape, f)
		}
		shape = f
	}
	if shape == "" {
		return nil, errors.Errorf("one of --%s is required", strings.Join(shapeFlags, ", --"))
	}
	typ, err := geo.ParseBorderType(conf.GetString("border_type"))
	if err != nil {
		return nil, err
	}

	val := conf.GetString(shape)
	switch shape {
	case "rect":
		parts := strings.Split(val, ",")
		if len(parts) != 4 {
			return nil, errors.Errorf("--rect %q must be lat1,lon1,lat2,lon2", val)
		}
		loc1, err := geo.ParseLocation(parts[0] + "," + parts[1])
		if err != nil {
			return nil, err
		}
		loc2, err := geo.ParseLocation(parts[2] + "," + parts[3])
		if err != nil {
			return nil, err
		}
		return geo.NewRectangularRegion(loc1, loc2)

	case "border":
		l, err := geo.ParseLocationList(val)
		if err != nil {
			return nil, err
		}
		return geo.NewRegion(l, typ)

	case "circle":
		parts := strings.Split(val, ",")
		if len(parts) != 3 {
			return nil, errors.Errorf("--circle %q must be lat,lon,radius", val)
		}
		center, err := geo.ParseLocation(parts[0] + "," + parts[1])
		if err != nil {
			return nil, err
		}
		radius, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "--circle radius")
		}
		return geo.NewCircularRegion(center, radius)

	case "line":
		l, err := geo.ParseLocationList(val)
		if err != nil {
			return nil, err
		}
		return geo.NewBufferedRegion(l, conf.GetFloat64("buffer"))

	default:
		data, err := os.ReadFile(val)
		if err != nil {
			return nil, errors.Wrapf(err, "while reading %s", val)
		}
		return export.RegionFromGeoJSON(data, typ)
	}
}
