/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package lookup

import (
	"fmt"
	"text/tabwriter"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/hypermodeinc/georegion/geo"
	"github.com/hypermodeinc/georegion/georegion/cmd/grid"
	"github.com/hypermodeinc/georegion/x"
)

// Lookup is the sub-command invoked when running "georegion lookup".
var Lookup x.SubCommand

func init() {
	Lookup.Cmd = &cobra.Command{
		Use:   "lookup",
		Short: "Map locations to the nodes of a gridded region",
		Long: `
Lookup builds a gridded region from the same flags as grid and prints, for each
location in --loc, the index of the node whose cell holds it (-1 if none),
whether the region contains it, and the node's s2 cell.

A location can map to a node without being inside the region, and the reverse,
because nodes are assigned by cell and not by containment.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd)
		},
		Annotations: map[string]string{"group": "default"},
	}
	Lookup.EnvPrefix = "GEOREGION_LOOKUP"
	Lookup.Cmd.SetHelpTemplate(x.NonRootTemplate)

	flags := Lookup.Cmd.Flags()
	grid.AddRegionFlags(flags)
	flags.StringP("loc", "l", "", `Locations to look up as "lat,lon;lat,lon;...".`)
	flags.Int("level", geo.MaxCellLevel, "Level of the s2 cell printed for each node.")
}

func run(cmd *cobra.Command) error {
	locs, err := geo.ParseLocationList(Lookup.GetStringP("loc", "l", ""))
	if err != nil {
		return err
	}
	if locs.Len() == 0 {
		return errors.New("--loc is required")
	}
	g, err := grid.Build(Lookup.Conf)
	if err != nil {
		return err
	}
	level := Lookup.Conf.GetInt("level")

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "LOCATION\tINDEX\tCONTAINS\tNODE\tCELL")
	for _, loc := range locs.All() {
		idx := g.IndexForLocation(loc)
		contains := g.Contains(loc)
		node, cell := "-", "-"
		if n, ok := g.LocationForIndex(idx); ok {
			node = n.String()
			if id, ok := g.NodeCell(idx, level); ok {
				cell = id.ToToken()
			}
		}
		if (idx != geo.NoNode) != contains {
			glog.V(1).Infof("%v maps to node %d but contains=%v", loc, idx, contains)
		}
		fmt.Fprintf(w, "%v\t%d\t%v\t%s\t%s\n", loc, idx, contains, node, cell)
	}
	return w.Flush()
}
