package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/quillaja/spacesim/internal/record"
	"github.com/quillaja/spacesim/internal/scenario"
	"github.com/quillaja/spacesim/internal/sim"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Summarize a snapshot or chunk file",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the built-in scenarios",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range scenario.Presets() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(presetsCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	path := args[0]
	if strings.HasSuffix(path, ".chunk") {
		return inspectChunk(cmd, path)
	}
	return inspectSnapshot(cmd, path)
}

func inspectChunk(cmd *cobra.Command, path string) error {
	idx, err := record.ReadChunk(path)
	if err != nil {
		return err
	}
	var lo, hi uint64
	first := true
	bodies := 0
	for frame, rows := range idx {
		if first || frame < lo {
			lo = frame
		}
		if first || frame > hi {
			hi = frame
		}
		first = false
		bodies += len(rows)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: frames %d..%d (%d), %s body rows\n",
		path, lo, hi, len(idx), humanize.Comma(int64(bodies)))
	return nil
}

func inspectSnapshot(cmd *cobra.Command, path string) error {
	snap, err := record.LoadSnapshot(path)
	if err != nil {
		return err
	}
	byCategory := make(map[sim.Category]int)
	for i := range snap.Bodies {
		byCategory[snap.Bodies[i].Category]++
	}
	cats := make([]sim.Category, 0, len(byCategory))
	for c := range byCategory {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: tick %s, %d bodies, saved %s\n",
		path, humanize.Comma(int64(snap.Tick)), len(snap.Bodies),
		humanize.Time(snap.SavedAt))
	fmt.Fprintf(out, "  gravity %.3g, time scale %.3g, paused %v\n",
		snap.Settings.Gravity, snap.Settings.TimeScale, snap.Settings.Paused)
	for _, c := range cats {
		fmt.Fprintf(out, "  %-24s %d\n", c, byCategory[c])
	}
	return nil
}
