// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tomtom215/stylist/internal/filter"
	"github.com/tomtom215/stylist/internal/wardrobe"
)

// ErrNothingFits is returned when no item passes both gates.
var ErrNothingFits = errors.New("no wardrobe item passes the occasion and weather gates")

type validateOptions struct {
	file     string
	occasion string
	style    string
	weather  string
}

func validateCmd(root *rootOptions) *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a wardrobe against the occasion and weather gates",
		Long: `Normalize every item of a request file and report, per item, whether the
hard filter admits it for the occasion and style and whether it suits the
temperature. Exits non-zero when nothing passes both.`,
		Example: `  stylectl validate -f wardrobe.yaml --occasion gym --weather 85`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "request file (YAML or JSON)")
	cmd.Flags().StringVar(&opts.occasion, "occasion", "", "occasion (default: file occasion)")
	cmd.Flags().StringVar(&opts.style, "style", "", "style (default: file style)")
	cmd.Flags().StringVar(&opts.weather, "weather", "", "weather: temperature, description or JSON object")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runValidate(cmd *cobra.Command, root *rootOptions, opts *validateOptions) error {
	req, err := loadRequestFile(opts.file)
	if err != nil {
		return err
	}
	applyOverride(&req.Occasion, opts.occasion)
	applyOverride(&req.Style, opts.style)
	if opts.weather != "" {
		req.Weather = rawFlag(opts.weather)
	}

	engine, err := root.newEngine(0)
	if err != nil {
		return err
	}
	hard := engine.HardFilter()
	weather, warnings := wardrobe.DecodeWeather(req.Weather)

	items := wardrobe.Normalizer{}.NormalizeAll(req.Wardrobe)
	out := cmd.OutOrStdout()
	if dropped := len(req.Wardrobe) - len(items); dropped > 0 {
		fmt.Fprintf(out, "dropped %d item(s) without an id\n", dropped)
	}
	for _, w := range warnings {
		fmt.Fprintf(out, "warning: %s\n", w)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tTYPE\tCATEGORY\tOCCASION\tWEATHER\tREASON\n")
	passing := 0
	for i := range items {
		item := &items[i]
		decision := hard.Evaluate(item, req.Occasion, req.Style)
		weatherOK := filter.WeatherAppropriate(item, weather.TemperatureF)
		if decision.Allowed && weatherOK {
			passing++
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			item.ID, item.Type, item.Category,
			verdict(decision.Allowed), verdict(weatherOK), reasonOf(decision))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "%d of %d item(s) fit occasion=%q style=%q at %.0fF\n",
		passing, len(items), req.Occasion, req.Style, weather.TemperatureF)
	if passing == 0 {
		return ErrNothingFits
	}
	return nil
}

func verdict(ok bool) string {
	if ok {
		return "ok"
	}
	return "blocked"
}

func reasonOf(d filter.Decision) string {
	if d.Reason == "" {
		return "-"
	}
	return fmt.Sprintf("%s: %s", d.Tier, d.Reason)
}
