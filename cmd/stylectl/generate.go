// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/stylist/internal/outfit"
	"github.com/tomtom215/stylist/internal/validation"
)

type generateOptions struct {
	file       string
	userID     string
	sessionID  string
	occasion   string
	style      string
	mood       string
	baseItemID string
	weather    string
	seed       int64
	count      int
	output     string
}

func generateCmd(root *rootOptions) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Compose an outfit from a request file",
		Long: `Compose one or more outfits from a request file. Flags override the
matching fields of the file. Repeated generations share a session, so
later outfits avoid items shown earlier.`,
		Example: `  stylectl generate -f wardrobe.yaml --occasion business --weather 38
  stylectl generate -f wardrobe.json --weather '"rainy"' --count 3 -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "request file (YAML or JSON)")
	cmd.Flags().StringVar(&opts.userID, "user", "", "user id (default: file userId, else \"local\")")
	cmd.Flags().StringVar(&opts.sessionID, "session", "", "session id")
	cmd.Flags().StringVar(&opts.occasion, "occasion", "", "occasion, e.g. business, gym, party")
	cmd.Flags().StringVar(&opts.style, "style", "", "style, e.g. minimalist, streetwear")
	cmd.Flags().StringVar(&opts.mood, "mood", "", "mood, e.g. confident, relaxed")
	cmd.Flags().StringVar(&opts.baseItemID, "base-item", "", "item id the outfit must include")
	cmd.Flags().StringVar(&opts.weather, "weather", "", "weather: temperature, description or JSON object")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "random seed (0 uses the configured seed)")
	cmd.Flags().IntVarP(&opts.count, "count", "n", 1, "number of outfits to generate")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "table", "output format (table, json)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runGenerate(cmd *cobra.Command, root *rootOptions, opts *generateOptions) error {
	if opts.count < 1 {
		return errors.New("--count must be at least 1")
	}
	if opts.output != "table" && opts.output != "json" {
		return fmt.Errorf("invalid output format: %s", opts.output)
	}

	req, err := loadRequestFile(opts.file)
	if err != nil {
		return err
	}
	applyOverride(&req.UserID, opts.userID)
	applyOverride(&req.SessionID, opts.sessionID)
	applyOverride(&req.Occasion, opts.occasion)
	applyOverride(&req.Style, opts.style)
	applyOverride(&req.Mood, opts.mood)
	applyOverride(&req.BaseItemID, opts.baseItemID)
	if opts.weather != "" {
		req.Weather = rawFlag(opts.weather)
	}
	if req.UserID == "" {
		req.UserID = "local"
	}
	if req.SessionID == "" && opts.count > 1 {
		req.SessionID = "stylectl"
	}
	if len(req.Wardrobe) == 0 {
		return fmt.Errorf("%s has no wardrobe items", opts.file)
	}

	if verr := validation.ValidateStruct(req); verr != nil {
		return verr
	}

	engine, err := root.newEngine(opts.seed)
	if err != nil {
		return err
	}

	outfits := make([]*outfit.GeneratedOutfit, 0, opts.count)
	for i := 0; i < opts.count; i++ {
		result, err := engine.Generate(cmd.Context(), req.ToEngineRequest())
		if err != nil {
			return fmt.Errorf("generation %d failed: %w", i+1, err)
		}
		outfits = append(outfits, result)
	}

	out := cmd.OutOrStdout()
	if opts.output == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(outfits)
	}
	for i, o := range outfits {
		if i > 0 {
			fmt.Fprintln(out)
		}
		printOutfit(out, o)
	}
	return nil
}

func applyOverride(field *string, value string) {
	if value != "" {
		*field = value
	}
}

func printOutfit(out io.Writer, o *outfit.GeneratedOutfit) {
	header := fmt.Sprintf("Outfit %s  strategy=%s  confidence=%.2f", o.ID, o.Strategy.Name, o.Confidence)
	if o.Emergency {
		header += "  (emergency)"
	}
	fmt.Fprintln(out, header)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tTYPE\tNAME\tCOLOR\tLAYER\n")
	for i := range o.Items {
		item := &o.Items[i]
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", item.ID, item.Type, item.Name, item.Color, item.Layer)
	}
	_ = w.Flush()

	for _, warning := range o.Warnings {
		fmt.Fprintf(out, "warning: %s\n", strings.TrimSpace(warning))
	}
}
