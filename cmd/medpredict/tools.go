package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"medpredict/internal/features"
	"medpredict/pkg/types"
)

func newModelsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List classifier artifacts found in the models directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(opts)
			if err != nil {
				return err
			}
			reg, err := scanModels(cfg.ModelsDir, newLogger(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat))
			if err != nil {
				return err
			}
			return printModels(cmd.OutOrStdout(), reg)
		},
	}
}

func printModels(w io.Writer, reg []types.Model) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDISEASE\tKIND\tFEATURES\tPATH")
	for _, m := range reg {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", m.ID, m.Disease, m.Kind, m.NumFeatures, m.Path)
	}
	return tw.Flush()
}

func newSchemaCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "schema <disease>",
		Short: "Print the feature order an artifact for the disease must use",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, ok := features.Lookup(args[0])
			if !ok {
				return fmt.Errorf("unknown disease %q (known: %s)", args[0], strings.Join(diseaseIDs(), ", "))
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(s.Info(""))
			}
			for i, key := range s.Order {
				f, _ := s.Field(key)
				fmt.Fprintf(out, "%2d  %-20s %s\n", i, key, f.Label)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full form schema as JSON")
	return cmd
}

func newPredictCmd(opts *options) *cobra.Command {
	var (
		disease string
		model   string
		sets    []string
	)
	cmd := &cobra.Command{
		Use:     "predict",
		Short:   "Run a single prediction against the local artifacts",
		Example: "  medpredict predict --disease lung_cancer --set age=64 --set smoking=Yes",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseSet(sets)
			if err != nil {
				return err
			}
			cfg, err := resolveConfig(opts)
			if err != nil {
				return err
			}
			log := newLogger(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
			reg, err := scanModels(cfg.ModelsDir, log)
			if err != nil {
				return err
			}
			mgr := newManager(cfg, reg, log)
			defer mgr.Close()
			resp, err := mgr.Predict(cmd.Context(), types.PredictRequest{Disease: disease, Model: model, Values: values})
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(resp)
		},
	}
	cmd.Flags().StringVar(&disease, "disease", "", "Disease id, e.g. lung_cancer")
	cmd.Flags().StringVar(&model, "model", "", "Model id (defaults to the model bound to the disease)")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Field value as key=value (repeatable)")
	_ = cmd.MarkFlagRequired("disease")
	return cmd
}

// parseSet turns repeated key=value flags into request values.
func parseSet(sets []string) (map[string]any, error) {
	values := make(map[string]any, len(sets))
	for _, s := range sets {
		k, v, ok := strings.Cut(s, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --set %q, want key=value", s)
		}
		values[k] = v
	}
	return values, nil
}

func diseaseIDs() []string {
	var ids []string
	for _, s := range features.All() {
		ids = append(ids, s.Disease)
	}
	sort.Strings(ids)
	return ids
}
