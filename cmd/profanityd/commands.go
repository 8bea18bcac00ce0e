package main

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"profanityd/internal/registry"
)

func newModelsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "Print the resolved model list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			log, err := newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			models, err := registry.Resolve(cfg, log)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), models)
		},
	}
}

func newCheckCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check the inference runtime and model files without loading",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			mgr, err := buildManager(cfg, zerolog.Nop())
			if err != nil {
				return err
			}
			r := mgr.SanityCheck()
			if err := printJSON(cmd.OutOrStdout(), r); err != nil {
				return err
			}
			if !r.ONNXBuilt {
				return errors.New("binary built without onnx support (rebuild with -tags=onnx)")
			}
			if !r.LibraryFound {
				return errors.New("onnxruntime shared library not available")
			}
			for _, m := range r.Models {
				if !m.OK {
					return errors.New("model files missing for " + m.ID)
				}
			}
			return nil
		},
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
