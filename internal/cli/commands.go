package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"nexus/internal/models"
	"nexus/internal/seed"
	"nexus/internal/service"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	opts := seed.DefaultOptions

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace the store contents with generated demo data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withState(cmd, rootOpts, func(state *service.State) error {
				doc := seed.NewFactory(opts.Seed, nil).Document(opts)
				if err := state.Import(cmd.Context(), doc); err != nil {
					return err
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "seeded %d users, %d posts, %d meetings, %d children\n",
					len(doc.Users), len(doc.Posts), len(doc.Meetings), len(doc.Children))
				return err
			})
		},
	}

	cmd.Flags().IntVar(&opts.Users, "users", opts.Users, "number of users")
	cmd.Flags().IntVar(&opts.Posts, "posts", opts.Posts, "number of posts")
	cmd.Flags().IntVar(&opts.Meetings, "meetings", opts.Meetings, "number of meetings")
	cmd.Flags().IntVar(&opts.Children, "children", opts.Children, "number of children")
	cmd.Flags().IntVar(&opts.MaxDays, "days", opts.MaxDays, "spread post timestamps over this many days")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "random seed (0 picks one)")

	return cmd
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	var out, format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the backup document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withState(cmd, rootOpts, func(state *service.State) error {
				body, err := encodeDocument(state.Export(), format)
				if err != nil {
					return err
				}
				if out == "" {
					_, err = cmd.OutOrStdout().Write(body)
					return err
				}
				return os.WriteFile(out, body, 0o600)
			})
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&format, "format", "json", "document format (json|yaml)")

	return cmd
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace users, posts, children and meetings from a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			doc, err := decodeDocument(raw, filepath.Ext(args[0]))
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			return withState(cmd, rootOpts, func(state *service.State) error {
				if err := state.Import(cmd.Context(), doc); err != nil {
					return err
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "imported %d users, %d posts, %d meetings, %d children\n",
					len(doc.Users), len(doc.Posts), len(doc.Meetings), len(doc.Children))
				return err
			})
		},
	}
}

var errWipeNotConfirmed = errors.New("refusing to wipe without --yes")

// NewWipeCommand creates the wipe command.
func NewWipeCommand(rootOpts *RootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "wipe",
		Short: "Delete every record in the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errWipeNotConfirmed
			}
			return withState(cmd, rootOpts, func(state *service.State) error {
				if err := state.Wipe(cmd.Context()); err != nil {
					return err
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "store wiped")
				return err
			})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")
	return cmd
}

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print dashboard statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withState(cmd, rootOpts, func(state *service.State) error {
				return writeStats(cmd.OutOrStdout(), state.Dashboard(), asJSON)
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func writeStats(w io.Writer, stats service.DashboardStats, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "servos:   %d\n", stats.Servos)
	fmt.Fprintf(&b, "kids:     %d\n", stats.Kids)
	fmt.Fprintf(&b, "pautas:   %d\n", stats.Pautas)
	fmt.Fprintf(&b, "feed:     %d\n", stats.Feed)
	b.WriteString("activity:")
	for _, p := range stats.Activity {
		fmt.Fprintf(&b, " %s=%d", p.Label, p.Value)
	}
	b.WriteString("\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func encodeDocument(doc models.ExportDocument, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "json":
		body, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(body, '\n'), nil
	case "yaml", "yml":
		return yaml.Marshal(doc)
	}
	return nil, fmt.Errorf("unknown format %q: must be json or yaml", format)
}

func decodeDocument(raw []byte, ext string) (models.ExportDocument, error) {
	var doc models.ExportDocument
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		err := yaml.Unmarshal(raw, &doc)
		return doc, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	err := dec.Decode(&doc)
	return doc, err
}
