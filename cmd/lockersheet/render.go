package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ukaji3/lockersheet-go/pkg/lockersheet"
	"github.com/ukaji3/lockersheet-go/pkg/lockersheet/docx"
)

func newRenderCmd(a *app) *cobra.Command {
	var locker, outputDir string

	cmd := &cobra.Command{
		Use:   "render [input.xlsx]",
		Short: "Generate the Word document for a Locker Name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := a.cfg.Options()

			vt, err := lockersheet.OpenFile(args[0], opts)
			if err != nil {
				return err
			}

			res, err := lockersheet.Generate(vt, locker, opts)
			if err != nil {
				return err
			}
			if res.Branding.Status == docx.BrandingSuppressed {
				a.logger.Debug("Branding suppressed", zap.String("reason", res.Branding.Reason))
			}
			if res.Candidates > 1 {
				a.logger.Warn("Multiple rows share the Locker Name; using the first",
					zap.String("locker", locker), zap.Int("rows", res.Candidates))
			}

			if err := os.MkdirAll(outputDir, 0755); err != nil {
				return err
			}
			path := filepath.Join(outputDir, safeFileName(res.Document.FileName))
			if err := os.WriteFile(path, res.Document.Data, 0644); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}

			a.logger.Info("Document generated", zap.String("path", path), zap.String("title", res.Title))
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&locker, "locker", "l", "", "Locker Name to render")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", ".", "Directory for the generated document")
	cmd.Flags().String("logo", "", "Branding image for the page header (default from config)")
	cmd.Flags().String("sheet", "", "Sheet to read (default: first sheet)")
	_ = cmd.MarkFlagRequired("locker")

	return cmd
}

// safeFileName keeps a suggested name inside the output directory.
func safeFileName(name string) string {
	return strings.NewReplacer("/", "_", `\`, "_").Replace(name)
}
