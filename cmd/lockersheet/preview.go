package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ukaji3/lockersheet-go/pkg/lockersheet"
	"github.com/ukaji3/lockersheet-go/pkg/lockersheet/output"
	"github.com/ukaji3/lockersheet-go/pkg/lockersheet/selector"
)

func newPreviewCmd(a *app) *cobra.Command {
	var locker string
	var asJSON, pretty bool

	cmd := &cobra.Command{
		Use:   "preview [input.xlsx]",
		Short: "Show the rows matching a Locker Name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vt, err := lockersheet.OpenFile(args[0], a.cfg.Options())
			if err != nil {
				return err
			}

			columns, rows := selector.Preview(vt, locker)
			if len(rows) == 0 {
				return fmt.Errorf("%w: %q", lockersheet.ErrLockerNotFound, locker)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				data, err := output.ToJSON(output.Preview{Locker: locker, Columns: columns, Rows: rows}, pretty)
				if err != nil {
					return fmt.Errorf("serialization failed: %w", err)
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, strings.Join(columns, "\t"))
			for _, row := range rows {
				fmt.Fprintln(tw, strings.Join(row, "\t"))
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			if len(rows) > 1 {
				fmt.Fprintln(out, "Multiple rows share this Locker Name; the first one is used for the Word document.")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&locker, "locker", "l", "", "Locker Name to preview")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().String("sheet", "", "Sheet to read (default: first sheet)")
	_ = cmd.MarkFlagRequired("locker")

	return cmd
}
