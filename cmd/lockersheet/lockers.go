package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ukaji3/lockersheet-go/pkg/lockersheet"
	"github.com/ukaji3/lockersheet-go/pkg/lockersheet/output"
)

func newLockersCmd(a *app) *cobra.Command {
	var asJSON, pretty bool

	cmd := &cobra.Command{
		Use:   "lockers [input.xlsx]",
		Short: "List the Locker Name values of an Excel file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vt, err := lockersheet.OpenFile(args[0], a.cfg.Options())
			if err != nil {
				return err
			}

			a.logger.Debug("Workbook accepted",
				zap.String("file", args[0]),
				zap.String("sheet", vt.SheetName),
				zap.String("range", vt.Range),
				zap.String("kiosk_column", vt.KioskColumn))

			names, err := lockersheet.Lockers(vt)
			if errors.Is(err, lockersheet.ErrNoLockers) {
				a.logger.Warn("No selectable records", zap.String("file", args[0]))
			} else if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				data, err := output.ToJSON(output.LockerList{
					Sheet:       vt.SheetName,
					Range:       vt.Range,
					KioskColumn: vt.KioskColumn,
					Lockers:     names,
				}, pretty)
				if err != nil {
					return fmt.Errorf("serialization failed: %w", err)
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			if len(names) == 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), lockersheet.ErrNoLockers)
				return nil
			}
			for _, name := range names {
				fmt.Fprintln(out, name)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of one name per line")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().String("sheet", "", "Sheet to read (default: first sheet)")

	return cmd
}
