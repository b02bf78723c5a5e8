// Package planfile exports a generated plan as a picklist CSV, one row per
// fresh-tip transfer, in plan order. Pause steps are not rows; the picklist
// is the provisioning view of the plan, not its execution script.
package planfile

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/bioprocesslab/mediaprep/internal/transfer"
)

// header is the picklist column layout consumed by the lab's downstream
// tooling.
var header = []string{
	"Source_Plate", "Source_Well", "Dest_Plate", "Dest_Well",
	"Transfer_Vol", "Channel", "Category",
}

// Write renders the plan's transfers as CSV rows.
func Write(w io.Writer, plan transfer.Plan, destPlate string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, ti := range plan.Transfers() {
		row := []string{
			string(ti.SourcePlate),
			string(ti.SourceWell),
			destPlate,
			string(ti.DestWell),
			strconv.FormatFloat(ti.Volume, 'f', -1, 64),
			ti.Channel,
			string(ti.Category),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes the picklist to a file, creating or truncating it.
func WriteFile(path string, plan transfer.Plan, destPlate string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, plan, destPlate); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// DefaultDestPlate is the destination plate tag used when the caller does
// not name one.
const DefaultDestPlate = "destination"
