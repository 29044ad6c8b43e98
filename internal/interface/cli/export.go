package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/blakemt/pufflog/internal/core/models"
	"github.com/blakemt/pufflog/internal/core/storage"
	"github.com/blakemt/pufflog/pkg/tracklog"
)

var (
	exportOutput string
	exportCopy   bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export sessions as TSV",
	Long: `Export all sessions in the same tab-separated layout the
importer reads, so exports round-trip.

Examples:
  pufflog export --output sessions.tsv
  pufflog export --copy`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path (default: stdout)")
	exportCmd.Flags().BoolVar(&exportCopy, "copy", false, "Copy the export to the clipboard")
}

func runExport(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	sessions, err := store.ListSessions(context.Background(), storage.SessionFilter{})
	if err != nil {
		return err
	}

	var b strings.Builder
	writeTSV(&b, sessions)
	out := b.String()

	if exportCopy {
		if err := clipboard.WriteAll(out); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		fmt.Printf("Copied %d session(s) to clipboard\n", len(sessions))
		return nil
	}

	if exportOutput != "" {
		if err := os.WriteFile(exportOutput, []byte(out), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", exportOutput, err)
		}
		fmt.Printf("Exported %d session(s) to %s\n", len(sessions), exportOutput)
		return nil
	}

	fmt.Print(out)
	return nil
}

var exportHeaders = []string{
	tracklog.ColInstance, tracklog.ColWhen, tracklog.ColLocation,
	tracklog.ColCity, tracklog.ColState, tracklog.ColAlone,
	tracklog.ColPeople, tracklog.ColVessel, tracklog.ColAccessory,
	tracklog.ColYourVessel, tracklog.ColYourSubstance, tracklog.ColStrain,
	tracklog.ColStrainType, tracklog.ColTHC, tracklog.ColLegalPurchase,
	tracklog.ColStatePurchased, tracklog.ColTobacco, tracklog.ColKief,
	tracklog.ColConcentrate, tracklog.ColLavender, tracklog.ColQuantity,
	tracklog.ColComments,
}

func writeTSV(b *strings.Builder, sessions []models.Session) {
	b.WriteString(strings.Join(exportHeaders, "\t"))
	b.WriteByte('\n')

	for _, s := range sessions {
		thc := ""
		if s.THCPercent != nil {
			thc = strconv.FormatFloat(*s.THCPercent, 'f', -1, 64)
		}
		alone, people := "N", s.WhoWith
		if s.WhoWith == "Alone" {
			alone, people = "Y", ""
		}

		cells := []string{
			s.ID, exportWhen(s), s.Location, "", "", alone, people,
			s.Vessel, s.AccessoryUsed,
			yn(s.MyVessel), yn(s.MySubstance),
			s.StrainName, s.StrainType, thc,
			yn(s.PurchasedLegally), s.StatePurchased,
			yn(s.Tobacco), yn(s.Kief), yn(s.Concentrate), yn(s.Lavender),
			exportQuantity(s.Quantity), quoteField(s.Comments),
		}
		b.WriteString(strings.Join(cells, "\t"))
		b.WriteByte('\n')
	}
}

// exportWhen renders the timestamp the way the historical exports did.
func exportWhen(s models.Session) string {
	t, err := time.Parse("2006-01-02 15:04", s.Date+" "+s.Time)
	if err != nil {
		return s.Date + " " + s.Time
	}
	return fmt.Sprintf("%d/%d/%s", int(t.Month()), t.Day(), t.Format("06 3:04 PM"))
}

func exportQuantity(q tracklog.QuantityValue) string {
	if q.Type == tracklog.QuantitySizeCategory {
		i := int(q.Amount)
		if i >= 0 && i < len(tracklog.SizeLabels) {
			return tracklog.SizeLabels[i]
		}
	}
	return strconv.FormatFloat(q.Amount, 'f', -1, 64)
}

func yn(v bool) string {
	if v {
		return "Y"
	}
	return "N"
}

func quoteField(s string) string {
	if strings.ContainsAny(s, "\t,") {
		return `"` + s + `"`
	}
	return s
}
