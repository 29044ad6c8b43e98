package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/blakemt/pufflog/internal/core/models"
	"github.com/blakemt/pufflog/pkg/tracklog"
)

var (
	addWhen     string
	addLocation string
	addCity     string
	addState    string
	addWith     string
	addAccess   string
	addStrain   string
	addType     string
	addTHC      string
	addQuantity string
	addComments string
	addMine     bool
	addLegal    bool
)

var addCmd = &cobra.Command{
	Use:   "add <vessel>",
	Short: "Record a new session",
	Long: `Record a single session from the command line.

The vessel argument is free text and is classified into a category
("glass bong" -> Bong, "pen_blue" -> Pen, ...). Quantity accepts the
same shapes as imports: size words, "hits_<N>", or a number.

Examples:
  pufflog add bong --strain "Blue Dream" --quantity medium
  pufflog add pen_blue --quantity hits_3 --when "yesterday 9pm"
  pufflog add "edible: gummy" --quantity 10mg --location Home`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVar(&addWhen, "when", "", "When it happened (natural language or M/D/YY h:mm AM/PM; default now)")
	addCmd.Flags().StringVar(&addLocation, "location", "", "Location name")
	addCmd.Flags().StringVar(&addCity, "city", "", "City")
	addCmd.Flags().StringVar(&addState, "state", "", "State")
	addCmd.Flags().StringVar(&addWith, "with", "", "Who you were with (default alone)")
	addCmd.Flags().StringVar(&addAccess, "accessory", "", "Accessory used")
	addCmd.Flags().StringVar(&addStrain, "strain", "", "Strain name")
	addCmd.Flags().StringVar(&addType, "type", "", "Strain type (Indica/Sativa/Hybrid)")
	addCmd.Flags().StringVar(&addTHC, "thc", "", "THC percentage")
	addCmd.Flags().StringVar(&addQuantity, "quantity", "", "Quantity (size word, hits_<N>, or number)")
	addCmd.Flags().StringVar(&addComments, "comments", "", "Comments")
	addCmd.Flags().BoolVar(&addMine, "mine", true, "Your vessel and substance")
	addCmd.Flags().BoolVar(&addLegal, "legal", false, "Purchased legally")
}

func runAdd(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	now := time.Now()
	date, clock := now.Format("2006-01-02"), now.Format("15:04")
	if addWhen != "" {
		if t, err := parseDateArg(addWhen); err == nil {
			date, clock = t.Format("2006-01-02"), t.Format("15:04")
		} else {
			date, clock = tracklog.ParseDateTime(addWhen, now)
		}
	}

	category := tracklog.ClassifyVessel(args[0])
	who := addWith
	if who == "" {
		who = "Alone"
	}

	s := &models.Session{
		ID:               models.NormalizeID(""),
		Date:             date,
		Time:             clock,
		Location:         models.DisplayName(addLocation, addCity, addState),
		WhoWith:          who,
		Vessel:           string(category),
		AccessoryUsed:    addAccess,
		MyVessel:         addMine,
		MySubstance:      addMine,
		StrainName:       addStrain,
		StrainType:       addType,
		PurchasedLegally: addLegal,
		Quantity:         tracklog.ParseQuantityText(addQuantity, category),
		Comments:         addComments,
	}
	if thc, ok := tracklog.ParseTHC(addTHC); ok {
		s.THCPercent = &thc
	}

	ctx := context.Background()
	if s.Location != "" {
		if _, err := store.UpsertLocation(ctx, &models.Location{
			Name:  addLocation,
			City:  addCity,
			State: addState,
		}); err != nil {
			return err
		}
	}

	if err := store.SaveSession(ctx, s); err != nil {
		return err
	}

	fmt.Printf("Logged %s session: %s (%s)\n",
		s.Vessel, tracklog.FormatQuantity(s.Quantity), s.ID)
	return nil
}
