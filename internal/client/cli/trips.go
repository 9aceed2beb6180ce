package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/iudanet/wanderlust/internal/itinerary"
	"github.com/iudanet/wanderlust/internal/models"
)

type dayView struct {
	Flight   *models.FlightInfo
	Date     string
	Label    string
	Items    []models.ItineraryItem
	Rating   int
	Favorite bool
}

type tripView struct {
	Budget itinerary.BudgetSummary
	Trip   models.Trip
	Days   []dayView
}

func (c *Cli) tripCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trip",
		Short: "Manage trips",
	}
	cmd.AddCommand(
		c.tripListCmd(),
		c.tripShowCmd(),
		c.tripAddCmd(),
		c.tripDeleteCmd(),
		c.tripCombineCmd(),
		c.tripPinCmd(),
	)
	return cmd
}

func (c *Cli) tripListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List trips, pinned first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			trips, err := c.deps.Data.Trips(cmd.Context())
			if err != nil {
				return err
			}
			return render(c.io, tripListTemplate, trips)
		},
	}
}

func (c *Cli) tripShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <trip-id>",
		Short: "Show the day-by-day plan and budget of a trip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			trip, err := c.deps.Data.Trip(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			view, err := buildTripView(&trip)
			if err != nil {
				return err
			}
			return render(c.io, tripDetailTemplate, view)
		},
	}
}

func buildTripView(trip *models.Trip) (tripView, error) {
	days, err := itinerary.DayList(trip)
	if err != nil {
		return tripView{}, err
	}

	view := tripView{Trip: *trip, Budget: itinerary.Summarize(trip)}
	for _, date := range days {
		d := dayView{
			Date:   date,
			Items:  itinerary.DayEvents(trip, date),
			Flight: itinerary.FlightFor(trip, date),
			Rating: trip.DayRatings[date],
		}
		switch itinerary.Position(trip, date) {
		case itinerary.First:
			d.Label = "departure"
		case itinerary.Last:
			d.Label = "return"
		}
		for _, fav := range trip.FavoriteDays {
			if fav == date {
				d.Favorite = true
			}
		}
		view.Days = append(view.Days, d)
	}
	return view, nil
}

func (c *Cli) tripAddCmd() *cobra.Command {
	var in itinerary.TripInput
	var budget string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Plan a new trip",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			prompts := []struct {
				dst    *string
				prompt string
			}{
				{&in.Title, "Title: "},
				{&in.Location, "Location: "},
				{&in.StartDate, "Start date (YYYY-MM-DD): "},
				{&in.EndDate, "End date (YYYY-MM-DD): "},
			}
			for _, p := range prompts {
				if *p.dst != "" {
					continue
				}
				if *p.dst, err = c.io.ReadInput(p.prompt); err != nil {
					return fmt.Errorf("failed to read input: %w", err)
				}
			}

			if budget != "" {
				if in.Budget, err = strconv.ParseFloat(budget, 64); err != nil {
					return fmt.Errorf("invalid budget %q: %w", budget, err)
				}
			}

			trip, err := itinerary.NewTrip(in)
			if err != nil {
				return err
			}
			if err := c.deps.Data.SaveTrip(cmd.Context(), trip); err != nil {
				return err
			}

			c.io.Printf("✓ Trip created: %s (ID: %s)\n", trip.Title, trip.ID)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&in.Title, "title", "", "trip title")
	flags.StringVar(&in.Location, "location", "", "destination")
	flags.StringVar(&in.StartDate, "start", "", "first day, YYYY-MM-DD")
	flags.StringVar(&in.EndDate, "end", "", "last day, YYYY-MM-DD")
	flags.StringVar(&in.Description, "description", "", "short description")
	flags.StringVar(&in.DefaultCurrency, "currency", "", "currency symbol, e.g. ¥")
	flags.StringVar(&budget, "budget", "", "total budget")
	return cmd
}

func (c *Cli) tripDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <trip-id>",
		Short: "Delete a trip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			trip, err := c.deps.Data.Trip(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !yes {
				ok, err := c.io.Confirm(fmt.Sprintf("Delete trip %q?", trip.Title))
				if err != nil {
					return err
				}
				if !ok {
					c.io.Println("Cancelled")
					return nil
				}
			}
			if err := c.deps.Data.DeleteTrip(cmd.Context(), trip.ID); err != nil {
				return err
			}
			c.io.Printf("✓ Trip deleted: %s\n", trip.Title)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func (c *Cli) tripCombineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "combine <trip-id> <trip-id>...",
		Short: "Merge several trips into one multi-country journey",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			combined, err := c.deps.Data.CombineTrips(cmd.Context(), args)
			if err != nil {
				return err
			}
			c.io.Printf("✓ %s (ID: %s)\n", combined.Title, combined.ID)
			return nil
		},
	}
}

func (c *Cli) tripPinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pin <trip-id>",
		Short: "Pin or unpin a trip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			trip, err := c.deps.Data.Trip(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			trip.IsPinned = !trip.IsPinned
			if err := c.deps.Data.SaveTrip(cmd.Context(), trip); err != nil {
				return err
			}
			if trip.IsPinned {
				c.io.Printf("✓ Pinned: %s\n", trip.Title)
			} else {
				c.io.Printf("✓ Unpinned: %s\n", trip.Title)
			}
			return nil
		},
	}
}
