package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/iudanet/wanderlust/internal/itinerary"
	"github.com/iudanet/wanderlust/internal/models"
)

// updateTrip загружает поездку, применяет изменение и сохраняет результат
func (c *Cli) updateTrip(ctx context.Context, id string, fn func(trip *models.Trip) (models.Trip, error)) (models.Trip, error) {
	trip, err := c.deps.Data.Trip(ctx, id)
	if err != nil {
		return models.Trip{}, err
	}
	updated, err := fn(&trip)
	if err != nil {
		return models.Trip{}, err
	}
	if err := c.deps.Data.SaveTrip(ctx, updated); err != nil {
		return models.Trip{}, err
	}
	return updated, nil
}

func parseAmount(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return v, nil
}

func (c *Cli) eventCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Manage itinerary events",
	}
	cmd.AddCommand(c.eventAddCmd(), c.eventExpenseCmd(), c.eventRemoveCmd())
	return cmd
}

func (c *Cli) eventAddCmd() *cobra.Command {
	var (
		item   models.ItineraryItem
		period string
		kind   string
	)

	cmd := &cobra.Command{
		Use:   "add <trip-id> <date>",
		Short: "Add an event to a day, or replace it when --id is given",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			item.Period = models.Period(period)
			item.Type = models.ItemType(kind)

			var saved models.ItineraryItem
			_, err := c.updateTrip(cmd.Context(), args[0], func(trip *models.Trip) (models.Trip, error) {
				next := item
				if item.ID != "" {
					existing, err := itinerary.FindItem(trip, args[1], item.ID)
					if err != nil {
						return models.Trip{}, err
					}
					next = overlayEvent(existing, item, cmd.Flags().Changed)
				}

				updated, s, err := itinerary.SaveItem(trip, args[1], next)
				saved = s
				return updated, err
			})
			if err != nil {
				return err
			}

			c.io.Printf("✓ Event saved: %s on %s (ID: %s)\n", saved.Title, args[1], saved.ID)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&item.ID, "id", "", "id of an existing event to edit; only the given flags change")
	flags.StringVar(&item.Title, "title", "", "event title")
	flags.StringVar(&item.Description, "description", "", "notes")
	flags.StringVar(&item.Time, "time", "", "start time HH:mm")
	flags.StringVar(&item.EndTime, "end", "", "end time HH:mm")
	flags.StringVar(&period, "period", "", "morning, afternoon or night instead of an exact time")
	flags.StringVar(&kind, "type", "", "sightseeing, shopping, eating, transport or other")
	flags.Float64Var(&item.EstimatedExpense, "cost", 0, "estimated cost")
	flags.StringVar(&item.Currency, "currency", "", "currency symbol; becomes the trip default")
	flags.StringVar(&item.URL, "url", "", "link")
	flags.StringVar(&item.TransportMethod, "transport", "", "how you get there")
	flags.StringVar(&item.TravelDuration, "duration", "", "travel duration")
	return cmd
}

// overlayEvent переносит в существующее событие только явно заданные флаги.
// --time/--end без --period переводят событие на точное время.
func overlayEvent(existing, edit models.ItineraryItem, changed func(name string) bool) models.ItineraryItem {
	out := existing
	setString := func(flag string, dst *string, v string) {
		if changed(flag) {
			*dst = v
		}
	}

	setString("title", &out.Title, edit.Title)
	setString("description", &out.Description, edit.Description)
	setString("currency", &out.Currency, edit.Currency)
	setString("url", &out.URL, edit.URL)
	setString("transport", &out.TransportMethod, edit.TransportMethod)
	setString("duration", &out.TravelDuration, edit.TravelDuration)
	if changed("type") {
		out.Type = edit.Type
	}
	if changed("cost") {
		out.EstimatedExpense = edit.EstimatedExpense
	}

	switch {
	case changed("period"):
		out.Period = edit.Period
	case changed("time") || changed("end"):
		out.Period = models.PeriodNone
	}
	setString("time", &out.Time, edit.Time)
	setString("end", &out.EndTime, edit.EndTime)

	return out
}

func (c *Cli) eventExpenseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "expense <trip-id> <date> <event-id> <amount>",
		Short: "Record the actual expense of an event",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[3])
			if err != nil {
				return err
			}

			trip, err := c.updateTrip(cmd.Context(), args[0], func(trip *models.Trip) (models.Trip, error) {
				return itinerary.UpdateActualExpense(trip, args[1], args[2], amount)
			})
			if err != nil {
				return err
			}

			summary := itinerary.Summarize(&trip)
			c.io.Printf("✓ Expense recorded. Remaining budget: %s%s\n", summary.Currency, summary.Remaining.StringFixed(2))
			return nil
		},
	}
}

func (c *Cli) eventRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <trip-id> <date> <event-id>",
		Short: "Remove an event",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := c.updateTrip(cmd.Context(), args[0], func(trip *models.Trip) (models.Trip, error) {
				return itinerary.RemoveItem(trip, args[1], args[2])
			})
			if err != nil {
				return err
			}
			c.io.Println("✓ Event removed")
			return nil
		},
	}
}

func (c *Cli) flightCmd() *cobra.Command {
	var flight models.FlightInfo

	cmd := &cobra.Command{
		Use:   "flight <trip-id> <date>",
		Short: "Set the departure (first day) or return (last day) flight",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := c.updateTrip(cmd.Context(), args[0], func(trip *models.Trip) (models.Trip, error) {
				return itinerary.SaveFlight(trip, args[1], flight)
			})
			if err != nil {
				return err
			}
			c.io.Printf("✓ Flight %s saved for %s\n", flight.Code, args[1])
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&flight.Code, "code", "", "flight number")
	flags.StringVar(&flight.Gate, "gate", "", "gate")
	flags.StringVar(&flight.Airport, "airport", "", "airport")
	flags.StringVar(&flight.Transport, "transport", "", "how you get to the airport")
	return cmd
}

func (c *Cli) dayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "day",
		Short: "Rate days and mark favorites",
	}

	rate := &cobra.Command{
		Use:   "rate <trip-id> <date> <0-5>",
		Short: "Rate a day",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			rating, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid rating %q: %w", args[2], err)
			}
			_, err = c.updateTrip(cmd.Context(), args[0], func(trip *models.Trip) (models.Trip, error) {
				return itinerary.RateDay(trip, args[1], rating)
			})
			if err != nil {
				return err
			}
			c.io.Printf("✓ %s rated %d/5\n", args[1], rating)
			return nil
		},
	}

	favorite := &cobra.Command{
		Use:   "favorite <trip-id> <date>",
		Short: "Toggle a favorite day",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := c.updateTrip(cmd.Context(), args[0], func(trip *models.Trip) (models.Trip, error) {
				return itinerary.ToggleFavoriteDay(trip, args[1])
			})
			if err != nil {
				return err
			}
			c.io.Printf("✓ Favorite toggled for %s\n", args[1])
			return nil
		},
	}

	cmd.AddCommand(rate, favorite)
	return cmd
}
