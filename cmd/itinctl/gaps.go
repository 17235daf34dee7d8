package main

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pkordes/itinerary/internal/domain"
	"github.com/pkordes/itinerary/internal/lodging"
	"github.com/pkordes/itinerary/internal/repo"
)

func newGapsCmd(a *app) *cobra.Command {
	var tripFlag string
	var tripID uuid.UUID
	cmd := &cobra.Command{
		Use:   "gaps --trip <id>",
		Short: "Print the nights of a trip that have no lodging",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			// Checked before connecting so a typo fails fast.
			id, err := uuid.Parse(tripFlag)
			if err != nil {
				return fmt.Errorf("--trip: want a trip id, got %q", tripFlag)
			}
			tripID = id
			return a.connect(cmd.Context())
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			defer a.close()
			ctx := cmd.Context()
			trip, err := repo.NewTripRepo(a.pool).GetByID(ctx, tripID)
			if err != nil {
				return err
			}
			records, err := repo.NewLodgingRepo(a.pool).ListByTrip(ctx, tripID)
			if err != nil {
				return err
			}
			printGaps(cmd.OutOrStdout(), trip, records)
			return nil
		},
	}
	cmd.Flags().StringVar(&tripFlag, "trip", "", "trip id (required)")
	return cmd
}

// printGaps writes one line per uncovered run of nights, and a line per
// night where bookings overlap.
func printGaps(w io.Writer, trip domain.Trip, records []domain.Lodging) {
	gaps := lodging.FindGaps(trip.StartDate, trip.EndDate, records)
	if len(gaps) == 0 {
		fmt.Fprintf(w, "%s: every night is covered\n", trip.Name)
	}
	for _, g := range gaps {
		fmt.Fprintf(w, "gap  %s → %s  %d night(s)\n",
			g.Start.Format(dateLayout), g.End.Format(dateLayout), g.Nights())
	}
	for d := domain.DateOnly(trip.StartDate); d.Before(domain.DateOnly(trip.EndDate)); d = d.AddDate(0, 0, 1) {
		if m := lodging.ForDay(d, records); m.Ambiguous() {
			fmt.Fprintf(w, "overlap  %s  %d bookings\n", d.Format(dateLayout), len(m.Lodgings))
		}
	}
}

const dateLayout = "2006-01-02"
