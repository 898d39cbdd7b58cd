package cmd

import (
	"fmt"
	"io"
	"strings"

	"cinema-boxoffice/internal/data/entity"
	"cinema-boxoffice/internal/timeline"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print halls, sessions, movies and bookings",
	Long:  `Print the stored halls with their sessions, the movie list and the bookings made on this box office as tables.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.close()

		codes, err := rt.repo.Booking.ListCodes(cmd.Context())
		if err != nil {
			return err
		}
		bookings := make([]entity.Booking, 0, len(codes))
		for _, code := range codes {
			b, err := rt.repo.Booking.FindByCode(cmd.Context(), code)
			if err != nil {
				rt.log.Warn("Skipping unreadable booking", zap.String("booking_code", code), zap.Error(err))
				continue
			}
			bookings = append(bookings, *b)
		}

		renderCatalog(cmd.OutOrStdout(), rt.store.Halls(), rt.store.Movies(), bookings)
		return nil
	},
}

func renderCatalog(out io.Writer, halls []entity.Hall, movies []entity.Movie, bookings []entity.Booking) {
	rowConfigAutoMerge := table.RowConfig{AutoMerge: true}

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetTitle("Halls")
	t.AppendHeader(table.Row{"Hall", "Size", "Prices", "Sales", "Time", "Movie"}, rowConfigAutoMerge)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, AutoMerge: true, WidthMax: 20},
		{Number: 2, AutoMerge: true},
		{Number: 3, AutoMerge: true},
		{Number: 4, AutoMerge: true},
	})
	t.Style().Options.SeparateRows = true

	for _, h := range halls {
		prices := h.EffectivePrices()
		sales := "closed"
		if h.IsSalesOpen() {
			sales = "open"
		}
		head := table.Row{
			h.DisplayName(),
			fmt.Sprintf("%dx%d", h.Rows, h.Seats),
			fmt.Sprintf("%d / %d", prices.Normal, prices.VIP),
			sales,
		}

		sessions := timeline.Sorted(h.Sessions)
		if len(sessions) == 0 {
			t.AppendRow(append(head, "-", "-"), rowConfigAutoMerge)
		}
		for _, s := range sessions {
			t.AppendRow(append(head[:4:4], timeline.FormatMinutes(s.StartMinutes), s.Title), rowConfigAutoMerge)
		}
		t.AppendSeparator()
	}
	t.Render()

	m := table.NewWriter()
	m.SetOutputMirror(out)
	m.SetTitle("Movies")
	m.AppendHeader(table.Row{"ID", "Title", "Duration", "Country"})
	for _, movie := range movies {
		m.AppendRow(table.Row{movie.ID, movie.Title, fmt.Sprintf("%d min", movie.Duration), strings.TrimSpace(movie.Country)})
	}
	m.Render()

	if len(bookings) == 0 {
		return
	}
	b := table.NewWriter()
	b.SetOutputMirror(out)
	b.SetTitle("Bookings")
	b.AppendHeader(table.Row{"Code", "Movie", "Hall", "Date", "Time", "Seats", "Total"})
	total := 0
	for _, booking := range bookings {
		b.AppendRow(table.Row{
			booking.BookingCode,
			booking.MovieTitle,
			booking.HallName,
			booking.Date,
			booking.Time,
			len(booking.SelectedSeats),
			booking.TotalPrice,
		})
		total += booking.TotalPrice
	}
	b.AppendFooter(table.Row{"", "", "", "", "", "Total", total})
	b.Render()
}
