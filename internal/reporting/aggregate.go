// Package reporting derives dashboard statistics from the ticket collection.
// Aggregation is recomputed in full on every call; the collection is small
// enough that incremental bookkeeping is not worth carrying.
package reporting

import (
	"time"

	"github.com/prodline/tpm-service/internal/domain"
)

// TrendMonths is the number of calendar months covered by the trend
// histogram, the current month included.
const TrendMonths = 6

// MonthBucket is one entry of the creation-trend histogram.
type MonthBucket struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// DashboardStats summarizes the ticket collection for the dashboard.
type DashboardStats struct {
	TotalTickets      int                           `json:"total_tickets"`
	OpenTickets       int                           `json:"open_tickets"`
	InProgressTickets int                           `json:"in_progress_tickets"`
	ClosedTickets     int                           `json:"closed_tickets"`
	RejectedTickets   int                           `json:"rejected_tickets"`
	TicketsByCategory map[domain.TicketCategory]int `json:"tickets_by_category"`
	TicketsByPriority map[domain.TicketPriority]int `json:"tickets_by_priority"`
	MonthlyTrend      []MonthBucket                 `json:"monthly_trend"`
}

// Aggregate computes dashboard statistics over the full ticket collection.
// It is total: an empty collection yields zero counts, empty maps, and six
// zero trend buckets. Tickets without a usable CreatedAt count toward the
// totals but match no trend bucket.
func Aggregate(tickets []domain.Ticket, now time.Time) DashboardStats {
	stats := DashboardStats{
		TicketsByCategory: make(map[domain.TicketCategory]int),
		TicketsByPriority: make(map[domain.TicketPriority]int),
	}

	for _, ticket := range tickets {
		stats.TotalTickets++
		switch ticket.Status {
		case domain.TicketStatusOpen:
			stats.OpenTickets++
		case domain.TicketStatusInProgress:
			stats.InProgressTickets++
		case domain.TicketStatusClosed:
			stats.ClosedTickets++
		case domain.TicketStatusRejected:
			stats.RejectedTickets++
		}
		stats.TicketsByCategory[ticket.Category]++
		stats.TicketsByPriority[ticket.Priority]++
	}

	stats.MonthlyTrend = monthlyTrend(tickets, now)
	return stats
}

// monthlyTrend buckets ticket creations into the current month and the five
// preceding calendar months, oldest first. Matching is exact month+year, not
// a rolling window.
func monthlyTrend(tickets []domain.Ticket, now time.Time) []MonthBucket {
	buckets := make([]MonthBucket, 0, TrendMonths)
	for i := TrendMonths - 1; i >= 0; i-- {
		month := now.AddDate(0, -i, -now.Day()+1)
		count := 0
		for _, ticket := range tickets {
			if ticket.CreatedAt.IsZero() {
				continue
			}
			if ticket.CreatedAt.Year() == month.Year() && ticket.CreatedAt.Month() == month.Month() {
				count++
			}
		}
		buckets = append(buckets, MonthBucket{
			Month: month.Format("Jan 2006"),
			Count: count,
		})
	}
	return buckets
}
