package response

// DashboardResponse is the admin overview. Counts come straight from
// the store; revenue is the sum of recorded payments.
type DashboardResponse struct {
	TotalUsers       int64            `json:"total_users"`
	TotalServices    int64            `json:"total_services"`
	TotalBookings    int64            `json:"total_bookings"`
	BookingsByStatus map[string]int64 `json:"bookings_by_status"`
	TotalPayments    int64            `json:"total_payments"`
	TotalRevenue     float64          `json:"total_revenue"`
}
