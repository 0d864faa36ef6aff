package models

type DashboardStats struct {
	Date              string `json:"date"`
	CustomerCount     int    `json:"customerCount"`
	OrdersToday       int    `json:"ordersToday"`
	PendingOrders     int    `json:"pendingOrders"`
	RevenueThisMonth  int64  `json:"revenueThisMonth"`
	SchedulesToday    int    `json:"schedulesToday"`
	ShuttlesToday     int    `json:"shuttlesToday"`
	ParticipantsToday int    `json:"participantsToday"`
}
