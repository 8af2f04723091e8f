package dashboard

type CustomerStats struct {
	Orders     int
	InProgress int
	Delivered  int
	Spent      float64
}

type SellerStats struct {
	Products int
	LowStock int
	Orders   int
	Pending  int
	Revenue  float64
}

type AdminStats struct {
	Users      int
	Medicines  int
	Categories int
	Orders     int
	// ByStatus counts orders per lifecycle status.
	ByStatus map[string]int
}
