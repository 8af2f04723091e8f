package review

import "time"

type Author struct {
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

// Review is a customer's rating of a medicine.
type Review struct {
	ID         string    `json:"id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	UserID     string    `json:"userId"`
	MedicineID string    `json:"medicineId"`
	User       *Author   `json:"user,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Input struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment,omitempty"`
}
