package cart

import "github.com/georgemunganga/pharmacy-storefront/internal/modules/medicine"

// Item is one cart line.
type Item struct {
	ID         string            `json:"id"`
	Quantity   int               `json:"quantity"`
	MedicineID string            `json:"medicineId"`
	Medicine   medicine.Medicine `json:"medicine"`
}

func (i Item) Subtotal() float64 { return float64(i.Quantity) * i.Medicine.Price }

// Cart is the signed-in customer's basket.
type Cart struct {
	ID    string `json:"id"`
	Items []Item `json:"items"`
}

func (c *Cart) Total() float64 {
	var sum float64
	for _, it := range c.Items {
		sum += it.Subtotal()
	}
	return sum
}

// Count is the number of units in the cart.
func (c *Cart) Count() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

type AddRequest struct {
	MedicineID string `json:"medicineId"`
	Quantity   int    `json:"quantity"`
}

type UpdateRequest struct {
	Quantity int `json:"quantity"`
}
