package models

import "github.com/shopspring/decimal"

// CartLine is a snapshot of a product at the moment it was added.
type CartLine struct {
	ProductID uint            `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	ImageURL  string          `json:"image_url,omitempty"`
	Category  string          `json:"category,omitempty"`
}

// Cart is an ordered list of lines. Adding the same product twice yields two
// lines; there is no quantity merge.
type Cart struct {
	ID    string     `json:"id"`
	Lines []CartLine `json:"items"`
}

func NewCart(id string) *Cart {
	return &Cart{ID: id, Lines: []CartLine{}}
}

// Add appends line.
func (c *Cart) Add(line CartLine) {
	c.Lines = append(c.Lines, line)
}

// Remove drops the first line for productID and reports whether one existed.
func (c *Cart) Remove(productID uint) bool {
	for i, l := range c.Lines {
		if l.ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return true
		}
	}
	return false
}

func (c *Cart) Clear() {
	c.Lines = []CartLine{}
}

// Total is the sum of line prices.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.Price)
	}
	return total
}

func (c *Cart) Len() int {
	return len(c.Lines)
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// CheckoutLines converts the cart into checkout input, preserving order.
func (c *Cart) CheckoutLines() []CheckoutLine {
	lines := make([]CheckoutLine, 0, len(c.Lines))
	for _, l := range c.Lines {
		lines = append(lines, CheckoutLine{ProductID: l.ProductID, Price: l.Price})
	}
	return lines
}

// CartView is the JSON shape of GET /cart.
type CartView struct {
	Items []CartLine      `json:"items"`
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

func (c *Cart) View() CartView {
	items := c.Lines
	if items == nil {
		items = []CartLine{}
	}
	return CartView{Items: items, Count: c.Len(), Total: c.Total()}
}

// AddToCartRequest is the body of POST /cart/items.
type AddToCartRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// CartCheckoutRequest is the body of POST /cart/checkout.
type CartCheckoutRequest struct {
	PaymentMethod string `json:"payment_method"`
}
