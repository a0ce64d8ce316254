package session

// CartLine is one row of the shopping cart: a snapshot of the product taken
// at add time plus the accumulated quantity. The snapshot is deliberate;
// a later catalog edit does not change a line that is already in the cart.
type CartLine struct {
	ProductID   uint
	ProductName string
	Price       float64
	Quantity    uint
	Image       *string
}

// Cart is the ordered sequence of lines held by one session.
type Cart []CartLine

// Merge folds a line into the cart. An existing line for the same product
// absorbs the quantity, otherwise the line is appended, so the cart never
// holds two lines for one product.
func (c Cart) Merge(line CartLine) Cart {
	for i := range c {
		if c[i].ProductID == line.ProductID {
			c[i].Quantity += line.Quantity
			return c
		}
	}
	return append(c, line)
}
