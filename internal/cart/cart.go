// Package cart implements the cart aggregator: an immutable cart value
// updated by pure transformation functions, with derived totals. The
// persistence side lives in store.go.
package cart

// Item is the denormalized display snapshot of an artwork captured at the
// moment it is added to the cart. Later catalog edits do not retroactively
// change what the cart shows; this keeps the cart stable and viewable
// even when the artwork is gone.
type Item struct {
	ArtworkID  string `json:"artwork_id"`
	Title      string `json:"title"`
	ArtistName string `json:"artist_name"`
	CategoryID string `json:"category_id"`
	ImageURL   string `json:"image_url"`
	PriceCents int64  `json:"price_cents"`
}

// Line is one distinct item in the cart. Quantity is always >= 1; a
// quantity driven to zero removes the line instead.
type Line struct {
	Item
	Quantity int `json:"quantity"`
}

// Cart holds the lines of one user's cart. The zero value is an empty,
// usable cart. All operations return a new Cart and never mutate the
// receiver, so callers can persist or discard results freely.
type Cart struct {
	Lines []Line `json:"lines"`
}

func (c Cart) clone() Cart {
	lines := make([]Line, len(c.Lines))
	copy(lines, c.Lines)
	return Cart{Lines: lines}
}

// Add returns a cart with quantity of item added. If a line for the item
// already exists its quantity is incremented; otherwise a new line is
// appended. Quantities below one are treated as one.
func (c Cart) Add(item Item, quantity int) Cart {
	if quantity < 1 {
		quantity = 1
	}

	next := c.clone()
	for i, line := range next.Lines {
		if line.ArtworkID == item.ArtworkID {
			next.Lines[i].Quantity += quantity
			return next
		}
	}

	next.Lines = append(next.Lines, Line{Item: item, Quantity: quantity})
	return next
}

// Remove returns a cart without the line for artworkID. Removing an
// absent id is a no-op.
func (c Cart) Remove(artworkID string) Cart {
	lines := make([]Line, 0, len(c.Lines))
	for _, line := range c.Lines {
		if line.ArtworkID != artworkID {
			lines = append(lines, line)
		}
	}
	return Cart{Lines: lines}
}

// SetQuantity returns a cart with the line's quantity replaced. A
// quantity of zero or less removes the line entirely. Setting the
// quantity of an absent id is a no-op.
func (c Cart) SetQuantity(artworkID string, quantity int) Cart {
	if quantity <= 0 {
		return c.Remove(artworkID)
	}

	next := c.clone()
	for i, line := range next.Lines {
		if line.ArtworkID == artworkID {
			next.Lines[i].Quantity = quantity
			break
		}
	}
	return next
}

// Total returns the cart total in cents. Integer minor units keep the
// sum exact across any sequence of adds and removals.
func (c Cart) Total() int64 {
	var total int64
	for _, line := range c.Lines {
		total += line.PriceCents * int64(line.Quantity)
	}
	return total
}

// ItemCount returns the summed quantity across lines, which is distinct
// from the number of lines.
func (c Cart) ItemCount() int {
	count := 0
	for _, line := range c.Lines {
		count += line.Quantity
	}
	return count
}
