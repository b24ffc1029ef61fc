package cart

// Cart maps product slug to requested quantity. Entries always hold a
// positive quantity; removing the last unit deletes the entry.
type Cart map[string]int

func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	for slug, qty := range c {
		out[slug] = qty
	}
	return out
}

// Add increments the quantity for slug, creating the entry if absent.
func (c Cart) Add(slug string, qty int) {
	c[slug] += qty
}

// Remove decrements the quantity for slug. Removing at least the held
// quantity deletes the entry outright; quantities never go non-positive.
func (c Cart) Remove(slug string, qty int) {
	held, ok := c[slug]
	if !ok {
		return
	}
	if qty >= held {
		delete(c, slug)
		return
	}
	c[slug] = held - qty
}
