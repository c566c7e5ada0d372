package mapper

import (
	"strings"

	"github.com/dukerupert/gymsup/internal/backend"
	"github.com/dukerupert/gymsup/internal/domain"
)

// MapCart builds a fresh cart projection from a full backend read. A nil
// response yields an empty cart.
func MapCart(in *backend.CartResponse) domain.Cart {
	if in == nil {
		return domain.EmptyCart()
	}

	items := make([]domain.CartItem, 0, len(in.Items))
	for _, it := range in.Items {
		name := it.Name
		if name == "" {
			name = it.ProductName
			if it.VariantName != "" {
				name += " - " + it.VariantName
			}
		}

		image := firstString(it.Image, it.ImageURL)
		if image == "" {
			image = PlaceholderImage(it.VariantID)
		}

		variant := it.VariantName
		if variant == "" {
			variant = variantPart(name)
		}
		flavor, size := ParseVariantName(variant)

		items = append(items, domain.CartItem{
			VariantID: it.VariantID,
			SKU:       it.SKU,
			Name:      name,
			Price:     it.Price,
			Quantity:  it.Quantity,
			Image:     image,
			Flavor:    flavor,
			Size:      size,
		})
	}
	return domain.NewCart(items)
}

// variantPart returns the text after the last " - " of a combined
// "{product} - {variant}" line name, or the whole name when it has none.
func variantPart(name string) string {
	if i := strings.LastIndex(name, " - "); i >= 0 {
		return name[i+len(" - "):]
	}
	return name
}
