package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// MoveCartItemToWishlist moves the (product, color, size) line item out of the
// cart and records a (product, color) entry in the wishlist. An entry already
// present in the wishlist is left alone rather than duplicated; the cart
// removal still happens. The moved cart item is returned.
func MoveCartItemToWishlist(cart *Cart, wishlist *Wishlist, productID primitive.ObjectID, color, size string) (CartItem, error) {
	item := cart.FindItem(productID, color, size)
	if item == nil {
		return CartItem{}, ErrCartItemNotFound
	}
	moved := *item
	if !wishlist.Contains(productID, color) {
		wishlist.Items = append(wishlist.Items, WishlistItem{ProductID: productID, Color: moved.Color})
	}
	cart.RemoveItem(productID, color, size)
	return moved, nil
}

// MoveWishlistItemToCart inserts item into the cart (merging with an existing
// line item under the stock ceiling) and removes the matching (product, color)
// wishlist entry. The wishlist removal key is coarser than the cart insertion
// key: whichever size was chosen for the cart, the (product, color) entry goes.
// On any error neither container is modified.
func MoveWishlistItemToCart(wishlist *Wishlist, cart *Cart, item CartItem, available int) error {
	if !wishlist.Contains(item.ProductID, item.Color) {
		return ErrWishlistItemNotFound
	}
	if err := cart.AddItem(item, available); err != nil {
		return err
	}
	wishlist.RemoveItem(item.ProductID, item.Color)
	return nil
}
