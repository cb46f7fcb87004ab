package kv

// Keys under which the storefront persists its state. The names match the
// browser storefront so an exported local storage dump imports unchanged.
const (
	KeyCustomBooks = "custom-books"
	KeyBookContent = "book-content"
	KeyCart        = "cart"

	purchasedPrefix = "purchased-"
)

// PurchasedKey returns the ledger key for a user.
func PurchasedKey(email string) string {
	return purchasedPrefix + email
}

// PurchasedPrefix is the common prefix of all ledger keys.
func PurchasedPrefix() string {
	return purchasedPrefix
}

// UserCartKey returns the cart key used when carts are scoped per user.
func UserCartKey(email string) string {
	return KeyCart + "-" + email
}
