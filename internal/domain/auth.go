package domain

// Identity is the authenticated caller of a single request, decoded from the
// token's subject claim.
type Identity struct {
	Subject string
}
