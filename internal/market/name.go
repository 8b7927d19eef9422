package market

// Name is the venue identity of an instrument: a base symbol plus an
// optional expiration suffix for quarterly futures.
type Name struct {
	Base       string
	Expiration string
}

// ID is the full market symbol the venue recognizes.
func (n Name) ID() string {
	return n.Base + n.Expiration
}
