package engine

import (
	"regexp"
	"strings"

	"github.com/filip867/Karl-Filip/internal/domain/entity"
)

var listingNumber = regexp.MustCompile(`\b\d{4}\b`)

// ExtractListingID returns the first standalone four-digit number of a
// listing label, or the trimmed label itself when there is none.
func ExtractListingID(label string) string {
	if id := listingNumber.FindString(label); id != "" {
		return id
	}
	return strings.TrimSpace(label)
}

// Resolver maps listing labels onto reference listings.
type Resolver struct {
	index map[string]entity.ListingMeta
}

// NewResolver indexes the reference listings by id.
func NewResolver(listings []entity.ListingMeta) *Resolver {
	index := make(map[string]entity.ListingMeta, len(listings))
	for _, l := range listings {
		index[l.ID] = l
	}
	return &Resolver{index: index}
}

// Lookup returns the reference entry for id.
func (r *Resolver) Lookup(id string) (entity.ListingMeta, bool) {
	meta, ok := r.index[id]
	return meta, ok
}

// Resolve starts an empty record for label. Listings missing from the
// reference table get a record without area.
func (r *Resolver) Resolve(label string) entity.ListingRecord {
	id := ExtractListingID(label)
	rec := entity.ListingRecord{ID: id, Revenue: entity.MonthlySeries{}}
	if meta, ok := r.Lookup(id); ok {
		area := meta.Area
		rec.Area = &area
	}
	return rec
}
