package domain

import (
	"sort"
	"time"
)

// CollectionData maps a waste type (e.g. "Refuse") to the collection date
// exactly as the council site prints it.
type CollectionData map[string]string

// CollectionRecord is a single waste type and its raw collection date.
type CollectionRecord struct {
	WasteType  string `json:"wasteType"`
	DateString string `json:"collectionDateString"`
}

// Records returns the data as records ordered by waste type.
func (c CollectionData) Records() []CollectionRecord {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	records := make([]CollectionRecord, 0, len(keys))
	for _, k := range keys {
		records = append(records, CollectionRecord{WasteType: k, DateString: c[k]})
	}
	return records
}

// Add records a collection unless the waste type is already present.
// The first occurrence wins; it reports whether the record was added.
func (c CollectionData) Add(wasteType, dateString string) bool {
	if wasteType == "" {
		return false
	}
	if _, exists := c[wasteType]; exists {
		return false
	}
	c[wasteType] = dateString
	return true
}

// ScrapeResult is the outcome of a successful scrape.
type ScrapeResult struct {
	// Address is the address that was searched for.
	Address string
	// URL is the page the collection data was read from.
	URL string
	// CollectionData holds one entry per waste type found.
	CollectionData CollectionData
	// ScrapedAt is when extraction finished.
	ScrapedAt time.Time
}
