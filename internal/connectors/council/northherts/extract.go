package northherts

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/custodia-labs/bindays/internal/core/domain"
)

const nextCollectionPrefix = "Next collection"

// ExtractCollections reads waste types and dates from the listing rows of
// the results page. Each row's first non-empty line is the waste type and
// the line starting "Next collection" carries the date. The first row seen
// for a waste type wins.
func ExtractCollections(html string) (domain.CollectionData, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse results page: %w", err)
	}

	data := domain.CollectionData{}
	doc.Find(rowSelector).Each(func(_ int, row *goquery.Selection) {
		lines := nonEmptyLines(row.Text())
		if len(lines) == 0 {
			return
		}

		wasteType := lines[0]
		for _, line := range lines {
			if strings.HasPrefix(line, nextCollectionPrefix) {
				date := strings.TrimSpace(strings.TrimPrefix(line, nextCollectionPrefix))
				data.Add(wasteType, date)
				return
			}
		}
	})

	return data, nil
}

func nonEmptyLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
