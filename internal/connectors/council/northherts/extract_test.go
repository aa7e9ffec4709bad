package northherts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/bindays/internal/core/domain"
)

const resultsPage = `<html><body>
<div class="listing_template_row">
  <h3>Refuse</h3>
  <p>Collected fortnightly</p>
  <p>Next collection Thursday 11th September 2025</p>
</div>
<div class="listing_template_row">
  <h3>Mixed Recycling</h3>
  <p>Next collection   Thursday 18th September 2025  </p>
  <p>Last collection Thursday 4th September 2025</p>
</div>
<div class="listing_template_row">
  <h3>Refuse</h3>
  <p>Next collection Friday 26th September 2025</p>
</div>
<div class="listing_template_row">
  <h3>Garden Waste</h3>
  <p>Subscription required</p>
</div>
<div class="listing_template_row">   </div>
</body></html>`

func TestExtractCollections(t *testing.T) {
	data, err := ExtractCollections(resultsPage)
	require.NoError(t, err)

	assert.Equal(t, domain.CollectionData{
		"Refuse":          "Thursday 11th September 2025",
		"Mixed Recycling": "Thursday 18th September 2025",
	}, data)
}

func TestExtractCollections_NoRows(t *testing.T) {
	data, err := ExtractCollections(`<html><body><p>Sorry, no results</p></body></html>`)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestNonEmptyLines(t *testing.T) {
	assert.Equal(t, []string{"a", "b c"}, nonEmptyLines("\n  a \n\n\t b c\n  "))
	assert.Nil(t, nonEmptyLines(" \n\t"))
}
