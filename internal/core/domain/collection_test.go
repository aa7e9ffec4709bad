package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollectionData_Add_FirstOccurrenceWins(t *testing.T) {
	data := CollectionData{}

	assert.True(t, data.Add("Refuse", "Thursday 11th September 2025"))
	assert.False(t, data.Add("Refuse", "Thursday 25th September 2025"))
	assert.False(t, data.Add("", "Friday 12th September 2025"))

	assert.Equal(t, CollectionData{"Refuse": "Thursday 11th September 2025"}, data)
}

func TestCollectionData_Records_Sorted(t *testing.T) {
	data := CollectionData{
		"Refuse":    "a",
		"Food":      "b",
		"Recycling": "c",
	}

	records := data.Records()

	assert.Equal(t, []CollectionRecord{
		{WasteType: "Food", DateString: "b"},
		{WasteType: "Recycling", DateString: "c"},
		{WasteType: "Refuse", DateString: "a"},
	}, records)
}

func TestCollectionData_Records_Empty(t *testing.T) {
	assert.Empty(t, CollectionData{}.Records())
}

func TestInvocation_Code(t *testing.T) {
	assert.Equal(t, "", Invocation{}.Code())
	assert.Equal(t, "s3cret", Invocation{QueryParameters: map[string]string{"code": "s3cret"}}.Code())
}
