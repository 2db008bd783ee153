package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bazaar-system/models"
)

func namedItems(names ...string) []models.NamedItemInput {
	items := make([]models.NamedItemInput, 0, len(names))
	for _, n := range names {
		items = append(items, models.NamedItemInput{Name: n})
	}
	return items
}

func TestValidateBulkItems_Valid(t *testing.T) {
	errs := ValidateBulkItems(namedItems("North Hall", "South Hall", "Food Court"))
	assert.Empty(t, errs)
}

func TestValidateBulkItems_BlankNameNamesTheIndex(t *testing.T) {
	errs := ValidateBulkItems(namedItems("North Hall", "", "Food Court"))

	require.Len(t, errs, 1)
	assert.Equal(t, "item 1: name is required", errs[0])
}

func TestValidateBulkItems_WhitespaceOnlyIsBlank(t *testing.T) {
	errs := ValidateBulkItems(namedItems("   "))

	require.Len(t, errs, 1)
	assert.Equal(t, "item 0: name is required", errs[0])
}

func TestValidateBulkItems_CaseInsensitiveDuplicates(t *testing.T) {
	errs := ValidateBulkItems(namedItems("North Hall", "south hall", "NORTH HALL"))

	require.Len(t, errs, 1)
	assert.Equal(t, "item 2: duplicate of item 0", errs[0])
}

func TestValidateBulkItems_ReportsEveryFailure(t *testing.T) {
	errs := ValidateBulkItems(namedItems("", "A", "a", ""))

	assert.Len(t, errs, 3)
}
