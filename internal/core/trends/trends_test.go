package trends

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTopTagsFrequencyOrder(t *testing.T) {
	fields := []string{
		"Pool, Gym",
		"Pool",
		"Gym, Sea View",
	}

	assert.Equal(t, []string{"Pool", "Gym"}, TopTags(fields, 2))
}

func TestTopTagsTieBreakByFirstEncounter(t *testing.T) {
	fields := []string{
		"Balcony, Garden",
		"Garden, Balcony",
	}

	// Both count 2; Balcony was seen first.
	assert.Equal(t, []string{"Balcony", "Garden"}, TopTags(fields, 2))
}

func TestTopTagsTrimsAndSkipsEmpties(t *testing.T) {
	fields := []string{
		"  Pool ,, Gym ",
		"",
		"Pool",
	}

	assert.Equal(t, []string{"Pool", "Gym"}, TopTags(fields, 5))
}

func TestTopTagsCaseInsensitiveCount(t *testing.T) {
	fields := []string{
		"Sea View",
		"sea view",
		"Gym",
	}

	assert.Equal(t, []string{"Sea View"}, TopTags(fields, 1))
}

func TestTopTagsLimits(t *testing.T) {
	fields := []string{"Pool, Gym, Garden"}

	assert.Len(t, TopTags(fields, 2), 2)
	assert.Len(t, TopTags(fields, 10), 3)
	assert.Nil(t, TopTags(fields, 0))
}
