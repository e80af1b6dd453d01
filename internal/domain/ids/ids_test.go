package ids

import (
	"errors"
	"testing"

	"family-connect-go/internal/domain/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCanonicalizes(t *testing.T) {
	id, err := Parse("userId", "  6F9619FF-8B86-D011-B42D-00C04FC964FF ")
	require.NoError(t, err)
	assert.Equal(t, "6f9619ff-8b86-d011-b42d-00c04fc964ff", id)
}

func TestParseRejects(t *testing.T) {
	_, err := Parse("userId", "")
	assert.True(t, errors.Is(err, apperr.ErrValidation))
	assert.Equal(t, "userId is required", apperr.Message(err))

	_, err = Parse("userId", "not-a-uuid")
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestOrderedPairIsOrderIndependent(t *testing.T) {
	a, b := New(), New()

	lo1, hi1 := OrderedPair(a, b)
	lo2, hi2 := OrderedPair(b, a)

	assert.Equal(t, lo1, lo2)
	assert.Equal(t, hi1, hi2)
	assert.True(t, lo1 < hi1)
}
