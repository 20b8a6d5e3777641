package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOptional(t *testing.T) {
	assert := require.New(t)

	optionalInt := NewOptional(42, true)
	assert.Equal(42, optionalInt.Value)
	assert.True(optionalInt.IsPresent)

	optionalString := NewOptional("foo", false)
	assert.Equal("foo", optionalString.Value)
	assert.False(optionalString.IsPresent)
}

func TestNewEmailNormalizes(t *testing.T) {
	assert := require.New(t)

	cases := []struct {
		raw      string
		expected Email
	}{
		{raw: "test@test.test", expected: Email("test@test.test")},
		{raw: "Test@Test.Test", expected: Email("test@test.test")},
		{raw: "  test@test.test  ", expected: Email("test@test.test")},
		{raw: "\tTEST@TEST.TEST\n", expected: Email("test@test.test")},
	}
	for _, c := range cases {
		assert.Equal(c.expected, NewEmail(c.raw))
	}
}
