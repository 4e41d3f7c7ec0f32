package tests

//revive:disable:import-shadowing reason: Disabled for assert := assert.New(), which is
// the preferred method of using multiple asserts in a test.

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/illuscio-dev/formtools-go/charset"
)

func TestUTF8Default(test *testing.T) {
	assert := assert.New(test)

	assert.Equal("UTF-8", charset.UTF8.Name())

	encoded, err := charset.UTF8.EncodeString("naïve")
	assert.Nil(err)
	assert.Equal([]byte("naïve"), encoded)
}

func TestNamedLatin1(test *testing.T) {
	assert := assert.New(test)

	latin1, err := charset.Named("ISO-8859-1")
	assert.Nil(err)
	assert.Equal("ISO-8859-1", latin1.Name())

	// ï is a single 0xEF byte in latin-1 instead of the two-byte UTF-8 form.
	encoded, err := latin1.EncodeString("naïve")
	assert.Nil(err)
	assert.Equal([]byte{'n', 'a', 0xEF, 'v', 'e'}, encoded)
}

func TestNamedUnknownErr(test *testing.T) {
	assert := assert.New(test)

	_, err := charset.Named("NOT-A-CHARSET")
	assert.NotNil(err)
}
