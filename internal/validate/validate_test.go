package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequired(t *testing.T) {
	var msgs Messages
	msgs = Required(msgs, "name", "Ana")
	assert.True(t, msgs.OK())

	msgs = Required(msgs, "document", "   ")
	assert.False(t, msgs.OK())
	assert.Contains(t, msgs[0], "document is required")
}

func TestMinLen(t *testing.T) {
	var msgs Messages
	msgs = MinLen(msgs, "description", "no signal at night", 5)
	assert.True(t, msgs.OK())

	msgs = MinLen(msgs, "description", "  hi  ", 5)
	assert.False(t, msgs.OK())
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "Ana", Sanitize("  Ana  "))
	assert.Equal(t, "&lt;script&gt;x&lt;/script&gt;", Sanitize("<script>x</script>"))
}
