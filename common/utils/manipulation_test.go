package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReverse(t *testing.T) {
	assert.Equal(t, "", Reverse(""))
	assert.Equal(t, "moc.elpmaxe", Reverse("example.com"))
	assert.Equal(t, "moc.elpmaxe.\r", Reverse("\r.example.com"))
	assert.Equal(t, "国中.例", Reverse("例.中国"))
	assert.Equal(t, "b\xffa", Reverse("a\xffb"))
}

func TestEmptyOr(t *testing.T) {
	assert.Equal(t, "def", EmptyOr("", "def"))
	assert.Equal(t, 3, EmptyOr(3, 4))
}
