package repeat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountTable(t *testing.T) {
	c := NewCountTable()
	assert.Equal(t, 0, c.Get(TagFull, 20))
	assert.Equal(t, 0, c.Total(TagFull))
	assert.Equal(t, 0, c.MaxCount(TagRept))

	c.Incr(TagFull, 20)
	c.Incr(TagFull, 20)
	c.Incr(TagFull, 23)
	c.Incr(TagRept, 50)

	assert.Equal(t, 2, c.Get(TagFull, 20))
	assert.Equal(t, 1, c.Get(TagFull, 23))
	assert.Equal(t, 3, c.Total(TagFull))
	assert.Equal(t, 1, c.Total(TagRept))
	assert.Equal(t, 2, c.MaxCount(TagFull))
	assert.Equal(t, []int{20, 23}, c.Units(TagFull))
	assert.Empty(t, c.Units(TagHang))
}

func TestCountTableMerge(t *testing.T) {
	a := NewCountTable()
	a.Incr(TagFull, 20)
	a.Incr(TagPref, 10)

	b := NewCountTable()
	b.Incr(TagFull, 20)
	b.Incr(TagFull, 21)
	b.Incr(TagHang, 5)

	a.Merge(b)
	assert.Equal(t, 2, a.Get(TagFull, 20))
	assert.Equal(t, 1, a.Get(TagFull, 21))
	assert.Equal(t, 1, a.Get(TagPref, 10))
	assert.Equal(t, 1, a.Get(TagHang, 5))
	// The source table is untouched.
	assert.Equal(t, 1, b.Get(TagFull, 20))
}

func TestCountTableMap(t *testing.T) {
	c := NewCountTable()
	c.Incr(TagPost, 7)
	m := c.Map()
	assert.Equal(t, 1, m[TagPost][7])

	// The copy is detached from the table.
	m[TagPost][7] = 99
	assert.Equal(t, 1, c.Get(TagPost, 7))
}
