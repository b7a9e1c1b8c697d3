package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateCellLatestValue(t *testing.T) {
	c := NewStateCell(0)
	ch, cancel := c.Subscribe()
	defer cancel()

	assert.Equal(t, 0, <-ch)
	for i := 1; i <= 5; i++ {
		c.Update(func(int) int { return i })
	}

	assert.Equal(t, 5, <-ch, "intermediate values are replaced")
	assert.Equal(t, 5, c.Get())
}

func TestStateCellCloseStopsUpdates(t *testing.T) {
	c := NewStateCell("a")
	ch, cancel := c.Subscribe()
	<-ch

	c.Close()
	ok := c.Update(func(string) string { return "b" })

	assert.False(t, ok)
	assert.Equal(t, "a", c.Get())
	_, open := <-ch
	assert.False(t, open)
	cancel()

	late, _ := c.Subscribe()
	_, open = <-late
	assert.False(t, open)
}

func TestStateCellUnsubscribe(t *testing.T) {
	c := NewStateCell(1)
	ch, cancel := c.Subscribe()
	<-ch
	cancel()
	cancel()

	c.Update(func(int) int { return 2 })
	_, open := <-ch
	assert.False(t, open)
}
