package internal

import (
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConcat2(t *testing.T) {
	assert := assert.New(t)

	first := slices.All([]string{"a", "b"})
	second := slices.All([]string{"c"})

	var got []string
	for _, value := range Concat2(first, second) {
		got = append(got, value)
	}
	assert.Equal([]string{"a", "b", "c"}, got)

	merged := maps.Collect(Concat2(maps.All(map[string]int{"x": 1}), maps.All(map[string]int{"x": 2})))
	assert.Equal(map[string]int{"x": 2}, merged)

	for _, value := range Concat2(first, second) {
		assert.Equal("a", value)
		break
	}

	var count int
	for range Concat2[int, string]() {
		count++
	}
	assert.Equal(0, count)
}
