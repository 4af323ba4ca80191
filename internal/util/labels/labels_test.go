package labels

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLabelBuilder(t *testing.T) {
	t.Parallel()

	got := NewLabelBuilder("graph-worker").Build()

	assert.Equal(t, map[string]string{
		KeyGroup:     "graph-worker",
		KeyManagedBy: ManagedByMkserver,
	}, got)
}

func TestLabelBuilder_Chain(t *testing.T) {
	t.Parallel()

	got := NewLabelBuilder("web").
		WithIndex(3).
		WithRunID("0b5e").
		Merge(map[string]string{"team": "infra"}).
		Build()

	assert.Equal(t, "web", got[KeyGroup])
	assert.Equal(t, "3", got[KeyIndex])
	assert.Equal(t, "0b5e", got[KeyRunID])
	assert.Equal(t, "infra", got["team"])
}

func TestLabelBuilder_EmptyRunIDSkipped(t *testing.T) {
	t.Parallel()

	got := NewLabelBuilder("web").WithRunID("").Build()
	_, ok := got[KeyRunID]
	assert.False(t, ok)
}

func TestLabelBuilder_BuildReturnsCopy(t *testing.T) {
	t.Parallel()

	lb := NewLabelBuilder("web")
	first := lb.Build()
	first[KeyGroup] = "mutated"

	assert.Equal(t, "web", lb.Build()[KeyGroup])
}

func TestLabelBuilder_MergeSkipsReservedKeys(t *testing.T) {
	t.Parallel()

	got := NewLabelBuilder("web").
		Merge(map[string]string{
			KeyManagedBy:         "someone-else",
			KeyGroup:             "other",
			"mkserver.io/custom": "x",
			"team":               "infra",
		}).
		Build()

	assert.Equal(t, map[string]string{
		KeyGroup:     "web",
		KeyManagedBy: ManagedByMkserver,
		"team":       "infra",
	}, got)
}

func TestIsReserved(t *testing.T) {
	t.Parallel()

	assert.True(t, IsReserved(KeyIndex))
	assert.True(t, IsReserved("mkserver.io/anything"))
	assert.False(t, IsReserved("team"))
	assert.False(t, IsReserved("example.com/mkserver.io"))
}
