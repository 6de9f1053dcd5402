package analyzer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounts_JSONKeepsOrder(t *testing.T) {
	c := Counts{{Key: "Zig", Value: 9}, {Key: "Ada", Value: 3}, {Key: `q"uote`, Value: 1}}

	data, err := json.Marshal(c)
	require.NoError(t, err)
	assert.Equal(t, `{"Zig":9,"Ada":3,"q\"uote":1}`, string(data))

	var back Counts
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, c, back)
}

func TestCounts_UnmarshalRejectsNonObject(t *testing.T) {
	var c Counts
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &c))
	assert.Error(t, json.Unmarshal([]byte(`{"a":"b"}`), &c))
}

func TestCounts_SortDescStable(t *testing.T) {
	c := Counts{{Key: "a", Value: 1}, {Key: "b", Value: 5}, {Key: "c", Value: 1}, {Key: "d", Value: 5}}
	c.SortDesc()
	assert.Equal(t, []string{"b", "d", "a", "c"}, c.Keys())
}
