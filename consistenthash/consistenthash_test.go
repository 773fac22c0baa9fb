package consistenthash

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestGet mirrors the teacher's table: hashes are the key number itself,
// so membership can be checked by arithmetic instead of guessing CRC-32
// output.
func TestGet(t *testing.T) {
	ring := New(3, func(key []byte) uint32 {
		n, _ := strconv.Atoi(string(key))
		return uint32(n)
	})

	ring.AddAll("6", "4", "2")

	cases := map[string]string{
		"2":  "2",
		"11": "2",
		"23": "4",
		"27": "2",
	}
	for probe, want := range cases {
		got, ok := ring.Get(probe)
		require.True(t, ok)
		require.Equal(t, want, got, "probe %s", probe)
	}

	ring.AddAll("8")
	cases["27"] = "8"
	for probe, want := range cases {
		got, ok := ring.Get(probe)
		require.True(t, ok)
		require.Equal(t, want, got, "probe %s after adding 8", probe)
	}
}

func TestGetEmpty(t *testing.T) {
	ring := New(3, nil)
	_, ok := ring.Get("anything")
	require.False(t, ok)
}

func TestAddAlreadyPresent(t *testing.T) {
	ring := New(3, nil)
	require.False(t, ring.Add("peer1"))
	require.True(t, ring.Add("peer1"))
}

// TestStability is scenario S4 / property #4: two rings built from the
// same replicas, hash, and members (inserted in different orders) agree
// on every probe.
func TestStability(t *testing.T) {
	a := New(3, nil)
	b := New(3, nil)
	a.AddAll("key1", "key2")
	b.AddAll("key2", "key1")

	for _, probe := range []string{"key11", "key22", "anything"} {
		oa, _ := a.Get(probe)
		ob, _ := b.Get(probe)
		require.Equal(t, oa, ob, "probe %s", probe)
	}
}

// TestReset clears all membership.
func TestReset(t *testing.T) {
	ring := New(5, nil)
	ring.AddAll("a", "b", "c")
	ring.Reset()
	_, ok := ring.Get("a")
	require.False(t, ok)
	require.False(t, ring.Add("a"))
}
