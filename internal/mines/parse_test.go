package mines

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePoint(t *testing.T) {
	tests := []struct {
		token string
		want  Point
	}{
		{"A3", Point{3, 0}},
		{"3A", Point{3, 0}},
		{"a3", Point{3, 0}},
		{"3a", Point{3, 0}},
		{" J9 ", Point{9, 9}},
		{"b0", Point{0, 1}},
		{"0B", Point{0, 1}},
		{"E5", Point{5, 4}},
	}
	for _, test := range tests {
		t.Run(test.token, func(t *testing.T) {
			p, err := ParsePoint(test.token)
			require.NoError(t, err)
			assert.Equal(t, test.want, p)
		})
	}
}

func TestParsePointInvalid(t *testing.T) {
	for _, token := range []string{"", "A", "K3", "3K", "AA", "33", "A10", "10A", "A-", "Ä3"} {
		t.Run(token, func(t *testing.T) {
			_, err := ParsePoint(token)
			assert.ErrorIs(t, err, ErrBadCell)
		})
	}
}

func TestPointLabel(t *testing.T) {
	for y := range Size {
		for x := range Size {
			p := Point{x, y}
			got, err := ParsePoint(p.Label())
			require.NoError(t, err)
			assert.Equal(t, p, got)
		}
	}
	assert.Equal(t, "(10, 0)", Point{10, 0}.Label())
}

func TestParseAction(t *testing.T) {
	a, err := ParseAction("TEST")
	require.NoError(t, err)
	assert.Equal(t, Test, a)

	a, err = ParseAction(" flag")
	require.NoError(t, err)
	assert.Equal(t, Flag, a)

	_, err = ParseAction("chord")
	assert.ErrorIs(t, err, ErrBadAction)
}

func TestActionText(t *testing.T) {
	text, err := Flag.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "flag", string(text))

	var a Action
	require.NoError(t, a.UnmarshalText([]byte("test")))
	assert.Equal(t, Test, a)

	_, err = Action(9).MarshalText()
	assert.ErrorIs(t, err, ErrBadAction)
}
