package status

import (
	"math/rand/v2"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

var codes = []Code{OK, Created, NotFound}

func Test(t *testing.T) {
	t.Run("string code", func(t *testing.T) {
		for _, code := range codes {
			require.Equal(t, strconv.Itoa(int(code)), StringCode(code))
		}
	})

	t.Run("lines", func(t *testing.T) {
		require.Equal(t, "200 OK", Line(OK))
		require.Equal(t, "201 Created", Line(Created))
		require.Equal(t, "404 Not Found", Line(NotFound))
	})

	t.Run("unknown", func(t *testing.T) {
		require.Equal(t, "500 Unknown Status Code", Line(Code(500)))
	})
}

func Benchmark(b *testing.B) {
	code := codes[rand.IntN(len(codes))]
	b.ResetTimer()

	for range b.N {
		_ = Line(code)
	}
}
