package http

import (
	"testing"

	"github.com/indigo-web/oneshot/http/method"
	"github.com/indigo-web/oneshot/kv"
	"github.com/indigo-web/utils/uf"
	"github.com/stretchr/testify/require"
)

func TestRequest(t *testing.T) {
	t.Run("new", func(t *testing.T) {
		request := NewRequest()
		require.Equal(t, method.Unknown, request.Method)
		require.True(t, request.Headers.Empty())
		require.Nil(t, request.Body)
	})

	t.Run("clone detaches from the buffer", func(t *testing.T) {
		buff := []byte("/pathUser-Agentcurlbody")
		request := NewRequest()
		request.Method = method.POST
		request.URL = uf.B2S(buff[:5])
		request.Headers.Set(uf.B2S(buff[5:15]), uf.B2S(buff[15:19]))
		request.Body = buff[19:]

		clone := request.Clone()
		for i := range buff {
			buff[i] = '!'
		}

		require.Equal(t, method.POST, clone.Method)
		require.Equal(t, "/path", clone.URL)
		require.Equal(t, []kv.Pair{{Key: "User-Agent", Value: "curl"}}, clone.Headers.Sorted())
		require.Equal(t, "body", string(clone.Body))
	})

	t.Run("clone keeps absent body absent", func(t *testing.T) {
		request := NewRequest()
		request.URL = "/"
		require.Nil(t, request.Clone().Body)

		request.Body = []byte{}
		require.NotNil(t, request.Clone().Body)
	})
}
