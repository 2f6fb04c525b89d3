package method

import (
	"testing"
)

func BenchmarkMethod(b *testing.B) {
	var parsed Method

	for _, method := range List {
		b.Run(method.String(), func(b *testing.B) {
			m := method.String()
			b.SetBytes(int64(len(m)))
			b.ResetTimer()

			for j := 0; j < b.N; j++ {
				parsed = Parse(m)
			}
		})
	}

	keepalive(parsed)
}

func keepalive(Method) {}
