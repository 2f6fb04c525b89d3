package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoZeroFields(t *testing.T) {
	cfg := Default()

	for _, field := range visit(newVar(*cfg), "Config", false) {
		assert.Fail(t, "zero-value field", field)
	}
}

type variable struct {
	Type  reflect.Type
	Value reflect.Value
}

func newVar(a any) variable {
	return variable{reflect.TypeOf(a), reflect.ValueOf(a)}
}

func visit(a variable, name string, nullable bool) (fields []string) {
	if a.Type.Kind() == reflect.Struct {
		for field := range a.Value.NumField() {
			v1 := variable{a.Type.Field(field).Type, a.Value.Field(field)}
			fieldname := a.Type.Field(field).Name
			isNullable := a.Type.Field(field).Tag.Get("test") == "nullable"
			fields = append(fields, visit(v1, name+"."+fieldname, isNullable)...)
		}

		return fields
	}

	if a.Value.IsZero() && !nullable {
		return []string{name}
	}

	return nil
}

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("toml", func(t *testing.T) {
		path := writeFile(t, "oneshot.toml", `
[net]
addr = "0.0.0.0:8080"
read_buffer_size = 4096

[files]
directory = "/tmp/files"
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, "0.0.0.0:8080", cfg.NET.Addr)
		require.Equal(t, 4096, cfg.NET.ReadBufferSize)
		require.Equal(t, Default().NET.MaxRequestSize, cfg.NET.MaxRequestSize)
		require.Equal(t, "/tmp/files", cfg.Files.Directory)
		require.Equal(t, "info", cfg.Log.Level)
	})

	t.Run("json", func(t *testing.T) {
		path := writeFile(t, "oneshot.json", `{
			"log": {"level": "debug"},
			"metrics": {"addr": "127.0.0.1:9100"}
		}`)
		cfg, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, "debug", cfg.Log.Level)
		require.Equal(t, "127.0.0.1:9100", cfg.Metrics.Addr)
		require.Equal(t, Default().NET, cfg.NET)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := Load(writeFile(t, "oneshot.yaml", "net: {}"))
		require.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := Load(writeFile(t, "oneshot.toml", "[net\naddr ="))
		require.Error(t, err)

		_, err = Load(writeFile(t, "oneshot.json", "{"))
		require.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("invalid values", func(t *testing.T) {
		_, err := Load(writeFile(t, "oneshot.toml", "[net]\nread_buffer_size = 0\n"))
		require.ErrorIs(t, err, ErrInvalid)
	})
}

func TestValidate(t *testing.T) {
	require.NoError(t, Default().Validate())

	cfg := Default()
	cfg.NET.Addr = ""
	require.ErrorIs(t, cfg.Validate(), ErrInvalid)

	cfg = Default()
	cfg.NET.MaxRequestSize = cfg.NET.ReadBufferSize - 1
	require.ErrorIs(t, cfg.Validate(), ErrInvalid)
}
