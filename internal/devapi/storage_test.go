package devapi_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eightyseven/internal/devapi"
)

func backends(t *testing.T) map[string]devapi.Storage {
	t.Helper()
	out := make(map[string]devapi.Storage)
	for _, name := range []string{"memory", "sqlite"} {
		s, err := devapi.NewStorage(name, t.TempDir())
		require.NoError(t, err, name)
		t.Cleanup(func() { s.Close() })
		out[name] = s
	}
	return out
}

func TestStorage_Lifecycle(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			id, err := s.Create("passwordstore", map[string]any{"name": "work"})
			require.NoError(t, err)
			assert.Positive(t, id)

			other, err := s.Create("passwordrecord", map[string]any{"title": "mail"})
			require.NoError(t, err)
			assert.NotEqual(t, id, other)

			obj, ok, err := s.Get("passwordstore", id)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, "work", obj.Data["name"])

			_, ok, err = s.Get("passwordrecord", id)
			require.NoError(t, err)
			assert.False(t, ok, "ids are scoped by kind")

			found, err := s.Replace("passwordstore", id, map[string]any{"name": "home"})
			require.NoError(t, err)
			assert.True(t, found)

			list, err := s.List("passwordstore")
			require.NoError(t, err)
			require.Len(t, list, 1)
			assert.Equal(t, "home", list[0].Data["name"])

			found, err = s.Delete("passwordstore", id)
			require.NoError(t, err)
			assert.True(t, found)
			found, err = s.Delete("passwordstore", id)
			require.NoError(t, err)
			assert.False(t, found)

			found, err = s.Replace("passwordstore", id, map[string]any{})
			require.NoError(t, err)
			assert.False(t, found)
		})
	}
}

func TestNewStorage_Unknown(t *testing.T) {
	_, err := devapi.NewStorage("postgres", t.TempDir())
	assert.Error(t, err)
}
