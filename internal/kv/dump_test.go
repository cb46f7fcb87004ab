package kv_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sutapaslibrary/library-server/internal/kv"
)

func TestImport_BrowserDump(t *testing.T) {
	ctx := context.Background()

	var dump kv.Dump
	require.NoError(t, json.Unmarshal([]byte(`{
		"cart": "[{\"slug\":\"meditations\"}]",
		"purchased-a@b.c": [{"slug":"the-republic"}],
		"custom-books": "[]"
	}`), &dump))

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			keys, err := kv.Import(ctx, s, dump)
			require.NoError(t, err)
			assert.Equal(t, []string{"cart", "custom-books", "purchased-a@b.c"}, keys)

			value, err := s.Get(ctx, kv.KeyCart)
			require.NoError(t, err)
			assert.JSONEq(t, `[{"slug":"meditations"}]`, string(value))

			value, err = s.Get(ctx, kv.PurchasedKey("a@b.c"))
			require.NoError(t, err)
			assert.JSONEq(t, `[{"slug":"the-republic"}]`, string(value))
		})
	}
}

func TestImport_RejectsNonJSONString(t *testing.T) {
	s, err := kv.OpenBadgerInMemory(nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	_, err = kv.Import(context.Background(), s, kv.Dump{"cart": json.RawMessage(`"not json"`)})
	require.Error(t, err)

	_, err = s.Get(context.Background(), kv.KeyCart)
	assert.ErrorIs(t, err, kv.ErrKeyNotFound)
}

func TestExport(t *testing.T) {
	ctx := context.Background()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set(ctx, kv.PurchasedKey("a@b.c"), []byte(`[]`)))
			require.NoError(t, s.Set(ctx, kv.PurchasedKey("d@e.f"), []byte(`[{"slug":"x"}]`)))
			require.NoError(t, s.Set(ctx, kv.KeyCart, []byte(`[]`)))

			dump, err := kv.Export(ctx, s, kv.PurchasedPrefix())
			require.NoError(t, err)
			require.Len(t, dump, 2)
			assert.JSONEq(t, `[{"slug":"x"}]`, string(dump[kv.PurchasedKey("d@e.f")]))

			all, err := kv.Export(ctx, s, "")
			require.NoError(t, err)
			assert.Len(t, all, 3)
		})
	}
}
