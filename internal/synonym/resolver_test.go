package synonym

import (
	"fmt"
	"sync"
	"testing"

	"github.com/bassam-st/bassam-customs-ai/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	ix := Build(testCatalog(), DefaultExtra)

	tests := []struct {
		name   string
		query  string
		want   string
		wantOK bool
	}{
		{name: "exact normalized query", query: "مودم", want: "مودم انترنت (TP-Link)", wantOK: true},
		{name: "substring in sentence", query: "كم جمارك الراوتر 300 دولار", want: "مودم انترنت (TP-Link)", wantOK: true},
		{name: "diacritics and hamza", query: "كم رسوم أَلواح شمسيّة", want: "ألواح شمسية", wantOK: true},
		{name: "curated phrase", query: "سعر كيبل كاميرا", want: "اسلاك كاميرا 305 متر", wantOK: true},
		{name: "arabic-indic digits", query: "كم جمارك سلك ٣٠٥", want: "اسلاك كاميرا 305 متر", wantOK: true},
		{name: "latin keyword", query: "duty on Solar Panel 200 usd", want: "ألواح شمسية", wantOK: true},
		{name: "unknown product", query: "سيارة مستعملة", wantOK: false},
		{name: "empty", query: "", wantOK: false},
		{name: "punctuation only", query: "؟؟", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ix.Resolve(tt.query)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_VariantSpellingsAgree(t *testing.T) {
	ix := Build(testCatalog(), nil)

	a, okA := ix.Resolve("ألواح شمسيّة")
	b, okB := ix.Resolve("الواح شمسيه")
	require.True(t, okA)
	require.True(t, okB)
	assert.Equal(t, a, b)
}

func TestResolve_LongestMatchWins(t *testing.T) {
	ix := Build([]model.CatalogItem{
		{Name: "كاميرا"},
		{Name: "كاميرا مراقبة"},
	}, nil)

	got, ok := ix.Resolve("بكم كاميرا مراقبة خارجية")
	require.True(t, ok)
	assert.Equal(t, "كاميرا مراقبة", got)

	got, ok = ix.Resolve("بكم كاميرا رقمية")
	require.True(t, ok)
	assert.Equal(t, "كاميرا", got)
}

func TestResolve_TieGoesToFirstRegistered(t *testing.T) {
	ix := Build([]model.CatalogItem{
		{Name: "حديد"},
		{Name: "نحاس"},
	}, nil)

	got, ok := ix.Resolve("نحاس و حديد")
	require.True(t, ok)
	assert.Equal(t, "حديد", got)
}

func TestResolve_ShortSynonymsIgnoredForSubstring(t *testing.T) {
	ix := Build([]model.CatalogItem{{Name: "نت"}}, nil)

	got, ok := ix.Resolve("نت")
	require.True(t, ok, "exact match still applies")
	assert.Equal(t, "نت", got)

	_, ok = ix.Resolve("سعر نت")
	assert.False(t, ok)
}

func TestResolve_Concurrent(t *testing.T) {
	items := make([]model.CatalogItem, 0, 50)
	for i := range 50 {
		items = append(items, model.CatalogItem{Name: fmt.Sprintf("صنف رقم %d", i)})
	}
	ix := Build(items, DefaultExtra)

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got, ok := ix.Resolve(fmt.Sprintf("كم جمارك صنف رقم %d", i))
			assert.True(t, ok)
			assert.Equal(t, fmt.Sprintf("صنف رقم %d", i), got)
		}(i)
	}
	wg.Wait()
}
