package synonym

import (
	"testing"

	"github.com/bassam-st/bassam-customs-ai/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() []model.CatalogItem {
	return []model.CatalogItem{
		{Name: "مودم انترنت (TP-Link)", DefaultPrice: 15, Unit: "piece"},
		{Name: "صحون انترنت - كبيرة", DefaultPrice: 40, Unit: "piece"},
		{Name: "اسلاك كاميرا 305 متر", DefaultPrice: 30, Unit: "roll"},
		{Name: "ملابس رجالي للدرزن", DefaultPrice: 24, Unit: "dozen"},
		{Name: "ألواح شمسية", DefaultPrice: 100, Unit: "piece", Keywords: []string{"solar panel"}},
	}
}

func TestBuild_NameVariants(t *testing.T) {
	ix := Build(testCatalog(), nil)

	tests := []struct {
		key  string
		want string
	}{
		{key: "مودم انترنت (TP-Link)", want: "مودم انترنت (TP-Link)"},
		{key: "مودم انترنت", want: "مودم انترنت (TP-Link)"},
		{key: "مودم", want: "مودم انترنت (TP-Link)"},
		{key: "مودمات", want: "مودم انترنت (TP-Link)"},
		{key: "صحون انترنت كبيرة", want: "صحون انترنت - كبيرة"},
		{key: "صحون انترنت", want: "صحون انترنت - كبيرة"},
		{key: "اسلاك كاميرا 305", want: "اسلاك كاميرا 305 متر"},
		{key: "اسلاك", want: "اسلاك كاميرا 305 متر"},
		{key: "ملابس رجالي", want: "ملابس رجالي للدرزن"},
		{key: "الواح", want: "ألواح شمسية"},
		{key: "solar panel", want: "ألواح شمسية"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := ix.Lookup(tt.key)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuild_FirstRegistrationWins(t *testing.T) {
	ix := Build([]model.CatalogItem{
		{Name: "انترنت فضائي"},
		{Name: "مودم انترنت"},
	}, nil)

	got, ok := ix.Lookup("انترنت")
	require.True(t, ok)
	assert.Equal(t, "انترنت فضائي", got)

	got, ok = ix.Lookup("مودم")
	require.True(t, ok)
	assert.Equal(t, "مودم انترنت", got)
}

func TestBuild_ShortVariantsSkipped(t *testing.T) {
	ix := Build([]model.CatalogItem{{Name: "ب ج"}}, nil)

	_, ok := ix.Lookup("ب")
	assert.False(t, ok)
	_, ok = ix.Lookup("ب ج")
	assert.True(t, ok)
}

func TestBuild_SkipsNamelessItems(t *testing.T) {
	ix := Build([]model.CatalogItem{{Name: "", Keywords: []string{"شيء"}}}, nil)
	assert.Equal(t, 0, ix.Len())
	assert.Empty(t, ix.Canonicals())
}

func TestBuild_CuratedTable(t *testing.T) {
	ix := Build(testCatalog(), DefaultExtra)

	tests := []struct {
		key  string
		want string
	}{
		{key: "راوتر", want: "مودم انترنت (TP-Link)"},
		{key: "طبق نت", want: "صحون انترنت - كبيرة"},
		{key: "كابل كاميرا", want: "اسلاك كاميرا 305 متر"},
		{key: "سلك 305", want: "اسلاك كاميرا 305 متر"},
		{key: "سلك ٣٠٥", want: "اسلاك كاميرا 305 متر"},
		{key: "لبس", want: "ملابس رجالي للدرزن"},
		{key: "ألبسة", want: "ملابس رجالي للدرزن"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := ix.Lookup(tt.key)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuild_CuratedExactBeforeContains(t *testing.T) {
	ix := Build([]model.CatalogItem{
		{Name: "مودم انترنت"},
		{Name: "مودم"},
	}, []Entry{{Key: "مودم", Synonyms: []string{"راوتر"}}})

	got, ok := ix.Lookup("راوتر")
	require.True(t, ok)
	assert.Equal(t, "مودم", got)
}

func TestBuild_CuratedWithoutTarget(t *testing.T) {
	ix := Build([]model.CatalogItem{{Name: "سيراميك"}}, DefaultExtra)

	_, ok := ix.Lookup("راوتر")
	assert.False(t, ok)
}

func TestIndex_NilSafe(t *testing.T) {
	var ix *Index
	assert.Equal(t, 0, ix.Len())
	assert.Nil(t, ix.Canonicals())
	_, ok := ix.Lookup("x")
	assert.False(t, ok)
	_, ok = ix.Resolve("x")
	assert.False(t, ok)
}

func TestSimplifyName(t *testing.T) {
	assert.Equal(t, "مودم انترنت", simplifyName("مودم انترنت (TP-Link)"))
	assert.Equal(t, "صحون انترنت كبيرة", simplifyName("صحون انترنت - كبيرة"))
	assert.Equal(t, "a b c", simplifyName("a–b—c"))
}

func TestPluralVariants(t *testing.T) {
	assert.Equal(t, []string{"مودمات", "مودم"}, pluralVariants("مودمات"))
	assert.Equal(t, []string{"مودم", "مودمات"}, pluralVariants("مودم"))
	assert.Equal(t, []string{"نت"}, pluralVariants("نت"))
}
