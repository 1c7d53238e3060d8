package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "whitespace only", input: "  \t\n ", want: ""},
		{name: "hamza alef below", input: "إنترنت", want: "انترنت"},
		{name: "hamza alef above", input: "أسلاك", want: "اسلاك"},
		{name: "madda", input: "آلة", want: "اله"},
		{name: "ta marbuta", input: "قيمة", want: "قيمه"},
		{name: "alef maksura", input: "مستشفى", want: "مستشفي"},
		{name: "ya with hamza", input: "مائة", want: "مايه"},
		{name: "waw with hamza", input: "مؤسسة", want: "موسسه"},
		{name: "diacritics", input: "مُودِمٌ", want: "مودم"},
		{name: "tatweel", input: "مـــودم", want: "مودم"},
		{name: "punctuation becomes space", input: "ملابس(رجالي)-درزن", want: "ملابس رجالي درزن"},
		{name: "symbols stripped", input: "300$ USD!", want: "300 usd"},
		{name: "collapse and trim", input: "  صحن   نت  ", want: "صحن نت"},
		{name: "latin lower-cased", input: "Solar PANEL 550W", want: "solar panel 550w"},
		{name: "arabic-indic digits kept", input: "٣٠٠ دولار", want: "٣٠٠ دولار"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"إنترنت",
		"الفئة5% (ملاحظة)",
		"İstanbul Çay",
		"مُودِمٌ — راوتر",
		"كم رسوم 300 دولار على ألواح شمسية؟",
		"Ǆungla ﷼ ٪ ـــ",
	}

	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestNormalize_VariantsAreEqual(t *testing.T) {
	assert.Equal(t, Normalize("إنترنت"), Normalize("انترنت"))
	assert.True(t, Equal("ألواح شمسية", "الواح شمسيه"))
	assert.True(t, Equal("مَلابِس", "ملابس"))
	assert.False(t, Equal("مودم", "راوتر"))
}

func TestTokens(t *testing.T) {
	assert.Nil(t, Tokens(""))
	assert.Nil(t, Tokens("!!!"))
	assert.Equal(t, []string{"سلك", "كاميرا", "305"}, Tokens("سلك-كاميرا 305"))
}
