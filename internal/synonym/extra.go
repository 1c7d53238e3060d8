package synonym

// Entry is one row of a curated synonym table. Key is either a full
// canonical name or a general word contained in one.
type Entry struct {
	Key      string
	Synonyms []string
}

// DefaultExtra is the curated synonym table applied after name-derived forms.
// Order matters: it is applied top to bottom under first-wins.
var DefaultExtra = []Entry{
	{
		Key:      "مودم",
		Synonyms: []string{"مودم", "مودمات", "مودم نت", "مودم انترنت", "موديم", "موديمات", "راوتر", "راوترات"},
	},
	{
		Key:      "صحون",
		Synonyms: []string{"صحون نت", "صحن نت", "صحون الانترنت", "صحن انترنت", "انتينا نت", "طبق نت", "طبق انترنت"},
	},
	{
		Key:      "اسلاك كاميرا",
		Synonyms: []string{"سلك كاميرا", "اسلاك كاميرا", "كيبل كاميرا", "كابل كاميرا", "سلك 305", "305 متر سلك"},
	},
	{
		Key:      "ملابس",
		Synonyms: []string{"ملابس", "لبس", "ألبسة", "ملابس درزن", "قيمة الدرزن ملابس", "درزن ملابس"},
	},
}
