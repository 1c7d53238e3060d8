package intent

import "github.com/bassam-st/bassam-customs-ai/internal/model"

// Priorities. A duty word always beats a price word, which beats a
// classification word.
const (
	PriorityDuty           = 100
	PriorityPrice          = 90
	PriorityClassification = 80
)

// DefaultPatterns returns the default set of intent patterns.
func DefaultPatterns() []Pattern {
	return []Pattern{
		// Duty patterns - highest priority
		{
			Name:     "Arabic Duty",
			Intent:   model.IntentDuty,
			Regex:    `جمارك|جمرك|رسوم|ضريبه|ضرايب|احسب`,
			Priority: PriorityDuty,
		},
		{
			Name:     "Latin Duty",
			Intent:   model.IntentDuty,
			Regex:    `\b(duty|duties|customs|fees?|tariffs?|tax|taxes|calculate|compute)\b`,
			Priority: PriorityDuty,
		},

		// Price patterns
		{
			Name:     "Arabic Price",
			Intent:   model.IntentPriceOnly,
			Regex:    `سعر|اسعار|قيمه|قيمت|ثمن`,
			Priority: PriorityPrice,
		},
		{
			Name:     "Latin Price",
			Intent:   model.IntentPriceOnly,
			Regex:    `\b(price|prices|value|cost)\b`,
			Priority: PriorityPrice,
		},

		// Classification patterns. Arabic words are whole tokens so that
		// product names such as بندوره do not read as a code request.
		{
			Name:     "Arabic Classification",
			Intent:   model.IntentHSOnly,
			Regex:    `(^|\s)(ال|بال|و|ب)?(بند|بنود|رمز|تعرفه|تصنيف)(\s|$)`,
			Priority: PriorityClassification,
		},
		{
			Name:     "Latin Classification",
			Intent:   model.IntentHSOnly,
			Regex:    `\b(hs|hscode|code|classification)\b`,
			Priority: PriorityClassification,
		},
	}
}
