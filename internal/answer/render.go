package answer

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Unavailable is printed for any missing field.
const Unavailable = "غير متوفر"

// Guidance attached to soft conditions.
const (
	GuidanceNotFound               = "لم أتعرف على الصنف. استورد قائمة الأسعار أو اكتب اسمًا أقرب أو البند المكون من 8 أرقام."
	GuidanceNoCode                 = "البند غير متوفر لهذا الصنف. استورد جدول البنود أو اكتب البند المكون من 8 أرقام."
	GuidanceNoPrice                = "لا يوجد سعر مسجل لهذا الصنف في قائمة الأسعار."
	GuidanceNeedValueAndRateFormat = "أرسل القيمة بالدولار (مثال: \"%s 300 دولار\") وأضف نسبة الفئة في ملاحظات الصنف مثل: \"الفئة5%%\"."
	GuidanceNeedValueFormat        = "أحتاج قيمة البضاعة بالدولار للحساب. مثال: \"%s 300 دولار\""
	GuidanceRateUnknown            = "لا أجد نسبة الفئة في ملاحظات هذا الصنف. ضعها مثل: \"الفئة5%\" أو \"10%\"."
	GuidanceUnsupportedRule        = "نوع قاعدة الرسوم المسجلة لهذا الصنف غير مدعوم."
	GuidanceGeneralFormat          = "اسأل عن الرسوم أو السعر أو البند، مثال: \"كم جمارك %s 300 دولار\""
)

// Render produces the fixed multi-line template for the result's variant.
func Render(r Result) string {
	var lines []string
	product := "الصنف: " + r.Product
	code := "البند: " + orUnavailable(r.HSCode)

	switch r.Kind {
	case KindNotFound:
		if r.HSCode != "" {
			lines = append(lines, "البند: "+r.HSCode)
		}
		lines = append(lines, r.Guidance)
	case KindHSOnly:
		lines = []string{product, code}
	case KindPriceOnly:
		lines = []string{
			product,
			code,
			"القيمة: " + joinNonEmpty(formatOptional(r.Price), r.Unit),
			"ملاحظات: " + orDash(r.Notes),
		}
	case KindNeedValueAndRate:
		lines = []string{"وجدت الصنف: " + r.Product, code}
	case KindNeedValue:
		lines = []string{product, code, "النسبة: " + formatPercent(r.Rate)}
	case KindNeedRate:
		lines = []string{product, code, "القيمة: " + formatMoney(r.Currency, r.Value)}
	case KindDutyResult:
		lines = []string{
			product,
			code,
			"القيمة: " + formatMoney(r.Currency, r.Value),
			"النسبة: " + formatPercent(r.Rate),
			"الرسوم الجمركية: " + formatMoney(r.Currency, r.Fee),
			"الرسوم = القيمة × النسبة",
		}
	case KindGeneralInfo:
		lines = []string{
			product,
			code,
			"القيمة: " + joinNonEmpty(formatOptional(r.Price), r.Unit),
			"ملاحظات: " + orDash(r.Notes),
		}
	default:
		lines = []string{product, code}
	}

	if r.Guidance != "" && r.Kind != KindNotFound {
		lines = append(lines, r.Guidance)
	}
	return strings.Join(lines, "\n")
}

// FormatNumber prints f without trailing zeros, rounded to six decimals.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(math.Round(f*1e6)/1e6, 'f', -1, 64)
}

func formatOptional(f *float64) string {
	if f == nil {
		return Unavailable
	}
	return FormatNumber(*f)
}

func formatMoney(currency string, f *float64) string {
	if f == nil {
		return Unavailable
	}
	return fmt.Sprintf("%s %s", currency, FormatNumber(*f))
}

func formatPercent(rate *float64) string {
	if rate == nil {
		return Unavailable
	}
	return FormatNumber(*rate*100) + "%"
}

func orUnavailable(s string) string {
	if s == "" {
		return Unavailable
	}
	return s
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func joinNonEmpty(parts ...string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
