package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bassam-st/bassam-customs-ai/internal/answer"
	"github.com/bassam-st/bassam-customs-ai/internal/model"
)

var kindTitles = map[answer.Kind]string{
	answer.KindNotFound:         "صنف غير معروف",
	answer.KindHSOnly:           "البند الجمركي",
	answer.KindPriceOnly:        "السعر الاسترشادي",
	answer.KindNeedValueAndRate: "بيانات ناقصة",
	answer.KindNeedValue:        "القيمة مطلوبة",
	answer.KindNeedRate:         "النسبة غير معروفة",
	answer.KindDutyResult:       "الرسوم الجمركية",
	answer.KindGeneralInfo:      "معلومات الصنف",
}

// KindTitle returns the heading shown above a result of the given kind.
func KindTitle(kind answer.Kind) string {
	if title, ok := kindTitles[kind]; ok {
		return title
	}
	return string(kind)
}

// RenderResult renders an answer in a box titled by its variant.
func RenderResult(r answer.Result) string {
	body := answer.Render(r)
	if r.Kind == answer.KindDutyResult {
		body = SuccessStyle.Render(body)
	} else if r.Kind == answer.KindNotFound {
		body = WarningStyle.Render(body)
	}

	var meta []string
	if r.CodeSource != "" {
		meta = append(meta, "code: "+string(r.CodeSource))
	}
	if r.ValueSource != "" {
		meta = append(meta, "value: "+string(r.ValueSource))
	}
	if len(meta) > 0 {
		body = lipgloss.JoinVertical(lipgloss.Left, body, "", SubtleStyle.Render(strings.Join(meta, " · ")))
	}

	return RenderBox(PackageIcon+" "+KindTitle(r.Kind), body)
}

// RenderSnapshot summarizes a stored catalog.
func RenderSnapshot(s *model.Snapshot) string {
	if s == nil {
		return FormatWarning("No catalog stored")
	}

	priced := 0
	for _, item := range s.Items {
		if item.HasPrice() {
			priced++
		}
	}
	coded := 0
	for _, entry := range s.Classifications {
		if entry.Code != "" {
			coded++
		}
	}
	known := 0
	for _, rule := range s.Rules {
		if rule.HasRate() {
			known++
		}
	}

	rows := []string{
		row("Items", fmt.Sprintf("%d (%d priced)", len(s.Items), priced)),
		row("Classifications", fmt.Sprintf("%d (%d with code)", len(s.Classifications), coded)),
		row("Duty rules", fmt.Sprintf("%d (%d with rate)", len(s.Rules), known)),
		row("Loaded", s.LoadedAt.Local().Format("2006-01-02 15:04")),
	}
	return RenderBox(FolderIcon+" Catalog", strings.Join(rows, "\n"))
}

func row(label, value string) string {
	return TableCellStyle.Render(BoldStyle.Render(label+":")) + value
}
