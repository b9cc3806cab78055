// Package widgets holds the static settings handed to the page's third-party
// widgets and the state of its display-toggled panels.
package widgets

import (
	"golang.org/x/text/language"
)

// DateRangeLocale is the label set of the date-range picker.
type DateRangeLocale struct {
	ApplyLabel  string `json:"applyLabel"`
	CancelLabel string `json:"cancelLabel"`
	FromLabel   string `json:"fromLabel"`
	ToLabel     string `json:"toLabel"`
	// DaysOfWeek starts on Sunday.
	DaysOfWeek [7]string  `json:"daysOfWeek"`
	MonthNames [12]string `json:"monthNames"`
}

var russian = DateRangeLocale{
	ApplyLabel:  "Выбрать",
	CancelLabel: "Отменить",
	FromLabel:   "С",
	ToLabel:     "По",
	DaysOfWeek:  [7]string{"Вс", "Пн", "Вт", "Ср", "Чт", "Пт", "Сб"},
	MonthNames: [12]string{
		"Январь", "Февраль", "Март", "Апрель", "Май", "Июнь",
		"Июль", "Август", "Сентябрь", "Октябрь", "Ноябрь", "Декабрь",
	},
}

var english = DateRangeLocale{
	ApplyLabel:  "Apply",
	CancelLabel: "Cancel",
	FromLabel:   "From",
	ToLabel:     "To",
	DaysOfWeek:  [7]string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"},
	MonthNames: [12]string{
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	},
}

// The first entry is the fallback for unmatched languages.
var (
	supported = []language.Tag{language.Russian, language.English}
	bundles   = []DateRangeLocale{russian, english}
	matcher   = language.NewMatcher(supported)
)

// Locale returns the bundle best matching lang, which may be a BCP 47 tag or
// an Accept-Language value. Unknown or malformed input yields Russian.
func Locale(lang string) (language.Tag, DateRangeLocale) {
	_, idx := language.MatchStrings(matcher, lang)
	return supported[idx], bundles[idx]
}

// Supported returns the languages a bundle exists for.
func Supported() []language.Tag {
	out := make([]language.Tag, len(supported))
	copy(out, supported)
	return out
}
