package widgets

import (
	"github.com/jamesprial/myfunds-ui/internal/config"
	"github.com/jamesprial/myfunds-ui/internal/icons"
)

// DateRangeOptions are the date-range picker defaults.
type DateRangeOptions struct {
	Locale           DateRangeLocale `json:"locale"`
	TimePicker       bool            `json:"timePicker"`
	TimePicker24Hour bool            `json:"timePicker24Hour"`
}

// IconOptions are the dimensions icons are rendered at.
type IconOptions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Options is everything the page script needs to initialise its widgets.
type Options struct {
	Language  string           `json:"language"`
	DateRange DateRangeOptions `json:"daterangepicker"`
	Icons     IconOptions      `json:"icons"`
	FileInput bool             `json:"fileInput"`
	Panels    []string         `json:"panels"`
}

// OptionsFromConfig resolves cfg into page options. lang, when not empty,
// overrides cfg.Language.
func OptionsFromConfig(cfg config.UIConfig, lang string) Options {
	if lang == "" {
		lang = cfg.Language
	}
	tag, loc := Locale(lang)

	size := cfg.IconSize
	if size <= 0 {
		size = icons.DefaultSize
	}

	panels := make([]string, len(cfg.Panels))
	copy(panels, cfg.Panels)

	return Options{
		Language: tag.String(),
		DateRange: DateRangeOptions{
			Locale:           loc,
			TimePicker:       cfg.TimePicker,
			TimePicker24Hour: cfg.TimePicker24Hour,
		},
		Icons:     IconOptions{Width: size, Height: size},
		FileInput: cfg.FileInput,
		Panels:    panels,
	}
}
