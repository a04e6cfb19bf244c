package tui

import "github.com/rgehrsitz/irrf/internal/tui/tuistyles"

// Re-export styles from tuistyles to avoid import cycles
var (
	AppStyle               = tuistyles.AppStyle
	TitleStyle             = tuistyles.TitleStyle
	SubtitleStyle          = tuistyles.SubtitleStyle
	StatusBarStyle         = tuistyles.StatusBarStyle
	BorderStyle            = tuistyles.BorderStyle
	ActiveBorderStyle      = tuistyles.ActiveBorderStyle
	FieldLabelStyle        = tuistyles.FieldLabelStyle
	FocusedFieldLabelStyle = tuistyles.FocusedFieldLabelStyle
	BannerStyle            = tuistyles.BannerStyle
	ErrorStyle             = tuistyles.ErrorStyle
	InfoStyle              = tuistyles.InfoStyle
)
