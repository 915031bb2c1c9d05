package settings

import "moviehub/internal/domain"

type UpdateSettingsRequest struct {
	DynamicTheme *bool `json:"dynamic_theme"`
	ThemeType    *int  `json:"theme_type" validate:"omitempty,min=0,max=2"`
}

type SettingsResponse struct {
	DynamicTheme bool   `json:"dynamic_theme"`
	ThemeType    int    `json:"theme_type"`
	ThemeName    string `json:"theme_name"`
}

func ToSettingsResponse(s domain.Settings) SettingsResponse {
	return SettingsResponse{
		DynamicTheme: s.DynamicTheme,
		ThemeType:    int(s.ThemeType),
		ThemeName:    s.ThemeType.String(),
	}
}
