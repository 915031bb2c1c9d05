package domain

import "fmt"

type ThemeType int

const (
	ThemeSystem ThemeType = iota
	ThemeDark
	ThemeLight
)

func (t ThemeType) String() string {
	switch t {
	case ThemeSystem:
		return "SYSTEM"
	case ThemeDark:
		return "DARK"
	case ThemeLight:
		return "LIGHT"
	}
	return fmt.Sprintf("ThemeType(%d)", int(t))
}

func (t ThemeType) Valid() bool {
	return t >= ThemeSystem && t <= ThemeLight
}

type Settings struct {
	DynamicTheme bool      `json:"dynamic_theme"`
	ThemeType    ThemeType `json:"theme_type"`
}

// Preference is a single key/value row of user-facing settings.
type Preference struct {
	Key   string `gorm:"primaryKey;size:64"`
	Value string `gorm:"not null"`
}

func (Preference) TableName() string {
	return "preferences"
}
