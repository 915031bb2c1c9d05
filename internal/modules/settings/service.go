package settings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"moviehub/internal/domain"
	"moviehub/internal/logger"
	"moviehub/internal/pkg/state"
	"moviehub/internal/repository"
)

const (
	KeyDynamicTheme = "dynamic_theme"
	KeyThemeType    = "theme_type"
)

var ErrInvalidTheme = errors.New("invalid theme type")

// Service owns the theme settings. The stored values are mirrored in a
// state holder so readers never hit the database.
type Service struct {
	prefs repository.PreferenceRepository
	state *state.Holder[domain.Settings]
	log   *slog.Logger
}

func NewService(prefs repository.PreferenceRepository) *Service {
	return &Service{
		prefs: prefs,
		state: state.NewHolder(domain.Settings{}),
		log:   logger.With("component", "settings"),
	}
}

// Load reads the stored settings into the holder. Missing or unreadable
// values fall back to their defaults.
func (s *Service) Load(ctx context.Context) domain.Settings {
	var st domain.Settings

	all, err := s.prefs.All(ctx)
	if err != nil {
		s.log.Warn("settings read failed, using defaults", "error", err)
		all = nil
	}

	if raw, ok := all[KeyDynamicTheme]; ok {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			s.log.Warn("bad stored setting", "key", KeyDynamicTheme, "value", raw)
		}
		st.DynamicTheme = v
	}
	if raw, ok := all[KeyThemeType]; ok {
		v, err := strconv.Atoi(raw)
		if err != nil || !domain.ThemeType(v).Valid() {
			s.log.Warn("bad stored setting", "key", KeyThemeType, "value", raw)
			v = int(domain.ThemeSystem)
		}
		st.ThemeType = domain.ThemeType(v)
	}

	s.state.Set(st)
	return st
}

func (s *Service) Get() domain.Settings {
	return s.state.Get()
}

// Watch streams the settings, starting with the current value.
func (s *Service) Watch(ctx context.Context) <-chan domain.Settings {
	return s.state.Subscribe(ctx)
}

func (s *Service) SetDynamicTheme(ctx context.Context, enabled bool) error {
	if err := s.prefs.Set(ctx, KeyDynamicTheme, strconv.FormatBool(enabled)); err != nil {
		return err
	}
	s.state.Update(func(st domain.Settings) domain.Settings {
		st.DynamicTheme = enabled
		return st
	})
	return nil
}

func (s *Service) SetThemeType(ctx context.Context, t domain.ThemeType) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidTheme, int(t))
	}
	if err := s.prefs.Set(ctx, KeyThemeType, strconv.Itoa(int(t))); err != nil {
		return err
	}
	s.state.Update(func(st domain.Settings) domain.Settings {
		st.ThemeType = t
		return st
	})
	return nil
}

// Update applies the fields present in req and returns the new settings.
func (s *Service) Update(ctx context.Context, req UpdateSettingsRequest) (domain.Settings, error) {
	if req.ThemeType != nil {
		if err := s.SetThemeType(ctx, domain.ThemeType(*req.ThemeType)); err != nil {
			return s.Get(), err
		}
	}
	if req.DynamicTheme != nil {
		if err := s.SetDynamicTheme(ctx, *req.DynamicTheme); err != nil {
			return s.Get(), err
		}
	}
	return s.Get(), nil
}
