package ops

import (
	"context"
	"strings"

	"github.com/devboard-app/devboard/internal/ident"
	"github.com/devboard-app/devboard/internal/model"
)

// EnsureSettings loads the settings singleton, writing the defaults first
// if it does not exist yet. Run once at process start.
func (s *Service) EnsureSettings(ctx context.Context) (*model.Settings, error) {
	existing, err := s.store.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	defaults := model.DefaultSettings()
	if err := s.store.PutSettings(ctx, defaults); err != nil {
		return nil, err
	}
	s.log.Debug().Msg("settings initialized with defaults")
	return &defaults, nil
}

// SettingsPatch is a partial settings update. Nil fields are untouched.
type SettingsPatch struct {
	Theme          *string
	Calendar       *string
	Statuses       *[]string
	FontFamily     *string
	MonoFont       *string
	BackupReminder *bool
}

// UpdateSettings merges the patch into the stored settings, default-
// filling first if the singleton is absent.
func (s *Service) UpdateSettings(ctx context.Context, patch SettingsPatch) error {
	settings, err := s.EnsureSettings(ctx)
	if err != nil {
		return err
	}

	if patch.Theme != nil {
		settings.Theme = *patch.Theme
	}
	if patch.Calendar != nil {
		settings.Calendar = *patch.Calendar
	}
	if patch.Statuses != nil {
		settings.Statuses = *patch.Statuses
	}
	if patch.FontFamily != nil {
		settings.FontFamily = *patch.FontFamily
	}
	if patch.MonoFont != nil {
		settings.MonoFont = *patch.MonoFont
	}
	if patch.BackupReminder != nil {
		settings.BackupReminder = *patch.BackupReminder
	}

	return s.store.PutSettings(ctx, *settings)
}

// SaveView appends a named saved view to the settings record, assigning
// it an id. The filter's referenced project, statuses, and tags are not
// re-validated; dangling references just yield fewer results later.
func (s *Service) SaveView(ctx context.Context, view model.SavedView) (*model.SavedView, error) {
	if strings.TrimSpace(view.Name) == "" {
		return nil, model.Validation("view name", "must not be empty")
	}

	settings, err := s.EnsureSettings(ctx)
	if err != nil {
		return nil, err
	}

	if view.ViewID == "" {
		view.ViewID = ident.New()
	}
	settings.SavedViews = append(settings.SavedViews, view)

	if err := s.store.PutSettings(ctx, *settings); err != nil {
		return nil, err
	}
	return &view, nil
}

// DeleteView removes a saved view by id. A missing id is a soft no-op.
func (s *Service) DeleteView(ctx context.Context, viewID string) error {
	settings, err := s.EnsureSettings(ctx)
	if err != nil {
		return err
	}

	kept := settings.SavedViews[:0]
	for _, v := range settings.SavedViews {
		if v.ViewID != viewID {
			kept = append(kept, v)
		}
	}
	if len(kept) == len(settings.SavedViews) {
		return nil
	}
	settings.SavedViews = kept

	return s.store.PutSettings(ctx, *settings)
}
