package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "tui.cell_width")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// ValidDirections returns the list of valid grid scan directions
func ValidDirections() []string {
	return []string{"horizontal", "vertical"}
}

// ValidReplaceModes returns the list of valid pick replace modes
func ValidReplaceModes() []string {
	return []string{"all", "none", "partial"}
}

// ValidThemes returns the built-in theme names.
// Must match styles.BuiltinThemes (kept separately so config does not
// depend on the TUI).
func ValidThemes() []string {
	return []string{"default", "monokai", "dracula", "nord"}
}

// Cell width bounds for the grid view (0 means use the default).
const (
	MinCellWidth = 4
	MaxCellWidth = 64
)

// MaxFuzzyDistance bounds tui.fuzzy_distance.
const MaxFuzzyDistance = 10

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateNavigation()...)
	errors = append(errors, c.validatePick()...)
	errors = append(errors, c.validateTUI()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

func (c *Config) validateNavigation() []ValidationError {
	var errors []ValidationError

	if c.Navigation.Direction != "" && !slices.Contains(ValidDirections(), c.Navigation.Direction) {
		errors = append(errors, ValidationError{
			Field:   "navigation.direction",
			Value:   c.Navigation.Direction,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidDirections(), ", ")),
		})
	}

	return errors
}

func (c *Config) validatePick() []ValidationError {
	var errors []ValidationError

	if c.Pick.Replace != "" && !slices.Contains(ValidReplaceModes(), c.Pick.Replace) {
		errors = append(errors, ValidationError{
			Field:   "pick.replace",
			Value:   c.Pick.Replace,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidReplaceModes(), ", ")),
		})
	}

	return errors
}

func (c *Config) validateTUI() []ValidationError {
	var errors []ValidationError

	if c.TUI.Theme != "" && !slices.Contains(ValidThemes(), c.TUI.Theme) {
		errors = append(errors, ValidationError{
			Field:   "tui.theme",
			Value:   c.TUI.Theme,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidThemes(), ", ")),
		})
	}

	if c.TUI.CellWidth != 0 {
		if c.TUI.CellWidth < MinCellWidth {
			errors = append(errors, ValidationError{
				Field:   "tui.cell_width",
				Value:   c.TUI.CellWidth,
				Message: fmt.Sprintf("must be at least %d columns", MinCellWidth),
			})
		}
		if c.TUI.CellWidth > MaxCellWidth {
			errors = append(errors, ValidationError{
				Field:   "tui.cell_width",
				Value:   c.TUI.CellWidth,
				Message: fmt.Sprintf("must be at most %d columns", MaxCellWidth),
			})
		}
	}

	if c.TUI.FuzzyDistance < 0 || c.TUI.FuzzyDistance > MaxFuzzyDistance {
		errors = append(errors, ValidationError{
			Field:   "tui.fuzzy_distance",
			Value:   c.TUI.FuzzyDistance,
			Message: fmt.Sprintf("must be between 0 and %d", MaxFuzzyDistance),
		})
	}

	return errors
}

func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	if c.Logging.MaxSizeMB < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: "must be non-negative",
		})
	}

	if c.Logging.MaxBackups < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_backups",
			Value:   c.Logging.MaxBackups,
			Message: "must be non-negative",
		})
	}

	return errors
}
