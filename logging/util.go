package logging

import (
	"log/slog"
	"strings"

	"github.com/icodeforyou/option-go/types/option"
)

// LevelFromString parses DEBUG, INFO, WARN or ERROR in any case. None and
// unknown names give INFO.
func LevelFromString(str option.Option[string]) slog.Level {
	switch strings.ToUpper(str.UnwrapOr(slog.LevelInfo.String())) {
	case slog.LevelDebug.String():
		return slog.LevelDebug
	case slog.LevelWarn.String():
		return slog.LevelWarn
	case slog.LevelError.String():
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
