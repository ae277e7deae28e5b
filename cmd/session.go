package cmd

import (
	"context"
	"errors"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/Tiliavir/field-time-tracker/internal/config"
	"github.com/Tiliavir/field-time-tracker/internal/share"
	"github.com/Tiliavir/field-time-tracker/internal/storage"
	"github.com/Tiliavir/field-time-tracker/internal/tracker"
)

var (
	store storage.Store
	trk   *tracker.Tracker
)

// session opens the configured store and loads the tracker once per
// invocation. A store that cannot be opened is fatal.
func session(ctx context.Context) *tracker.Tracker {
	if trk != nil {
		return trk
	}
	s, err := openStore(ctx)
	if err != nil {
		fatal(err)
	}
	store = s
	trk = tracker.New(s, tracker.WithDefaultRotation(cfg.Rotation.DefaultMinutes))
	trk.Load(ctx)
	return trk
}

func openStore(ctx context.Context) (storage.Store, error) {
	switch cfg.Storage.Backend {
	case config.BackendRedis:
		log.Debug().Str("url", cfg.Storage.RedisURL).Msg("using redis storage")
		return storage.NewRedisStore(ctx, cfg.Storage.RedisURL, cfg.Storage.RedisPrefix)
	default:
		dir := cfg.Storage.Dir
		if dir == "" {
			base, err := storage.BaseDir()
			if err != nil {
				return nil, err
			}
			dir = base
		}
		log.Debug().Str("dir", dir).Msg("using file storage")
		return storage.NewFileStore(dir), nil
	}
}

// closeSession releases the store. It is safe to call more than once.
func closeSession() {
	if c, ok := store.(io.Closer); ok {
		if err := c.Close(); err != nil {
			log.Warn().Err(err).Msg("closing store")
		}
	}
	store = nil
	trk = nil
}

// userMessage turns tracker errors into hints for the command line.
func userMessage(err error) string {
	switch {
	case errors.Is(err, tracker.ErrNoTeam):
		return "no team selected; run: ftt team select <name>"
	case errors.Is(err, tracker.ErrClockRunning):
		return "the match clock is already running"
	case errors.Is(err, tracker.ErrClockStopped):
		return "the match clock is not running; run: ftt start"
	case errors.Is(err, share.ErrInvalidData):
		return share.ErrInvalidData.Error()
	}
	return err.Error()
}
