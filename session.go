package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/dgnsrekt/speechclip/speech"
	"github.com/dgnsrekt/speechclip/speech/audio"
	"github.com/dgnsrekt/speechclip/speech/catalog"
	"github.com/dgnsrekt/speechclip/speech/pose"
)

// session wires a scheduler to its audio backend, pose animator and clip
// catalog.
type session struct {
	cfg       speech.Config
	manifest  string
	store     *catalog.Store
	scheduler *speech.Scheduler
	animator  *pose.Animator
	sink      *pose.ValueSink
	logger    *log.Logger
	closers   []func() error
}

func newSession(cfg speech.Config, logger *log.Logger) (*session, error) {
	if logger == nil {
		logger = log.Default()
	}

	manifest := expandPath(cfg.Catalog.Manifest)
	c, err := catalog.Load(manifest)
	if err != nil {
		return nil, fmt.Errorf("unable to load clip catalog: %w", err)
	}

	s := &session{
		cfg:      cfg,
		manifest: manifest,
		store:    catalog.NewStore(c),
		sink:     pose.NewValueSink(),
		logger:   logger,
	}

	target, err := s.newTarget()
	if err != nil {
		return nil, err
	}

	s.animator = pose.NewAnimator(cfg.Pose.Parameter, pose.DefaultLibrary(), s.sink,
		pose.WithSmoothing(cfg.Pose.Smoothing),
		pose.WithLogger(logger.WithPrefix("pose")),
	)

	opts := append(cfg.SchedulerOptions(), speech.WithLogger(logger.WithPrefix("scheduler")))
	s.scheduler = speech.NewScheduler(target, s.animator, opts...)

	s.scheduler.OnEnter(speech.StatePlaying, func() {
		if clip, ok := s.scheduler.CurrentClip(); ok {
			logger.Info("Playing", "clip", clip, "duration", s.scheduler.CurrentClipDuration())
		}
	})

	logger.Debug("Session ready",
		"manifest", manifest,
		"clips", c.Len(),
		"backend", cfg.Audio.Backend,
		"padding", s.scheduler.Padding())

	return s, nil
}

// newTarget builds the configured audio backend.
func (s *session) newTarget() (speech.AudioTarget, error) {
	switch s.cfg.Audio.Backend {
	case speech.BackendMock:
		mt := audio.NewMockTarget(s.store.Load().Durations())
		s.store.OnSwap(func(c *catalog.Catalog) {
			mt.SetDurations(c.Durations())
		})
		return mt, nil

	case speech.BackendOto:
		dir := s.cfg.Audio.ClipsDir
		if dir == "" {
			dir = filepath.Dir(s.manifest)
		}

		src, err := audio.NewDirSource(expandPath(dir))
		if err != nil {
			return nil, fmt.Errorf("unable to open clips directory: %w", err)
		}

		player, err := audio.NewPlayer(audio.PlayerConfig{
			SampleRate: s.cfg.Audio.SampleRate,
			Channels:   s.cfg.Audio.Channels,
			Volume:     s.cfg.Audio.Volume,
			CacheSize:  int64(s.cfg.Audio.CacheMB) << 20,
		}, src, s.logger.WithPrefix("audio"))
		if err != nil {
			src.Close()
			return nil, fmt.Errorf("unable to start audio: %w", err)
		}

		s.closers = append(s.closers, player.Close, func() error {
			src.Close()
			return nil
		})
		return player, nil

	default:
		return nil, fmt.Errorf("%w: %q", speech.ErrUnknownBackend, s.cfg.Audio.Backend)
	}
}

// resolve looks up clip names in the current catalog.
func (s *session) resolve(names []string) ([]speech.Clip, error) {
	clips, err := s.store.Load().LookupAll(names...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.manifest, err)
	}
	return clips, nil
}

// watch reloads the catalog when the manifest changes, if enabled.
func (s *session) watch(ctx context.Context) {
	if !s.cfg.Catalog.Watch {
		return
	}

	go func() {
		err := catalog.Watch(ctx, s.manifest, s.store, s.logger.WithPrefix("catalog"))
		if err != nil && !errors.Is(err, context.Canceled) {
			s.logger.Error("Catalog watcher stopped", "error", err)
		}
	}()
}

func (s *session) Close() error {
	var errs []error
	for _, fn := range s.closers {
		if err := fn(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
