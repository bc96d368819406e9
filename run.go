package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dgnsrekt/speechclip/speech"
	"github.com/dgnsrekt/speechclip/speech/ticker"
	"github.com/dgnsrekt/speechclip/ui"
	"github.com/dustin/go-humanize"
	"golang.org/x/time/rate"
)

// progressLogInterval limits how often headless playback reports progress.
const progressLogInterval = time.Second

// runHeadless queues clips and ticks the scheduler until every clip has
// played or ctx is cancelled.
func runHeadless(ctx context.Context, s *session, names []string, w io.Writer) error {
	clips, err := s.resolve(names)
	if err != nil {
		return err
	}
	if len(clips) == 0 {
		return fmt.Errorf("no clips given")
	}

	for _, clip := range clips {
		s.scheduler.QueueClip(clip)
	}

	sched := s.scheduler
	played := 0
	sched.OnEnter(speech.StatePlaying, func() {
		played++
		if clip, ok := sched.CurrentClip(); ok {
			fmt.Fprintf(w, "%s clip: %s (%s)\n", humanize.Ordinal(played), clip, sched.CurrentClipDuration())
		}
	})

	limiter := rate.NewLimiter(rate.Every(progressLogInterval), 1)
	driver := ticker.NewDriver(s.cfg.TickInterval())
	driver.OnTick(func(time.Duration) {
		if sched.State() != speech.StatePlaying || !limiter.Allow() {
			return
		}
		s.logger.Debug("Progress",
			"clip", sched.Snapshot().Clip,
			"progress", fmt.Sprintf("%.0f%%", sched.CurrentClipProgress()*100),
			"pending", sched.Pending())
	})

	err = driver.RunUntil(ctx, sched, func() bool {
		return sched.Pending() == 0 && sched.State() == speech.StateFinished
	})
	if err != nil {
		return err
	}

	s.logger.Debug("Playback finished", "clips", played, "ticks", driver.Ticks())
	return nil
}

// runTUI runs the interactive front end.
func runTUI(s *session, names []string) error {
	cfg, err := envUIConfig()
	if err != nil {
		return err
	}

	clips, err := s.resolve(names)
	if err != nil {
		return err
	}
	for _, clip := range clips {
		s.scheduler.QueueClip(clip)
	}

	m := ui.NewModel(cfg, s.scheduler, s.store,
		ui.WithTickRate(s.cfg.TickInterval()),
		ui.WithPose(s.sink, s.cfg.Pose.Parameter),
	)

	if _, err := ui.NewProgram(cfg, m).Run(); err != nil {
		return fmt.Errorf("unable to run tui program: %w", err)
	}
	return nil
}
