package root

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"pss/internal/config"
	"pss/internal/fsutil"
	appLog "pss/internal/log"
	"pss/internal/schedule"
)

// session is one command's view of the config and schedule file.
type session struct {
	cfg          *config.Config
	scheduleFile string
	store        *schedule.Store
}

// openSession loads the config and the schedule file it names. A relative
// schedule_file is resolved against the config file's directory. A missing
// schedule file means an empty schedule.
func openSession(configPath string) (*session, error) {
	cfg, err := config.Load(configPath)
	switch {
	case err != nil && cfg != nil:
		// first run and the default config could not be written
		appLog.Warn("using default config", "path", configPath, "err", err)
	case err != nil:
		return nil, err
	}
	appLog.SetLevel(appLog.ParseLevel(cfg.LogLevel))

	path := cfg.ScheduleFile
	if !filepath.IsAbs(path) {
		path = filepath.Join(filepath.Dir(configPath), path)
	}

	s := &session{cfg: cfg, scheduleFile: path, store: schedule.New()}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		appLog.Debug("schedule file missing, starting empty", "path", path)
		return s, nil
	case err != nil:
		return nil, err
	}
	if err := s.store.Load(data); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *session) save() error {
	data, err := s.store.Dump()
	if err != nil {
		return err
	}
	if err := fsutil.WriteFileAtomic(s.scheduleFile, data, 0o600); err != nil {
		return err
	}
	appLog.Debug("schedule saved", "path", s.scheduleFile, "tasks", s.store.Len())
	return nil
}

// mutate opens a session, applies fn and saves only if fn succeeded.
func mutate(configPath string, fn func(*session) error) error {
	s, err := openSession(configPath)
	if err != nil {
		return err
	}
	if err := fn(s); err != nil {
		return err
	}
	return s.save()
}
