package gui

import "time"

// status is a transient one-line message shown over the grid.
type status struct {
	msg   string
	isErr bool
	until time.Time
}

func (s *status) set(msg string, isErr bool, now time.Time) {
	s.msg = msg
	s.isErr = isErr
	s.until = now.Add(statusTTL)
	if isErr {
		// errors stay until the next message
		s.until = time.Time{}
	}
}

func (s *status) text(now time.Time) (string, bool, bool) {
	if s.msg == "" {
		return "", false, false
	}
	if !s.until.IsZero() && now.After(s.until) {
		return "", false, false
	}
	return s.msg, s.isErr, true
}
