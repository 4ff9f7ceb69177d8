package slingshot

// Session holds the per-level bookkeeping that lives outside State: the
// projectile timers and the pending level transitions. A new Session is
// created every time a level is (re)initialized.
type Session struct {
	IdleTime   float64 // seconds the launched projectile has been at rest
	FlightTime float64 // seconds since launch

	complete *Timer
	defeat   *Timer
}

// ResetTimers zeroes the projectile timers.
func (s *Session) ResetTimers() {
	s.IdleTime = 0
	s.FlightTime = 0
}

// CompletePending reports whether a level-complete transition is scheduled.
func (s *Session) CompletePending() bool {
	return s.complete.Pending()
}

// DefeatPending reports whether a defeat transition is scheduled.
func (s *Session) DefeatPending() bool {
	return s.defeat.Pending()
}

// Close cancels any pending transition.
func (s *Session) Close() {
	s.complete.Stop()
	s.defeat.Stop()
}
