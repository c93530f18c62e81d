package api

import (
	"log/slog"
)

// API runs a set of long lived subsystems and surfaces the first error any
// of them reports.
type API struct {
	subsystems []Subsystem
	errors     chan error
}

func New() *API {
	return &API{
		errors: make(chan error, 1),
	}
}

func (a *API) String() string {
	return "api"
}

func (a *API) AddSubsystem(subsystem Subsystem) {
	a.subsystems = append(a.subsystems, subsystem)
}

func (a *API) Start() error {
	for _, subsystem := range a.subsystems {
		slog.Debug("api:start", "subsystem", subsystem)
		go subsystem.Start(a.errors)
	}

	return nil
}

// Stop stops subsystems in reverse order of addition.
func (a *API) Stop() error {
	for i := len(a.subsystems) - 1; i >= 0; i-- {
		subsystem := a.subsystems[i]
		slog.Debug("api:stop", "subsystem", subsystem)

		if err := subsystem.Stop(); err != nil {
			return err
		}
	}

	return nil
}

func (a *API) Errors() <-chan error {
	return a.errors
}
