package api

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type subsystem struct {
	name    string
	err     error
	stopped *[]string
}

func (s *subsystem) String() string {
	return s.name
}

func (s *subsystem) Start(errors chan<- error) {
	if s.err != nil {
		errors <- s.err
	}
}

func (s *subsystem) Stop() error {
	*s.stopped = append(*s.stopped, s.name)
	return nil
}

func TestAPI(t *testing.T) {
	var stopped []string
	boom := errors.New("boom")

	api := New()
	api.AddSubsystem(&subsystem{name: "a", stopped: &stopped})
	api.AddSubsystem(&subsystem{name: "b", err: boom, stopped: &stopped})

	assert.Nil(t, api.Start())
	assert.Equal(t, boom, <-api.Errors())

	assert.Nil(t, api.Stop())
	assert.Equal(t, []string{"b", "a"}, stopped)
}
