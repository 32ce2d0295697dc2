package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeMigrator struct {
	calls []string
	steps int
}

func (f *fakeMigrator) Up() error   { f.calls = append(f.calls, "up"); return nil }
func (f *fakeMigrator) Down() error { f.calls = append(f.calls, "down"); return nil }
func (f *fakeMigrator) Steps(n int) error {
	f.calls = append(f.calls, "steps")
	f.steps = n
	return nil
}

func TestRun(t *testing.T) {
	cases := []struct {
		direction string
		steps     int
		call      string
		n         int
	}{
		{"up", 0, "up", 0},
		{"down", 0, "down", 0},
		{"up", 2, "steps", 2},
		{"down", 3, "steps", -3},
	}
	for _, tc := range cases {
		f := &fakeMigrator{}
		assert.NoError(t, run(f, tc.direction, tc.steps))
		assert.Equal(t, []string{tc.call}, f.calls, tc.direction)
		assert.Equal(t, tc.n, f.steps)
	}
}

func TestRun_InvalidDirection(t *testing.T) {
	f := &fakeMigrator{}
	assert.Error(t, run(f, "sideways", 0))
	assert.Empty(t, f.calls)
}
