package parallax

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocatorSingle(t *testing.T) {
	c := NewCoordinator(DefaultConfig())
	l := NewLocator(true, nil)

	got, err := l.Resolve([]*Coordinator{c}, nil)
	require.NoError(t, err)
	assert.Same(t, c, got)
}

func TestLocatorAutoCreatesWhenLive(t *testing.T) {
	var buf bytes.Buffer
	l := NewLocator(true, log.New(&buf, "", 0))

	calls := 0
	got, err := l.Resolve(nil, func() *Coordinator {
		calls++
		return NewCoordinator(DefaultConfig())
	})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Equal(t, 1, calls)
	assert.Empty(t, buf.String())
}

func TestLocatorMissingWhenNotLive(t *testing.T) {
	var buf bytes.Buffer
	l := NewLocator(false, log.New(&buf, "", 0))

	got, err := l.Resolve(nil, func() *Coordinator {
		t.Fatal("create must not be called outside live mode")
		return nil
	})
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrNoCoordinator)
}

func TestLocatorAmbiguousReportedOnce(t *testing.T) {
	var buf bytes.Buffer
	l := NewLocator(true, log.New(&buf, "", 0))
	found := []*Coordinator{NewCoordinator(DefaultConfig()), NewCoordinator(DefaultConfig())}

	for i := 0; i < 50; i++ {
		got, err := l.Resolve(found, func() *Coordinator { return NewCoordinator(DefaultConfig()) })
		require.ErrorIs(t, err, ErrAmbiguousCoordinator)
		require.Nil(t, got)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 1)
	assert.Contains(t, lines[0], "found 2 coordinators")

	l.Reset()
	_, _ = l.Resolve(found, nil)
	assert.Len(t, strings.Split(strings.TrimSpace(buf.String()), "\n"), 2)
}

func TestLocatorReportsEachProblemOnce(t *testing.T) {
	var buf bytes.Buffer
	l := NewLocator(false, log.New(&buf, "", 0))
	found := []*Coordinator{NewCoordinator(DefaultConfig()), NewCoordinator(DefaultConfig())}

	for i := 0; i < 5; i++ {
		_, err := l.Resolve(nil, nil)
		require.ErrorIs(t, err, ErrNoCoordinator)
	}
	for i := 0; i < 5; i++ {
		_, err := l.Resolve(found, nil)
		require.ErrorIs(t, err, ErrAmbiguousCoordinator)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "no coordinator")
	assert.Contains(t, lines[1], "found 2 coordinators")
}

func TestNilLocator(t *testing.T) {
	var l *Locator
	got, err := l.Resolve([]*Coordinator{NewCoordinator(DefaultConfig())}, nil)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrNoCoordinator)
	assert.False(t, l.Live())
}
