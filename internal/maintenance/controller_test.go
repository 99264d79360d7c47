package maintenance

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/sitemaint/internal/config"
	"github.com/conn-castle/sitemaint/internal/marker"
	"github.com/conn-castle/sitemaint/internal/override"
)

// fakeClock is a settable time source.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type site struct {
	paths config.Paths
	clock *fakeClock
	ctl   *Controller
}

func newSite(t *testing.T, opts ...Option) *site {
	t.Helper()
	root := t.TempDir()
	paths := config.DefaultPaths(root)
	require.NoError(t, os.MkdirAll(paths.ContentRoot, 0o755))
	clock := &fakeClock{t: time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)}
	all := append([]Option{WithClock(clock.Now)}, opts...)
	return &site{paths: paths, clock: clock, ctl: NewController(paths, all...)}
}

func (s *site) writeContent(t *testing.T, name string, content string) string {
	t.Helper()
	path := filepath.Join(s.paths.ContentRoot, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readString(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func assertMissing(t *testing.T, path string) {
	t.Helper()
	_, err := os.Stat(path)
	assert.True(t, errors.Is(err, os.ErrNotExist), "expected %s to be absent, stat err: %v", path, err)
}

func intPtr(v int) *int { return &v }

type failingMarkerSystem struct {
	marker.RealSystem
	writeErr  error
	removeErr error
	readErr   error
	statErr   error
}

func (f failingMarkerSystem) Stat(name string) (os.FileInfo, error) {
	if f.statErr != nil {
		return nil, f.statErr
	}
	return f.RealSystem.Stat(name)
}

func (f failingMarkerSystem) WriteFileAtomic(name string, data []byte, perm os.FileMode) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	return f.RealSystem.WriteFileAtomic(name, data, perm)
}

func (f failingMarkerSystem) Remove(name string) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	return f.RealSystem.Remove(name)
}

func (f failingMarkerSystem) ReadFile(name string) ([]byte, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	return f.RealSystem.ReadFile(name)
}

type failingOverrideSystem struct {
	override.RealSystem
	writeErr error
}

func (f failingOverrideSystem) WriteFileAtomic(name string, data []byte, perm os.FileMode) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	return f.RealSystem.WriteFileAtomic(name, data, perm)
}

func TestActivate_Indefinite(t *testing.T) {
	s := newSite(t)

	result, err := s.ctl.Activate(ActivateRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Maintenance mode is now activated.", result.Message)
	assert.Nil(t, result.Template)
	assert.Equal(t, "<?php $upgrading = time();", readString(t, s.paths.MarkerPath))

	for _, later := range []time.Duration{0, time.Hour, 24 * 365 * time.Hour} {
		s.clock.Advance(later)
		on, err := s.ctl.IsOn()
		require.NoError(t, err)
		assert.True(t, on)

		report, err := s.ctl.Status()
		require.NoError(t, err)
		assert.Equal(t, StateOnIndefinite, report.State)
		assert.Equal(t, "Maintenance mode is currently on indefinitely.", report.String())
	}
}

func TestActivate_TimedPersistsGraceAdjustedTimestamp(t *testing.T) {
	s := newSite(t)
	now := s.clock.Now()

	result, err := s.ctl.Activate(ActivateRequest{Duration: intPtr(30)})
	require.NoError(t, err)
	assert.Equal(t, "Maintenance mode is now activated for 30 minutes.", result.Message)

	want := now.Unix() + 30*60 - 600
	assert.Equal(t, "<?php $upgrading = "+strconv.FormatInt(want, 10)+";", readString(t, s.paths.MarkerPath))

	report, err := s.ctl.Status()
	require.NoError(t, err)
	assert.Equal(t, StateOnTimed, report.State)
	assert.True(t, report.ExpiresAt.Equal(now.Add(30*time.Minute)))
	assert.Equal(t, 30*time.Minute, report.Remaining)
	assert.Equal(t,
		"Maintenance mode is currently on until Sat, 14 Mar 2026 09:56:53 +0000 (0 hours, 30 minutes and 0 seconds to go).",
		report.String())
}

func TestActivate_OneMinuteMessage(t *testing.T) {
	s := newSite(t)
	result, err := s.ctl.Activate(ActivateRequest{Duration: intPtr(1)})
	require.NoError(t, err)
	assert.Equal(t, "Maintenance mode is now activated for 1 minute.", result.Message)
}

func TestActivate_RemainingMatchesDuration(t *testing.T) {
	for _, minutes := range []int{1, 5, 9, 10, 11, 60, 1440} {
		t.Run(strconv.Itoa(minutes), func(t *testing.T) {
			s := newSite(t)
			// Sub-second clock so the unix-second truncation is exercised.
			s.clock.t = s.clock.t.Add(700 * time.Millisecond)

			_, err := s.ctl.Activate(ActivateRequest{Duration: intPtr(minutes)})
			require.NoError(t, err)

			report, err := s.ctl.Status()
			require.NoError(t, err)
			require.Equal(t, StateOnTimed, report.State)
			seconds := int64(report.Remaining / time.Second)
			assert.GreaterOrEqual(t, seconds, int64(minutes*60-1))
			assert.LessOrEqual(t, seconds, int64(minutes*60))
		})
	}
}

func TestActivate_TimedExpires(t *testing.T) {
	s := newSite(t)
	_, err := s.ctl.Activate(ActivateRequest{Duration: intPtr(30)})
	require.NoError(t, err)

	s.clock.Advance(30*time.Minute - time.Second)
	on, err := s.ctl.IsOn()
	require.NoError(t, err)
	assert.True(t, on)

	s.clock.Advance(time.Second)
	on, err = s.ctl.IsOn()
	require.NoError(t, err)
	assert.False(t, on)

	report, err := s.ctl.Status()
	require.NoError(t, err)
	assert.Equal(t, "Maintenance mode is currently off.", report.String())
}

func TestActivate_InvalidDuration(t *testing.T) {
	s := newSite(t)
	for _, d := range []int{0, -5} {
		_, err := s.ctl.Activate(ActivateRequest{Duration: intPtr(d), Template: "custom.php"})
		require.ErrorIs(t, err, ErrInvalidDuration)
	}
	assertMissing(t, s.paths.MarkerPath)
	assertMissing(t, s.paths.TemplatePath)
}

func TestActivate_DurationOutOfRange(t *testing.T) {
	s := newSite(t)
	for _, d := range []int{int(MaxDurationMinutes) + 1, 200000000, math.MaxInt32} {
		_, err := s.ctl.Activate(ActivateRequest{Duration: intPtr(d)})
		require.ErrorIs(t, err, ErrInvalidDuration)
		assert.Contains(t, err.Error(), strconv.Itoa(d))
	}
	assertMissing(t, s.paths.MarkerPath)
}

func TestActivate_LongestDuration(t *testing.T) {
	s := newSite(t)
	_, err := s.ctl.Activate(ActivateRequest{Duration: intPtr(int(MaxDurationMinutes))})
	require.NoError(t, err)

	report, err := s.ctl.Status()
	require.NoError(t, err)
	assert.Equal(t, StateOnTimed, report.State)
	assert.Equal(t, time.Duration(MaxDurationMinutes)*time.Minute, report.Remaining)
	assert.True(t, report.ExpiresAt.After(s.clock.Now()))
}

func TestActivate_MarkerStatFailureIsLogged(t *testing.T) {
	var logs bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&logs)

	s := newSite(t,
		WithMarkerSystem(failingMarkerSystem{statErr: os.ErrPermission}),
		WithLogger(logger),
	)
	result, err := s.ctl.Activate(ActivateRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Maintenance mode is now activated.", result.Message)
	assert.Equal(t, "<?php $upgrading = time();", readString(t, s.paths.MarkerPath))
	assert.Contains(t, logs.String(), "failed to check for an existing marker file")
}

func TestActivate_TildeUserTemplateIsRelative(t *testing.T) {
	s := newSite(t)
	require.NoError(t, os.MkdirAll(filepath.Join(s.paths.ContentRoot, "~nobody"), 0o755))
	custom := s.writeContent(t, filepath.Join("~nobody", "x.php"), "x")

	_, err := s.ctl.Activate(ActivateRequest{Template: "~nobody/x.php"})
	require.NoError(t, err)
	assert.Equal(t, override.Block(custom), readString(t, s.paths.TemplatePath))
}

func TestActivate_Overwrites(t *testing.T) {
	s := newSite(t)
	_, err := s.ctl.Activate(ActivateRequest{Duration: intPtr(5)})
	require.NoError(t, err)
	_, err = s.ctl.Activate(ActivateRequest{})
	require.NoError(t, err)

	report, err := s.ctl.Status()
	require.NoError(t, err)
	assert.Equal(t, StateOnIndefinite, report.State)
}

func TestActivate_MarkerWriteFails(t *testing.T) {
	s := newSite(t, WithMarkerSystem(failingMarkerSystem{writeErr: os.ErrPermission}))

	_, err := s.ctl.Activate(ActivateRequest{})
	require.ErrorIs(t, err, ErrActivationFailed)
	assert.ErrorIs(t, err, os.ErrPermission)
	assertMissing(t, s.paths.MarkerPath)
}

func TestActivate_TemplateInjection(t *testing.T) {
	s := newSite(t)
	s.writeContent(t, "maintenance.php", "existing content")
	custom := s.writeContent(t, "custom.php", "<h1>Back soon</h1>")

	result, err := s.ctl.Activate(ActivateRequest{Template: "custom.php"})
	require.NoError(t, err)
	require.NotNil(t, result.Template)
	assert.Equal(t, s.paths.TemplatePath, result.Template.Path)

	assert.Equal(t, override.Block(custom)+"existing content", readString(t, s.paths.TemplatePath))

	_, err = s.ctl.Deactivate()
	require.NoError(t, err)
	assert.Equal(t, "existing content", readString(t, s.paths.TemplatePath))
	assertMissing(t, s.paths.MarkerPath)
}

func TestActivate_TemplateInjectionIntoMissingSlot(t *testing.T) {
	s := newSite(t)
	s.writeContent(t, "custom.php", "x")

	_, err := s.ctl.Activate(ActivateRequest{Template: "custom.php"})
	require.NoError(t, err)
	_, err = s.ctl.Deactivate()
	require.NoError(t, err)

	assertMissing(t, s.paths.TemplatePath)
}

func TestActivate_AbsoluteTemplate(t *testing.T) {
	s := newSite(t)
	abs := filepath.Join(t.TempDir(), "down.php")
	require.NoError(t, os.WriteFile(abs, []byte("x"), 0o644))

	_, err := s.ctl.Activate(ActivateRequest{Template: abs})
	require.NoError(t, err)
	assert.Equal(t, override.Block(abs), readString(t, s.paths.TemplatePath))
}

func TestActivate_TemplateNotFound(t *testing.T) {
	s := newSite(t)
	s.writeContent(t, "maintenance.php", "existing content")

	_, err := s.ctl.Activate(ActivateRequest{Duration: intPtr(10), Template: "nope.php"})
	require.ErrorIs(t, err, ErrTemplateNotFound)
	assert.Contains(t, err.Error(), filepath.Join(s.paths.ContentRoot, "nope.php"))

	assert.Equal(t, "existing content", readString(t, s.paths.TemplatePath))
	assertMissing(t, s.paths.MarkerPath)
}

func TestActivate_DefaultTemplateIsNoop(t *testing.T) {
	s := newSite(t)
	s.writeContent(t, "maintenance.php", "default page")

	for _, tpl := range []string{"maintenance.php", "./maintenance.php", s.paths.TemplatePath} {
		result, err := s.ctl.Activate(ActivateRequest{Template: tpl})
		require.NoError(t, err)
		assert.Nil(t, result.Template)
	}
	assert.Equal(t, "default page", readString(t, s.paths.TemplatePath))
}

// Activating again with a different template prepends another block without
// removing the first; one deactivate strips only the newest block.
func TestActivate_DifferentTemplatesAccumulateBlocks(t *testing.T) {
	s := newSite(t)
	first := s.writeContent(t, "first.php", "1")
	second := s.writeContent(t, "second.php", "2")

	_, err := s.ctl.Activate(ActivateRequest{Template: "first.php"})
	require.NoError(t, err)
	_, err = s.ctl.Activate(ActivateRequest{Template: "second.php"})
	require.NoError(t, err)
	assert.Equal(t, override.Block(second)+override.Block(first), readString(t, s.paths.TemplatePath))

	_, err = s.ctl.Deactivate()
	require.NoError(t, err)
	assert.Equal(t, override.Block(first), readString(t, s.paths.TemplatePath))
}

func TestDeactivate_NotActive(t *testing.T) {
	s := newSite(t)
	s.writeContent(t, "maintenance.php", override.Block("/orphan.php")+"page")

	_, err := s.ctl.Deactivate()
	require.ErrorIs(t, err, ErrNotActive)

	// No destructive action while off.
	assert.Equal(t, override.Block("/orphan.php")+"page", readString(t, s.paths.TemplatePath))
	assertMissing(t, s.paths.MarkerPath)
}

func TestDeactivate_Twice(t *testing.T) {
	s := newSite(t)
	_, err := s.ctl.Activate(ActivateRequest{})
	require.NoError(t, err)

	result, err := s.ctl.Deactivate()
	require.NoError(t, err)
	assert.Equal(t, "Maintenance mode is now deactivated.", result.Message)

	_, err = s.ctl.Deactivate()
	require.ErrorIs(t, err, ErrNotActive)

	report, err := s.ctl.Status()
	require.NoError(t, err)
	assert.Equal(t, "Maintenance mode is currently off.", report.String())
	assertMissing(t, s.paths.MarkerPath)
}

func TestDeactivate_ExpiredMarkerIsNotActive(t *testing.T) {
	s := newSite(t)
	_, err := s.ctl.Activate(ActivateRequest{Duration: intPtr(1)})
	require.NoError(t, err)
	s.clock.Advance(2 * time.Minute)

	_, err = s.ctl.Deactivate()
	require.ErrorIs(t, err, ErrNotActive)
	_, statErr := os.Stat(s.paths.MarkerPath)
	assert.NoError(t, statErr)
}

func TestDeactivate_MarkerDeleteFailureIsLoggedAndIgnored(t *testing.T) {
	var logs bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&logs)

	s := newSite(t,
		WithMarkerSystem(failingMarkerSystem{removeErr: os.ErrPermission}),
		WithLogger(logger),
	)
	custom := s.writeContent(t, "custom.php", "x")
	_, err := s.ctl.Activate(ActivateRequest{Template: custom})
	require.NoError(t, err)

	result, err := s.ctl.Deactivate()
	require.NoError(t, err)
	assert.True(t, result.Template.Deleted)
	assertMissing(t, s.paths.TemplatePath)
	assert.Contains(t, logs.String(), "failed to delete marker file")
}

func TestDeactivate_TemplateCleanupFailure(t *testing.T) {
	s := newSite(t, WithOverrideSystem(failingOverrideSystem{writeErr: errors.New("disk full")}))
	s.writeContent(t, "maintenance.php", override.Block("/x.php")+"keep")
	require.NoError(t, os.WriteFile(s.paths.MarkerPath, []byte("<?php $upgrading = time();"), 0o644))

	_, err := s.ctl.Deactivate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to clean maintenance template")
	assertMissing(t, s.paths.MarkerPath)
}

func TestDeactivate_TemplateWithoutMarkerIsLeftAlone(t *testing.T) {
	s := newSite(t)
	content := override.Block("/x.php") + "page"
	s.writeContent(t, "maintenance.php", content)

	report, err := s.ctl.Status()
	require.NoError(t, err)
	assert.False(t, report.On())

	_, err = s.ctl.Deactivate()
	require.ErrorIs(t, err, ErrNotActive)
	assert.Equal(t, content, readString(t, s.paths.TemplatePath))
}

func TestStatus_MalformedMarkerFailsOpen(t *testing.T) {
	s := newSite(t)
	require.NoError(t, os.WriteFile(s.paths.MarkerPath, []byte("<?php // nothing to see"), 0o644))

	on, err := s.ctl.IsOn()
	require.NoError(t, err)
	assert.True(t, on)

	report, err := s.ctl.Status()
	require.NoError(t, err)
	assert.Equal(t, "Maintenance mode is currently on indefinitely.", report.String())
}

func TestStatus_ReadError(t *testing.T) {
	s := newSite(t, WithMarkerSystem(failingMarkerSystem{readErr: os.ErrPermission}))
	_, err := s.ctl.Status()
	require.ErrorIs(t, err, os.ErrPermission)

	_, err = s.ctl.Deactivate()
	require.ErrorIs(t, err, os.ErrPermission)
	assert.False(t, errors.Is(err, ErrNotActive))
}

func TestStatus_DoesNotMutate(t *testing.T) {
	s := newSite(t)
	_, err := s.ctl.Activate(ActivateRequest{Duration: intPtr(15)})
	require.NoError(t, err)
	before := readString(t, s.paths.MarkerPath)

	for i := 0; i < 3; i++ {
		_, err := s.ctl.Status()
		require.NoError(t, err)
	}
	assert.Equal(t, before, readString(t, s.paths.MarkerPath))
}

func TestStatus_ShortDurationStillOn(t *testing.T) {
	// Durations under the grace window persist a timestamp in the past.
	s := newSite(t)
	_, err := s.ctl.Activate(ActivateRequest{Duration: intPtr(3)})
	require.NoError(t, err)

	parsed := marker.Decode([]byte(readString(t, s.paths.MarkerPath)))
	require.True(t, parsed.HasTimestamp)
	assert.True(t, parsed.Timestamp.Before(s.clock.Now()))

	report, err := s.ctl.Status()
	require.NoError(t, err)
	assert.Equal(t, StateOnTimed, report.State)
	assert.Equal(t, 3*time.Minute, report.Remaining)
}
