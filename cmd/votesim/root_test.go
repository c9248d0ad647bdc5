package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danl5/govote/pkg/common"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestRootCmd_Validation(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{
			name:    "missing time",
			args:    []string{"-p", "0.5"},
			wantErr: common.ConfigDurationInvalid.String(),
		},
		{
			name:    "negative time",
			args:    []string{"-t=-3", "-p", "0.5"},
			wantErr: common.ConfigDurationInvalid.String(),
		},
		{
			name:    "probability above one",
			args:    []string{"-t", "1", "-p", "1.5"},
			wantErr: common.ConfigProbabilityInvalid.String(),
		},
		{
			name:    "no stations",
			args:    []string{"-t", "1", "-p", "0.5", "-c", "0"},
			wantErr: common.ConfigStationsInvalid.String(),
		},
		{
			name:    "negative offset",
			args:    []string{"-t", "1", "-p", "0.5", "-o=-1"},
			wantErr: common.ConfigOffsetInvalid.String(),
		},
		{
			name:    "unknown flag",
			args:    []string{"-t", "1", "-p", "0.5", "--polls", "3"},
			wantErr: "unknown flag",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRootCmd_RunAndReplay(t *testing.T) {
	record := filepath.Join(t.TempDir(), "run.msgpack")

	out, err := execute(t,
		"-t", "1", "-p", "0.7", "-c", "2",
		"--tick", "5ms", "--service-ticks", "1", "--seed", "3",
		"--record", record)
	require.NoError(t, err)
	assert.Contains(t, out, "time: 1s")
	assert.Contains(t, out, "prob: 0.7")
	assert.Contains(t, out, "stations: 2")
	assert.Contains(t, out, "polls open")
	assert.Contains(t, out, "polls closed")
	assert.Contains(t, out, "voters: ")
	// the result lists every station, even one that never served a voter
	assert.Contains(t, out, "station 1")
	assert.Contains(t, out, "station 2")

	info, err := os.Stat(record)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	out, err = execute(t, "replay", record)
	require.NoError(t, err)
	assert.Contains(t, out, "snapshots: ")
	// A server resting one tick is idle again before the next arrival, so both
	// stations are empty at every arrival and the lowest id wins each tie.
	// Station 2 never reports, so only station 1 is certain to be replayed.
	assert.Contains(t, out, "station 1")
}

func TestRootCmd_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "votesim.json")
	content := `{"duration": "200ms", "probability": 1, "stations": 1, "tick": "5ms", "service_ticks": 1}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	out, err := execute(t, "--config", path, "-q")
	require.NoError(t, err)
	assert.Contains(t, out, "time: 200ms")
	assert.Contains(t, out, "stations: 1")

	// flags set on the command line override the file
	out, err = execute(t, "--config", path, "-q", "-c", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "stations: 2")
}

func TestReplayCmd_MissingFile(t *testing.T) {
	_, err := execute(t, "replay", filepath.Join(t.TempDir(), "missing.msgpack"))
	assert.Error(t, err)
}
