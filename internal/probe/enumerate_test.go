// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package probe

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedProber returns a fixed sequence of outcomes.
type scriptedProber struct {
	outcomes []Outcome
	probed   []int
}

func (s *scriptedProber) Probe(_ context.Context, index int) Outcome {
	s.probed = append(s.probed, index)
	if index < len(s.outcomes) {
		return s.outcomes[index]
	}
	return Outcome{Kind: OutcomeNoSuchAdapter}
}

func artifactAt(index int) Outcome {
	return Outcome{Kind: OutcomeArtifact, Artifact: Artifact{Index: index, Data: []byte("{}")}}
}

func TestEnumerate_StopsOnNoSuchAdapter(t *testing.T) {
	p := &scriptedProber{outcomes: []Outcome{
		artifactAt(0),
		artifactAt(1),
		{Kind: OutcomeNoSuchAdapter},
		artifactAt(3),
	}}

	artifacts, err := NewEnumerator(p, 0).Enumerate(context.Background())

	require.NoError(t, err)
	require.Len(t, artifacts, 2)
	assert.Equal(t, 0, artifacts[0].Index)
	assert.Equal(t, 1, artifacts[1].Index)
	assert.Equal(t, []int{0, 1, 2}, p.probed)
}

func TestEnumerate_NoAdapters(t *testing.T) {
	p := &scriptedProber{outcomes: []Outcome{{Kind: OutcomeNoSuchAdapter}}}

	artifacts, err := NewEnumerator(p, 0).Enumerate(context.Background())

	require.NoError(t, err)
	assert.Empty(t, artifacts)
}

func TestEnumerate_FirstAdapterFailureIsFatal(t *testing.T) {
	tests := []struct {
		name    string
		outcome Outcome
		want    error
	}{
		{"tool unavailable", Outcome{Kind: OutcomeToolUnavailable, Err: ErrToolUnavailable}, ErrToolUnavailable},
		{"artifact missing", Outcome{Kind: OutcomeArtifactMissing, Err: ErrArtifactMissing}, ErrArtifactMissing},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := &scriptedProber{outcomes: []Outcome{tc.outcome, artifactAt(1)}}

			artifacts, err := NewEnumerator(p, 0).Enumerate(context.Background())

			assert.Nil(t, artifacts)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
			assert.Equal(t, []int{0}, p.probed)
		})
	}
}

func TestEnumerate_LaterFailureEndsEnumeration(t *testing.T) {
	p := &scriptedProber{outcomes: []Outcome{
		artifactAt(0),
		{Kind: OutcomeArtifactMissing, Err: ErrArtifactMissing},
		artifactAt(2),
	}}

	artifacts, err := NewEnumerator(p, 0).Enumerate(context.Background())

	require.NoError(t, err)
	require.Len(t, artifacts, 1)
	assert.Equal(t, []int{0, 1}, p.probed)
}

func TestEnumerate_RespectsAdapterCap(t *testing.T) {
	p := &scriptedProber{outcomes: []Outcome{artifactAt(0), artifactAt(1), artifactAt(2), artifactAt(3)}}

	artifacts, err := NewEnumerator(p, 2).Enumerate(context.Background())

	require.NoError(t, err)
	assert.Len(t, artifacts, 2)
	assert.Equal(t, []int{0, 1}, p.probed)
}

func TestEnumerate_DeletesArtifacts(t *testing.T) {
	dir := t.TempDir()
	runner := &fakeRunner{steps: []func([]string) (RunResult, error){
		writesArtifact(`{"a":0}`, 0),
		writesArtifact(`{"a":1}`, 0),
		returns(RunResult{ExitCode: 1, Stdout: "The selected gpu (2) is not a valid GPU index"}, nil),
	}}
	inv := NewInvoker(runner, testOptions(dir))

	artifacts, err := NewEnumerator(inv, 0).Enumerate(context.Background())

	require.NoError(t, err)
	require.Len(t, artifacts, 2)
	assert.Equal(t, `{"a":1}`, string(artifacts[1].Data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no artifacts may survive enumeration")
}
