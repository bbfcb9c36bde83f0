// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package probe

import (
	"context"
	"fmt"

	"github.com/phuslu/log"
)

// Prober probes one adapter index. Invoker is the production implementation.
type Prober interface {
	Probe(ctx context.Context, index int) Outcome
}

// Enumerator walks adapter indices in order.
type Enumerator struct {
	prober      Prober
	maxAdapters int
}

// NewEnumerator creates an enumerator. maxAdapters <= 0 means the default cap.
func NewEnumerator(prober Prober, maxAdapters int) *Enumerator {
	if maxAdapters <= 0 {
		maxAdapters = DefaultOptions().MaxAdapters
	}
	return &Enumerator{prober: prober, maxAdapters: maxAdapters}
}

// Enumerate probes index 0, 1, 2, ... and returns the artifacts in index
// order. It stops cleanly on OutcomeNoSuchAdapter. Tool unavailable or
// artifact missing is fatal at index 0 (no usable hardware) and only ends
// enumeration at later indices. Each artifact file is deleted right after
// it has been read.
func (e *Enumerator) Enumerate(ctx context.Context) ([]Artifact, error) {
	var artifacts []Artifact

	for index := 0; index < e.maxAdapters; index++ {
		out := e.prober.Probe(ctx, index)

		switch out.Kind {
		case OutcomeArtifact:
			removeArtifact(out.Artifact.Path)
			log.Debug().Int("index", index).Int("bytes", len(out.Artifact.Data)).Msg("Adapter artifact collected")
			artifacts = append(artifacts, out.Artifact)
			continue

		case OutcomeNoSuchAdapter:
			log.Debug().Int("index", index).Int("adapters", len(artifacts)).Msg("Enumeration complete")
			return artifacts, nil

		case OutcomeToolUnavailable, OutcomeArtifactMissing:
			if index == 0 {
				return nil, out.Err
			}
			log.Warn().Err(out.Err).Int("index", index).Msg("Stopping enumeration at failed adapter")
			return artifacts, nil

		default:
			return nil, fmt.Errorf("adapter %d: unexpected probe outcome %d", index, out.Kind)
		}
	}

	log.Warn().Int("max_adapters", e.maxAdapters).Msg("Adapter limit reached, stopping enumeration")
	return artifacts, nil
}
