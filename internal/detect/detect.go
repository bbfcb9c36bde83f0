// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package detect

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/phuslu/log"

	"github.com/jeranaias/vktier/internal/notice"
	"github.com/jeranaias/vktier/internal/probe"
	"github.com/jeranaias/vktier/internal/util"
)

// ErrNoAdapters means the tool reported no adapter at index 0.
var ErrNoAdapters = errors.New("no Vulkan adapters reported")

// Source yields the raw artifacts for every adapter, in index order.
// *probe.Enumerator is the production implementation.
type Source interface {
	Enumerate(ctx context.Context) ([]probe.Artifact, error)
}

// AdapterReport is what the pipeline concluded about one adapter.
type AdapterReport struct {
	Index          int            `json:"index"`
	Shape          Shape          `json:"shape"`
	Record         *AdapterRecord `json:"record,omitempty"`
	Classification Classification `json:"classification"`
	// Pessimistic is set when the artifact was unrecognized and the
	// legacy Intel integrated default was substituted.
	Pessimistic bool `json:"pessimistic_default"`
}

// Report is the full result of one detection run.
type Report struct {
	RunID    string          `json:"run_id"`
	Summary  Summary         `json:"summary"`
	Adapters []AdapterReport `json:"adapters"`
}

// Detector runs one-shot detection. It keeps no state between runs.
type Detector struct {
	source   Source
	notifier notice.Notifier
}

// NewDetector creates a detector. A nil notifier logs notices only.
func NewDetector(source Source, notifier notice.Notifier) *Detector {
	if notifier == nil {
		notifier = notice.Log{}
	}
	return &Detector{source: source, notifier: notifier}
}

// Detect returns the machine summary. On fatal failure the user is notified
// once and the zero Summary is returned with the error.
func (d *Detector) Detect(ctx context.Context) (Summary, error) {
	report, err := d.Run(ctx)
	if err != nil {
		return Summary{}, err
	}
	return report.Summary, nil
}

// Run enumerates, parses, classifies and aggregates every adapter.
// Unrecognized artifacts fall back to PessimisticClassification and
// detection continues; an unreadable artifact fails the whole run.
// CANCELLATION: Context enables timeout and cancellation
func (d *Detector) Run(ctx context.Context) (*Report, error) {
	runID := uuid.NewString()
	start := time.Now()
	report := &Report{RunID: runID}

	log.Info().Str("run", runID).Msg("Starting adapter detection")

	artifacts, err := d.source.Enumerate(ctx)
	if err != nil {
		return report, d.fail(ctx, runID, err)
	}
	if len(artifacts) == 0 {
		return report, d.fail(ctx, runID, ErrNoAdapters)
	}

	summary := NewSummary()
	for _, a := range artifacts {
		parsed, perr := ParseArtifact(a.Data)

		ar := AdapterReport{Index: a.Index, Shape: parsed.Shape}
		switch {
		case errors.Is(perr, ErrArtifactUnreadable):
			return &Report{RunID: runID}, d.fail(ctx, runID, fmt.Errorf("adapter %d: %w", a.Index, perr))

		case errors.Is(perr, ErrArtifactUnrecognized):
			ar.Classification = PessimisticClassification()
			ar.Pessimistic = true
			d.warn(ctx, runID, a.Index)

		default:
			rec := parsed.Record
			ar.Record = &rec
			ar.Classification = Classify(rec)
		}

		log.Info().
			Str("run", runID).
			Int("index", a.Index).
			Str("shape", ar.Shape.String()).
			Str("device", deviceLabel(ar)).
			Str("tier", ar.Classification.Tier.String()).
			Bool("discrete", ar.Classification.Discrete).
			Msg("Adapter classified")

		summary.Add(ar.Classification)
		report.Adapters = append(report.Adapters, ar)
	}
	report.Summary = summary

	log.Info().
		Str("run", runID).
		Int("adapters", len(report.Adapters)).
		Int("discrete_tier", int(summary.DiscreteTier)).
		Int("integrated_tier", int(summary.IntegratedTier)).
		Dur("duration", time.Since(start)).
		Msg("Adapter detection complete")

	return report, nil
}

// fail shows the one fatal notice for this run and returns err.
func (d *Detector) fail(ctx context.Context, runID string, err error) error {
	log.Error().Err(err).Str("run", runID).Msg("Adapter detection failed")
	if nerr := d.notifier.Notify(ctx, FailureNotice(err)); nerr != nil {
		log.Warn().Err(nerr).Str("run", runID).Msg("Could not show failure notice")
	}
	return err
}

func (d *Detector) warn(ctx context.Context, runID string, index int) {
	n := notice.Notice{
		Level:   notice.LevelWarning,
		Title:   "Unrecognized graphics adapter report",
		Message: fmt.Sprintf("Adapter %d reported capabilities in an unknown format. It will be treated as an older Intel integrated GPU with legacy support only.", index),
		Hint:    "Updating your graphics drivers usually fixes this.",
	}
	if err := d.notifier.Notify(ctx, n); err != nil {
		log.Warn().Err(err).Str("run", runID).Msg("Could not show warning notice")
	}
}

// FailureNotice builds the user-facing notice for a fatal detection error.
func FailureNotice(err error) notice.Notice {
	n := notice.Notice{
		Level:   notice.LevelFatal,
		Title:   "Vulkan support not detected",
		Message: "Your graphics hardware could not be checked, so no Vulkan-based translation layer will be configured.",
	}

	switch {
	case errors.Is(err, probe.ErrToolUnavailable):
		n.Hint = "The Vulkan probing tool could not be started. Install the Vulkan tools package (vulkan-tools / vulkaninfo) or update your graphics drivers."
	case errors.Is(err, probe.ErrArtifactMissing):
		n.Hint = "The graphics driver did not report any adapter details. Your GPU drivers may be missing or too old."
	case errors.Is(err, ErrArtifactUnreadable):
		n.Hint = "The probing tool produced corrupt output. Update the Vulkan tools and your graphics drivers."
	case errors.Is(err, ErrNoAdapters):
		n.Hint = "No Vulkan-capable graphics adapter was found. Check that your GPU drivers are installed."
	default:
		n.Hint = "Update your graphics drivers and try again."
	}
	n.Message += "\n\n" + util.TruncateRunes(err.Error(), 200)
	return n
}

func deviceLabel(ar AdapterReport) string {
	if ar.Record == nil {
		return "(unknown)"
	}
	return util.TruncateRunes(ar.Record.DeviceName, 64)
}
