package delivery

import (
	"context"
	"sync"
	"time"

	"github.com/awnationwide/lead-intake/internal/intake"
	"github.com/awnationwide/lead-intake/internal/observability/metrics"
	"github.com/awnationwide/lead-intake/pkg/logging"
)

const defaultChannelTimeout = 12 * time.Second

// OrchestratorConfig tunes the fan-out behavior.
type OrchestratorConfig struct {
	// Timeout bounds each individual channel call. Zero means the default.
	Timeout time.Duration

	// RequiredChannels lists channels whose failure fails the whole report.
	// Channels not listed are advisory: their failures are reported but do
	// not flip the overall ok.
	RequiredChannels []string
}

// Orchestrator fans a normalized lead out to every registered channel
// concurrently and aggregates per-channel outcomes. It never retries within
// a request.
type Orchestrator struct {
	channels []Channel
	timeout  time.Duration
	required map[string]bool
	metrics  *metrics.DeliveryMetrics
	logger   *logging.Logger
}

// NewOrchestrator creates a delivery orchestrator over the given channels.
func NewOrchestrator(channels []Channel, cfg OrchestratorConfig, m *metrics.DeliveryMetrics, logger *logging.Logger) *Orchestrator {
	if logger == nil {
		logger = logging.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultChannelTimeout
	}
	required := make(map[string]bool, len(cfg.RequiredChannels))
	for _, name := range cfg.RequiredChannels {
		required[name] = true
	}
	return &Orchestrator{
		channels: channels,
		timeout:  timeout,
		required: required,
		metrics:  m,
		logger:   logger,
	}
}

// ConfiguredChannels returns the names of channels that would be attempted.
func (o *Orchestrator) ConfiguredChannels() []string {
	names := make([]string, 0, len(o.channels))
	for _, ch := range o.channels {
		if ch.Configured() {
			names = append(names, ch.Name())
		}
	}
	return names
}

// Deliver dispatches the lead to every configured channel concurrently, each
// bounded by the orchestrator timeout, and waits for all of them to settle.
// A slow or failing channel never blocks or aborts its siblings.
func (o *Orchestrator) Deliver(ctx context.Context, lead *intake.NormalizedLead, meta Meta) Report {
	results := make([]ChannelResult, len(o.channels))

	var wg sync.WaitGroup
	attempted := 0
	for i, ch := range o.channels {
		if !ch.Configured() {
			results[i] = ChannelResult{
				Channel: ch.Name(),
				Error:   errorLabel(ErrMissingConfiguration),
			}
			o.metrics.ObserveChannel(ch.Name(), "skipped")
			continue
		}

		attempted++
		wg.Add(1)
		go func(i int, ch Channel) {
			defer wg.Done()
			results[i] = o.send(ctx, ch, lead, meta)
		}(i, ch)
	}
	wg.Wait()

	report := Report{Results: results}
	if attempted == 0 {
		report.Error = ErrorNoChannels
		o.logger.Error("delivery: no channels configured", "lead_phone", lead.Phone)
		return report
	}

	report.Ok = true
	for _, res := range results {
		if o.required[res.Channel] && !(res.Attempted && res.Success) {
			report.Ok = false
		}
	}
	return report
}

func (o *Orchestrator) send(ctx context.Context, ch Channel, lead *intake.NormalizedLead, meta Meta) ChannelResult {
	cctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	start := time.Now()
	err := ch.Send(cctx, lead, meta)
	elapsed := time.Since(start)

	res := ChannelResult{
		Channel:   ch.Name(),
		Attempted: true,
		ElapsedMs: elapsed.Milliseconds(),
	}
	o.metrics.ObserveChannelLatency(ch.Name(), elapsed.Seconds())

	if err != nil {
		res.Error = errorLabel(err)
		status := "error"
		if res.Error == "Timeout" {
			status = "timeout"
		}
		o.metrics.ObserveChannel(ch.Name(), status)
		o.logger.Error("delivery: channel failed",
			"channel", ch.Name(),
			"error", err,
			"elapsed_ms", res.ElapsedMs,
			"is_test", meta.IsTest,
		)
		return res
	}

	res.Success = true
	o.metrics.ObserveChannel(ch.Name(), "success")
	o.logger.Info("delivery: channel succeeded",
		"channel", ch.Name(),
		"elapsed_ms", res.ElapsedMs,
		"is_test", meta.IsTest,
	)
	return res
}
