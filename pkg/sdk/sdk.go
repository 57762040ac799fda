// Copyright 2026 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sdk is the entry point of the agent SDK. An SDK handle is created
// once at process start and passed to the code that creates tracers.
//
// On first use the handle decides whether a tracing agent is attached and
// binds either to the recording tracer provider or to the no-op fallback.
// Host code is written the same way in both cases.
package sdk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/ethersphere/agentsdk/pkg/custommetrics"
	"github.com/ethersphere/agentsdk/pkg/info"
	"github.com/ethersphere/agentsdk/pkg/logging"
	m "github.com/ethersphere/agentsdk/pkg/metrics"
	"github.com/ethersphere/agentsdk/pkg/tracer"
	"github.com/ethersphere/agentsdk/pkg/tracer/noop"
	"github.com/ethersphere/agentsdk/pkg/tracing"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
)

// State describes whether tracers of the SDK are reported to an agent.
type State int

const (
	// StateNotInitialized is the state of a nil SDK.
	StateNotInitialized State = iota
	// StateActive means tracers are reported to the agent.
	StateActive
	// StateTemporarilyInactive means an agent is configured but disabled.
	StateTemporarilyInactive
	// StatePermanentlyInactive means no agent is attached.
	StatePermanentlyInactive
	// StateError means the agent could not be attached.
	StateError
)

func (s State) String() string {
	switch s {
	case StateNotInitialized:
		return "not initialized"
	case StateActive:
		return "active"
	case StateTemporarilyInactive:
		return "temporarily inactive"
	case StatePermanentlyInactive:
		return "permanently inactive"
	case StateError:
		return "error"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Options configure the SDK. The zero value gives an SDK without an agent.
type Options struct {
	// Logger receives the SDK diagnostics at its own level. The logger is
	// not modified; warnings and errors reach the logging callback of this
	// handle regardless of the logger level.
	Logger logging.Logger
	// Recorder attaches an agent directly. It takes precedence over Tracing.
	Recorder tracer.Recorder
	// Tracing attaches a jaeger agent when enabled.
	Tracing *tracing.Options
	// Registry receives the SDK and custom metrics. Without it custom
	// metrics are no-ops.
	Registry m.MetricsRegisterer
}

// SDK is the handle used to create descriptors and tracers.
type SDK struct {
	options  Options
	logger   logging.Logger
	callback *logging.CallbackHook
	metrics  *custommetrics.Factory

	once       sync.Once
	provider   tracer.Provider
	state      State
	collectors []m.Collector
	registered []m.Collector
	closer     io.Closer

	closeOnce sync.Once
	closeErr  error
}

// New returns an SDK handle. No agent is contacted until the handle is first
// used.
func New(o *Options) *SDK {
	if o == nil {
		o = new(Options)
	}
	callback := logging.NewCallbackHook()
	var logger logging.Logger
	if o.Logger == nil {
		logger = logging.New(io.Discard, logrus.WarnLevel, callback)
	} else {
		logger = logging.New(io.Discard, logrus.DebugLevel, callback, logging.NewForwardHook(o.Logger))
	}
	return &SDK{
		options:  *o,
		logger:   logger,
		callback: callback,
		metrics:  custommetrics.NewFactory(o.Registry, logger),
	}
}

// Provider returns the resolved tracer provider. It is used by transport
// integrations that create tracers on behalf of the host.
func (s *SDK) Provider() tracer.Provider {
	if s == nil {
		return noop.Provider{}
	}
	s.resolve()
	return s.provider
}

// CurrentState returns the agent state, resolving it on first use.
func (s *SDK) CurrentState() State {
	if s == nil {
		return StateNotInitialized
	}
	s.resolve()
	return s.state
}

// AgentFound reports whether an agent is attached, even if it is not
// currently active.
func (s *SDK) AgentFound() bool {
	switch s.CurrentState() {
	case StateActive, StateTemporarilyInactive:
		return true
	}
	return false
}

func (s *SDK) resolve() {
	s.once.Do(func() {
		s.provider, s.state = s.attach()
		if s.state != StateActive {
			s.provider = noop.Provider{}
		}
		s.logger.Debugf("sdk: agent state %s", s.state)
		s.register()
	})
}

func (s *SDK) attach() (tracer.Provider, State) {
	recorder := s.options.Recorder
	if recorder == nil {
		o := s.options.Tracing
		if o == nil {
			return nil, StatePermanentlyInactive
		}
		if !o.Enabled {
			return nil, StateTemporarilyInactive
		}
		to := *o
		if to.Logger == nil {
			to.Logger = s.logger
		}
		t, closer, err := tracing.NewTracer(&to)
		if err != nil {
			s.logger.Warningf("sdk: attach tracing agent: %v", err)
			return nil, StateError
		}
		s.closer = closer
		s.collectors = append(s.collectors, t.Metrics()...)
		recorder = t
	}

	p := tracer.NewRecordingProvider(recorder, s.logger)
	s.collectors = append(s.collectors, p.Metrics()...)
	return p, StateActive
}

func (s *SDK) register() {
	if c, ok := s.logger.(m.MetricsCollector); ok {
		s.collectors = append(s.collectors, c.Metrics()...)
	}
	s.collectors = append(s.collectors, s.metrics.Metrics()...)

	if s.options.Registry == nil {
		return
	}
	for _, c := range s.collectors {
		if err := s.options.Registry.Register(c); err != nil {
			var are m.AlreadyRegisteredError
			if !errors.As(err, &are) {
				s.logger.Warningf("sdk: register metrics: %v", err)
			}
			continue
		}
		s.registered = append(s.registered, c)
	}
}

// Metrics returns the collectors of the SDK components.
func (s *SDK) Metrics() []m.Collector {
	if s == nil {
		return nil
	}
	s.resolve()
	return s.collectors
}

// SetLoggingCallback registers the callback receiving SDK warnings and
// errors, replacing the previous one. A nil callback disables forwarding.
func (s *SDK) SetLoggingCallback(c logging.Callback) {
	if s == nil {
		return
	}
	s.callback.Set(c)
}

// Close flushes and releases the agent. Tracers created after Close are not
// guaranteed to be reported.
func (s *SDK) Close() error {
	if s == nil {
		return nil
	}
	s.resolve()
	s.closeOnce.Do(func() {
		var result *multierror.Error
		if s.closer != nil {
			if err := s.closer.Close(); err != nil {
				result = multierror.Append(result, fmt.Errorf("close tracing agent: %w", err))
			}
		}
		for _, c := range s.registered {
			s.options.Registry.Unregister(c)
		}
		s.metrics.Close()
		s.closeErr = result.ErrorOrNil()
	})
	return s.closeErr
}

func (s *SDK) CreateMessagingSystemInfo(vendor, destination string, destinationType info.DestinationType, channelType info.ChannelType, channelEndpoint string) *info.MessagingSystem {
	return info.NewMessagingSystem(vendor, destination, destinationType, channelType, channelEndpoint)
}

func (s *SDK) CreateDatabaseInfo(name, vendor string, channelType info.ChannelType, channelEndpoint string) *info.Database {
	return info.NewDatabase(name, vendor, channelType, channelEndpoint)
}

func (s *SDK) TraceOutgoingMessage(ctx context.Context, ms *info.MessagingSystem) tracer.OutgoingMessageTracer {
	return s.Provider().TraceOutgoingMessage(ctx, ms)
}

func (s *SDK) TraceIncomingMessageReceive(ctx context.Context, ms *info.MessagingSystem) tracer.IncomingMessageReceiveTracer {
	return s.Provider().TraceIncomingMessageReceive(ctx, ms)
}

func (s *SDK) TraceIncomingMessageProcess(ctx context.Context, ms *info.MessagingSystem) tracer.IncomingMessageProcessTracer {
	return s.Provider().TraceIncomingMessageProcess(ctx, ms)
}

// TraceOutgoingRemoteCall traces a call of serviceMethod of serviceName,
// reached through the given channel.
func (s *SDK) TraceOutgoingRemoteCall(ctx context.Context, serviceMethod, serviceName, serviceEndpoint string, channelType info.ChannelType, channelEndpoint string) tracer.OutgoingRemoteCallTracer {
	r := info.NewRemoteCall(serviceMethod, serviceName, serviceEndpoint, channelType, channelEndpoint)
	return s.Provider().TraceOutgoingRemoteCall(ctx, r)
}

// TraceIncomingRemoteCall traces the handling of a call of serviceMethod of
// serviceName.
func (s *SDK) TraceIncomingRemoteCall(ctx context.Context, serviceMethod, serviceName, serviceEndpoint string) tracer.IncomingRemoteCallTracer {
	r := info.NewRemoteCall(serviceMethod, serviceName, serviceEndpoint, info.ChannelTypeOther, "")
	return s.Provider().TraceIncomingRemoteCall(ctx, r)
}

func (s *SDK) TraceSQLDatabaseRequest(ctx context.Context, d *info.Database, statement string) tracer.DatabaseRequestTracer {
	return s.Provider().TraceSQLDatabaseRequest(ctx, d, statement)
}

// CreateInProcessLink returns a link to the tracer active in ctx.
func (s *SDK) CreateInProcessLink(ctx context.Context) tracer.InProcessLink {
	return s.Provider().CreateInProcessLink(ctx)
}

func (s *SDK) TraceInProcessLink(ctx context.Context, link tracer.InProcessLink) tracer.InProcessLinkTracer {
	return s.Provider().TraceInProcessLink(ctx, link)
}

func (s *SDK) CreateIntegerCounterMetric(key, unit, dimensionName string) custommetrics.IntegerCounter {
	return s.customMetrics().IntegerCounter(key, unit, dimensionName)
}

func (s *SDK) CreateFloatCounterMetric(key, unit, dimensionName string) custommetrics.FloatCounter {
	return s.customMetrics().FloatCounter(key, unit, dimensionName)
}

func (s *SDK) CreateIntegerGaugeMetric(key, unit, dimensionName string) custommetrics.IntegerGauge {
	return s.customMetrics().IntegerGauge(key, unit, dimensionName)
}

func (s *SDK) CreateFloatGaugeMetric(key, unit, dimensionName string) custommetrics.FloatGauge {
	return s.customMetrics().FloatGauge(key, unit, dimensionName)
}

func (s *SDK) CreateIntegerStatisticsMetric(key, unit, dimensionName string) custommetrics.IntegerStatistics {
	return s.customMetrics().IntegerStatistics(key, unit, dimensionName)
}

func (s *SDK) CreateFloatStatisticsMetric(key, unit, dimensionName string) custommetrics.FloatStatistics {
	return s.customMetrics().FloatStatistics(key, unit, dimensionName)
}

// customMetrics returns the custom metrics factory. A nil factory creates
// no-op metrics.
func (s *SDK) customMetrics() *custommetrics.Factory {
	if s == nil {
		return nil
	}
	return s.metrics
}
