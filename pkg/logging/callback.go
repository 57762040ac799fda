// Copyright 2026 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logging

import (
	"strings"

	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"
)

// Callback receives diagnostic messages of the SDK. Implementations must be
// safe for concurrent use and must return promptly.
type Callback interface {
	Warn(message string)
	Error(message string)
}

// CallbackFunc adapts a single function to the Callback interface. The
// level is either logrus.WarnLevel or logrus.ErrorLevel.
type CallbackFunc func(level logrus.Level, message string)

func (f CallbackFunc) Warn(message string)  { f(logrus.WarnLevel, message) }
func (f CallbackFunc) Error(message string) { f(logrus.ErrorLevel, message) }

// CallbackHook is a logrus hook that forwards warning and error entries to
// the most recently registered Callback.
type CallbackHook struct {
	callback atomic.Value
}

type callbackHolder struct {
	Callback
}

// NewCallbackHook returns a hook with no callback registered.
func NewCallbackHook() *CallbackHook {
	h := new(CallbackHook)
	h.callback.Store(callbackHolder{})
	return h
}

// Set registers c, replacing the previous callback. A nil c disables
// forwarding.
func (h *CallbackHook) Set(c Callback) {
	h.callback.Store(callbackHolder{c})
}

// Callback returns the registered callback or nil.
func (h *CallbackHook) Callback() Callback {
	v, ok := h.callback.Load().(callbackHolder)
	if !ok {
		return nil
	}
	return v.Callback
}

func (h *CallbackHook) Levels() []logrus.Level {
	return []logrus.Level{logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel, logrus.WarnLevel}
}

func (h *CallbackHook) Fire(e *logrus.Entry) error {
	c := h.Callback()
	if c == nil {
		return nil
	}
	msg := e.Message
	if len(e.Data) > 0 {
		if s, err := e.String(); err == nil {
			msg = strings.TrimSuffix(s, "\n")
		}
	}
	if e.Level == logrus.WarnLevel {
		c.Warn(msg)
		return nil
	}
	c.Error(msg)
	return nil
}

// ForwardHook is a logrus hook that writes every entry to another Logger.
// The entries are filtered by the level of that logger.
type ForwardHook struct {
	logger Logger
}

func NewForwardHook(l Logger) *ForwardHook {
	return &ForwardHook{logger: l}
}

func (h *ForwardHook) Levels() []logrus.Level {
	return []logrus.Level{logrus.ErrorLevel, logrus.WarnLevel, logrus.InfoLevel, logrus.DebugLevel, logrus.TraceLevel}
}

func (h *ForwardHook) Fire(e *logrus.Entry) error {
	h.logger.WithFields(e.Data).Log(e.Level, e.Message)
	return nil
}
