// Copyright 2025 The packetd Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package exporter sinks executed-roundtrip records produced by respd to an
// external destination. It is the one piece of the teacher's multi-sink
// exporter generalized from "passively observed network roundtrips" to
// "request/response Command pairs the demo server itself executed".
package exporter

import (
	"context"

	"github.com/pkg/errors"

	"github.com/packetd/respb/common"
	"github.com/packetd/respb/confengine"
)

type Exporter struct {
	ctx    context.Context
	cancel context.CancelFunc
	conf   Config

	roundTripsSinker Sinker
}

func New(conf *confengine.Config) (*Exporter, error) {
	var cfg Config
	if err := conf.UnpackChild("exporter", &cfg); err != nil {
		return nil, err
	}

	var roundTripsSinker Sinker
	if cfg.RoundTrips.Enabled {
		f := Get(common.RecordRoundTrips)
		if f == nil {
			return nil, errNoSinkerRegistered
		}
		var err error
		if roundTripsSinker, err = f(cfg); err != nil {
			return nil, err
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Exporter{
		ctx:              ctx,
		cancel:           cancel,
		conf:             cfg,
		roundTripsSinker: roundTripsSinker,
	}, nil
}

func (e *Exporter) Start() {}

func (e *Exporter) Close() {
	e.cancel()
	if e.conf.RoundTrips.Enabled {
		e.roundTripsSinker.Close()
	}
}

func (e *Exporter) Export(record *common.Record) {
	if record.RecordType != common.RecordRoundTrips || !e.conf.RoundTrips.Enabled {
		return
	}
	e.roundTripsSinker.Sink(record.Data)
}

var errNoSinkerRegistered = errors.New("exporter: no roundtrips sinker registered")
