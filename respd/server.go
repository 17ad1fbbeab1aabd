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

package respd

import (
	"net"
	"time"

	"github.com/packetd/respb/confengine"
	"github.com/packetd/respb/internal/labels"
	"github.com/packetd/respb/internal/metricstorage"
	"github.com/packetd/respb/internal/rescue"
	"github.com/packetd/respb/kvstore"
	"github.com/packetd/respb/logger"
	"github.com/packetd/respb/protocol/role"
)

// RoundTripFunc receives every executed (request, response) pair, letting
// callers export it or fan it out to watchers. It must not block.
type RoundTripFunc func(pair *role.Pair)

// Server owns the RESP and RESPB listeners fronting a single kvstore.Store.
type Server struct {
	conf  Config
	store *kvstore.Store

	onRoundTrip RoundTripFunc
	metrics     *metricstorage.Storage

	respListener  net.Listener
	respbListener net.Listener
}

// New builds a Server from the "respd" config section. store must already
// be constructed; Server never owns its lifecycle beyond serving requests
// against it. metrics may be nil, in which case per-command accounting is
// skipped.
func New(conf *confengine.Config, store *kvstore.Store, metrics *metricstorage.Storage, onRoundTrip RoundTripFunc) (*Server, error) {
	var cfg Config
	if err := conf.UnpackChild("respd", &cfg); err != nil {
		return nil, err
	}
	return &Server{conf: cfg, store: store, metrics: metrics, onRoundTrip: onRoundTrip}, nil
}

// Start binds both listeners (whichever are enabled) and begins serving in
// background goroutines. It returns once both listeners are bound, not once
// they stop serving.
func (s *Server) Start() error {
	if s.conf.RESP.Enabled {
		l, err := net.Listen("tcp", s.conf.RESP.Address)
		if err != nil {
			return err
		}
		s.respListener = l
		logger.Infof("respd: RESP listener on %s", s.conf.RESP.Address)
		go s.serveRESP(l)
	}

	if s.conf.RESPB.Enabled {
		l, err := net.Listen("tcp", s.conf.RESPB.Address)
		if err != nil {
			return err
		}
		s.respbListener = l
		logger.Infof("respd: RESPB listener on %s", s.conf.RESPB.Address)
		go s.serveRESPB(l)
	}

	return nil
}

// Close stops accepting new connections on both listeners. In-flight
// connections are left to finish or error out on their own.
func (s *Server) Close() {
	if s.respListener != nil {
		s.respListener.Close()
	}
	if s.respbListener != nil {
		s.respbListener.Close()
	}
}

func acceptLoop(l net.Listener, handle func(net.Conn)) {
	for {
		conn, err := l.Accept()
		if err != nil {
			return
		}
		go func() {
			defer rescue.HandleCrash()
			defer conn.Close()
			handle(conn)
		}()
	}
}

// recordCommand tracks per-opcode execution counts and latency in
// s.metrics, which expires label sets that stop appearing rather than
// retaining one time series per opcode forever.
func (s *Server) recordCommand(name string, elapsed time.Duration) {
	if s.metrics == nil {
		return
	}
	lbs := labels.Labels{{Name: "opcode", Value: name}}
	s.metrics.Update(
		metricstorage.ConstMetric{
			Model:  metricstorage.ModelCounter,
			Name:   "respd_commands_total",
			Labels: lbs,
			Value:  1,
		},
		metricstorage.ConstMetric{
			Model:  metricstorage.ModelHistogram,
			Unit:   metricstorage.UnitSeconds,
			Name:   "respd_command_duration_seconds",
			Labels: lbs,
			Value:  elapsed.Seconds(),
		},
	)
}

// publish feeds the request and response objects through the connection's
// matcher and hands the resulting pair to the roundtrip callback. The
// matcher decides pairing: the RESP listener uses a SingleMatcher (one
// command in flight per connection), the RESPB listener a ListMatcher
// keyed on mux ID.
func (s *Server) publish(m role.Matcher, req, resp any) {
	if s.onRoundTrip == nil {
		return
	}
	m.Match(role.NewRequestObject(req))
	if pair := m.Match(role.NewResponseObject(resp)); pair != nil {
		s.onRoundTrip(pair)
	}
}
