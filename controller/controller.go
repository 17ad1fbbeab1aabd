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

// Package controller wires together the pieces a running respb server is
// built from: the kvstore engine, the respd listeners fronting it, the
// exporter pipeline recording executed roundtrips, and the debug/admin
// HTTP server.
package controller

import (
	"context"
	"io"
	"time"

	"github.com/pkg/errors"

	"github.com/packetd/respb/common"
	"github.com/packetd/respb/confengine"
	"github.com/packetd/respb/exporter"
	"github.com/packetd/respb/internal/metricstorage"
	"github.com/packetd/respb/internal/pubsub"
	"github.com/packetd/respb/kvstore"
	"github.com/packetd/respb/logger"
	"github.com/packetd/respb/protocol/role"
	"github.com/packetd/respb/respd"
	"github.com/packetd/respb/server"
)

type Controller struct {
	ctx       context.Context
	cancel    context.CancelFunc
	cfg       Config
	buildInfo common.BuildInfo

	store   *kvstore.Store
	rd      *respd.Server
	exp     *exporter.Exporter
	svr     *server.Server
	metrics *metricstorage.Storage

	rtBus      *pubsub.PubSub
	roundtrips chan *role.Pair
}

func setupLogger(conf *confengine.Config) error {
	var opts logger.Options
	if err := conf.UnpackChild("logger", &opts); err != nil {
		return err
	}

	if opts.Filename == "" {
		opts.Filename = "respb.log"
	}
	if opts.MaxBackups <= 0 {
		opts.MaxBackups = 10
	}
	if opts.MaxAge <= 0 {
		opts.MaxAge = 7
	}
	if opts.MaxSize <= 0 {
		opts.MaxSize = 100
	}

	logger.SetOptions(opts)
	return nil
}

// New builds a Controller from the top-level config. It does not start
// serving; call Start for that.
func New(conf *confengine.Config, buildInfo common.BuildInfo) (*Controller, error) {
	if err := setupLogger(conf); err != nil {
		return nil, err
	}

	store := kvstore.New()

	exp, err := exporter.New(conf)
	if err != nil {
		return nil, err
	}

	svr, err := server.New(conf)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := conf.UnpackChild("controller", &cfg); err != nil {
		return nil, err
	}

	metrics, err := metricstorage.New(conf)
	if err != nil {
		return nil, err
	}

	roundtrips := make(chan *role.Pair, common.Concurrency())
	rtBus := pubsub.New()

	rd, err := respd.New(conf, store, metrics, func(pair *role.Pair) {
		select {
		case roundtrips <- pair:
		default:
			// channel full: drop rather than block the connection
			// goroutine that produced this roundtrip.
		}
	})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		ctx:        ctx,
		cancel:     cancel,
		cfg:        cfg,
		buildInfo:  buildInfo,
		store:      store,
		rd:         rd,
		exp:        exp,
		svr:        svr,
		metrics:    metrics,
		rtBus:      rtBus,
		roundtrips: roundtrips,
	}, nil
}

func (c *Controller) Start() error {
	c.setupServer()

	for i := 0; i < common.Concurrency(); i++ {
		go c.consumeRoundTrip()
	}

	if c.svr != nil {
		go func() {
			err := c.svr.ListenAndServe()
			if !errors.Is(err, io.EOF) {
				logger.Errorf("failed to start server: %v", err)
			}
		}()
	}

	c.exp.Start()
	return c.rd.Start()
}

func (c *Controller) recordMetrics() {
	uptime.Set(float64(time.Now().Unix() - common.Started()))
	buildInfo.WithLabelValues(c.buildInfo.Version, c.buildInfo.GitHash, c.buildInfo.Time).Inc()
	storeKeys.Set(float64(c.store.DBSize()))
}

// Reload has nothing left to reload beyond the logger, which reads its
// config fresh on every call; it exists so cmd's signal handling has a
// stable target to call into.
func (c *Controller) Reload(conf *confengine.Config) error {
	return setupLogger(conf)
}

func (c *Controller) Stop() {
	c.rd.Close()
	c.exp.Close()
	if c.metrics != nil {
		c.metrics.Close()
	}
	c.cancel()
}

func (c *Controller) consumeRoundTrip() {
	for {
		select {
		case pair := <-c.roundtrips:
			handledRoundtrips.Inc()
			c.rtBus.Publish(pair)
			c.exp.Export(common.NewRecord(common.RecordRoundTrips, pair))

		case <-c.ctx.Done():
			return
		}
	}
}
