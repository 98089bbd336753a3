/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package executor

import (
	"time"

	"github.com/named-data/inrpp/core"
	"github.com/named-data/inrpp/face"
	"github.com/named-data/inrpp/ndn"
	"github.com/named-data/inrpp/sim"
	"github.com/pkg/errors"
)

// ConsumerStats are the counters of a consumer application.
type ConsumerStats struct {
	Node         string
	Prefix       string
	NInterests   uint64
	NData        uint64
	NTimeouts    uint64
	TotalRTT     time.Duration
	LastDataTime time.Time
}

// AverageRTT returns the mean round trip time of satisfied Interests.
func (s ConsumerStats) AverageRTT() time.Duration {
	if s.NData == 0 {
		return 0
	}
	return s.TotalRTT / time.Duration(s.NData)
}

// Consumer is an application expressing Interests for consecutive sequence numbers under a prefix at a
// constant rate.
type Consumer struct {
	stats     ConsumerStats
	scheduler *sim.Scheduler
	transport *face.InternalTransport
	prefix    *ndn.Name
	interval  time.Duration
	lifetime  time.Duration
	maxSeq    uint64
	nextSeq   uint64
	pending   map[uint64]time.Time
	timer     *sim.Event
}

// NewConsumer creates a consumer on the application side of the transport.
func NewConsumer(scheduler *sim.Scheduler, transport *face.InternalTransport, node string, config core.ConsumerConfig) (*Consumer, error) {
	if config.Frequency <= 0 {
		return nil, errors.Errorf("consumer of %s on %s: frequency must be positive", config.Prefix, node)
	}
	prefix, err := ndn.NameFromString(config.Prefix)
	if err != nil {
		return nil, errors.Wrapf(err, "consumer on %s", node)
	}

	c := new(Consumer)
	c.stats.Node = node
	c.stats.Prefix = prefix.String()
	c.scheduler = scheduler
	c.transport = transport
	c.prefix = prefix
	c.interval = time.Duration(float64(time.Second) / config.Frequency)
	c.lifetime = ndn.DefaultInterestLifetime
	if config.Lifetime > 0 {
		c.lifetime = time.Duration(config.Lifetime) * time.Millisecond
	}
	c.maxSeq = config.MaxSeq
	c.pending = make(map[uint64]time.Time)
	transport.SetReceiver(nil, c.onData)
	return c, nil
}

func (c *Consumer) String() string {
	return "Consumer-" + c.stats.Node + c.stats.Prefix
}

// Stats returns the counters of the consumer.
func (c *Consumer) Stats() ConsumerStats {
	return c.stats
}

// Start schedules the first Interest now.
func (c *Consumer) Start() {
	c.timer = c.scheduler.Schedule(0, c.sendNext)
}

// Stop cancels the next Interest.
func (c *Consumer) Stop() {
	c.timer.Cancel()
}

func (c *Consumer) sendNext() {
	if c.maxSeq > 0 && c.nextSeq >= c.maxSeq {
		core.LogDebug(c, "Sent all ", c.maxSeq, " Interests")
		return
	}

	seq := c.nextSeq
	c.nextSeq++
	name := c.prefix.DeepCopy().Append(ndn.NewSequenceNumNameComponent(seq))
	interest := ndn.NewInterest(name)
	interest.SetLifetime(c.lifetime)

	c.pending[seq] = c.scheduler.Now()
	c.scheduler.Schedule(c.lifetime, func() {
		if _, ok := c.pending[seq]; ok {
			delete(c.pending, seq)
			c.stats.NTimeouts++
			core.LogDebug(c, "Timeout for ", name)
		}
	})

	core.LogTrace(c, "Expressing Interest ", name)
	c.stats.NInterests++
	c.transport.ExpressInterest(interest)
	c.timer = c.scheduler.Schedule(c.interval, c.sendNext)
}

func (c *Consumer) onData(data *ndn.Data) {
	if data.Name().Size() != c.prefix.Size()+1 || !c.prefix.PrefixOf(data.Name()) {
		return
	}
	seq := data.Name().At(-1).Number()
	sentAt, ok := c.pending[seq]
	if !ok {
		core.LogTrace(c, "Data ", data.Name(), " is not pending - DROP")
		return
	}
	delete(c.pending, seq)

	now := c.scheduler.Now()
	c.stats.NData++
	c.stats.TotalRTT += now.Sub(sentAt)
	c.stats.LastDataTime = now
	core.LogTrace(c, "Received Data ", data.Name(), " after ", now.Sub(sentAt))
}

// Producer is an application answering every Interest under its prefix with a Data packet of fixed size.
type Producer struct {
	node        string
	transport   *face.InternalTransport
	prefix      *ndn.Name
	payloadSize int
	freshness   time.Duration
	nData       uint64
}

// NewProducer creates a producer on the application side of the transport.
func NewProducer(transport *face.InternalTransport, node string, config core.ProducerConfig) (*Producer, error) {
	prefix, err := ndn.NameFromString(config.Prefix)
	if err != nil {
		return nil, errors.Wrapf(err, "producer on %s", node)
	}
	if config.PayloadSize < 0 {
		return nil, errors.Errorf("producer of %s on %s: payload size must not be negative", config.Prefix, node)
	}

	p := new(Producer)
	p.node = node
	p.transport = transport
	p.prefix = prefix
	p.payloadSize = config.PayloadSize
	p.freshness = time.Duration(config.Freshness) * time.Millisecond
	transport.SetReceiver(p.onInterest, nil)
	return p, nil
}

func (p *Producer) String() string {
	return "Producer-" + p.node + p.prefix.String()
}

// Prefix returns the prefix served by the producer.
func (p *Producer) Prefix() *ndn.Name {
	return p.prefix
}

// NData returns the number of Data packets produced.
func (p *Producer) NData() uint64 {
	return p.nData
}

func (p *Producer) onInterest(interest *ndn.Interest) {
	if !p.prefix.PrefixOf(interest.Name()) {
		core.LogDebug(p, "Interest ", interest.Name(), " is outside of the prefix - DROP")
		return
	}
	data := ndn.NewData(interest.Name(), make([]byte, p.payloadSize))
	data.SetFreshnessPeriod(p.freshness)
	p.nData++
	core.LogTrace(p, "Producing Data ", data.Name())
	p.transport.PutData(data)
}
