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
	"github.com/named-data/inrpp/fw"
	"github.com/named-data/inrpp/mgmt"
	"github.com/named-data/inrpp/sim"
	"github.com/named-data/inrpp/utils/comparison"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Node is a simulated forwarder with its faces and manager.
type Node struct {
	Name      string
	Faces     *face.Table
	Forwarder *fw.Forwarder
	Manager   *mgmt.Thread

	adjacencies []adjacency
}

// Executor builds a simulated topology from configuration and runs it in virtual time.
type Executor struct {
	config    *core.SimConfig
	scheduler *sim.Scheduler
	nodes     map[string]*Node
	nodeNames []string
	consumers []*Consumer
	producers []*Producer
	registry  *prometheus.Registry
}

// NewExecutor creates the nodes, links, applications and routes described by the configuration.
func NewExecutor(config *core.SimConfig) (*Executor, error) {
	e := new(Executor)
	e.config = config
	e.scheduler = sim.NewScheduler()
	e.nodes = make(map[string]*Node)
	e.registry = prometheus.NewRegistry()

	for _, name := range config.Nodes {
		if err := e.addNode(name); err != nil {
			return nil, err
		}
	}
	for _, link := range config.Links {
		if err := e.addLink(link); err != nil {
			return nil, err
		}
	}
	for _, producer := range config.Producers {
		if err := e.addProducer(producer); err != nil {
			return nil, err
		}
	}
	for _, consumer := range config.Consumers {
		if err := e.addConsumer(consumer); err != nil {
			return nil, err
		}
	}
	for _, producer := range e.producers {
		e.installRoutes(producer.Prefix(), producer.node)
	}

	managers := make([]*mgmt.Thread, 0, len(e.nodeNames))
	for _, name := range e.nodeNames {
		managers = append(managers, e.nodes[name].Manager)
	}
	if err := e.registry.Register(mgmt.NewCollector(managers...)); err != nil {
		return nil, errors.Wrap(err, "unable to register collector")
	}
	return e, nil
}

func (e *Executor) String() string {
	return "Executor"
}

func (e *Executor) node(name string) (*Node, error) {
	node, ok := e.nodes[name]
	if !ok {
		return nil, errors.Wrapf(core.ErrUnknownNode, "%q", name)
	}
	return node, nil
}

func (e *Executor) addNode(name string) error {
	if _, ok := e.nodes[name]; ok {
		return errors.Errorf("duplicate node %q", name)
	}

	node := &Node{Name: name, Faces: face.NewTable()}
	forwarder, err := fw.NewForwarder(name, e.scheduler, node.Faces)
	if err != nil {
		return err
	}
	node.Forwarder = forwarder
	node.Faces.SetForwarder(forwarder)
	node.Manager = mgmt.MakeMgmtThread(forwarder, node.Faces, e.scheduler)

	e.nodes[name] = node
	e.nodeNames = append(e.nodeNames, name)
	core.LogDebug(e, "Created node ", name)
	return nil
}

// makeLinkService builds the paced link service of one link end. Data towards a non-local face always waits in the backlog.
func (e *Executor) makeLinkService(transport face.Transport, node *Node, config core.LinkConfig) (face.LinkService, error) {
	l, err := face.MakePacedLinkService(transport, face.MakePacedLinkServiceOptions(), node.Forwarder, config.BitRate, e.scheduler)
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (e *Executor) addLink(config core.LinkConfig) error {
	a, err := e.node(config.A)
	if err != nil {
		return errors.Wrap(err, "link")
	}
	b, err := e.node(config.B)
	if err != nil {
		return errors.Wrap(err, "link")
	}
	if a == b {
		return errors.Errorf("link from %q to itself", config.A)
	}

	cost := uint64(comparison.Max(config.Cost, 1))

	ta, tb := face.MakePointToPointTransports(e.scheduler, a.Name, b.Name, time.Duration(config.Delay)*time.Millisecond)
	la, err := e.makeLinkService(ta, a, config)
	if err != nil {
		return errors.Wrapf(err, "link %s-%s", a.Name, b.Name)
	}
	lb, err := e.makeLinkService(tb, b, config)
	if err != nil {
		return errors.Wrapf(err, "link %s-%s", a.Name, b.Name)
	}

	faceA := a.Faces.Add(la)
	faceB := b.Faces.Add(lb)
	la.Run()
	lb.Run()
	a.adjacencies = append(a.adjacencies, adjacency{neighbor: b.Name, faceID: faceA, cost: cost})
	b.adjacencies = append(b.adjacencies, adjacency{neighbor: a.Name, faceID: faceB, cost: cost})
	core.LogInfo(e, "Created link ", a.Name, " FaceID=", faceA, " <-> ", b.Name, " FaceID=", faceB,
		", BitRate=", config.BitRate, ", Delay=", config.Delay, "ms")
	return nil
}

func (e *Executor) addProducer(config core.ProducerConfig) error {
	node, err := e.node(config.Node)
	if err != nil {
		return errors.Wrap(err, "producer")
	}
	link, transport := face.RegisterInternalTransport(node.Faces, e.scheduler, "producer")
	producer, err := NewProducer(transport, node.Name, config)
	if err != nil {
		return err
	}
	node.Forwarder.Fib().InsertNextHop(producer.Prefix(), link.FaceID(), 0)
	e.producers = append(e.producers, producer)
	core.LogInfo(e, "Created producer ", producer.Prefix(), " on ", node.Name, " FaceID=", link.FaceID())
	return nil
}

func (e *Executor) addConsumer(config core.ConsumerConfig) error {
	node, err := e.node(config.Node)
	if err != nil {
		return errors.Wrap(err, "consumer")
	}
	link, transport := face.RegisterInternalTransport(node.Faces, e.scheduler, "consumer")
	consumer, err := NewConsumer(e.scheduler, transport, node.Name, config)
	if err != nil {
		return err
	}
	e.consumers = append(e.consumers, consumer)
	core.LogInfo(e, "Created consumer ", config.Prefix, " on ", node.Name, " FaceID=", link.FaceID())
	return nil
}

// Scheduler returns the scheduler driving the simulation.
func (e *Executor) Scheduler() *sim.Scheduler {
	return e.scheduler
}

// Node returns the node with the given name, or nil.
func (e *Executor) Node(name string) *Node {
	return e.nodes[name]
}

// Consumers returns the consumer applications in configuration order.
func (e *Executor) Consumers() []*Consumer {
	return e.consumers
}

// Producers returns the producer applications in configuration order.
func (e *Executor) Producers() []*Producer {
	return e.producers
}

// Registry returns the metrics registry of the simulation.
func (e *Executor) Registry() *prometheus.Registry {
	return e.registry
}

// Run starts the consumers, runs the simulation for the configured duration and reports the final state.
func (e *Executor) Run() (*Report, error) {
	duration := time.Duration(e.config.Duration) * time.Millisecond
	core.LogInfo(e, "Running ", len(e.nodes), " nodes for ", duration)

	for _, consumer := range e.consumers {
		consumer.Start()
	}
	e.scheduler.RunFor(duration)
	for _, consumer := range e.consumers {
		consumer.Stop()
	}

	core.LogInfo(e, "Simulation finished at ", e.scheduler.Elapsed(), ", ", e.scheduler.Pending(), " events pending")
	return e.report(duration)
}
