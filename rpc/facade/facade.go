// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2026 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package facade

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/hashledger/account"
	"github.com/bitmark-inc/hashledger/factory"
	"github.com/bitmark-inc/hashledger/fault"
	"github.com/bitmark-inc/hashledger/ledger"
	"github.com/bitmark-inc/hashledger/rpc/ratelimit"
)

const (
	rateLimitLedger = 200
	rateBurstLedger = 100

	// limit for event fetches
	MaximumEventCount = 100
)

// Ledger - type for RPC calls
type Ledger struct {
	Log         *logger.L
	Limiter     *rate.Limiter
	Factory     *factory.Factory
	Registry    *ledger.Registry
	AllowDeploy bool
}

// New - create the RPC service
func New(log *logger.L, f *factory.Factory, registry *ledger.Registry, allowDeploy bool) *Ledger {
	return &Ledger{
		Log:         log,
		Limiter:     rate.NewLimiter(rateLimitLedger, rateBurstLedger),
		Factory:     f,
		Registry:    registry,
		AllowDeploy: allowDeploy,
	}
}

// ---

// Submit - execute a signed transaction on the facade it names
func (l *Ledger) Submit(arguments *ledger.SignedTransaction, reply *ledger.Receipt) error {
	if err := ratelimit.Limit(l.Limiter); nil != err {
		return err
	}
	if nil == arguments || nil == arguments.Call {
		return fault.ErrMissingParameters
	}

	f, err := l.Factory.Get(arguments.Facade)
	if nil != err {
		return err
	}

	l.Log.Infof("submit: %s  facade: %s", arguments.Call.Method, arguments.Facade)

	receipt, err := f.Submit(arguments)
	if nil != err {
		l.Log.Debugf("submit: %s  error: %s", arguments.Call.Method, err)
		return err
	}
	*reply = *receipt
	return nil
}

// ---

// QueryArguments - a read only call on a facade
type QueryArguments struct {
	Facade account.Address `json:"facade"`
	Call   *ledger.Call    `json:"call"`
}

// Query - execute a read only call
func (l *Ledger) Query(arguments *QueryArguments, reply *ledger.Result) error {
	if err := ratelimit.Limit(l.Limiter); nil != err {
		return err
	}
	if nil == arguments || nil == arguments.Call {
		return fault.ErrMissingParameters
	}

	f, err := l.Factory.Get(arguments.Facade)
	if nil != err {
		return err
	}

	result, err := f.Query(arguments.Call)
	if nil != err {
		return err
	}
	*reply = *result
	return nil
}

// ---

// DeployArguments - arguments for a new facade
type DeployArguments struct {
	Logic account.Address `json:"logic"`
	Owner account.Address `json:"owner"`
	Delay uint64          `json:"delay,string"`
}

// DeployReply - the new facade and its deployment event
type DeployReply struct {
	Facade account.Address `json:"facade"`
	Event  *ledger.Event   `json:"event"`
}

// Deploy - create a new facade if this node allows it
func (l *Ledger) Deploy(arguments *DeployArguments, reply *DeployReply) error {
	if err := ratelimit.Limit(l.Limiter); nil != err {
		return err
	}
	if !l.AllowDeploy {
		return fault.ErrDeployDisabled
	}
	if nil == arguments {
		return fault.ErrMissingParameters
	}

	f, event, err := l.Factory.Deploy(arguments.Logic, arguments.Owner, arguments.Delay)
	if nil != err {
		return err
	}
	reply.Facade = f.Address()
	reply.Event = event
	return nil
}

// ---

// EventsArguments - a range of events of one facade
type EventsArguments struct {
	Facade account.Address `json:"facade"`
	Start  uint64          `json:"start,string"`
	Count  int             `json:"count"`
}

// EventsReply - events and where to continue from
type EventsReply struct {
	Events    []ledger.Event `json:"events"`
	NextStart uint64         `json:"nextStart,string"`
}

// Events - committed events from a sequence number
func (l *Ledger) Events(arguments *EventsArguments, reply *EventsReply) error {
	if nil == arguments {
		return fault.ErrMissingParameters
	}
	if err := ratelimit.LimitN(l.Limiter, arguments.Count, MaximumEventCount); nil != err {
		return err
	}

	f, err := l.Factory.Get(arguments.Facade)
	if nil != err {
		return err
	}

	events, err := f.Events(arguments.Start, arguments.Count)
	if nil != err {
		return err
	}
	reply.Events = events
	reply.NextStart = arguments.Start
	if n := len(events); n > 0 {
		reply.NextStart = events[n-1].Sequence + 1
	}
	return nil
}

// ---

// FacadesArguments - empty arguments for facade list
type FacadesArguments struct{}

// FacadesReply - every deployment on this node
type FacadesReply struct {
	Facades []factory.Deployment `json:"facades"`
}

// Facades - list the deployed facades
func (l *Ledger) Facades(_ *FacadesArguments, reply *FacadesReply) error {
	if err := ratelimit.Limit(l.Limiter); nil != err {
		return err
	}
	deployments, err := l.Factory.List()
	if nil != err {
		return err
	}
	reply.Facades = deployments
	return nil
}

// ---

// ModulesArguments - empty arguments for module list
type ModulesArguments struct{}

// ModulesReply - registered logic modules
type ModulesReply struct {
	Modules []ledger.Implementation `json:"modules"`
}

// Modules - list the registered logic modules
func (l *Ledger) Modules(_ *ModulesArguments, reply *ModulesReply) error {
	if err := ratelimit.Limit(l.Limiter); nil != err {
		return err
	}
	for _, m := range l.Registry.List() {
		reply.Modules = append(reply.Modules, ledger.Implementation{
			Address: m.Address(),
			Name:    m.Name(),
			Version: m.Version(),
			Layout:  m.Layout(),
		})
	}
	return nil
}
