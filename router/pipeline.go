// Copyright © 2025-2026 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package router

import (
	"context"
	"time"
)

// Since the dispatch pipeline will be used across go routines, it is
// quite possible to have producers and consumers to work at
// different speeds with a possibility of having backlogs or causing
// holdups, thus by default use a buffer length of 1024 for every
// pipeline to ensure producers can just work seemlessly under
// regular scenarios
// Note: this is expected to be consumed only locally
const bufferLength = 1024

// delay before retrying an entry whose dispatch failed, keeping
// the pipeline from spinning on a broken sink
const retryDelay = 5 * time.Second

type dispatchFunc func(k any) error

// pipeline of alerts waiting to be dispatched to the sinks
// every queued entry is unique, so unlike a reconciliation queue
// there is nothing to compress here, a buffered channel suffices
type pipeline struct {
	// context under which the pipeline is working
	// where the context closure means the pipeline is stopped
	ctx context.Context

	// pipeline is built on a buffered channel internally
	pChannel chan any

	// dispatch function to trigger while processing an entry in the
	// pipeline
	dispatch dispatchFunc
}

func (p *pipeline) Enqueue(k any) error {
	// do not allow if the context is already closed
	if p.ctx.Err() != nil {
		return p.ctx.Err()
	}

	p.pChannel <- k

	return nil
}

// initialize and start the pipeline processing
// internal function and should not be exposed outside
func (p *pipeline) initialize() {
	for {
		select {
		case <-p.ctx.Done():
			// pipeline processing is stopped return from here
			return
		case k := <-p.pChannel:
			err := p.dispatch(k)
			if err != nil {
				// there was an error while dispatching the entry
				// requeue it after the retry delay for processing
				// later, avoiding a hot loop on a broken sink
				go func(k1 any) {
					time.Sleep(retryDelay)
					_ = p.Enqueue(k1)
				}(k)
			}
		}
	}
}

// creates a new pipeline for queuing up and dispatching alerts
// provided by the classifier
func newPipeline(ctx context.Context, fn dispatchFunc) *pipeline {
	p := &pipeline{
		ctx:      ctx,
		pChannel: make(chan any, bufferLength),
		dispatch: fn,
	}

	// initialize the pipeline before passing it externally
	// to start the core functionality
	go p.initialize()
	return p
}
