// Copyright © 2025-2026 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package router

import (
	"context"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	amqp "github.com/rabbitmq/amqp091-go"
	log "github.com/sirupsen/logrus"

	"github.com/go-core-stack/alerter/alert"
	"github.com/go-core-stack/alerter/errors"
)

// MetaData identifies the monitored source a payload refers to
type MetaData struct {
	SourceName    string  `json:"source_name"`
	SourceID      string  `json:"source_id"`
	ParentID      string  `json:"parent_id"`
	LastMonitored float64 `json:"last_monitored"`
}

// Metric is a single observation reported by a monitor
type Metric struct {
	Current  *float64 `json:"current"`
	Previous *float64 `json:"previous"`
}

// Result is the payload shape of a successful monitoring round
type Result struct {
	Meta MetaData          `json:"meta_data"`
	Data map[string]Metric `json:"data"`
}

// Failure is the payload shape of a failed monitoring round,
// the code is expected to be one of the registry values
type Failure struct {
	Meta    MetaData `json:"meta_data"`
	Code    int      `json:"code"`
	Message string   `json:"message"`
}

// Payload is the envelope monitors publish on the queue,
// carrying either a result or a failure
type Payload struct {
	Result *Result  `json:"result"`
	Error  *Failure `json:"error"`
}

// Sink receives classified alerts from the router
type Sink interface {
	// Raise delivers one alert under its allocated key, returning
	// an error causes the router to retry the alert later. The key
	// is stable across retries, so sinks can use it to deduplicate
	Raise(ctx context.Context, key *alert.Key, a *alert.Alert) error
}

// entry pairs an alert with its allocated store key while it
// waits in the dispatch pipeline
type entry struct {
	key  *alert.Key
	data *alert.Alert

	// per sink delivery status, sinks that already accepted the
	// alert are skipped when a failed entry is retried
	done []bool
}

// Router consumes raw monitor output, classifies it into alerts
// tagged with registry codes and dispatches them to the sinks
type Router struct {
	ctx        context.Context
	sinks      []Sink
	pipe       *pipeline
	registered map[errors.ErrCode]bool
}

// New creates a router dispatching to the given sinks, the
// dispatch pipeline runs until the context is closed
func New(ctx context.Context, sinks ...Sink) *Router {
	r := &Router{
		ctx:        ctx,
		sinks:      sinks,
		registered: map[errors.ErrCode]bool{},
	}
	for _, code := range errors.Registry {
		r.registered[code] = true
	}
	r.pipe = newPipeline(ctx, r.dispatchEntry)
	return r
}

func (r *Router) dispatchEntry(k any) error {
	e, ok := k.(*entry)
	if !ok {
		// this ideally should never happen
		log.Panicln("Wrong data type of pipeline entry received")
	}
	for i, s := range r.sinks {
		if e.done[i] {
			// this sink already accepted the alert on an earlier
			// attempt, do not deliver it again
			continue
		}
		if err := s.Raise(r.ctx, e.key, e.data); err != nil {
			log.Errorf("failed to deliver alert %s to sink: %s", e.key.ID, err)
			return err
		}
		e.done[i] = true
	}
	return nil
}

// Raise queues one alert for dispatch to all sinks
func (r *Router) Raise(a *alert.Alert) error {
	return r.pipe.Enqueue(&entry{
		key:  alert.NewKey(),
		data: a,
		done: make([]bool, len(r.sinks)),
	})
}

// Classify maps one raw payload into zero or more alerts.
// Classification never fails, payloads that cannot be understood
// are reported as alerts themselves.
func (r *Router) Classify(body []byte) []*alert.Alert {
	payload := Payload{}
	if err := jsoniter.Unmarshal(body, &payload); err != nil {
		return []*alert.Alert{
			alert.New(errors.JSONDecodeFailed,
				fmt.Sprintf("cannot decode monitor output: %s", err),
				alert.SeverityError, ""),
		}
	}

	if payload.Error != nil {
		return r.classifyFailure(payload.Error)
	}
	if payload.Result != nil {
		return r.classifyResult(payload.Result)
	}

	return []*alert.Alert{
		alert.New(errors.UnexpectedData,
			"monitor output carries neither result nor error",
			alert.SeverityError, ""),
	}
}

// classifyFailure maps a reported failure code to its registry
// member, anything outside the registry is surfaced as
// unexpected data rather than being forwarded blindly
func (r *Router) classifyFailure(f *Failure) []*alert.Alert {
	code := errors.ErrCode(f.Code)
	if !r.registered[code] {
		a := alert.New(errors.UnexpectedData,
			fmt.Sprintf("unrecognized failure code %d reported by %s", f.Code, f.Meta.SourceName),
			alert.SeverityError, f.Meta.SourceID)
		a.ParentID = f.Meta.ParentID
		return []*alert.Alert{a}
	}
	msg := f.Message
	if msg == "" {
		msg = fmt.Sprintf("monitor %s reported failure %d", f.Meta.SourceName, f.Code)
	}
	a := alert.New(code, msg, alert.SeverityError, f.Meta.SourceID)
	a.ParentID = f.Meta.ParentID
	return []*alert.Alert{a}
}

// classifyResult inspects a successful monitoring round for
// missing or absent metrics
func (r *Router) classifyResult(res *Result) []*alert.Alert {
	if len(res.Data) == 0 {
		a := alert.New(errors.NoMetricsGiven,
			fmt.Sprintf("monitor %s reported no metrics", res.Meta.SourceName),
			alert.SeverityWarning, res.Meta.SourceID)
		a.ParentID = res.Meta.ParentID
		return []*alert.Alert{a}
	}

	alerts := []*alert.Alert{}
	for name, metric := range res.Data {
		if metric.Current == nil {
			a := alert.New(errors.MetricNotFound,
				fmt.Sprintf("metric %s missing from output of %s", name, res.Meta.SourceName),
				alert.SeverityWarning, res.Meta.SourceID)
			a.ParentID = res.Meta.ParentID
			alerts = append(alerts, a)
		}
	}
	return alerts
}

// HandleDelivery classifies one queue delivery and queues the
// resulting alerts for dispatch
func (r *Router) HandleDelivery(d amqp.Delivery) {
	alerts := r.Classify(d.Body)
	for _, a := range alerts {
		if err := r.Raise(a); err != nil {
			log.Errorf("failed to queue alert for dispatch: %s", err)
		}
	}

	// acknowledge after the alerts are placed on the pipeline, so
	// a crash before this point leads to redelivery instead of a
	// silently lost payload
	if err := d.Ack(false); err != nil {
		log.Errorf("failed to acknowledge delivery: %s", err)
	}
}

// Run consumes deliveries until the channel closes or the router
// context is done
func (r *Router) Run(msgQ <-chan amqp.Delivery) {
	for {
		select {
		case <-r.ctx.Done():
			return
		case d, ok := <-msgQ:
			if !ok {
				return
			}
			r.HandleDelivery(d)
		}
	}
}
