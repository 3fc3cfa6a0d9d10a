// Package requests serves aggregation requests arriving on a Kafka topic: every
// message names a user, every resulting record is published to a result topic.
package requests

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"userorders/internal/correlation"
)

// Worker consumes requests, runs the aggregation for each one and publishes
// the records. Requests are handled one at a time so that offsets are
// committed in order; each aggregation is itself concurrent.
type Worker struct {
	msgs MessageIterator
	svc  OrdersService
	pub  RecordPublisher
	log  *correlation.Logger
}

func NewWorker(msgs MessageIterator, svc OrdersService, pub RecordPublisher, logger *correlation.Logger) *Worker {
	return &Worker{msgs: msgs, svc: svc, pub: pub, log: logger}
}

// Run handles messages until the message channel is closed. A message that
// cannot be decoded is logged and committed so it does not block the
// partition. A failed aggregation is logged and committed as well: the order
// source is the one failing and redelivery would not help.
func (w *Worker) Run(ctx context.Context) {
	for msg := range w.msgs.Messages() {
		req, err := decode(msg)
		if err != nil {
			w.log.Printf(ctx, "Skipping message at offset %d: %v", msg.Offset, err)
		} else {
			reqCtx := correlation.With(ctx, req.RequestID)
			published, err := w.handle(reqCtx, req)
			if err != nil {
				w.log.Printf(reqCtx, "Request for user %s failed after %d records: %v", req.UserID, published, err)
			} else {
				w.log.Printf(reqCtx, "Request for user %s published %d records", req.UserID, published)
			}
		}

		if ctx.Err() != nil {
			// shutting down: leave the offset for redelivery
			return
		}
		if err := w.msgs.CommitOffset(ctx, msg); err != nil {
			w.log.Printf(ctx, "Failed to commit offset %d: %v", msg.Offset, err)
		}
	}
}

func (w *Worker) handle(ctx context.Context, req Request) (int, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	stream := w.svc.OrdersByUserID(ctx, req.UserID, req.RequestID)
	headers := map[string]string{correlation.Header: req.RequestID}
	published := 0
	for rec := range stream.Items() {
		if err := w.pub.PublishJSON(ctx, rec.OrderNumber, headers, rec); err != nil {
			cancel()
			_ = stream.Err()
			return published, fmt.Errorf("publish order %s: %w", rec.OrderNumber, err)
		}
		published++
	}
	return published, stream.Err()
}

func decode(msg kafka.Message) (Request, error) {
	var req Request
	if err := json.Unmarshal(msg.Value, &req); err != nil {
		return Request{}, fmt.Errorf("decode request: %w", err)
	}
	if req.UserID == "" {
		return Request{}, fmt.Errorf("decode request: userId missing")
	}
	for _, h := range msg.Headers {
		if h.Key == correlation.Header {
			req.RequestID = string(h.Value)
		}
	}
	req.RequestID = correlation.Ensure(req.RequestID)
	return req, nil
}
