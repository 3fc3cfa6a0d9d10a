package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"userorders/internal/correlation"
)

const contentTypeNDJSON = "application/x-ndjson"

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleUserOrders streams one JSON object per line as records become
// available. The status line is only committed with the first record, so a
// failure before any record can still be reported as 502.
func (s *Server) handleUserOrders(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId query parameter is required"})
		return
	}
	requestID := correlation.Ensure(c.GetHeader(correlation.Header))
	c.Header(correlation.Header, requestID)

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()
	ctx = correlation.With(ctx, requestID)

	stream := s.svc.OrdersByUserID(ctx, userID, requestID)
	enc := json.NewEncoder(c.Writer)
	written := 0
	for rec := range stream.Items() {
		if written == 0 {
			c.Header("Content-Type", contentTypeNDJSON)
			c.Status(http.StatusOK)
		}
		if err := enc.Encode(rec); err != nil {
			s.log.Printf(ctx, "Client for user %s went away: %v", userID, err)
			cancel()
			break
		}
		c.Writer.Flush()
		written++
	}

	err := stream.Err()
	switch {
	case err != nil && written == 0 && c.Request.Context().Err() == nil:
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "requestId": requestID})
	case err != nil:
		s.log.Printf(ctx, "Stream for user %s ended after %d records: %v", userID, written, err)
	case written == 0:
		c.Header("Content-Type", contentTypeNDJSON)
		c.Status(http.StatusOK)
		c.Writer.WriteHeaderNow()
	}
}
