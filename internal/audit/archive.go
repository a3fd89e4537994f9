package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dtroode/studypartner-auth/internal/logger"
	"github.com/dtroode/studypartner-auth/internal/model"
)

// ErrBufferFull is returned when the archive queue cannot take more events.
var ErrBufferFull = errors.New("audit archive buffer full")

const (
	archivePrefix = "audit"
	uploadTimeout = 10 * time.Second
	drainTimeout  = 5 * time.Second
	jsonMediaType = "application/json"
)

var _ model.AuditSink = (*ArchiveSink)(nil)

// ArchiveSink uploads events as JSON objects from a background worker.
// Record never blocks; events are dropped when the queue is full.
type ArchiveSink struct {
	storage model.Storage
	events  chan model.AuditEvent
	logger  *logger.Logger
}

func NewArchiveSink(storage model.Storage, bufferSize int, logger *logger.Logger) *ArchiveSink {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &ArchiveSink{
		storage: storage,
		events:  make(chan model.AuditEvent, bufferSize),
		logger:  logger,
	}
}

func (s *ArchiveSink) Record(_ context.Context, e model.AuditEvent) error {
	e = prepare(e)

	select {
	case s.events <- e:
		return nil
	default:
		s.logger.Warn("Audit: archive buffer full, dropping event",
			"id", e.ID,
			"type", e.Type)
		return ErrBufferFull
	}
}

// Run uploads queued events until ctx is done, then drains what is left.
func (s *ArchiveSink) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			s.drain()
			return
		case e := <-s.events:
			s.upload(ctx, e)
		}
	}
}

func (s *ArchiveSink) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()

	for {
		select {
		case e := <-s.events:
			s.upload(ctx, e)
		default:
			return
		}
	}
}

func (s *ArchiveSink) upload(ctx context.Context, e model.AuditEvent) {
	body, err := json.Marshal(e)
	if err != nil {
		s.logger.Error("Audit: failed to marshal event",
			"id", e.ID,
			"error", err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	key := ObjectKey(e)
	if err := s.storage.Upload(ctx, key, bytes.NewReader(body), int64(len(body)), jsonMediaType); err != nil {
		s.logger.Error("Audit: failed to archive event",
			"id", e.ID,
			"key", key,
			"error", err.Error())
		return
	}

	s.logger.Debug("Audit: event archived",
		"id", e.ID,
		"key", key)
}

// ObjectKey returns the archive key of an event, partitioned by day.
func ObjectKey(e model.AuditEvent) string {
	t := e.OccurredAt.UTC()
	return fmt.Sprintf("%s/%04d/%02d/%02d/%s.json", archivePrefix, t.Year(), t.Month(), t.Day(), e.ID)
}
