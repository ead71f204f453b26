// Package audit records significant actions as append-only
// [models.AuditLogEntry] values.
//
// A [Recorder] queues entries in memory and a single background goroutine
// writes them to a [Sink] in batches, either when a batch fills up or when
// the flush interval elapses. Record never blocks on the sink: when the
// queue is full the entry is written synchronously instead of being
// dropped. On shutdown the queue is drained and flushed.
package audit
