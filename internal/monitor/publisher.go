package monitor

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/nats-io/nats.go"

	"github.com/twilightcoders/cads/internal/cads"
)

// progressEvent is the small JSON payload published per progress tick.
type progressEvent struct {
	Completed     uint64  `json:"completed"`
	TotalEstimate uint64  `json:"total_estimate"`
	SolutionCount int     `json:"solution_count"`
	Rate          float64 `json:"rate"`
}

// solutionEvent is published once per solution found.
type solutionEvent struct {
	FieldIndices []uint8  `json:"field_indices"`
	Operations   []string `json:"operations"`
	Constant     uint64   `json:"constant"`
	ChecksumSize int      `json:"checksum_size"`
}

// Publisher sends progress/solution events to a NATS subject,
// fire-and-forget: an unreachable NATS server never blocks or fails the
// search. Publish errors are logged once per Publisher and then
// swallowed.
type Publisher struct {
	conn    *nats.Conn
	subject string

	warnOnce sync.Once
}

// NewPublisher connects to url with NATS's default reconnect behavior.
func NewPublisher(url, subject string) (*Publisher, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, err
	}
	return &Publisher{conn: conn, subject: subject}, nil
}

// PublishProgress sends one progress snapshot as a JSON event.
func (p *Publisher) PublishProgress(s cads.Snapshot) {
	p.publish(p.subject+".progress", progressEvent{
		Completed:     s.Completed,
		TotalEstimate: s.TotalEstimate,
		SolutionCount: s.SolutionCount,
		Rate:          s.SmoothedRate,
	})
}

// PublishSolution sends one solution-found event as a JSON event.
func (p *Publisher) PublishSolution(sol cads.Solution) {
	names := make([]string, len(sol.Operations))
	for i, op := range sol.Operations {
		names[i] = op.Name()
	}
	p.publish(p.subject+".solution", solutionEvent{
		FieldIndices: sol.FieldIndices,
		Operations:   names,
		Constant:     sol.Constant,
		ChecksumSize: sol.ChecksumSize,
	})
}

func (p *Publisher) publish(subject string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		p.logOnce(err)
		return
	}
	if err := p.conn.Publish(subject, data); err != nil {
		p.logOnce(err)
	}
}

func (p *Publisher) logOnce(err error) {
	p.warnOnce.Do(func() {
		log.Printf("monitor: nats publish failed, further publish errors suppressed: %v", err)
	})
}

// Close closes the NATS connection.
func (p *Publisher) Close() {
	p.conn.Close()
}
