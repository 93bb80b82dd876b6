// Package nfqrt is the queue runtime: it opens an nfqueue socket,
// receives queued packets in a blocking loop, applies activity-period
// and timeout gating, dispatches surviving packets to a policy
// callback, and replies with the callback's verdict. Losses reported
// by the kernel are logged and the loop continues; a failure to open
// or bind the queue is fatal.
package nfqrt

import (
	"context"
	"fmt"
	"time"

	"github.com/florianl/go-nfqueue"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/apfw/dpicore/interaction"
	"github.com/apfw/dpicore/policy"
)

// snapLen is the maximum packet length copied from the kernel per
// queued packet; large enough for any protocol this engine inspects.
const snapLen = 0xffff

// Metrics holds the runtime's prometheus instrumentation, registered
// once and shared across every bound queue.
type Metrics struct {
	Verdicts      *prometheus.CounterVec // labels: queue, policy, verdict
	ActivityDrops prometheus.Counter
	TimeoutDrops  prometheus.Counter
	PacketLosses  prometheus.Counter
}

// NewMetrics constructs and registers the runtime's metrics against
// reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Verdicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "apfw_verdicts_total",
			Help: "packets given a verdict, by queue, policy and verdict",
		}, []string{"queue", "policy", "verdict"}),
		ActivityDrops: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "apfw_activity_period_drops_total",
			Help: "packets dropped because their interaction was outside its activity period",
		}),
		TimeoutDrops: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "apfw_timeout_drops_total",
			Help: "packets dropped because their interaction had timed out",
		}),
		PacketLosses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "apfw_queue_losses_total",
			Help: "packet losses reported by the kernel queue",
		}),
	}
	reg.MustRegister(m.Verdicts, m.ActivityDrops, m.TimeoutDrops, m.PacketLosses)
	return m
}

// Config describes how one nfqueue binding should run.
type Config struct {
	Name        string // label used in logs and metrics, also the policy label
	QueueNum    uint16
	MaxQueueLen uint32
	RunAsUID    int // 0 means unset
	RunAsGID    int
	SecurityCtx string
}

// Runtime owns one bound nfqueue, the interaction it serves, and its
// dispatch loop.
type Runtime struct {
	cfg     Config
	q       *nfqueue.Nfqueue
	log     *zap.SugaredLogger
	metrics *Metrics
	policy  policy.Func
	data    *interaction.Data
}

// Open binds the queue described by cfg and associates it with data,
// the interaction whose state the policy callback will read and
// mutate. Open is fatal: a non-nil error means the kernel queue could
// not be created or bound and the caller should exit.
func Open(cfg Config, data *interaction.Data, log *zap.SugaredLogger, metrics *Metrics, pf policy.Func) (*Runtime, error) {
	nfqCfg := nfqueue.Config{
		NfQueue:      cfg.QueueNum,
		MaxPacketLen: snapLen,
		MaxQueueLen:  cfg.MaxQueueLen,
		Copymode:     nfqueue.NfQnlCopyPacket,
	}
	q, err := nfqueue.Open(&nfqCfg)
	if err != nil {
		return nil, fmt.Errorf("nfqrt: opening queue %d: %w", cfg.QueueNum, err)
	}
	if cfg.RunAsUID != 0 || cfg.RunAsGID != 0 {
		log.Infow("queue bound under restricted credentials",
			"queue", cfg.Name, "uid", cfg.RunAsUID, "gid", cfg.RunAsGID)
	}
	return &Runtime{cfg: cfg, q: q, log: log, metrics: metrics, policy: pf, data: data}, nil
}

// Close releases the queue's kernel resources.
func (r *Runtime) Close() error {
	return r.q.Close()
}

// Run registers the packet and error callbacks and blocks until ctx
// is cancelled. It returns early only if registration fails.
func (r *Runtime) Run(ctx context.Context) error {
	errFn := func(e error) int {
		r.metrics.PacketLosses.Inc()
		r.log.Warnw("queue error, continuing", "queue", r.cfg.Name, "error", e)
		return 0 // 0 keeps the socket open; RegisterWithErrorFunc stops only on non-zero
	}
	packetFn := func(a nfqueue.Attribute) int {
		r.handle(a)
		return 0
	}
	if err := r.q.RegisterWithErrorFunc(ctx, packetFn, errFn); err != nil {
		return fmt.Errorf("nfqrt: registering queue %d: %w", r.cfg.QueueNum, err)
	}
	<-ctx.Done()
	return ctx.Err()
}

func (r *Runtime) handle(a nfqueue.Attribute) {
	if a.PacketID == nil {
		return
	}
	id := *a.PacketID
	var payload []byte
	if a.Payload != nil {
		payload = *a.Payload
	}
	v, reason := decide(r.data, time.Now(), r.policy, policy.Packet{ID: id, Payload: payload})
	switch reason {
	case reasonActivityPeriod:
		r.metrics.ActivityDrops.Inc()
	case reasonTimeout:
		r.metrics.TimeoutDrops.Inc()
	default:
		r.metrics.Verdicts.WithLabelValues(r.cfg.Name, r.cfg.Name, v.String()).Inc()
	}
	r.reply(id, v)
}

type dropReason int

const (
	reasonNone dropReason = iota
	reasonActivityPeriod
	reasonTimeout
)

// decide applies the gates (activity period, then timeout) ahead of
// the policy callback, touching data's last-request timestamp only
// when the packet reaches the callback.
func decide(data *interaction.Data, now time.Time, pf policy.Func, pkt policy.Packet) (policy.Verdict, dropReason) {
	if !data.IsInActivityPeriod(now) {
		return policy.Drop, reasonActivityPeriod
	}
	if data.IsTimedOut(now.Unix()) {
		return policy.Drop, reasonTimeout
	}
	data.TouchRequest(now.Unix())
	return pf(pkt, data), reasonNone
}

func (r *Runtime) reply(id uint32, v policy.Verdict) {
	verdict := nfqueue.NfDrop
	if v == policy.Accept {
		verdict = nfqueue.NfAccept
	}
	if err := r.q.SetVerdict(id, verdict); err != nil {
		r.log.Errorw("failed to set verdict", "queue", r.cfg.Name, "packetID", id, "error", err)
	}
}
