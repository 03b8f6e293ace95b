package worker

import (
	"sync"
	"time"

	"sysai-relay/agent/internal/client"
	"sysai-relay/agent/internal/command"
	"sysai-relay/agent/internal/logger"
	"sysai-relay/agent/internal/telemetry"
)

// Worker is the agent's polling loop: push telemetry, pull queued commands,
// execute them in delivery order, report results, sleep, repeat. All remote
// I/O is best effort; only Stop ends the loop.
type Worker struct {
	client   *client.Client
	agentID  string
	interval time.Duration

	collect func() telemetry.Snapshot
	execute func(agentID string, env command.Envelope) command.Result

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

func New(c *client.Client, agentID string, interval time.Duration) *Worker {
	return &Worker{
		client:   c,
		agentID:  agentID,
		interval: interval,
		collect:  telemetry.Collect,
		execute:  command.Execute,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Run blocks until Stop is called. A failed exchange with the relay only
// costs this cycle's push or an empty command list, never the loop.
func (w *Worker) Run() {
	defer close(w.done)
	for {
		w.cycle()
		if !w.sleep() {
			return
		}
	}
}

func (w *Worker) cycle() {
	snap := w.collect()
	if err := w.client.Update(snap); err != nil {
		logger.Warnf("telemetry push failed: %v", err)
	}

	cmds, err := w.client.PollCommands()
	if err != nil {
		logger.Warnf("command poll failed: %v", err)
		return
	}

	// queue order is authoritative; execute in the order received
	for _, env := range cmds {
		res := w.execute(w.agentID, env)
		if err := w.client.PostResult(res); err != nil {
			logger.Warnf("result post failed for command %s: %v", env.ID, err)
		}
	}
}

// sleep waits out the poll interval in 1s slices so Stop is honored promptly.
func (w *Worker) sleep() bool {
	deadline := time.Now().Add(w.interval)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return true
		}
		step := time.Second
		if remaining < step {
			step = remaining
		}
		select {
		case <-w.stop:
			return false
		case <-time.After(step):
		}
	}
}

// Stop requests loop termination and waits for the current cycle to finish.
func (w *Worker) Stop() {
	w.stopOnce.Do(func() { close(w.stop) })
	<-w.done
}
