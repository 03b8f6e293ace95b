package command

import (
	"fmt"
	"time"

	"sysai-relay/agent/internal/logger"
)

// Execute runs one command and always returns a Result; errors are folded
// into a failed result rather than propagated. Unknown types fail with a
// descriptive output instead of being treated as a protocol error.
func Execute(agentID string, env Envelope) Result {
	res := Result{
		AgentID:   agentID,
		CommandID: env.ID,
		Timestamp: time.Now().UTC(),
	}

	h, ok := Get(env.Type)
	if !ok {
		res.Output = fmt.Sprintf("Unknown command type: %s", env.Type)
		logger.Errorf("unknown command type=%q id=%s", env.Type, env.ID)
		return res
	}

	arg, err := h.DecodeArg(env)
	if err != nil {
		res.Output = fmt.Sprintf("Invalid payload for %s: %v", env.Type, err)
		return res
	}

	logger.Infof("executing command id=%s type=%s", env.ID, env.Type)
	out, err := h.Run(arg)
	res.Output = out
	if err != nil {
		if out == "" {
			res.Output = err.Error()
		} else {
			res.Output = fmt.Sprintf("%s: %v", out, err)
		}
		return res
	}
	res.Success = true
	return res
}
