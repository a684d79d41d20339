package scheduler

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const TaskDashboardRefresh = "dashboard.refresh"

type DashboardRefreshPayload struct {
	RequestedAt time.Time `json:"requestedAt"`
	Reason      string    `json:"reason"`
}

func NewDashboardRefreshTask(payload DashboardRefreshPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDashboardRefresh, data), nil
}

func ParseDashboardRefreshPayload(task *asynq.Task) (DashboardRefreshPayload, error) {
	var payload DashboardRefreshPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return DashboardRefreshPayload{}, err
	}
	return payload, nil
}
