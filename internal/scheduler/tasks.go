package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskRenormalizeContacts = "contacts.renormalize"

// renormalizeTaskID deduplicates renormalization passes while one is
// pending, scheduled for retry or running.
const renormalizeTaskID = "contacts-renormalize"

type RenormalizeContactsPayload struct {
	RequestedBy string `json:"requestedBy"`
	BatchSize   int    `json:"batchSize,omitempty"`
}

func NewRenormalizeContactsTask(payload RenormalizeContactsPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskRenormalizeContacts, data), nil
}

func ParseRenormalizeContactsPayload(task *asynq.Task) (RenormalizeContactsPayload, error) {
	var payload RenormalizeContactsPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return RenormalizeContactsPayload{}, err
	}
	return payload, nil
}
