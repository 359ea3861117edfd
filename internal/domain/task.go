package domain

import "strings"

// TaskQueueItem is a pending task description. The item at index 0 of the
// queue is the active task.
type TaskQueueItem struct {
	ID   string `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`
}

// NewTaskQueueItem creates a queue item with a fresh id.
func NewTaskQueueItem(text string) (TaskQueueItem, error) {
	text, err := validateTaskText(text)
	if err != nil {
		return TaskQueueItem{}, err
	}
	return TaskQueueItem{ID: generateID(), Text: text}, nil
}

// validateTaskText trims the text and ensures it is not empty.
func validateTaskText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyTaskText
	}
	return text, nil
}

// Rename replaces the item text, keeping the old text on error.
func (t *TaskQueueItem) Rename(text string) error {
	text, err := validateTaskText(text)
	if err != nil {
		return err
	}
	t.Text = text
	return nil
}
