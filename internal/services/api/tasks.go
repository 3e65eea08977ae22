package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/riordanpawley/daybook/internal/domain"
)

// ListTasks fetches the tasks scheduled on date (YYYY-MM-DD)
func (c *Client) ListTasks(ctx context.Context, date string) ([]domain.Task, error) {
	c.logger.Debug("fetching tasks", "date", date)

	data, err := c.do(ctx, call{
		op:     "list",
		method: http.MethodGet,
		path:   "/api/tasks",
		query:  url.Values{"date": {date}},
		auth:   true,
	})
	if err != nil {
		return nil, err
	}

	tasks, err := decodeList[domain.Task]("list", data)
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		tasks[i] = tasks[i].Normalize()
	}

	c.logger.Debug("fetched tasks", "date", date, "count", len(tasks))
	return tasks, nil
}

// Analytics fetches the total/completed/pending counters for date
func (c *Client) Analytics(ctx context.Context, date string) (domain.Analytics, error) {
	c.logger.Debug("fetching analytics", "date", date)

	data, err := c.do(ctx, call{
		op:     "analytics",
		method: http.MethodGet,
		path:   "/api/tasks/analytics",
		query:  url.Values{"date": {date}},
		auth:   true,
	})
	if err != nil {
		return domain.Analytics{}, err
	}

	var a domain.Analytics
	if err := decodeObject("analytics", data, &a); err != nil {
		return domain.Analytics{}, err
	}
	return a, nil
}

// PendingDates lists every date that still has unfinished tasks
func (c *Client) PendingDates(ctx context.Context) ([]string, error) {
	c.logger.Debug("fetching pending dates")

	data, err := c.do(ctx, call{
		op:     "pending-dates",
		method: http.MethodGet,
		path:   "/api/tasks/pending-dates",
		auth:   true,
	})
	if err != nil {
		return nil, err
	}

	return decodeList[string]("pending-dates", data)
}

// CreateTask adds a task. The backend assigns the id.
func (c *Client) CreateTask(ctx context.Context, task domain.Task) (domain.Task, error) {
	c.logger.Debug("creating task", "title", task.Title, "date", task.TaskDate)

	data, err := c.do(ctx, call{
		op:     "create",
		method: http.MethodPost,
		path:   "/api/tasks",
		body:   task,
		auth:   true,
	})
	if err != nil {
		return domain.Task{}, err
	}

	var created domain.Task
	if err := decodeObject("create", data, &created); err != nil {
		return domain.Task{}, err
	}

	c.logger.Debug("task created", "id", created.ID)
	return created.Normalize(), nil
}

// UpdateTask replaces the whole record stored under task.ID
func (c *Client) UpdateTask(ctx context.Context, task domain.Task) (domain.Task, error) {
	c.logger.Debug("updating task", "id", task.ID)

	data, err := c.do(ctx, call{
		op:     "update",
		taskID: task.ID,
		method: http.MethodPut,
		path:   taskPath(task.ID),
		body:   task,
		auth:   true,
	})
	if err != nil {
		return domain.Task{}, err
	}

	var updated domain.Task
	if err := decodeObject("update", data, &updated); err != nil {
		return domain.Task{}, err
	}

	c.logger.Debug("task updated", "id", task.ID)
	return updated.Normalize(), nil
}

// DeleteTask removes a task
func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	c.logger.Debug("deleting task", "id", id)

	_, err := c.do(ctx, call{
		op:     "delete",
		taskID: id,
		method: http.MethodDelete,
		path:   taskPath(id),
		auth:   true,
	})
	if err != nil {
		return err
	}

	c.logger.Debug("task deleted", "id", id)
	return nil
}
