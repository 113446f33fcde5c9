// Package mcp provides the Model Context Protocol server integration for the
// focus task board.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/focus/pkg/app"
	"tableflip.dev/focus/pkg/task"
)

// Service adapts app.Service operations to MCP-friendly shapes.
type Service struct {
	App *app.Service
}

// ErrTaskNotFound is returned when today's board has no task with the id.
var ErrTaskNotFound = errors.New("task not found in today's board")

// TaskDTO is a transport-friendly projection of a task.
type TaskDTO struct {
	ID            string `json:"id"`
	Text          string `json:"text"`
	Category      string `json:"category"`
	Priority      string `json:"priority"`
	PriorityLabel string `json:"priorityLabel"`
	Completed     bool   `json:"completed"`
	CompletedISO  string `json:"completedAt,omitempty"`
	CreatedISO    string `json:"createdAt"`
	Date          string `json:"date"`
	CarriedFrom   string `json:"carriedFrom,omitempty"`
}

// BoardDTO lists today's tasks grouped by priority in board order.
type BoardDTO struct {
	Date    string        `json:"date"`
	Buckets []BoardBucket `json:"buckets"`
	Open    int           `json:"open"`
	Done    int           `json:"done"`
}

// BoardBucket is one priority list with its suggested capacity.
type BoardBucket struct {
	Priority string    `json:"priority"`
	Label    string    `json:"label"`
	Capacity int       `json:"capacity"`
	Tasks    []TaskDTO `json:"tasks"`
}

// ArchiveDTO is an archive entry projection.
type ArchiveDTO struct {
	Date        string    `json:"date"`
	ArchivedISO string    `json:"archivedAt"`
	Tasks       []TaskDTO `json:"tasks"`
}

// NewService wraps svc.
func NewService(svc *app.Service) *Service {
	return &Service{App: svc}
}

func (s *Service) ready() error {
	if s.App == nil {
		return errors.New("task service is not configured")
	}
	return nil
}

// AddTaskOptions captures the parameters used to create a task.
type AddTaskOptions struct {
	Priority string
	Text     string
	Category string
}

// AddTask creates a task on today's board.
func (s *Service) AddTask(ctx context.Context, opts AddTaskOptions) (*TaskDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(opts.Text) == "" {
		return nil, errors.New("text is required")
	}
	p, err := task.ParsePriority(opts.Priority)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", app.ErrInvalidPriority, err)
	}
	t, err := s.App.AddTask(ctx, p, opts.Text, opts.Category)
	if err != nil {
		return nil, err
	}
	dto := toDTO(*t)
	return &dto, nil
}

// UpdateTask rewrites the text and/or category of a task.
func (s *Service) UpdateTask(ctx context.Context, id string, text, category *string) (*BoardDTO, error) {
	if text == nil && category == nil {
		return nil, errors.New("text or category is required")
	}
	return s.mutate(ctx, id, func(ctx context.Context) (bool, error) {
		return s.App.UpdateTask(ctx, id, task.Patch{Text: text, Category: category})
	})
}

// CompleteTask marks a task done.
func (s *Service) CompleteTask(ctx context.Context, id string) (*BoardDTO, error) {
	return s.mutate(ctx, id, func(ctx context.Context) (bool, error) {
		return s.App.CompleteTask(ctx, id)
	})
}

// UncompleteTask reopens a task.
func (s *Service) UncompleteTask(ctx context.Context, id string) (*BoardDTO, error) {
	return s.mutate(ctx, id, func(ctx context.Context) (bool, error) {
		return s.App.UncompleteTask(ctx, id)
	})
}

// DeleteTask removes a task.
func (s *Service) DeleteTask(ctx context.Context, id string) (*BoardDTO, error) {
	return s.mutate(ctx, id, func(ctx context.Context) (bool, error) {
		return s.App.DeleteTask(ctx, id)
	})
}

func (s *Service) mutate(ctx context.Context, id string, fn func(context.Context) (bool, error)) (*BoardDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, errors.New("id is required")
	}
	found, err := fn(ctx)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	return s.Today(ctx)
}

// Today returns today's board after carry-over.
func (s *Service) Today(ctx context.Context) (*BoardDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	b, err := s.App.TodaysTasks(ctx)
	if err != nil {
		return nil, err
	}
	board := &BoardDTO{Date: s.App.Today(), Buckets: make([]BoardBucket, 0, len(b))}
	for _, p := range b.Keys() {
		bucket := BoardBucket{
			Priority: string(p),
			Label:    p.Label(),
			Capacity: p.Capacity(),
			Tasks:    toDTOs(b[p]),
		}
		for _, t := range b[p] {
			if t.Completed {
				board.Done++
			} else {
				board.Open++
			}
		}
		board.Buckets = append(board.Buckets, bucket)
	}
	return board, nil
}

// History returns archive entries with start <= date < end.
func (s *Service) History(ctx context.Context, start, end string) ([]ArchiveDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	entries, err := s.App.TaskHistory(ctx, start, end)
	if err != nil {
		return nil, err
	}
	out := make([]ArchiveDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, toArchiveDTO(e))
	}
	return out, nil
}

// Archive moves the completed tasks of date (today when empty) to history.
// It returns nil when there was nothing to archive.
func (s *Service) Archive(ctx context.Context, date string) (*ArchiveDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	e, err := s.App.ArchiveCompletedTasks(ctx, date)
	if err != nil || e == nil {
		return nil, err
	}
	dto := toArchiveDTO(*e)
	return &dto, nil
}

func toDTOs(tasks []task.Task) []TaskDTO {
	out := make([]TaskDTO, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toDTO(t))
	}
	return out
}

func toDTO(t task.Task) TaskDTO {
	dto := TaskDTO{
		ID:            t.ID,
		Text:          t.Text,
		Category:      t.Category,
		Priority:      string(t.Priority),
		PriorityLabel: t.Priority.Label(),
		Completed:     t.Completed,
		CreatedISO:    task.FormatTime(t.CreatedAt.Time),
		Date:          t.Date,
		CarriedFrom:   t.CarriedFrom,
	}
	if at := t.CompletionTime(); !at.IsZero() {
		dto.CompletedISO = task.FormatTime(at)
	}
	return dto
}

func toArchiveDTO(e task.ArchiveEntry) ArchiveDTO {
	return ArchiveDTO{
		Date:        e.Date,
		ArchivedISO: task.FormatTime(e.ArchivedAt.Time),
		Tasks:       toDTOs(e.Tasks),
	}
}
