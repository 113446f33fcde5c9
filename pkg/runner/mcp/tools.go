package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/focus/pkg/task"
)

func priorityEnum() []string {
	ps := task.Priorities()
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, string(p))
	}
	return out
}

func registerTools(srv *server.MCPServer, svc *Service) {
	registerAddTaskTool(srv, svc)
	registerUpdateTaskTool(srv, svc)
	registerIDTool(srv, "complete_task", "Mark a task on today's board as completed.", svc.CompleteTask)
	registerIDTool(srv, "uncomplete_task", "Reopen a completed task on today's board.", svc.UncompleteTask)
	registerIDTool(srv, "delete_task", "Remove a task from today's board.", svc.DeleteTask)
	registerListTodayTool(srv, svc)
	registerHistoryTool(srv, svc)
	registerArchiveTool(srv, svc)
}

func registerAddTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_task",
		mcp.WithDescription("Add a task to today's priority board."),
		mcp.WithString("priority",
			mcp.Required(),
			mcp.Description("Priority bucket for the task."),
			mcp.Enum(priorityEnum()...),
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("What needs doing."),
		),
		mcp.WithString("category",
			mcp.Description("Optional category, defaults to General."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Priority string `json:"priority"`
			Text     string `json:"text"`
			Category string `json:"category"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, err := svc.AddTask(ctx, AddTaskOptions{
			Priority: args.Priority,
			Text:     args.Text,
			Category: args.Category,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerUpdateTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"update_task",
		mcp.WithDescription("Change the text or category of a task on today's board."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task identifier to modify."),
		),
		mcp.WithString("text",
			mcp.Description("New task text."),
		),
		mcp.WithString("category",
			mcp.Description("New category."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		var args struct {
			Text     *string `json:"text"`
			Category *string `json:"category"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		board, err := svc.UpdateTask(ctx, id, args.Text, args.Category)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(board)
	})
}

func registerIDTool(srv *server.MCPServer, name, description string, fn func(context.Context, string) (*BoardDTO, error)) {
	tool := mcp.NewTool(
		name,
		mcp.WithDescription(description),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task identifier."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		board, err := fn(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(board)
	})
}

func registerListTodayTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_today",
		mcp.WithDescription("List today's board, carrying over unfinished work from earlier days."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		board, err := svc.Today(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(board)
	})
}

func registerHistoryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"task_history",
		mcp.WithDescription("List archived completed tasks with start <= date < end."),
		mcp.WithString("start",
			mcp.Required(),
			mcp.Description("First day to include, YYYY-MM-DD."),
		),
		mcp.WithString("end",
			mcp.Required(),
			mcp.Description("Day after the last day to include, YYYY-MM-DD."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start, err := request.RequireString("start")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		end, err := request.RequireString("end")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		entries, err := svc.History(ctx, strings.TrimSpace(start), strings.TrimSpace(end))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"start":   start,
			"end":     end,
			"entries": entries,
			"count":   len(entries),
		})
	})
}

func registerArchiveTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"archive_tasks",
		mcp.WithDescription("Move the completed tasks of a day into the archive."),
		mcp.WithString("date",
			mcp.Description("Day to archive, YYYY-MM-DD. Defaults to today."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		date := strings.TrimSpace(request.GetString("date", ""))
		entry, err := svc.Archive(ctx, date)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"archived": entry != nil,
			"entry":    entry,
		})
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
