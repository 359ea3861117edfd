// Package mcp provides the MCP (Model Context Protocol) server implementation.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/xvierd/timerdeck/internal/domain"
	"github.com/xvierd/timerdeck/internal/modes"
	"github.com/xvierd/timerdeck/internal/ports"
)

// Server implements the MCP server using mark3labs/mcp-go.
type Server struct {
	server        *server.MCPServer
	stateProvider ports.MCPStateProvider
	ctx           context.Context
	cancel        context.CancelFunc
}

// NewServer creates a new MCP server instance.
func NewServer(stateProvider ports.MCPStateProvider, version string) *Server {
	s := &Server{
		stateProvider: stateProvider,
	}

	s.server = server.NewMCPServer(
		"timerdeck",
		version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithLogging(),
	)

	s.registerTools()

	return s
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	s.server.AddTool(
		mcp.NewTool(
			"get_state",
			mcp.WithDescription("Get the current timer state, active task, queue, kitchen timers and focus stats"),
		),
		s.handleGetState,
	)

	s.server.AddTool(
		mcp.NewTool("start", mcp.WithDescription("Start the timer in the current mode")),
		s.handleStart,
	)

	s.server.AddTool(
		mcp.NewTool("pause", mcp.WithDescription("Pause the running timer")),
		s.handlePause,
	)

	s.server.AddTool(
		mcp.NewTool("reset", mcp.WithDescription("Stop the timer and reload the current mode's duration")),
		s.handleReset,
	)

	s.server.AddTool(
		mcp.NewTool(
			"switch_mode",
			mcp.WithDescription("Switch to another mode. Stops the timer and resets it to the new mode's duration"),
			mcp.WithString(
				"mode",
				mcp.Required(),
				mcp.Description("Mode name, e.g. focus, short, long, flowtime, breath, grounding, microbreak, interval, stopwatch, countdown, deadline, grill"),
			),
		),
		s.handleSwitchMode,
	)

	s.server.AddTool(
		mcp.NewTool(
			"set_duration",
			mcp.WithDescription("Set the current mode's duration while stopped"),
			mcp.WithString(
				"duration",
				mcp.Required(),
				mcp.Description("\"MM:SS\" or whole minutes, e.g. \"50\" or \"12:30\""),
			),
		),
		s.handleSetDuration,
	)

	s.server.AddTool(
		mcp.NewTool(
			"complete_task",
			mcp.WithDescription("Complete the active task: log the elapsed focus time, pop it from the queue and start the break"),
		),
		s.handleCompleteTask,
	)

	s.server.AddTool(
		mcp.NewTool(
			"enqueue_task",
			mcp.WithDescription("Append a task to the queue. The first task is the active one"),
			mcp.WithString("text", mcp.Required(), mcp.Description("Task description")),
		),
		s.handleEnqueueTask,
	)

	s.server.AddTool(
		mcp.NewTool("list_queue", mcp.WithDescription("List the task queue, active task first")),
		s.handleListQueue,
	)

	s.server.AddTool(
		mcp.NewTool(
			"list_history",
			mcp.WithDescription("List logged focus sessions, most recent first"),
			mcp.WithNumber("limit", mcp.Description("Maximum number of entries (default: all)")),
		),
		s.handleListHistory,
	)

	s.server.AddTool(
		mcp.NewTool(
			"add_history",
			mcp.WithDescription("Log a focus session manually"),
			mcp.WithString("label", mcp.Description("Task label (default: \"Focus session\")")),
			mcp.WithNumber("minutes", mcp.Required(), mcp.Description("Focus minutes, must be positive")),
			mcp.WithNumber("interruptions", mcp.Description("Interruption count (default: current session)")),
			mcp.WithNumber("paused_seconds", mcp.Description("Paused seconds (default: current session)")),
		),
		s.handleAddHistory,
	)

	s.server.AddTool(
		mcp.NewTool("get_stats", mcp.WithDescription("Get today, this week and all-time focus totals with goal progress")),
		s.handleGetStats,
	)

	s.server.AddTool(
		mcp.NewTool(
			"create_timer",
			mcp.WithDescription("Create and start a named kitchen timer"),
			mcp.WithString("name", mcp.Description("Timer name (default: \"Timer N\")")),
			mcp.WithNumber("seconds", mcp.Required(), mcp.Description("Timer length in seconds")),
		),
		s.handleCreateTimer,
	)

	s.server.AddTool(
		mcp.NewTool(
			"toggle_timer",
			mcp.WithDescription("Start or pause a kitchen timer. A finished timer restarts from its full length"),
			mcp.WithNumber("id", mcp.Required(), mcp.Description("Timer id from list_timers")),
		),
		s.handleToggleTimer,
	)

	s.server.AddTool(
		mcp.NewTool("list_timers", mcp.WithDescription("List kitchen timers")),
		s.handleListTimers,
	)
}

// Start serves MCP requests over stdio until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)
	defer s.cancel()

	stdio := server.NewStdioServer(s.server)
	return stdio.Listen(s.ctx, os.Stdin, os.Stdout)
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

// IsRunning returns true if the server is active.
func (s *Server) IsRunning() bool {
	if s.ctx == nil {
		return false
	}
	return s.ctx.Err() == nil
}

// Ensure Server implements ports.MCPHandler.
var _ ports.MCPHandler = (*Server)(nil)

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func sessionData(state *domain.CurrentState) map[string]interface{} {
	session := state.Session
	return map[string]interface{}{
		"mode":             string(session.Mode),
		"label":            state.View.Label,
		"category":         string(session.Category),
		"running":          session.Running,
		"display":          state.View.Remaining,
		"time_left":        session.TimeLeft,
		"session_duration": session.SessionDuration,
		"elapsed_flowtime": session.ElapsedFlowtime,
		"progress":         state.View.Percent,
		"interruptions":    session.Interruptions,
		"message":          state.View.Message,
		"phase":            state.View.Phase,
		"cycle":            state.View.Cycle,
	}
}

func entryData(e domain.HistoryEntry) map[string]interface{} {
	data := map[string]interface{}{
		"id":             e.ID,
		"task":           e.Task,
		"duration":       e.DurationMinutes,
		"date":           e.Time().Format(time.RFC3339),
		"interruptions":  e.Interruptions,
		"paused_seconds": e.PausedSeconds,
	}
	if e.Mode != "" {
		data["mode"] = string(e.Mode)
	}
	if e.Branch != "" {
		data["branch"] = e.Branch
	}
	return data
}

func timerData(t domain.MultiTimer) map[string]interface{} {
	return map[string]interface{}{
		"id":            t.ID,
		"name":          t.Name,
		"total_seconds": t.TotalSeconds,
		"time_left":     t.TimeLeft,
		"display":       domain.FormatClock(t.TimeLeft),
		"running":       t.Running,
		"finished":      t.Finished(),
	}
}

func queueData(items []domain.TaskQueueItem) []map[string]interface{} {
	list := make([]map[string]interface{}, 0, len(items))
	for i, item := range items {
		list = append(list, map[string]interface{}{
			"index":  i,
			"id":     item.ID,
			"text":   item.Text,
			"active": i == 0,
		})
	}
	return list
}

// stateResult replies with the session after a control tool ran.
func (s *Server) stateResult(ctx context.Context) (*mcp.CallToolResult, error) {
	state, err := s.stateProvider.GetCurrentState(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current state: %w", err)
	}
	return jsonResult(sessionData(state))
}

// handleGetState handles the get_state tool.
func (s *Server) handleGetState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	state, err := s.stateProvider.GetCurrentState(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current state: %w", err)
	}

	timers := make([]map[string]interface{}, 0, len(state.Timers))
	for _, t := range state.Timers {
		timers = append(timers, timerData(t))
	}

	result := map[string]interface{}{
		"session":     sessionData(state),
		"active_task": nil,
		"queue":       queueData(state.Queue),
		"timers":      timers,
		"today_stats": map[string]interface{}{
			"focus_minutes":  state.Stats.TodayMinutes,
			"sessions":       state.Stats.TodayCount,
			"daily_progress": state.Daily,
		},
		"focus_count": state.Flow.FocusCount,
	}
	if state.ActiveTask != nil {
		result["active_task"] = state.ActiveTask.Text
	}

	return jsonResult(result)
}

// handleStart handles the start tool.
func (s *Server) handleStart(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.stateProvider.StartTimer(ctx); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to start timer: %v", err)), nil
	}
	return s.stateResult(ctx)
}

// handlePause handles the pause tool.
func (s *Server) handlePause(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.stateProvider.PauseTimer(ctx); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to pause timer: %v", err)), nil
	}
	return s.stateResult(ctx)
}

// handleReset handles the reset tool.
func (s *Server) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.stateProvider.ResetTimer(ctx); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to reset timer: %v", err)), nil
	}
	return s.stateResult(ctx)
}

// handleSwitchMode handles the switch_mode tool.
func (s *Server) handleSwitchMode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("mode")
	if err != nil {
		return mcp.NewToolResultError("mode is required: " + err.Error()), nil
	}
	mode, err := modes.Resolve(name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.stateProvider.SwitchMode(ctx, mode); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to switch mode: %v", err)), nil
	}
	return s.stateResult(ctx)
}

// handleSetDuration handles the set_duration tool.
func (s *Server) handleSetDuration(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("duration")
	if err != nil {
		// Bare numbers arrive as JSON numbers.
		minutes := request.GetFloat("duration", 0)
		if minutes <= 0 {
			return mcp.NewToolResultError("duration is required: " + err.Error()), nil
		}
		text = strconv.Itoa(int(minutes))
	}
	if err := s.stateProvider.SetDuration(ctx, text); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to set duration: %v", err)), nil
	}
	return s.stateResult(ctx)
}

// handleCompleteTask handles the complete_task tool.
func (s *Server) handleCompleteTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entry, err := s.stateProvider.CompleteTask(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to complete task: %v", err)), nil
	}

	result := map[string]interface{}{
		"logged": entry != nil,
	}
	if entry != nil {
		result["entry"] = entryData(*entry)
	}
	return jsonResult(result)
}

// handleEnqueueTask handles the enqueue_task tool.
func (s *Server) handleEnqueueTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text is required: " + err.Error()), nil
	}
	item, err := s.stateProvider.EnqueueTask(ctx, text)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to enqueue task: %v", err)), nil
	}
	return jsonResult(map[string]interface{}{
		"id":   item.ID,
		"text": item.Text,
	})
}

// handleListQueue handles the list_queue tool.
func (s *Server) handleListQueue(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	items, err := s.stateProvider.ListQueue(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list queue: %w", err)
	}
	return jsonResult(map[string]interface{}{
		"tasks":       queueData(items),
		"total_count": len(items),
	})
}

// handleListHistory handles the list_history tool.
func (s *Server) handleListHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := int(request.GetFloat("limit", 0))

	entries, err := s.stateProvider.ListHistory(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}

	list := make([]map[string]interface{}, 0, len(entries))
	total := 0
	for _, e := range entries {
		list = append(list, entryData(e))
		total += e.DurationMinutes
	}
	return jsonResult(map[string]interface{}{
		"entries":       list,
		"total_count":   len(list),
		"total_minutes": total,
	})
}

// handleAddHistory handles the add_history tool.
func (s *Server) handleAddHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	minutes, err := request.RequireFloat("minutes")
	if err != nil {
		return mcp.NewToolResultError("minutes is required: " + err.Error()), nil
	}
	var override domain.HistoryCounters
	if n, ok := optionalInt(request, "interruptions"); ok {
		override.Interruptions = &n
	}
	if n, ok := optionalInt(request, "paused_seconds"); ok {
		override.PausedSeconds = &n
	}
	entry, err := s.stateProvider.AddHistory(ctx, request.GetString("label", ""), int(minutes), override)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to add history entry: %v", err)), nil
	}
	return jsonResult(entryData(entry))
}

// optionalInt reports a numeric argument only when the caller sent it.
func optionalInt(request mcp.CallToolRequest, key string) (int, bool) {
	if _, ok := request.GetArguments()[key]; !ok {
		return 0, false
	}
	return request.GetInt(key, 0), true
}

// handleGetStats handles the get_stats tool.
func (s *Server) handleGetStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	state, err := s.stateProvider.GetCurrentState(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current state: %w", err)
	}
	stats := state.Stats
	return jsonResult(map[string]interface{}{
		"today": map[string]interface{}{
			"minutes":  stats.TodayMinutes,
			"sessions": stats.TodayCount,
		},
		"week": map[string]interface{}{
			"minutes":  stats.WeekMinutes,
			"sessions": stats.WeekCount,
		},
		"total": map[string]interface{}{
			"minutes":  stats.TotalMinutes,
			"sessions": stats.TotalCount,
		},
		"goals": map[string]interface{}{
			"daily_hours":     state.Goals.DailyHours,
			"weekly_hours":    state.Goals.WeeklyHours,
			"daily_progress":  state.Daily,
			"weekly_progress": state.Weekly,
		},
	})
}

// handleCreateTimer handles the create_timer tool.
func (s *Server) handleCreateTimer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	seconds, err := request.RequireFloat("seconds")
	if err != nil {
		return mcp.NewToolResultError("seconds is required: " + err.Error()), nil
	}
	timer, err := s.stateProvider.CreateTimer(ctx, request.GetString("name", ""), int(seconds))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create timer: %v", err)), nil
	}
	return jsonResult(timerData(timer))
}

// handleToggleTimer handles the toggle_timer tool.
func (s *Server) handleToggleTimer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := int64(request.GetFloat("id", 0))
	if id == 0 {
		// Ids are millisecond timestamps; clients may send them as strings.
		parsed, err := strconv.ParseInt(request.GetString("id", ""), 10, 64)
		if err != nil {
			return mcp.NewToolResultError("id is required"), nil
		}
		id = parsed
	}
	timer, err := s.stateProvider.ToggleTimer(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to toggle timer: %v", err)), nil
	}
	return jsonResult(timerData(timer))
}

// handleListTimers handles the list_timers tool.
func (s *Server) handleListTimers(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	timers, err := s.stateProvider.ListTimers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list timers: %w", err)
	}
	list := make([]map[string]interface{}, 0, len(timers))
	for _, t := range timers {
		list = append(list, timerData(t))
	}
	return jsonResult(map[string]interface{}{
		"timers":      list,
		"total_count": len(list),
	})
}
