// Package mcp exposes the session store over the Model Context
// Protocol so MCP clients can query and log sessions.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/blakemt/pufflog/internal/core/db"
	"github.com/blakemt/pufflog/internal/core/models"
	"github.com/blakemt/pufflog/internal/core/storage"
	"github.com/blakemt/pufflog/pkg/tracklog"
)

// QuerySessionsArgs defines arguments for the query_sessions tool
type QuerySessionsArgs struct {
	Vessel   string `json:"vessel,omitempty"`
	Strain   string `json:"strain,omitempty"`
	Location string `json:"location,omitempty"`
	Since    string `json:"since,omitempty"`
	Until    string `json:"until,omitempty"`
	Limit    int    `json:"limit,omitempty"`
}

// LogSessionArgs defines arguments for the log_session tool
type LogSessionArgs struct {
	Vessel   string `json:"vessel"`
	Strain   string `json:"strain,omitempty"`
	Quantity string `json:"quantity,omitempty"`
	Location string `json:"location,omitempty"`
	When     string `json:"when,omitempty"`
	Comments string `json:"comments,omitempty"`
}

// SessionSummary is a session in tool output.
type SessionSummary struct {
	ID       string `json:"id"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Vessel   string `json:"vessel"`
	Strain   string `json:"strain,omitempty"`
	Quantity string `json:"quantity"`
	Location string `json:"location,omitempty"`
	WhoWith  string `json:"who_with,omitempty"`
	Comments string `json:"comments,omitempty"`
}

// StartServer starts the MCP server over stdio.
func StartServer(dbPath string) error {
	database, err := db.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := database.Close(); closeErr != nil {
			log.Printf("Error closing database: %v", closeErr)
		}
	}()

	s := server.NewMCPServer(
		"pufflog",
		"1.0.0",
	)

	queryTool := mcp.NewTool("query_sessions",
		mcp.WithDescription("Query logged consumption sessions with optional filters, newest first."),
		mcp.WithString("vessel",
			mcp.Description("Filter by vessel category (Bong, Joint, Pen, ...)")),
		mcp.WithString("strain",
			mcp.Description("Filter by strain name substring")),
		mcp.WithString("location",
			mcp.Description("Filter by location substring")),
		mcp.WithString("since",
			mcp.Description("Only sessions on or after this date (yyyy-mm-dd)")),
		mcp.WithString("until",
			mcp.Description("Only sessions on or before this date (yyyy-mm-dd)")),
		mcp.WithNumber("limit",
			mcp.Description("Max sessions to return (default: 20)")),
	)
	s.AddTool(queryTool, makeQuerySessionsHandler(database))

	statsTool := mcp.NewTool("get_stats",
		mcp.WithDescription("Get aggregate statistics: totals, streaks, vessel/strain/location breakdowns, monthly counts."),
	)
	s.AddTool(statsTool, makeGetStatsHandler(database))

	logTool := mcp.NewTool("log_session",
		mcp.WithDescription("Record a new consumption session. The vessel is free text and is classified into a category; quantity accepts size words, hits_<N>, or a number."),
		mcp.WithString("vessel",
			mcp.Required(),
			mcp.Description("Vessel free text, e.g. 'bong' or 'pen_blue'")),
		mcp.WithString("strain",
			mcp.Description("Strain name")),
		mcp.WithString("quantity",
			mcp.Description("Quantity text (size word, hits_<N>, or number)")),
		mcp.WithString("location",
			mcp.Description("Location name")),
		mcp.WithString("when",
			mcp.Description("Timestamp in 'M/D/YY h:mm AM/PM' format (default: now)")),
		mcp.WithString("comments",
			mcp.Description("Comments")),
	)
	s.AddTool(logTool, makeLogSessionHandler(database))

	return server.ServeStdio(s)
}

func makeQuerySessionsHandler(store storage.Store) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args QuerySessionsArgs
		argsBytes, _ := json.Marshal(request.Params.Arguments)
		if err := json.Unmarshal(argsBytes, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		limit := args.Limit
		if limit == 0 {
			limit = 20
		}

		filter := storage.SessionFilter{
			Vessel:   args.Vessel,
			Strain:   args.Strain,
			Location: args.Location,
			Limit:    limit,
		}
		if args.Since != "" {
			t, err := time.Parse("2006-01-02", args.Since)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("bad since date: %v", err)), nil
			}
			filter.Since = t
		}
		if args.Until != "" {
			t, err := time.Parse("2006-01-02", args.Until)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("bad until date: %v", err)), nil
			}
			filter.Until = t
		}

		sessions, err := store.ListSessions(ctx, filter)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("query failed: %v", err)), nil
		}

		results := make([]SessionSummary, 0, len(sessions))
		for _, s := range sessions {
			results = append(results, SessionSummary{
				ID:       s.ID,
				Date:     s.Date,
				Time:     s.Time,
				Vessel:   s.Vessel,
				Strain:   s.StrainName,
				Quantity: tracklog.FormatQuantity(s.Quantity),
				Location: s.Location,
				WhoWith:  s.WhoWith,
				Comments: s.Comments,
			})
		}

		resultJSON, err := json.Marshal(map[string]interface{}{
			"sessions": results,
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal results: %v", err)), nil
		}
		return mcp.NewToolResultText(string(resultJSON)), nil
	}
}

func makeGetStatsHandler(store storage.Store) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		stats, err := store.Stats(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("stats failed: %v", err)), nil
		}

		resultJSON, err := json.Marshal(stats)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal stats: %v", err)), nil
		}
		return mcp.NewToolResultText(string(resultJSON)), nil
	}
}

func makeLogSessionHandler(store storage.Store) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args LogSessionArgs
		argsBytes, _ := json.Marshal(request.Params.Arguments)
		if err := json.Unmarshal(argsBytes, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if args.Vessel == "" {
			return mcp.NewToolResultError("vessel is required"), nil
		}

		now := time.Now()
		date, clock := now.Format("2006-01-02"), now.Format("15:04")
		if args.When != "" {
			date, clock = tracklog.ParseDateTime(args.When, now)
		}

		category := tracklog.ClassifyVessel(args.Vessel)
		s := &models.Session{
			ID:          models.NormalizeID(""),
			Date:        date,
			Time:        clock,
			Location:    args.Location,
			WhoWith:     "Alone",
			Vessel:      string(category),
			MyVessel:    true,
			MySubstance: true,
			StrainName:  args.Strain,
			Quantity:    tracklog.ParseQuantityText(args.Quantity, category),
			Comments:    args.Comments,
		}

		if args.Location != "" {
			if _, err := store.UpsertLocation(ctx, &models.Location{Name: args.Location}); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("failed to store location: %v", err)), nil
			}
		}

		if err := store.SaveSession(ctx, s); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to save session: %v", err)), nil
		}

		resultJSON, _ := json.Marshal(map[string]string{
			"id":       s.ID,
			"vessel":   s.Vessel,
			"quantity": tracklog.FormatQuantity(s.Quantity),
		})
		return mcp.NewToolResultText(string(resultJSON)), nil
	}
}
