package mcp

import (
	"context"
	"sort"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/nshapes/internal/config"
	"github.com/peterkuimelis/nshapes/internal/enemy"
	nsnet "github.com/peterkuimelis/nshapes/internal/net"
)

// activeSession is the singleton round session (one per stdio process).
var activeSession *RoundSession

// gameConfig is the configuration new rounds start from, set by main.
var gameConfig = config.Default()

// SetConfig sets the configuration new rounds start from.
func SetConfig(cfg config.Config) {
	gameConfig = cfg
}

// RegisterTools adds all round tools to the MCP server.
func RegisterTools(s *server.MCPServer) {
	s.AddTool(listEnemiesTool(), handleListEnemies)
	s.AddTool(startRoundTool(), handleStartRound)
	s.AddTool(selectCardsTool(), handleSelectCards)
	s.AddTool(advanceTimeTool(), handleAdvanceTime)
	s.AddTool(useHintTool(), handleUseHint)
	s.AddTool(getRoundStateTool(), handleGetRoundState)
	s.AddTool(endRoundTool(), handleEndRound)
}

// --- Tool definitions ---

func listEnemiesTool() mcp.Tool {
	return mcp.NewTool("list_enemies",
		mcp.WithDescription("List the enemy catalog with tiers, effects and defeat conditions. Read-only."),
		mcp.WithNumber("tier", mcp.Description("Only list enemies of this tier (1-4). Omit for all.")),
	)
}

func startRoundTool() mcp.Tool {
	return mcp.NewTool("start_round",
		mcp.WithDescription("Deal a new round of the shape-matching game against an enemy. Returns the board and round state. "+
			"Time does not pass on its own: call advance_time to move the clock."),
		mcp.WithString("enemy", mcp.Description("Enemy name from list_enemies. Omit to draw a random enemy for the stage.")),
		mcp.WithNumber("stage", mcp.Description("Run stage (1-indexed), picks the tier of a random enemy. Defaults to 1.")),
	)
}

func selectCardsTool() mcp.Tool {
	return mcp.NewTool("select_cards",
		mcp.WithDescription("Submit three cards as a set. A set has every attribute (shape, color, number, shading) all the same or all different across the three cards."),
		mcp.WithString("indices", mcp.Required(), mcp.Description("Three 0-based board positions separated by spaces (e.g. '0 4 7')")),
	)
}

func advanceTimeTool() mcp.Tool {
	return mcp.NewTool("advance_time",
		mcp.WithDescription("Move the round clock forward. Enemy timed effects, bombs and countdowns fire as time passes."),
		mcp.WithNumber("ms", mcp.Required(), mcp.Description("Milliseconds to advance")),
	)
}

func useHintTool() mcp.Tool {
	return mcp.NewTool("use_hint",
		mcp.WithDescription("Spend a hint to reveal the positions of a valid set. Some enemies disable hints."),
	)
}

func getRoundStateTool() mcp.Tool {
	return mcp.NewTool("get_round_state",
		mcp.WithDescription("Get the board, round state and accumulated events without changing anything. Read-only."),
	)
}

func endRoundTool() mcp.Tool {
	return mcp.NewTool("end_round",
		mcp.WithDescription("Abandon the current round so a new one can start."),
	)
}

// --- Tool handlers ---

func handleListEnemies(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tier := request.GetInt("tier", 0)
	reg := enemy.DefaultRegistry()

	var views []nsnet.EnemyView
	for _, name := range reg.Names() {
		e, _ := reg.Lookup(name)
		if e.Placeholder || (tier != 0 && e.Tier != tier) {
			continue
		}
		views = append(views, nsnet.EnemyViewOf(len(views), e.Describe()))
	}
	sort.SliceStable(views, func(i, j int) bool { return views[i].Tier < views[j].Tier })
	for i := range views {
		views[i].Index = i
	}
	if views == nil {
		views = []nsnet.EnemyView{}
	}
	return mcp.NewToolResultText(respondJSON(views)), nil
}

func handleStartRound(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession != nil && !activeSession.round.Over() {
		return mcp.NewToolResultError("A round is already running. Finish it or call end_round first."), nil
	}

	name := request.GetString("enemy", "")
	stage := request.GetInt("stage", 1)

	sess, err := NewRoundSession(gameConfig, name, stage)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start round: %v", err), nil
	}
	activeSession = sess

	return mcp.NewToolResultText(respondJSON(sess.response())), nil
}

func handleSelectCards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession == nil {
		return mcp.NewToolResultError("No round is running. Use start_round first."), nil
	}

	indices, err := parseIndices(request.GetArguments()["indices"])
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	resp, err := activeSession.Select(indices)
	if err != nil {
		return mcp.NewToolResultErrorf("Selection rejected: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handleAdvanceTime(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession == nil {
		return mcp.NewToolResultError("No round is running. Use start_round first."), nil
	}

	resp, err := activeSession.Advance(request.GetInt("ms", 0))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handleUseHint(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession == nil {
		return mcp.NewToolResultError("No round is running. Use start_round first."), nil
	}

	resp, err := activeSession.Hint()
	if err != nil {
		return mcp.NewToolResultErrorf("No hint: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handleGetRoundState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession == nil {
		return mcp.NewToolResultError("No round is running. Use start_round first."), nil
	}
	return mcp.NewToolResultText(respondJSON(activeSession.State())), nil
}

func handleEndRound(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession == nil {
		return mcp.NewToolResultError("No round is running."), nil
	}
	resp := activeSession.End()
	activeSession = nil
	return mcp.NewToolResultText(respondJSON(resp)), nil
}
