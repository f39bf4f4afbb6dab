package main

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"footscout/internal/config"
	"footscout/internal/derive"
	"footscout/internal/model"
	"footscout/internal/radar"
	"footscout/internal/rank"
	"footscout/internal/store"
)

type TopPlayersArgs struct {
	N                int                `json:"n,omitempty" jsonschema:"How many players to return (default 10)"`
	Features         []string           `json:"features,omitempty" jsonschema:"Composite features to score on (equal weights)"`
	Weights          map[string]float64 `json:"weights,omitempty" jsonschema:"Feature weights (overrides equal weighting)"`
	NormalizeWeights bool               `json:"normalize_weights,omitempty" jsonschema:"Rescale weights to sum to 1"`
	Positions        []string           `json:"positions,omitempty" jsonschema:"Positions to include (e.g. FW, MF)"`
	Leagues          []string           `json:"leagues,omitempty" jsonschema:"Leagues to include"`
	MinAge           *int               `json:"min_age,omitempty" jsonschema:"Minimum age"`
	MaxAge           *int               `json:"max_age,omitempty" jsonschema:"Maximum age"`
	MinMinutes       *int               `json:"min_minutes,omitempty" jsonschema:"Minimum minutes played"`
	MaxMinutes       *int               `json:"max_minutes,omitempty" jsonschema:"Maximum minutes played"`
	MinMarketValue   *float64           `json:"min_market_value,omitempty" jsonschema:"Minimum market value in M€ (players with unknown value always pass)"`
	MaxMarketValue   *float64           `json:"max_market_value,omitempty" jsonschema:"Maximum market value in M€ (players with unknown value always pass)"`
}

type ComparePlayersArgs struct {
	Players  []string `json:"players" jsonschema:"Player names to compare (1 to 5)"`
	Features []string `json:"features,omitempty" jsonschema:"Feature axes (default: all 12)"`
}

type PlayerLookupArgs struct {
	Name string `json:"name" jsonschema:"Player name (exact, case-insensitive)"`
}

type toolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func main() {
	cfg := config.Load()

	var (
		addr        = flag.String("addr", cfg.Server.Addr, "HTTP listen address")
		mcpPath     = flag.String("path", "/mcp", "HTTP path for MCP endpoint")
		datasetPath = flag.String("dataset", cfg.Dataset.CSVPath, "path to the player dataset CSV")
		derivedRoot = flag.String("derived-root", cfg.Dataset.DerivedRoot, "root directory for derived JSON artifacts")
		requireAuth = flag.Bool("require-auth", false, "require API key auth via SCOUT_API_KEY")
	)
	flag.Parse()

	players, err := store.LoadCSV(*datasetPath)
	if err != nil {
		log.Fatalf("load dataset: %v", err)
	}
	table, err := derive.LoadOrBuild(store.NewJSONStore(*derivedRoot), players)
	if err != nil {
		log.Fatalf("build scaled table: %v", err)
	}

	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "football-scout-mcp",
			Version: "0.1.0",
		},
		nil,
	)

	registry := make([]toolInfo, 0, 8)

	addTool(server, &registry, &mcp.Tool{
		Name:        "top_players",
		Description: "Rank players by weighted score over composite features, with scouting filters",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args TopPlayersArgs) (*mcp.CallToolResult, any, error) {
		entries, err := rank.TopPlayers(table, rank.Params{
			N:                args.N,
			Features:         args.Features,
			Weights:          args.Weights,
			NormalizeWeights: args.NormalizeWeights,
			Positions:        args.Positions,
			Leagues:          args.Leagues,
			MinAge:           args.MinAge,
			MaxAge:           args.MaxAge,
			MinMinutes:       args.MinMinutes,
			MaxMinutes:       args.MaxMinutes,
			MinMV:            args.MinMarketValue,
			MaxMV:            args.MaxMarketValue,
		})
		if err != nil {
			return toolError(err), nil, nil
		}
		b, _ := json.MarshalIndent(map[string]any{"count": len(entries), "players": entries}, "", "  ")
		return toolJSONBytes(b), nil, nil
	})

	addTool(server, &registry, &mcp.Tool{
		Name:        "compare_players",
		Description: "Radar comparison data (one normalized polygon per player)",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args ComparePlayersArgs) (*mcp.CallToolResult, any, error) {
		c, err := radar.Build(table, args.Players, args.Features)
		if err != nil {
			return toolError(err), nil, nil
		}
		b, _ := json.MarshalIndent(c, "", "  ")
		return toolJSONBytes(b), nil, nil
	})

	addTool(server, &registry, &mcp.Tool{
		Name:        "player_lookup",
		Description: "Lookup a player's record by name",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args PlayerLookupArgs) (*mcp.CallToolResult, any, error) {
		name := strings.TrimSpace(args.Name)
		if name == "" {
			return toolError(fmt.Errorf("name is required")), nil, nil
		}
		sp, ok := table.Find(name)
		if !ok {
			return toolError(fmt.Errorf("player not found: %s", name)), nil, nil
		}
		b, _ := json.MarshalIndent(sp, "", "  ")
		return toolJSONBytes(b), nil, nil
	})

	addTool(server, &registry, &mcp.Tool{
		Name:        "list_features",
		Description: "List the 12 composite features and their underlying metrics",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args struct{}) (*mcp.CallToolResult, any, error) {
		b, _ := json.MarshalIndent(map[string]any{
			"features":   model.FeatureNames,
			"metric_map": model.FeatureMap,
		}, "", "  ")
		return toolJSONBytes(b), nil, nil
	})

	addTool(server, &registry, &mcp.Tool{
		Name:        "list_leagues",
		Description: "List the leagues present in the dataset",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args struct{}) (*mcp.CallToolResult, any, error) {
		b, _ := json.MarshalIndent(map[string]any{"leagues": table.Leagues()}, "", "  ")
		return toolJSONBytes(b), nil, nil
	})

	handler := mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})

	apiKey := cfg.Auth.APIKey
	if *requireAuth && apiKey == "" {
		log.Fatal("SCOUT_API_KEY is required (set env var or run with --require-auth=false)")
	}

	withAuth := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if apiKey == "" {
				next(w, r)
				return
			}
			key := strings.TrimSpace(r.Header.Get(cfg.Auth.Header))
			if key == "" {
				if authz := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
					key = strings.TrimSpace(authz[7:])
				}
			}
			if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"unauthorized"}`))
				return
			}
			next(w, r)
		}
	}

	http.HandleFunc("/health", withAuth(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}))

	http.HandleFunc("/tools", withAuth(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		b, _ := json.MarshalIndent(map[string]any{"tools": registry}, "", "  ")
		w.Write(b)
	}))

	http.HandleFunc(*mcpPath, withAuth(func(w http.ResponseWriter, r *http.Request) {
		handler.ServeHTTP(w, r)
	}))

	log.Printf("MCP HTTP server listening on %s%s (%d players)", *addr, *mcpPath, len(players))
	if err := http.ListenAndServe(*addr, nil); err != nil {
		log.Fatal(err)
	}
}

func addTool[T any](server *mcp.Server, registry *[]toolInfo, tool *mcp.Tool, handler func(context.Context, *mcp.CallToolRequest, T) (*mcp.CallToolResult, any, error)) {
	*registry = append(*registry, toolInfo{Name: tool.Name, Description: tool.Description})
	mcp.AddTool(server, tool, handler)
}

func toolJSONBytes(res []byte) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(res)},
		},
	}
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)},
		},
	}
}
