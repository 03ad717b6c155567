package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/nshapes/internal/config"
	nsmcp "github.com/peterkuimelis/nshapes/internal/mcp"
)

func main() {
	configFile := flag.String("config", "", "path to game config YAML (defaults built in)")
	flag.Parse()

	if *configFile != "" {
		cfg, err := config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		nsmcp.SetConfig(cfg)
	}

	s := server.NewMCPServer("nshapes", "1.0.0")
	nsmcp.RegisterTools(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
