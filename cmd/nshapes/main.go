package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/peterkuimelis/nshapes/internal/config"
	nsnet "github.com/peterkuimelis/nshapes/internal/net"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := os.Args[1]
	var err error
	switch cmd {
	case "play":
		err = runPlay(ctx, os.Args[2:])
	case "host":
		err = runHost(ctx, os.Args[2:])
	case "join":
		err = runJoin(ctx, os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  nshapes play [--config FILE] [--enemy NAME] [--stage N]")
	fmt.Println("  nshapes host [--config FILE] [--enemy NAME] [--port P]")
	fmt.Println("  nshapes join [--addr ADDR] [--stage N]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  play    Play a round in this terminal")
	fmt.Println("  host    Start a round server and wait for a player")
	fmt.Println("  join    Connect to a round server and play")
}

func loadConfig(path, forced string) (config.Config, error) {
	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}
	if forced != "" {
		cfg.ForcedEnemy = forced
	}
	return cfg, nil
}

func runPlay(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	configFile := fs.String("config", "", "path to game config YAML (defaults built in)")
	forced := fs.String("enemy", "", "always face this enemy")
	stage := fs.Int("stage", 1, "run stage, picks the enemy tier")
	fs.Parse(args)

	cfg, err := loadConfig(*configFile, *forced)
	if err != nil {
		return err
	}
	srv := &nsnet.Server{Config: cfg}
	return srv.PlayLocal(ctx, *stage, os.Stdin, os.Stdout)
}

func runHost(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("host", flag.ExitOnError)
	configFile := fs.String("config", "", "path to game config YAML (defaults built in)")
	forced := fs.String("enemy", "", "always offer this enemy")
	port := fs.String("port", "9000", "TCP port to listen on")
	fs.Parse(args)

	cfg, err := loadConfig(*configFile, *forced)
	if err != nil {
		return err
	}
	srv := &nsnet.Server{
		Config: cfg,
		Port:   *port,
		Output: os.Stdout,
	}
	return srv.Run(ctx)
}

func runJoin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("join", flag.ExitOnError)
	addr := fs.String("addr", "localhost:9000", "server address to connect to")
	stage := fs.Int("stage", 1, "run stage, picks the enemy tier")
	fs.Parse(args)

	return nsnet.Connect(ctx, *addr, *stage, os.Stdin, os.Stdout)
}
