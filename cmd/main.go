package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/mohammadHusnain/skillswap-realtime/internal/auth"
	"github.com/mohammadHusnain/skillswap-realtime/internal/config"
	"github.com/mohammadHusnain/skillswap-realtime/internal/engine"
	"github.com/mohammadHusnain/skillswap-realtime/internal/logger"
	"github.com/mohammadHusnain/skillswap-realtime/internal/rest"
)

func main() {
	_ = godotenv.Load()

	cfgPath := flag.String("config", "config.yaml", "path to config file")
	convID := flag.String("conv", "", "conversation id to open on start")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("config load: %v", err)
	}

	lg, err := logger.New(cfg.App.Env != "production")
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	token := os.Getenv("SKILLSWAP_TOKEN")
	if token == "" {
		log.Fatal("SKILLSWAP_TOKEN is required")
	}
	tokens := auth.NewStaticProvider(token)

	api := rest.NewClient(rest.Config{
		BaseURL:         cfg.API.BaseURL,
		Timeout:         cfg.APITimeout,
		RetryMaxElapsed: cfg.APIRetryElapsed,
	}, tokens, lg)

	eng := engine.New(cfg, lg, tokens, nil, engine.Collaborators{
		History:       api,
		Conversations: api,
		Notifications: api,
		Manager:       api,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	eng.Start(ctx)
	defer eng.Stop()

	if *convID != "" {
		if err := eng.SelectConversation(ctx, *convID); err != nil {
			lg.Warnf("select conversation: %v", err)
		}
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		cancel()
		_ = os.Stdin.Close()
	}()

	lg.Infof("connected as %s; type /help for commands", cfg.App.UserID)
	repl(ctx, eng, cfg.App.UserID, lg)
}

// repl is a minimal command loop for poking the sync engine by hand.
func repl(ctx context.Context, eng *engine.Engine, selfID string, lg interface{ Warnf(string, ...any) }) {
	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var err error
		switch {
		case line == "/help":
			fmt.Println("/open <conv> /close /read /readall /convs /notifs /status /quit, anything else sends a message")
		case strings.HasPrefix(line, "/open "):
			err = eng.SelectConversation(ctx, strings.TrimSpace(strings.TrimPrefix(line, "/open ")))
		case line == "/close":
			eng.Deselect()
		case line == "/read":
			err = eng.SendReadReceipt("")
		case line == "/readall":
			err = eng.MarkAllNotificationsRead(ctx)
		case line == "/convs":
			for _, c := range eng.Conversations() {
				fmt.Printf("%s  %s  unread=%d\n", c.ID, c.LastMessage, c.UnreadFor(selfID))
			}
		case line == "/notifs":
			for _, n := range eng.Notifications() {
				fmt.Printf("[%s] %s: %s (read=%t)\n", n.Type, n.Title, n.Body, n.IsRead)
			}
			fmt.Printf("unread: %d\n", eng.UnreadNotifications())
		case line == "/status":
			fmt.Println(eng.Status())
		case line == "/quit":
			return
		default:
			err = eng.SendMessage(line, nil)
		}
		if err != nil {
			lg.Warnf("command failed: %v", err)
		}
		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}
