package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tranvq/shiftlog/internal/config"
	"github.com/tranvq/shiftlog/internal/domain/shift"
	appHTTP "github.com/tranvq/shiftlog/internal/handler/http"
	"github.com/tranvq/shiftlog/internal/pkg/github"
	"github.com/tranvq/shiftlog/internal/pkg/telegram"
	"github.com/tranvq/shiftlog/internal/repository/githubcsv"
	"github.com/tranvq/shiftlog/internal/service/payroll"
	"github.com/tranvq/shiftlog/internal/service/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	githubClient, err := github.NewClient(cfg.GitHub.Token, cfg.GitHub.Repo, cfg.GitHub.FilePath, cfg.GitHub.Branch)
	if err != nil {
		fmt.Println("Error building GitHub client:", err)
		return
	}
	telegramClient := telegram.NewClient(cfg.Telegram.Token)

	catalog := shift.DefaultCatalog()
	store := githubcsv.NewStore(githubClient)
	engine := payroll.NewEngine(catalog, cfg.Payroll.OTBlockMinutes, cfg.Payroll.OTBlockPay)
	sessions := session.NewManager(engine, store, catalog, cfg.App.PageSize)

	webhookHandler := appHTTP.NewWebhookHandler(sessions, telegramClient, cfg.Telegram.AllowedChatIDs)
	shiftsHandler := appHTTP.NewShiftsHandler(store, cfg.App.PageSize)

	router := appHTTP.NewRouter(
		webhookHandler,
		shiftsHandler,
		cfg.Telegram.WebhookSecret,
		cfg.App.Env,
	)

	if cfg.Telegram.WebhookURL != "" {
		if err := telegramClient.SetWebhook(context.Background(), cfg.Telegram.WebhookURL, cfg.Telegram.WebhookSecret); err != nil {
			fmt.Println("Error registering webhook:", err)
			return
		}
	}

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Bot webhook listening at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
