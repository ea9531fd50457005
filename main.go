package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"f1statsboard/pkg/dashboard"
	"f1statsboard/pkg/datasets"
	"f1statsboard/pkg/notification"
	"f1statsboard/pkg/series"
	"f1statsboard/pkg/settings"
	"f1statsboard/pkg/webserver"
)

func main() {
	baseURL := os.Getenv("DATA_BASE_URL")
	if baseURL == "" {
		// Abort if something is wrong
		log.Panic("DATA_BASE_URL is required")
	}

	sentinel := os.Getenv("SENTINEL_DRIVER")
	if sentinel == "" {
		sentinel = series.ReferenceDriverName
	}

	refreshMinutes := 60
	if v := os.Getenv("REFRESH_MINUTES"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			log.Printf("Ignoring invalid REFRESH_MINUTES %q\n", v)
		} else {
			refreshMinutes = parsed
		}
	}

	// Create a new cancellable background context. Calling `cancel()` leads to the cancellation of the context
	ctx := context.Background()
	ctx, cancel := context.WithCancel(ctx)

	exitChan := make(chan bool)

	dm := datasets.NewManager(ctx, baseURL)

	// Operator alerts are optional: without a bot token, failures only go
	// to the log.
	var settingsManager *settings.Manager
	if token := os.Getenv("TELEGRAM_TOKEN"); token != "" {
		bot, err := tgbotapi.NewBotAPI(token)
		if err != nil {
			log.Printf("Error creating telegram bot, alerts disabled: %s\n", err.Error())
		} else {
			bot.Debug = false
			settingsManager, err = settings.NewManager()
			if err != nil {
				log.Printf("Error opening settings database, alerts disabled: %s\n", err.Error())
			} else {
				nm := notification.NewManager(ctx, bot, settingsManager)
				go nm.Start(exitChan)
				go nm.ListenForCommands(exitChan)
			}
		}
	}

	wm := webserver.NewManager()
	dashboard.NewApp(ctx, wm.Router(), dm, sentinel)

	ticker := time.NewTicker(time.Duration(refreshMinutes) * time.Minute)
	dm.Sync(ticker, exitChan)

	log.Println("F1 season statistics dashboard. Press Ctrl-C to stop it")

	// Serve blocks until the process receives an interrupt.
	wm.Serve()

	ticker.Stop()
	close(exitChan)
	if settingsManager != nil {
		settingsManager.Close()
	}
	cancel()
}
