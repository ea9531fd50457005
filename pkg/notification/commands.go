package notification

import (
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"f1statsboard/pkg/settings"
)

const helpText = `Dataset failure alerts:
/alerts - show your alert subscriptions
/drivers /battles /battlessprint /pitstops - toggle alerts for one dataset
/all - enable alerts for every dataset`

// ListenForCommands drives the alert subscriptions over the bot chat. Each
// operator toggles their own flags; the rows written here are the ones
// ListUsersForDataset reads when a dataset fails.
func (m *Manager) ListenForCommands(exitChan <-chan bool) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := m.bot.GetUpdatesChan(u)
	for {
		select {
		case <-exitChan:
			m.bot.StopReceivingUpdates()
			return
		case update := <-updates:
			if update.Message == nil || update.Message.From == nil || !update.Message.IsCommand() {
				continue
			}
			userID := fmt.Sprint(update.Message.From.ID)
			chatID := fmt.Sprint(update.Message.Chat.ID)
			reply := m.handleCommand(update.Message.Command(), userID, chatID)
			if reply == "" {
				continue
			}
			msg := tgbotapi.NewMessage(update.Message.Chat.ID, reply)
			if _, err := m.bot.Send(msg); err != nil {
				log.Printf("Error replying to %s: %s\n", userID, err.Error())
			}
		}
	}
}

// handleCommand maps one chat command to its subscription action and returns
// the reply text. Unknown commands return an empty reply and are ignored.
func (m *Manager) handleCommand(command, userID, chatID string) string {
	switch command {
	case "start", "help":
		return helpText
	case "alerts":
		return m.alertsReply(userID)
	case "drivers":
		return m.toggleReply(userID, chatID, settings.Drivers)
	case "battles":
		return m.toggleReply(userID, chatID, settings.Battles)
	case "battlessprint":
		return m.toggleReply(userID, chatID, settings.BattlesSprint)
	case "pitstops":
		return m.toggleReply(userID, chatID, settings.Pitstops)
	case "all":
		return m.enableAllReply(userID, chatID)
	}
	return ""
}

func (m *Manager) toggleReply(userID, chatID, dataset string) string {
	if err := m.store.ToggleAlertForDataset(userID, chatID, dataset); err != nil {
		log.Printf("Error toggling %s alert for %s: %s\n", dataset, userID, err.Error())
		return "Could not update your alerts, try again later"
	}
	return m.alertsReply(userID)
}

func (m *Manager) enableAllReply(userID, chatID string) string {
	current, err := m.store.ListAlerts(userID)
	if err != nil {
		log.Printf("Error listing alerts for %s: %s\n", userID, err.Error())
		return "Could not update your alerts, try again later"
	}
	for dataset, enabled := range settings.AllEnabled() {
		if current[dataset] == enabled {
			continue
		}
		if err := m.store.ToggleAlertForDataset(userID, chatID, dataset); err != nil {
			log.Printf("Error toggling %s alert for %s: %s\n", dataset, userID, err.Error())
			return "Could not update your alerts, try again later"
		}
	}
	return m.alertsReply(userID)
}

func (m *Manager) alertsReply(userID string) string {
	a, err := m.store.ListAlerts(userID)
	if err != nil {
		log.Printf("Error listing alerts for %s: %s\n", userID, err.Error())
		return "Could not read your alerts, try again later"
	}
	var b strings.Builder
	b.WriteString("Your dataset failure alerts:\n")
	fmt.Fprintf(&b, "%s drivers\n", a.DriversSymbol())
	fmt.Fprintf(&b, "%s battles\n", a.BattlesSymbol())
	fmt.Fprintf(&b, "%s battlessprint\n", a.BattlesSprintSymbol())
	fmt.Fprintf(&b, "%s pitstops", a.PitstopsSymbol())
	return b.String()
}
