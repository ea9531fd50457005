package notification

import (
	"context"
	"log"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/nikoksr/notify"

	"f1statsboard/pkg/caster"
	"f1statsboard/pkg/datasets"
	"f1statsboard/pkg/model"
	"f1statsboard/pkg/pubsub"
	"f1statsboard/pkg/settings"
)

// Store is the slice of the settings manager the notifier needs: reading
// subscribers for outgoing alerts and mutating subscriptions for the chat
// commands.
type Store interface {
	ListUsersForDataset(dataset string) ([]settings.TelegramUser, error)
	ListAlerts(userID string) (settings.Alerts, error)
	ToggleAlertForDataset(userID, chatID, dataset string) error
}

// Manager forwards dataset load failures to the operators subscribed to the
// failing dataset and manages those subscriptions over the bot chat.
type Manager struct {
	ctx           context.Context
	store         Store
	bot           *tgbotapi.BotAPI
	failureCaster caster.ChannelCaster[model.DatasetFailure]
}

func NewManager(ctx context.Context, bot *tgbotapi.BotAPI, store Store) *Manager {
	return &Manager{
		ctx:           ctx,
		bot:           bot,
		store:         store,
		failureCaster: caster.JSONChannelCaster[model.DatasetFailure]{},
	}
}

func (m *Manager) Start(exitChan <-chan bool) {
	driversChan := pubsub.FailurePubSub.Subscribe(pubsub.PubSubFailurePreffix + datasets.ResourceDrivers)
	battlesChan := pubsub.FailurePubSub.Subscribe(pubsub.PubSubFailurePreffix + datasets.ResourceBattles)
	sprintChan := pubsub.FailurePubSub.Subscribe(pubsub.PubSubFailurePreffix + datasets.ResourceBattlesSprint)
	pitstopsChan := pubsub.FailurePubSub.Subscribe(pubsub.PubSubFailurePreffix + datasets.ResourcePitstops)
	for {
		select {
		case <-exitChan:
			return
		case payload := <-driversChan:
			m.handlePayload(payload, settings.Drivers)
		case payload := <-battlesChan:
			m.handlePayload(payload, settings.Battles)
		case payload := <-sprintChan:
			m.handlePayload(payload, settings.BattlesSprint)
		case payload := <-pitstopsChan:
			m.handlePayload(payload, settings.Pitstops)
		}
	}
}

func (m *Manager) handlePayload(payload, dataset string) {
	failure, err := m.failureCaster.From(payload)
	if err != nil {
		log.Printf("Error casting failure event: %s\n", err.Error())
		return
	}
	m.handleNotification(failure, dataset)
}

func (m *Manager) handleNotification(failure model.DatasetFailure, dataset string) {
	receipients, err := m.store.ListUsersForDataset(dataset)
	if err != nil {
		log.Printf("Error listing users for dataset failure: %s", err.Error())
		return
	}
	log.Printf("Sending alert for %s to %d telegram users\n", failure.Resource, len(receipients))
	err = m.sendNotification(receipients, failure)
	if err != nil {
		log.Printf("Error notifying users: %s", err.Error())
	}
}

func (m *Manager) sendNotification(tusers []settings.TelegramUser, failure model.DatasetFailure) error {
	if len(tusers) == 0 {
		return nil
	}

	tg := Telegram{}
	tg.SetClient(m.bot)

	for _, tuser := range tusers {
		chatId, _ := strconv.ParseInt(tuser.ChatID, 0, 64)
		tg.AddReceivers(chatId)
	}

	n := notify.NewWithServices(&tg)
	err := n.Send(m.ctx, "Dataset failed to load:", failure.String())
	if err != nil {
		return err
	}
	return nil
}
