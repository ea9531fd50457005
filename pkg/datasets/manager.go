package datasets

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"f1statsboard/pkg/caster"
	"f1statsboard/pkg/model"
	"f1statsboard/pkg/pubsub"
)

// Resource names of the precomputed season datasets on the data host.
const (
	ResourceDrivers       = "drivers.json"
	ResourceBattles       = "driversbattles.json"
	ResourceBattlesSprint = "driversbattlessprint.json"
	ResourcePitstops      = "pitstops.json"
)

// Manager fetches the season datasets. A failed fetch is terminal for that
// dataset: the manager logs the resource and cause, publishes a failure
// event for the notifier, and hands back no data. Nothing downstream ever
// sees an error from here.
type Manager struct {
	ctx     context.Context
	baseURL string
	client  *http.Client

	driversCaster  caster.ChannelCaster[[]model.DriverRecord]
	battlesCaster  caster.ChannelCaster[[]model.BattlePair]
	pitstopsCaster caster.ChannelCaster[[]model.PitstopRecord]
	failureCaster  caster.ChannelCaster[model.DatasetFailure]
}

func NewManager(ctx context.Context, baseURL string) *Manager {
	return &Manager{
		ctx:     ctx,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},

		driversCaster:  caster.JSONChannelCaster[[]model.DriverRecord]{},
		battlesCaster:  caster.JSONChannelCaster[[]model.BattlePair]{},
		pitstopsCaster: caster.JSONChannelCaster[[]model.PitstopRecord]{},
		failureCaster:  caster.JSONChannelCaster[model.DatasetFailure]{},
	}
}

// Drivers loads the driver standings. Nil means the dataset is unavailable
// for this run.
func (m *Manager) Drivers(ctx context.Context) []model.DriverRecord {
	records, err := fetch[model.DriverRecord](ctx, m.client, m.baseURL, ResourceDrivers)
	if err != nil {
		m.reportFailure(ResourceDrivers, err)
		return nil
	}
	return records
}

// Battles loads a qualifying battles dataset; resource selects the season
// or sprint variant.
func (m *Manager) Battles(ctx context.Context, resource string) []model.BattlePair {
	pairs, err := fetch[model.BattlePair](ctx, m.client, m.baseURL, resource)
	if err != nil {
		m.reportFailure(resource, err)
		return nil
	}
	return pairs
}

// Pitstops loads the pit stop times.
func (m *Manager) Pitstops(ctx context.Context) []model.PitstopRecord {
	stops, err := fetch[model.PitstopRecord](ctx, m.client, m.baseURL, ResourcePitstops)
	if err != nil {
		m.reportFailure(ResourcePitstops, err)
		return nil
	}
	return stops
}

// Sync refreshes every dataset once and then on each ticker beat,
// publishing fresh snapshots for the dashboard and websocket clients.
func (m *Manager) Sync(ticker *time.Ticker, exitChan chan bool) {
	m.doSync(time.Now())
	go func() {
		for {
			select {
			case <-exitChan:
				return
			case t := <-ticker.C:
				m.doSync(t)
			}
		}
	}()
}

func (m *Manager) doSync(t time.Time) {
	log.Println("Refreshing season datasets: ", t)
	if drivers := m.Drivers(m.ctx); drivers != nil {
		payload, err := m.driversCaster.To(drivers)
		m.publishDataset(ResourceDrivers, payload, err)
	}
	if battles := m.Battles(m.ctx, ResourceBattles); battles != nil {
		payload, err := m.battlesCaster.To(battles)
		m.publishDataset(ResourceBattles, payload, err)
	}
	if sprint := m.Battles(m.ctx, ResourceBattlesSprint); sprint != nil {
		payload, err := m.battlesCaster.To(sprint)
		m.publishDataset(ResourceBattlesSprint, payload, err)
	}
	if stops := m.Pitstops(m.ctx); stops != nil {
		payload, err := m.pitstopsCaster.To(stops)
		m.publishDataset(ResourcePitstops, payload, err)
	}
}

func (m *Manager) publishDataset(resource, payload string, err error) {
	if err != nil {
		log.Printf("Error casting dataset %s to json: %s", resource, err.Error())
		return
	}
	pubsub.DatasetPubSub.Publish(pubsub.PubSubDatasetPreffix+resource, payload)
}

func (m *Manager) reportFailure(resource string, cause error) {
	log.Printf("Error loading dataset %s: %s", resource, cause.Error())
	failure := model.DatasetFailure{Resource: resource, Cause: cause.Error()}
	payload, err := m.failureCaster.To(failure)
	if err != nil {
		log.Printf("Error casting failure to json: %s", err.Error())
		return
	}
	pubsub.FailurePubSub.Publish(pubsub.PubSubFailurePreffix+resource, payload)
}

func fetch[T any](ctx context.Context, client *http.Client, baseURL, resource string) ([]T, error) {
	url := fmt.Sprintf("%s/%s", baseURL, resource)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "building request for %s", resource)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "fetching %s", resource)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("fetching %s: %s", resource, resp.Status)
	}
	var records []T
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, errors.Wrapf(err, "decoding %s", resource)
	}
	return records, nil
}
