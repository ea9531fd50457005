package dashboard

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/mux"

	"f1statsboard/pkg/caster"
	"f1statsboard/pkg/charts"
	"f1statsboard/pkg/datasets"
	"f1statsboard/pkg/model"
	"f1statsboard/pkg/pubsub"
	"f1statsboard/pkg/series"
	"f1statsboard/pkg/standings"
)

const (
	// PointsColumn is the index of the points column in the standings
	// table, used for the initial sort.
	PointsColumn = 17

	topPitstops = 5

	refreshTopic = "dashboard/refresh"
)

// refreshPubSub fans dataset refreshes out to connected websocket clients.
var refreshPubSub = pubsub.NewPubSub[string]()

// App owns the dashboard state: the sortable standings table and the raw
// records each chart derives from. A dataset that failed to load stays nil
// and only blanks its own panel.
type App struct {
	mu       sync.Mutex
	sentinel string

	table         *standings.Table
	drivers       []model.DriverRecord
	battles       []model.BattlePair
	battlesSprint []model.BattlePair
	pitstops      []model.PitstopRecord

	driversCaster  caster.ChannelCaster[[]model.DriverRecord]
	battlesCaster  caster.ChannelCaster[[]model.BattlePair]
	pitstopsCaster caster.ChannelCaster[[]model.PitstopRecord]
}

// NewApp loads every dataset once, builds the initial table and registers
// the dashboard routes. Later refreshes arrive over the dataset pubsub.
func NewApp(ctx context.Context, r *mux.Router, dm *datasets.Manager, sentinel string) *App {
	app := &App{
		sentinel:       sentinel,
		driversCaster:  caster.JSONChannelCaster[[]model.DriverRecord]{},
		battlesCaster:  caster.JSONChannelCaster[[]model.BattlePair]{},
		pitstopsCaster: caster.JSONChannelCaster[[]model.PitstopRecord]{},
	}

	app.setDrivers(dm.Drivers(ctx))
	app.battles = dm.Battles(ctx, datasets.ResourceBattles)
	app.battlesSprint = dm.Battles(ctx, datasets.ResourceBattlesSprint)
	app.pitstops = dm.Pitstops(ctx)

	go app.driversUpdater()
	go app.battlesUpdater()
	go app.battlesSprintUpdater()
	go app.pitstopsUpdater()

	app.addHandlers(r)
	return app
}

// setDrivers rebuilds the table and opens it sorted by points, highest
// first. Callers hold the lock except during construction.
func (app *App) setDrivers(drivers []model.DriverRecord) {
	app.drivers = drivers
	app.table = standings.NewTable(drivers)
	if app.table.Sort(PointsColumn) == standings.Ascending {
		app.table.Sort(PointsColumn)
	}
}

func (app *App) driversUpdater() {
	ch := pubsub.DatasetPubSub.Subscribe(pubsub.PubSubDatasetPreffix + datasets.ResourceDrivers)
	for payload := range ch {
		drivers, err := app.driversCaster.From(payload)
		if err != nil {
			log.Printf("Error casting drivers: %s\n", err.Error())
			continue
		}
		app.mu.Lock()
		app.setDrivers(drivers)
		app.mu.Unlock()
		app.notifyRefresh(datasets.ResourceDrivers)
	}
}

func (app *App) battlesUpdater() {
	ch := pubsub.DatasetPubSub.Subscribe(pubsub.PubSubDatasetPreffix + datasets.ResourceBattles)
	for payload := range ch {
		pairs, err := app.battlesCaster.From(payload)
		if err != nil {
			log.Printf("Error casting battles: %s\n", err.Error())
			continue
		}
		app.mu.Lock()
		app.battles = pairs
		app.mu.Unlock()
		app.notifyRefresh(datasets.ResourceBattles)
	}
}

func (app *App) battlesSprintUpdater() {
	ch := pubsub.DatasetPubSub.Subscribe(pubsub.PubSubDatasetPreffix + datasets.ResourceBattlesSprint)
	for payload := range ch {
		pairs, err := app.battlesCaster.From(payload)
		if err != nil {
			log.Printf("Error casting sprint battles: %s\n", err.Error())
			continue
		}
		app.mu.Lock()
		app.battlesSprint = pairs
		app.mu.Unlock()
		app.notifyRefresh(datasets.ResourceBattlesSprint)
	}
}

func (app *App) pitstopsUpdater() {
	ch := pubsub.DatasetPubSub.Subscribe(pubsub.PubSubDatasetPreffix + datasets.ResourcePitstops)
	for payload := range ch {
		stops, err := app.pitstopsCaster.From(payload)
		if err != nil {
			log.Printf("Error casting pitstops: %s\n", err.Error())
			continue
		}
		app.mu.Lock()
		app.pitstops = stops
		app.mu.Unlock()
		app.notifyRefresh(datasets.ResourcePitstops)
	}
}

func (app *App) notifyRefresh(resource string) {
	refreshPubSub.Publish(refreshTopic, resource)
}

func (app *App) addHandlers(r *mux.Router) {
	r.HandleFunc("/", app.pageHandler).Methods(http.MethodGet)
	r.HandleFunc("/api/standings", app.standingsHandler).Methods(http.MethodGet)
	r.HandleFunc("/api/charts/points", app.pointsChartHandler).Methods(http.MethodGet)
	r.HandleFunc("/api/charts/laps", app.lapsChartHandler).Methods(http.MethodGet)
	r.HandleFunc("/api/charts/battles", app.battlesChartHandler).Methods(http.MethodGet)
	r.HandleFunc("/api/charts/battlessprint", app.battlesSprintChartHandler).Methods(http.MethodGet)
	r.HandleFunc("/api/pitstops", app.pitstopsHandler).Methods(http.MethodGet)
	r.HandleFunc("/charts/points.png", app.pointsPNGHandler).Methods(http.MethodGet)
	r.HandleFunc("/charts/laps.png", app.lapsPNGHandler).Methods(http.MethodGet)
	r.HandleFunc("/standings.txt", app.standingsTextHandler).Methods(http.MethodGet)
	r.HandleFunc("/ws", app.websocketHandler)
}

// StandingsResponse is the sorted table plus the single active sort state.
type StandingsResponse struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Sort    SortState  `json:"sort"`
}

type SortState struct {
	Column    int                 `json:"column"`
	Direction standings.Direction `json:"direction"`
}

func (app *App) standingsHandler(w http.ResponseWriter, r *http.Request) {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.drivers == nil {
		respondNoData(w)
		return
	}
	column := PointsColumn
	direction := app.table.State(column)
	if v := r.URL.Query().Get("sort"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 || parsed >= len(standings.Columns) {
			http.Error(w, "bad sort column", http.StatusBadRequest)
			return
		}
		column = parsed
		direction = app.table.Sort(column)
	}
	respondJSON(w, StandingsResponse{
		Columns: standings.Columns,
		Rows:    app.table.Rows,
		Sort:    SortState{Column: column, Direction: direction},
	})
}

func (app *App) pointsChartHandler(w http.ResponseWriter, r *http.Request) {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.drivers == nil {
		respondNoData(w)
		return
	}
	respondJSON(w, charts.PointsPie(series.Points(app.drivers, app.sentinel)))
}

func (app *App) lapsChartHandler(w http.ResponseWriter, r *http.Request) {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.drivers == nil {
		respondNoData(w)
		return
	}
	respondJSON(w, charts.LapsBar(series.Laps(app.drivers)))
}

func (app *App) battlesChartHandler(w http.ResponseWriter, r *http.Request) {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.battles == nil {
		respondNoData(w)
		return
	}
	respondJSON(w, charts.BattleBar(series.Battles(app.battles), "Qualifying battles"))
}

func (app *App) battlesSprintChartHandler(w http.ResponseWriter, r *http.Request) {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.battlesSprint == nil {
		respondNoData(w)
		return
	}
	respondJSON(w, charts.BattleBar(series.Battles(app.battlesSprint), "Sprint qualifying battles"))
}

func (app *App) pitstopsHandler(w http.ResponseWriter, r *http.Request) {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.pitstops == nil {
		respondNoData(w)
		return
	}
	respondJSON(w, series.TopPitstops(app.pitstops, topPitstops))
}

func (app *App) pointsPNGHandler(w http.ResponseWriter, r *http.Request) {
	app.mu.Lock()
	s := series.Points(app.drivers, app.sentinel)
	app.mu.Unlock()

	png, err := charts.RenderPointsPNG(s)
	servePNG(w, png, err)
}

func (app *App) lapsPNGHandler(w http.ResponseWriter, r *http.Request) {
	app.mu.Lock()
	s := series.Laps(app.drivers)
	app.mu.Unlock()

	png, err := charts.RenderLapsPNG(s)
	servePNG(w, png, err)
}

func (app *App) standingsTextHandler(w http.ResponseWriter, r *http.Request) {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.drivers == nil {
		respondNoData(w)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(app.table.Render()))
}

func respondJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %s\n", err.Error())
	}
}

func respondNoData(w http.ResponseWriter) {
	http.Error(w, "no data", http.StatusNotFound)
}

func servePNG(w http.ResponseWriter, png []byte, err error) {
	if err != nil {
		log.Printf("Error rendering chart: %s\n", err.Error())
		respondNoData(w)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}
