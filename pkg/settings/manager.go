package settings

import (
	"database/sql"
	"log"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

const (
	DbName = "./statsboard.db"

	Drivers       = "drivers"
	Battles       = "battles"
	BattlesSprint = "battlessprint"
	Pitstops      = "pitstops"
)

type TelegramUser struct {
	ID     string
	Name   string
	ChatID string
}

// Alerts holds the per-dataset alert flags of one operator: true means the
// operator wants a message when that dataset fails to load.
type Alerts map[string]bool

func AllEnabled() Alerts {
	return Alerts{
		Drivers:       true,
		Battles:       true,
		BattlesSprint: true,
		Pitstops:      true,
	}
}

func AllDisabled() Alerts {
	return Alerts{
		Drivers:       false,
		Battles:       false,
		BattlesSprint: false,
		Pitstops:      false,
	}
}

func (a Alerts) DriversSymbol() string {
	return symbolStatus(a[Drivers])
}

func (a Alerts) BattlesSymbol() string {
	return symbolStatus(a[Battles])
}

func (a Alerts) BattlesSprintSymbol() string {
	return symbolStatus(a[BattlesSprint])
}

func (a Alerts) PitstopsSymbol() string {
	return symbolStatus(a[Pitstops])
}

func symbolStatus(enabled bool) string {
	if enabled {
		return "🔔"
	}
	return "🔕"
}

func (a Alerts) enabledInt(dataset string) int {
	if a[dataset] {
		return 1
	}
	return 0
}

func (a *Alerts) setDatasetEnabledFlag(dataset string, enabled bool) {
	(*a)[dataset] = enabled
}

type Manager struct {
	db *sql.DB
	mu sync.Mutex
}

func NewManager() (*Manager, error) {
	return NewManagerWithDb(DbName)
}

func NewManagerWithDb(dbName string) (*Manager, error) {
	db, err := sql.Open("sqlite3", dbName)
	if err != nil {
		log.Printf("error opening database: %s\n", err)
		return nil, err
	}

	initTableStmt := buildCreateAlertsTable()

	_, err = db.Exec(initTableStmt)
	if err != nil {
		log.Printf("error init database: %s\n", err)
		return nil, err
	}

	return &Manager{
		db: db,
		mu: sync.Mutex{},
	}, nil
}

func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.db.Close()
}

// ToggleAlertForDataset flips one dataset alert flag for the given operator,
// creating the row on first use.
func (m *Manager) ToggleAlertForDataset(userID, chatID, dataset string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, err := m.listAlertsForUser(userID)
	if err != nil {
		return err
	}

	a.setDatasetEnabledFlag(dataset, !a[dataset])
	_, err = m.db.Exec(buildUpdateUserCommand(userID, chatID, a))
	if err != nil {
		log.Printf("error updating database: %s\n", err)
		return err
	}
	return nil
}

func (m *Manager) ListAlerts(userID string) (Alerts, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.listAlertsForUser(userID)
}

// ListUsersForDataset returns the operators subscribed to failures of the
// given dataset.
func (m *Manager) ListUsersForDataset(dataset string) ([]TelegramUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	users := []TelegramUser{}
	sql, read := buildSelectDatasetCommand(dataset)
	rows, err := m.db.Query(sql)
	if err != nil {
		return users, err
	}
	return read(rows)
}

func (m *Manager) listAlertsForUser(userID string) (Alerts, error) {
	a := AllDisabled()

	sql, read := buildSelectUserCommand(userID)
	rows, err := m.db.Query(sql)
	if err != nil {
		return a, err
	}
	return read(rows)
}
