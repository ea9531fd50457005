package settings

import (
	"database/sql"
	"fmt"
)

func buildCreateAlertsTable() string {
	return `CREATE TABLE IF NOT EXISTS alerts (
		userid TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		chatid TEXT NOT NULL,
		drivers INTEGER,
		battles INTEGER,
		battlessprint INTEGER,
		pitstops INTEGER);`
}

func buildSelectUserCommand(userID string) (string, func(*sql.Rows) (Alerts, error)) {
	fields := "drivers, battles, battlessprint, pitstops"
	return fmt.Sprintf(`SELECT %s FROM alerts WHERE userid = '%s'`, fields, userID), processSelectUserRows
}

func processSelectUserRows(rows *sql.Rows) (Alerts, error) {
	defer rows.Close()

	a := AllDisabled()
	// only can be one row
	if rows.Next() {
		var drivers int
		var battles int
		var battlessprint int
		var pitstops int
		err := rows.Scan(&drivers, &battles, &battlessprint, &pitstops)
		if err != nil {
			return a, err
		}
		a.setDatasetEnabledFlag(Drivers, drivers == 1)
		a.setDatasetEnabledFlag(Battles, battles == 1)
		a.setDatasetEnabledFlag(BattlesSprint, battlessprint == 1)
		a.setDatasetEnabledFlag(Pitstops, pitstops == 1)
		return a, nil
	}
	err := rows.Err()
	if err != nil {
		return a, err
	}
	return a, err
}

func buildSelectDatasetCommand(dataset string) (string, func(rows *sql.Rows) ([]TelegramUser, error)) {
	fields := "userid, name, chatid"
	return fmt.Sprintf(`SELECT %s FROM alerts WHERE %s = 1`, fields, dataset), processSelectDatasetRows
}

func processSelectDatasetRows(rows *sql.Rows) ([]TelegramUser, error) {
	defer rows.Close()

	users := make([]TelegramUser, 0)
	for rows.Next() {
		var id string
		var name string
		var chatid string
		err := rows.Scan(&id, &name, &chatid)
		if err != nil {
			return users, err
		}
		users = append(users, TelegramUser{
			ID:     id,
			Name:   name,
			ChatID: chatid,
		})
	}
	err := rows.Err()
	if err != nil {
		return users, err
	}
	return users, err
}

func buildUpdateUserCommand(userID, chatID string, a Alerts) string {
	drivers := a.enabledInt(Drivers)
	battles := a.enabledInt(Battles)
	battlessprint := a.enabledInt(BattlesSprint)
	pitstops := a.enabledInt(Pitstops)

	fields := "userid, name, chatid, drivers, battles, battlessprint, pitstops"
	values := fmt.Sprintf(`'%s', '%s', '%s', %d, %d, %d, %d`, userID, userID, chatID, drivers, battles, battlessprint, pitstops)
	return fmt.Sprintf(`INSERT OR REPLACE INTO alerts (%s) VALUES (%s)`, fields, values)
}
