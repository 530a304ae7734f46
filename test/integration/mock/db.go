package mock

import (
	"database/sql"
	"fmt"
	"sort"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	dbOnce sync.Once
	db     *Db
)

// Db is a shared in-memory sqlite database holding the given models, keyed
// by table name.
type Db struct {
	DbConn *gorm.DB
	models map[string]any
}

// NewDb opens the shared database on first use and migrates models.
// Later calls return the same database.
func NewDb(models map[string]any) *Db {
	dbOnce.Do(func() {
		db = open(models)
	})
	return db
}

func open(models map[string]any) *Db {
	conn, err := sql.Open("sqlite", "file:integration?mode=memory&cache=shared")
	if err != nil {
		panic(err)
	}
	// One connection keeps every query on the same in-memory database.
	conn.SetMaxOpenConns(1)

	gormDB, err := gorm.Open(sqlite.Dialector{Conn: conn}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	d := &Db{DbConn: gormDB, models: models}
	if err := gormDB.AutoMigrate(d.modelList()...); err != nil {
		panic(fmt.Sprintf("failed to migrate database. err: %s", err.Error()))
	}
	return d
}

// ClearDB deletes every row of every model table.
func (d *Db) ClearDB() error {
	for _, model := range d.modelList() {
		if !d.DbConn.Migrator().HasTable(model) {
			if err := d.DbConn.AutoMigrate(model); err != nil {
				return fmt.Errorf("failed to recreate table for %T: %w", model, err)
			}
			continue
		}
		err := d.DbConn.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(model).Error
		if err != nil {
			return fmt.Errorf("failed to clear table for %T: %w", model, err)
		}
	}
	return nil
}

func (d *Db) GetModel(table string) (any, bool) {
	model, ok := d.models[table]
	return model, ok
}

// modelList returns the models in table name order.
func (d *Db) modelList() []any {
	tables := make([]string, 0, len(d.models))
	for table := range d.models {
		tables = append(tables, table)
	}
	sort.Strings(tables)

	list := make([]any, len(tables))
	for i, table := range tables {
		list[i] = d.models[table]
	}
	return list
}
