package entity

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Base struct {
	ID        string `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// Lifecycle is the envelope shared by every scheduled entity kind. Version
// increases by exactly one on every persisted mutation and is the condition
// of every update; Deadline is null for entities with no automatic terminal
// transition.
type Lifecycle struct {
	GuildID  int64 `gorm:"index"`
	OwnerID  int64
	Deadline sql.NullTime `gorm:"index"`
	Version  int64
}

func (l *Lifecycle) EntityVersion() int64 {
	return l.Version
}

func (l *Lifecycle) BumpVersion() {
	l.Version++
}

type Array[T any] []T

func (a *Array[T]) Scan(obj any) error {
	switch t := obj.(type) {
	case string:
		return json.Unmarshal([]byte(t), a)
	case []byte:
		return json.Unmarshal(t, a)
	}

	return fmt.Errorf("cannot scan invalid data type %T", obj)
}

func (a Array[T]) Value() (driver.Value, error) {
	return json.Marshal(a)
}

type Map map[string]any

func (m *Map) Scan(value any) error {
	switch t := value.(type) {
	case string:
		return json.Unmarshal([]byte(t), m)
	case []byte:
		return json.Unmarshal(t, m)
	default:
		return fmt.Errorf("cannot scan invalid data type %T", value)
	}
}

func (m Map) Value() (driver.Value, error) {
	return json.Marshal(m)
}
