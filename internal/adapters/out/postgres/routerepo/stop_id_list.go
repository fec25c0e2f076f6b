package routerepo

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"routeengine/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// StopIDList is an ordered list of stop ids stored as a native text[] on
// PostgreSQL and as its text form elsewhere. Scan also accepts a JSON array,
// the format older rows were written in.
type StopIDList []uuid.UUID

// GormDataType implements schema.GormDataTypeInterface.
func (StopIDList) GormDataType() string {
	return "stop_id_list"
}

// GormDBDataType picks the column type per dialect.
func (StopIDList) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}

// Value encodes the list in the PostgreSQL array literal form.
func (l StopIDList) Value() (driver.Value, error) {
	arr := make(pq.StringArray, 0, len(l))
	for _, id := range l {
		arr = append(arr, id.String())
	}
	return arr.Value()
}

// Scan decodes either an array literal ("{a,b}") or a JSON array ("[\"a\",\"b\"]").
func (l *StopIDList) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*l = StopIDList{}
		return nil
	case []byte:
		raw = string(v)
	case string:
		raw = v
	default:
		return fmt.Errorf("stop id list: unsupported source type %T", src)
	}

	var items []string
	trimmed := strings.TrimSpace(raw)
	switch {
	case trimmed == "":
	case strings.HasPrefix(trimmed, "["):
		if err := json.Unmarshal([]byte(trimmed), &items); err != nil {
			return fmt.Errorf("stop id list: %w", err)
		}
	default:
		var arr pq.StringArray
		if err := arr.Scan(trimmed); err != nil {
			return fmt.Errorf("stop id list: %w", err)
		}
		items = arr
	}

	out := make(StopIDList, 0, len(items))
	for _, item := range items {
		id, err := uuid.Parse(item)
		if err != nil {
			return fmt.Errorf("stop id list: %w", err)
		}
		out = append(out, id)
	}
	*l = out
	return nil
}

// NewStopIDList converts domain ids.
func NewStopIDList(ids []kernel.UUID) StopIDList {
	out := make(StopIDList, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.Bytes())
	}
	return out
}

// ToDomain converts the list back to domain ids.
func (l StopIDList) ToDomain() ([]kernel.UUID, error) {
	out := make([]kernel.UUID, 0, len(l))
	for _, id := range l {
		parsed, err := kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		out = append(out, parsed)
	}
	return out, nil
}
