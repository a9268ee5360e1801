package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	tabledomain "github.com/smallbiznis/seatcounter/internal/table/domain"
	"gorm.io/gorm"
)

type defaultTable struct {
	name string
	area string
	kind tabledomain.TableKind
}

// The default floor layout: numbered open seats in A區 plus the three private
// rooms the built-in pricing plans are bound to.
var defaultTables = []defaultTable{
	{name: "A1", area: "A區", kind: tabledomain.KindOpen},
	{name: "A2", area: "A區", kind: tabledomain.KindOpen},
	{name: "A3", area: "A區", kind: tabledomain.KindOpen},
	{name: "A4", area: "A區", kind: tabledomain.KindOpen},
	{name: "A5", area: "A區", kind: tabledomain.KindOpen},
	{name: "A6", area: "A區", kind: tabledomain.KindOpen},
	{name: "A7", area: "A區", kind: tabledomain.KindOpen},
	{name: "A8", area: "A區", kind: tabledomain.KindOpen},
	{name: "森林包廂", kind: tabledomain.KindRoom},
	{name: "城市包廂", kind: tabledomain.KindRoom},
	{name: "B區包廂", kind: tabledomain.KindRoom},
}

// EnsureDefaultTables seeds the demo floor layout. Existing tables are left
// untouched, so it is safe to run on every startup.
func EnsureDefaultTables(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, dt := range defaultTables {
			if err := ensureTableTx(tx, node, dt); err != nil {
				return err
			}
		}
		return nil
	})
}

func ensureTableTx(tx *gorm.DB, node *snowflake.Node, dt defaultTable) error {
	var count int64
	err := tx.Model(&tabledomain.Table{}).
		Where("name = ?", dt.name).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	return tx.Create(&tabledomain.Table{
		ID:        node.Generate(),
		Name:      dt.name,
		Area:      dt.area,
		Kind:      dt.kind,
		CreatedAt: now,
		UpdatedAt: now,
	}).Error
}
