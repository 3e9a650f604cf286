package repository

import (
	"testing"

	"app/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// 実DBなしでSQLだけ組み立てるgorm（DryRun）。
// pgxのsql.Openは遅延接続なのでここでは接続しない
func newDryRunDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(
		postgres.Open("host=localhost user=app dbname=app sslmode=disable"),
		&gorm.Config{
			DryRun:                 true,
			DisableAutomaticPing:   true,
			SkipDefaultTransaction: true,
		},
	)
	if err != nil {
		t.Fatalf("open dry-run db: %v", err)
	}
	return db
}

// カート取得はFOR UPDATEで行をロックする
func TestCartGorm_SelectLocksRow(t *testing.T) {
	db := newDryRunDB(t)

	var cart model.Cart
	tx := db.Clauses(cartRowLock()).
		Where("customer_id = ?", int64(10)).
		First(&cart)

	sql := tx.Statement.SQL.String()
	assert.Contains(t, sql, "FOR UPDATE")
	assert.Contains(t, sql, `"customer_id"`)
}

// 同時作成のINSERTはユニーク制約違反でTxをabortさせない。
// DO NOTHINGで握りつぶすので、負けた側はそのまま勝者の行を読み直せる
func TestCartGorm_InsertDoesNotAbortOnConflict(t *testing.T) {
	db := newDryRunDB(t)

	cart := model.Cart{
		CustomerID:  10,
		CartItemIDs: []int64{},
		TotalPrice:  0,
	}
	tx := db.Clauses(cartInsertOnConflict()).Create(&cart)

	sql := tx.Statement.SQL.String()
	assert.Contains(t, sql, `ON CONFLICT ("customer_id") DO NOTHING`)
}
