package models

// LedgerRecord is the SQL row backing one Account. The account itself is
// stored as a JSON document; Version guards concurrent writers.
type LedgerRecord struct {
	Base
	Username string `gorm:"type:varchar(64);uniqueIndex;not null"`
	Document string `gorm:"type:text;not null"`
	Version  int64  `gorm:"not null;default:0"`
}

// TableName pins the table name shared with the SQL migrations.
func (LedgerRecord) TableName() string {
	return "ledgers"
}
