package db_models

// KVSlot is one named slot of the lead ledger (leads JSON, counters).
type KVSlot struct {
	Key       string `gorm:"primaryKey;size:128"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt int64  `gorm:"autoUpdateTime"`
}

func (KVSlot) TableName() string {
	return "kv_slots"
}
