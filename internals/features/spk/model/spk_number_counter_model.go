package model

import (
	"time"
)

// SpkNumberCounterModel = counter nomor urut per tahun anggaran.
// Satu baris per tahun, dibaca dengan FOR UPDATE lalu di-increment di dalam
// transaksi approve, sehingga dua approve paralel tidak pernah dapat nomor sama.
type SpkNumberCounterModel struct {
	SpkCounterTahun     int16 `gorm:"column:spk_counter_tahun;primaryKey;autoIncrement:false" json:"spk_counter_tahun"`
	SpkCounterLastValue int   `gorm:"column:spk_counter_last_value;not null;default:0" json:"spk_counter_last_value"`

	UpdatedAt time.Time `gorm:"column:spk_counter_updated_at;autoUpdateTime" json:"spk_counter_updated_at"`
}

func (SpkNumberCounterModel) TableName() string { return "spk_number_counters" }
