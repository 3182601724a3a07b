package models

// Setting is a single key/value configuration row.
type Setting struct {
	Key   string `json:"key" gorm:"primaryKey" validate:"required"`
	Value string `json:"value"`
}

// SettingWaterFee is the flat per-period fee added to every generated bill.
const SettingWaterFee = "WaterFee"
