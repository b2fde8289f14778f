package model

// Country and State are reference data, seeded by an external script
// and only ever read by the API

type Country struct {
	ID     string `gorm:"primaryKey" json:"id"`
	Name   string `gorm:"not null" json:"name"`
	Alpha2 string `gorm:"column:alpha_2;unique;not null" json:"alpha2"`
	Alpha3 string `gorm:"column:alpha_3;unique;not null" json:"alpha3"`
}

type State struct {
	ID        string `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"not null" json:"name"`
	CountryID string `gorm:"index;not null" json:"countryId"`
}
