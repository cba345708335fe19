package domain

import (
	"sort"
	"time"
)

// DrawRecord is one historical draw. Records are append-only: created
// by the ingestion pipeline, never updated, deleted only by the
// duplicate-collapse maintenance routine.
type DrawRecord struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	GameType   string    `gorm:"column:game_type;not null;index" json:"game_type"`
	DrawDate   time.Time `gorm:"column:draw_date;type:date;not null" json:"draw_date"`
	DrawNumber *string   `gorm:"column:draw_number" json:"draw_number,omitempty"`
	Number1    int       `gorm:"column:number_1;not null" json:"number_1"`
	Number2    int       `gorm:"column:number_2;not null" json:"number_2"`
	Number3    int       `gorm:"column:number_3;not null" json:"number_3"`
	Number4    int       `gorm:"column:number_4;not null" json:"number_4"`
	Number5    int       `gorm:"column:number_5;not null" json:"number_5"`
	Number6    int       `gorm:"column:number_6;not null" json:"number_6"`
	Jackpot    *float64  `gorm:"column:jackpot;type:numeric" json:"jackpot,omitempty"`
	Winners    *int      `gorm:"column:winners" json:"winners,omitempty"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (DrawRecord) TableName() string {
	return "draw_records"
}

// Numbers returns the six winning numbers in ascending order.
func (d DrawRecord) Numbers() [6]int {
	n := [6]int{d.Number1, d.Number2, d.Number3, d.Number4, d.Number5, d.Number6}
	sort.Ints(n[:])
	return n
}

// SetNumbers stores the six numbers in canonical ascending order.
func (d *DrawRecord) SetNumbers(numbers [6]int) {
	sort.Ints(numbers[:])
	d.Number1 = numbers[0]
	d.Number2 = numbers[1]
	d.Number3 = numbers[2]
	d.Number4 = numbers[3]
	d.Number5 = numbers[4]
	d.Number6 = numbers[5]
}
