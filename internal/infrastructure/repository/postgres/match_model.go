package postgres

import "time"

type matchTableModel struct {
	ID          int64      `db:"id"`
	PublicID    string     `db:"public_id"`
	HomeName    string     `db:"home_name"`
	HomeShort   string     `db:"home_short"`
	HomeColor   string     `db:"home_color"`
	AwayName    string     `db:"away_name"`
	AwayShort   string     `db:"away_short"`
	AwayColor   string     `db:"away_color"`
	Venue       string     `db:"venue"`
	StartTime   time.Time  `db:"start_time"`
	Status      string     `db:"status"`
	StatusNote  string     `db:"status_note"`
	PrizePool   string     `db:"prize_pool"`
	EntryFee    int64      `db:"entry_fee"`
	SpotsTotal  int        `db:"spots_total"`
	SpotsFilled int        `db:"spots_filled"`
	Format      string     `db:"format"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
}

type matchInsertModel struct {
	PublicID    string    `db:"public_id"`
	HomeName    string    `db:"home_name"`
	HomeShort   string    `db:"home_short"`
	HomeColor   string    `db:"home_color"`
	AwayName    string    `db:"away_name"`
	AwayShort   string    `db:"away_short"`
	AwayColor   string    `db:"away_color"`
	Venue       string    `db:"venue"`
	StartTime   time.Time `db:"start_time"`
	Status      string    `db:"status"`
	StatusNote  string    `db:"status_note"`
	PrizePool   string    `db:"prize_pool"`
	EntryFee    int64     `db:"entry_fee"`
	SpotsTotal  int       `db:"spots_total"`
	SpotsFilled int       `db:"spots_filled"`
	Format      string    `db:"format"`
}
