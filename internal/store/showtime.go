package store

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// Showtime schedules one screening of a movie.
type Showtime struct {
	bun.BaseModel `bun:"table:showtimes,alias:sht"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id,omitempty"`
	MovieID   int64     `bun:"movie_id,notnull" json:"movieId"`
	Movie     *Movie    `bun:"rel:belongs-to,join:movie_id=id" json:"movie,omitempty"`
	ShowDate  string    `bun:"show_date,notnull" json:"showDate"`
	StartTime string    `bun:"start_time,notnull" json:"startTime"`
	EndTime   string    `bun:"end_time,notnull" json:"endTime"`
	Price     float64   `bun:"price,notnull" json:"price"`
	Status    string    `bun:"status,notnull,default:'ACTIVE'" json:"status,omitempty"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"createdAt,omitempty"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updatedAt,omitempty"`
}

// Showtimes is the showtime repository.
type Showtimes struct {
	db *bun.DB
}

// NewShowtimes creates a Showtimes repository.
func NewShowtimes(db *bun.DB) *Showtimes {
	return &Showtimes{db: db}
}

func (r *Showtimes) Find(ctx context.Context, id int64) (*Showtime, error) {
	showtime := &Showtime{}
	err := r.db.NewSelect().
		Model(showtime).
		Relation("Movie").
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return showtime, nil
}

// List filters by optional movie and date. Zero/empty criteria match
// everything.
func (r *Showtimes) List(ctx context.Context, movieID int64, date string) ([]Showtime, error) {
	var showtimes []Showtime
	q := r.db.NewSelect().
		Model(&showtimes).
		Relation("Movie")

	if movieID != 0 {
		q = q.Where("?TableAlias.movie_id = ?", movieID)
	}
	if date != "" {
		q = q.Where("?TableAlias.show_date = ?", date)
	}

	err := q.OrderExpr("?TableAlias.show_date ASC").OrderExpr("?TableAlias.start_time ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return showtimes, nil
}

func (r *Showtimes) Create(ctx context.Context, showtime *Showtime) (*Showtime, error) {
	now := time.Now()
	showtime.CreatedAt = now
	showtime.UpdatedAt = now
	if showtime.Status == "" {
		showtime.Status = "ACTIVE"
	}

	if _, err := r.db.NewInsert().Model(showtime).Exec(ctx); err != nil {
		return nil, err
	}
	return showtime, nil
}

func (r *Showtimes) Update(ctx context.Context, showtime *Showtime) (*Showtime, error) {
	showtime.UpdatedAt = time.Now()
	if _, err := r.db.NewUpdate().Model(showtime).WherePK().Exec(ctx); err != nil {
		return nil, err
	}
	return showtime, nil
}

func (r *Showtimes) Delete(ctx context.Context, id int64) error {
	_, err := r.db.NewDelete().Model((*Showtime)(nil)).Where("id = ?", id).Exec(ctx)
	return err
}
