package store

import (
	"context"
	"strings"
	"time"

	"github.com/uptrace/bun"
)

// MovieStatus is the screening lifecycle of a movie
type MovieStatus = string

const (
	MovieStatusActive     MovieStatus = "ACTIVE"
	MovieStatusComingSoon MovieStatus = "COMING_SOON"
	MovieStatusEnded      MovieStatus = "ENDED"
)

// Movie is the catalog model. Dates and times of day are stored as
// ISO strings ("2006-01-02", "15:04") so they stay timezone-free.
type Movie struct {
	bun.BaseModel `bun:"table:movies,alias:mov"`

	ID              int64       `bun:"id,pk,autoincrement" json:"id,omitempty"`
	Title           string      `bun:"title,notnull" json:"title"`
	Description     string      `bun:"description" json:"description,omitempty"`
	Genre           string      `bun:"genre" json:"genre,omitempty"`
	DurationMinutes int         `bun:"duration_minutes,notnull" json:"durationMinutes"`
	StartTime       string      `bun:"start_time,notnull" json:"startTime"`
	Language        string      `bun:"language" json:"language,omitempty"`
	Rating          string      `bun:"rating" json:"rating,omitempty"`
	ReleaseDate     string      `bun:"release_date" json:"releaseDate,omitempty"`
	ShowStartDate   string      `bun:"show_start_date" json:"showStartDate,omitempty"`
	ShowEndDate     string      `bun:"show_end_date" json:"showEndDate,omitempty"`
	Director        string      `bun:"director" json:"director,omitempty"`
	Cast            string      `bun:"cast_members" json:"cast,omitempty"`
	Status          MovieStatus `bun:"status,notnull,default:'ACTIVE'" json:"status,omitempty"`
	CreatedAt       time.Time   `bun:"created_at,nullzero,default:current_timestamp" json:"createdAt,omitempty"`
	UpdatedAt       time.Time   `bun:"updated_at,nullzero,default:current_timestamp" json:"updatedAt,omitempty"`
}

// Movies is the movie repository.
type Movies struct {
	db *bun.DB
}

// NewMovies creates a Movies repository.
func NewMovies(db *bun.DB) *Movies {
	return &Movies{db: db}
}

func (r *Movies) Find(ctx context.Context, id int64) (*Movie, error) {
	movie := &Movie{}
	err := r.db.NewSelect().
		Model(movie).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return movie, nil
}

func (r *Movies) List(ctx context.Context) ([]Movie, error) {
	var movies []Movie
	err := r.db.NewSelect().
		Model(&movies).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return movies, nil
}

// Search filters by optional title substring, exact genre and status.
// Empty criteria match everything, mirroring the catalog search the
// admin screen exposes.
func (r *Movies) Search(ctx context.Context, title, genre, status string) ([]Movie, error) {
	var movies []Movie
	q := r.db.NewSelect().Model(&movies)

	if title != "" {
		q = q.Where("LOWER(?TableAlias.title) LIKE ?", "%"+strings.ToLower(title)+"%")
	}
	if genre != "" {
		q = q.Where("?TableAlias.genre = ?", genre)
	}
	if status != "" {
		q = q.Where("?TableAlias.status = ?", status)
	}

	if err := q.Order("title ASC").Scan(ctx); err != nil {
		return nil, err
	}
	return movies, nil
}

// CurrentlyShowing returns active movies whose show window contains
// the given date.
func (r *Movies) CurrentlyShowing(ctx context.Context, date string) ([]Movie, error) {
	var movies []Movie
	err := r.db.NewSelect().
		Model(&movies).
		Where("?TableAlias.status = ?", MovieStatusActive).
		Where("?TableAlias.show_start_date <= ?", date).
		Where("?TableAlias.show_end_date >= ?", date).
		Order("show_start_date ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return movies, nil
}

// ComingSoon returns announced movies whose show window opens after
// the given date.
func (r *Movies) ComingSoon(ctx context.Context, date string) ([]Movie, error) {
	var movies []Movie
	err := r.db.NewSelect().
		Model(&movies).
		Where("?TableAlias.status = ?", MovieStatusComingSoon).
		Where("?TableAlias.show_start_date > ?", date).
		Order("show_start_date ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return movies, nil
}

func (r *Movies) Create(ctx context.Context, movie *Movie) (*Movie, error) {
	now := time.Now()
	movie.CreatedAt = now
	movie.UpdatedAt = now
	if movie.Status == "" {
		movie.Status = MovieStatusActive
	}

	if _, err := r.db.NewInsert().Model(movie).Exec(ctx); err != nil {
		return nil, err
	}
	return movie, nil
}

func (r *Movies) Update(ctx context.Context, movie *Movie) (*Movie, error) {
	movie.UpdatedAt = time.Now()
	if _, err := r.db.NewUpdate().Model(movie).WherePK().Exec(ctx); err != nil {
		return nil, err
	}
	return movie, nil
}

// Delete removes a movie together with its showtimes and photos.
func (r *Movies) Delete(ctx context.Context, id int64) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*Showtime)(nil)).Where("movie_id = ?", id).Exec(ctx); err != nil {
			return err
		}
		if _, err := tx.NewDelete().Model((*MoviePhoto)(nil)).Where("movie_id = ?", id).Exec(ctx); err != nil {
			return err
		}
		_, err := tx.NewDelete().Model((*Movie)(nil)).Where("id = ?", id).Exec(ctx)
		return err
	})
}
