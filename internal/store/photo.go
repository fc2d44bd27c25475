package store

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// MoviePhoto stores poster bytes directly in the database, one of
// them optionally flagged as the movie's primary image.
type MoviePhoto struct {
	bun.BaseModel `bun:"table:movie_photos,alias:pho"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id,omitempty"`
	MovieID   int64     `bun:"movie_id,notnull" json:"movieId"`
	PhotoData []byte    `bun:"photo_data,notnull" json:"-"`
	IsPrimary bool      `bun:"is_primary" json:"isPrimary"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"createdAt,omitempty"`
}

// MoviePhotos is the photo repository.
type MoviePhotos struct {
	db *bun.DB
}

// NewMoviePhotos creates a MoviePhotos repository.
func NewMoviePhotos(db *bun.DB) *MoviePhotos {
	return &MoviePhotos{db: db}
}

func (r *MoviePhotos) Find(ctx context.Context, id int64) (*MoviePhoto, error) {
	photo := &MoviePhoto{}
	err := r.db.NewSelect().
		Model(photo).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return photo, nil
}

func (r *MoviePhotos) ListByMovie(ctx context.Context, movieID int64) ([]MoviePhoto, error) {
	var photos []MoviePhoto
	err := r.db.NewSelect().
		Model(&photos).
		Where("?TableAlias.movie_id = ?", movieID).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return photos, nil
}

// FindPrimary returns the movie's primary photo, if one is flagged.
func (r *MoviePhotos) FindPrimary(ctx context.Context, movieID int64) (*MoviePhoto, error) {
	photo := &MoviePhoto{}
	err := r.db.NewSelect().
		Model(photo).
		Where("?TableAlias.movie_id = ?", movieID).
		Where("?TableAlias.is_primary = ?", true).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return photo, nil
}

// Create inserts a photo. Flagging it primary demotes any previous
// primary photo of the same movie in the same transaction.
func (r *MoviePhotos) Create(ctx context.Context, photo *MoviePhoto) (*MoviePhoto, error) {
	photo.CreatedAt = time.Now()

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if photo.IsPrimary {
			if _, err := tx.NewUpdate().
				Model((*MoviePhoto)(nil)).
				Set("is_primary = ?", false).
				Where("movie_id = ?", photo.MovieID).
				Exec(ctx); err != nil {
				return err
			}
		}
		_, err := tx.NewInsert().Model(photo).Exec(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return photo, nil
}

func (r *MoviePhotos) Delete(ctx context.Context, id int64) error {
	_, err := r.db.NewDelete().Model((*MoviePhoto)(nil)).Where("id = ?", id).Exec(ctx)
	return err
}
