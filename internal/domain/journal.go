package domain

import "context"

// Journal mirrors a row of the journals table. CreatedAt is whatever the
// caller supplied; it is stored and returned as text.
type Journal struct {
	ID        ID   `json:"id"`
	UserID    ID   `json:"userId"`
	Title     Text `json:"title"`
	Content   Text `json:"content"`
	CreatedAt Text `json:"created_at"`
}

type JournalRepository interface {
	FindAll(ctx context.Context) ([]Journal, error)
	FindByID(ctx context.Context, id int64) (*Journal, error)
	Create(ctx context.Context, journal *Journal) (int64, error)
	Update(ctx context.Context, journal *Journal) (int64, error)
	Delete(ctx context.Context, id ID) (int64, error)
}

type JournalService interface {
	ListJournals(ctx context.Context) ([]Journal, error)
	GetJournalByID(ctx context.Context, id int64) (*Journal, error)
	CreateJournal(ctx context.Context, journal *Journal) (int64, error)
	UpdateJournal(ctx context.Context, journal *Journal) error
	DeleteJournal(ctx context.Context, id ID) error
}
