package ports

import "github.com/xswap-network/xswap/internal/core/domain"

// RepoManager interface defines the repositories of the local journal.
type RepoManager interface {
	OfferRepository() domain.OfferRepository
	Close()
}
