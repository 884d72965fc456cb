package pgsql

import (
	portsrepo "github.com/boardhub/board_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider builds the Postgres-backed repositories. Optional
// collaborators (search cache, attachment storage) are attached by the caller.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:    newPgxUserRepository(dbPool),
		BoardRepo:   newPgxBoardRepository(dbPool),
		PostRepo:    newPgxPostRepository(dbPool),
		CommentRepo: newPgxCommentRepository(dbPool),
		ChatRepo:    newPgxChatMessageRepository(dbPool),
	}
}
