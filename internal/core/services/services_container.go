package services

import (
	portsrepo "github.com/boardhub/board_backend/internal/core/ports/repositories"
	portssvc "github.com/boardhub/board_backend/internal/core/ports/services"
	"github.com/boardhub/board_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Search = NewSearchService(repos.SearchCache, cfg.SearchCacheTTL)
	cleaner := NewPostCleaner(repos.PostRepo, container.Search, repos.Storage)

	container.User = NewUserService(repos.UserRepo, WithUserPostCleaner(cleaner))
	container.Token = NewTokenService(cfg, repos.UserRepo, container.User)
	container.Board = NewBoardService(repos.BoardRepo, WithBoardPostCleaner(cleaner))

	postOpts := []PostServiceOption{WithPostIndexer(container.Search)}
	if repos.Storage != nil {
		postOpts = append(postOpts, WithAttachmentStorage(repos.Storage))
	}
	container.Post = NewPostService(cfg, repos.PostRepo, repos.BoardRepo, repos.UserRepo, postOpts...)

	container.Comment = NewCommentService(repos.CommentRepo, cfg.MaxCommentDepth)
	container.Chat = NewChatService(repos.ChatRepo)

	return container
}
